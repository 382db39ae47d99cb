// Package view maps layout coordinates to screen coordinates through a
// viewport and interpolates between viewports.
//
// A [Viewport] is the triple (X, Y, D): the centre and diameter, in layout
// coordinates, of the region shown across the full screen width. Screen
// coordinates are centred on the origin, matching an SVG viewBox of
// "-w/2 -h/2 w h".
//
// [Project] is a pure function of (circle, viewport, width): animation frames
// may be skipped or repeated without affecting the result. [Zoom] builds the
// smooth pan-and-zoom path of van Wijk and Nuij, which keeps the apparent
// zoom speed constant instead of interpolating the scale linearly.
package view
