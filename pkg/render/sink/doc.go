// Package sink writes projected frames of a packed hierarchy to files.
//
// Three formats are supported:
//
//   - [RenderSVG]: a standalone SVG equivalent to the browser chart
//   - [RenderPNG]: a raster image drawn with fogleman/gg
//   - [RenderJSON]: the layout and frame as a JSON document
//
// All sinks take a [zoom.Frame], so a snapshot shows exactly what the browser
// shows for the same focus. Screen coordinates in a frame are centred on the
// origin; the SVG viewBox is "-w/2 -h/2 w h" and the PNG sink translates by
// half the frame size.
//
// [zoom.Frame]: github.com/matzehuels/packview/pkg/zoom.Frame
package sink
