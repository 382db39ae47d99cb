package view

import "github.com/matzehuels/packview/pkg/pack"

// Viewport is the visible region: centre (X, Y) and diameter D in layout
// coordinates.
type Viewport struct {
	X, Y, D float64
}

// Frame returns the viewport that frames c exactly.
func Frame(c pack.Circle) Viewport {
	return Viewport{X: c.X, Y: c.Y, D: c.R * 2}
}

// Scale returns the layout-to-screen scale factor for a screen of the given width.
func (v Viewport) Scale(width float64) float64 {
	return width / v.D
}

// Transform places a circle on screen: translate(TX, TY) with radius R.
type Transform struct {
	TX, TY, R float64
}

// Project maps c into screen space for viewport v on a screen of the given width.
func Project(c pack.Circle, v Viewport, width float64) Transform {
	k := v.Scale(width)
	return Transform{
		TX: (c.X - v.X) * k,
		TY: (c.Y - v.Y) * k,
		R:  c.R * k,
	}
}

// ProjectAll projects every circle. The result is index-aligned with circles.
func ProjectAll(circles []pack.Circle, v Viewport, width float64) []Transform {
	out := make([]Transform, len(circles))
	for i, c := range circles {
		out[i] = Project(c, v, width)
	}
	return out
}
