package zoom

import (
	"time"
	"unicode/utf8"

	"github.com/matzehuels/packview/pkg/view"
)

// MinFontSize is the smallest label font size in pixels.
const MinFontSize = 15.0

// Label is the screen state of one label.
type Label struct {
	view.Transform         // R is unused; labels are centred on the translation
	FontSize       float64 // pixels
	Display        bool
	Opacity        float64
}

// Frame is one projected frame of the chart. Circles and Labels are
// index-aligned with the tree's breadth-first items. Circles[0] is the root,
// which renderers paint as the background instead of drawing it.
type Frame struct {
	Width, Height float64
	View          view.Viewport
	Focus         int
	Animating     bool
	Circles       []view.Transform
	Labels        []Label
}

// Frame projects the chart as it appears at now. It does not change the
// controller, so repeated calls with the same instant return equal frames.
func (c *Controller) Frame(now time.Time) Frame {
	v, states := c.sample(now)
	f := Frame{
		Width:     c.layout.Width,
		Height:    c.layout.Height,
		View:      v,
		Focus:     c.focus.Index,
		Animating: c.Animating(now),
		Circles:   view.ProjectAll(c.layout.Circles, v, c.layout.Width),
		Labels:    make([]Label, len(states)),
	}
	for i, s := range states {
		tf := f.Circles[i]
		f.Labels[i] = Label{
			Transform: view.Transform{TX: tf.TX, TY: tf.TY},
			FontSize:  c.fonts[i],
			Display:   s.display,
			Opacity:   s.opacity,
		}
	}
	return f
}

// FontSize returns the label font size for a circle of intrinsic radius r:
// twice the diameter divided by the name length, never below MinFontSize.
// An empty name counts as one character.
func FontSize(name string, r float64) float64 {
	n := max(utf8.RuneCountInString(name), 1)
	return max(MinFontSize, 2*(2*r)/float64(n))
}
