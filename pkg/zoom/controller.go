package zoom

import (
	"time"

	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/pack"
	"github.com/matzehuels/packview/pkg/view"
)

// DefaultDuration is the length of a zoom transition.
const DefaultDuration = 750 * time.Millisecond

// Options tunes a Controller. The zero value uses the defaults.
type Options struct {
	Duration time.Duration           // transition length; 0 means DefaultDuration
	Ease     func(t float64) float64 // progress easing; nil means view.EaseCubicInOut
}

func (o Options) withDefaults() Options {
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Ease == nil {
		o.Ease = view.EaseCubicInOut
	}
	return o
}

// labelState is the display state of one label at a settled instant.
type labelState struct {
	display bool
	opacity float64
}

type transition struct {
	start time.Time
	path  view.Interpolator
	// involved marks labels that take part in the fade; target is their
	// final opacity. Other labels keep their state unchanged.
	involved []bool
	target   []float64
}

// Controller holds the zoom state for one chart.
type Controller struct {
	tree   *hierarchy.Tree
	layout *pack.Layout
	opts   Options

	focus  *hierarchy.Item
	view   view.Viewport // viewport at the start of the active transition
	labels []labelState  // label state at the start of the active transition
	fonts  []float64
	active *transition
}

// New returns a controller focused on the root: the viewport frames the root
// circle and only the labels of the root's children are shown.
func New(t *hierarchy.Tree, l *pack.Layout, opts Options) *Controller {
	c := &Controller{
		tree:   t,
		layout: l,
		opts:   opts.withDefaults(),
		focus:  t.Root,
		view:   view.Frame(l.Circle(t.Root)),
		labels: make([]labelState, t.Len()),
		fonts:  make([]float64, t.Len()),
	}
	for i, it := range t.Items {
		if it.Parent == t.Root {
			c.labels[i] = labelState{display: true, opacity: 1}
		}
		c.fonts[i] = FontSize(it.Name(), l.Circles[i].R)
	}
	return c
}

// Focus returns the current focus item. During a transition this is already
// the transition's target.
func (c *Controller) Focus() *hierarchy.Item { return c.focus }

// Click handles a click on the circle of the item at index. Leaves are not
// interactive and clicking the focused item does nothing. It reports whether
// a transition was started.
func (c *Controller) Click(index int, now time.Time) bool {
	if index < 0 || index >= c.tree.Len() {
		return false
	}
	it := c.tree.Items[index]
	if it.IsLeaf() || it == c.focus {
		return false
	}
	c.zoom(it, now)
	return true
}

// ClickBackground zooms back out to the root. It does nothing when the root
// is already the focus.
func (c *Controller) ClickBackground(now time.Time) bool {
	if c.focus == c.tree.Root {
		return false
	}
	c.zoom(c.tree.Root, now)
	return true
}

// Animating reports whether a transition is still running at now.
func (c *Controller) Animating(now time.Time) bool {
	return c.active != nil && c.progress(now) < 1
}

func (c *Controller) zoom(target *hierarchy.Item, now time.Time) {
	// Settle at the current instant so a running transition hands over its
	// interpolated state.
	c.view, c.labels = c.sample(now)
	c.focus = target

	tr := &transition{
		start:    now,
		path:     view.Zoom(c.view, view.Frame(c.layout.Circle(target))),
		involved: make([]bool, len(c.labels)),
		target:   make([]float64, len(c.labels)),
	}
	for i, it := range c.tree.Items {
		visible := it.Parent == target
		tr.involved[i] = visible || c.labels[i].display
		if visible {
			tr.target[i] = 1
		}
	}
	c.active = tr
}

func (c *Controller) progress(now time.Time) float64 {
	p := float64(now.Sub(c.active.start)) / float64(c.opts.Duration)
	return min(max(p, 0), 1)
}

// sample returns the viewport and label states at now without mutating c.
func (c *Controller) sample(now time.Time) (view.Viewport, []labelState) {
	labels := make([]labelState, len(c.labels))
	copy(labels, c.labels)
	if c.active == nil {
		return c.view, labels
	}

	p := c.progress(now)
	e := c.opts.Ease(p)
	tr := c.active
	for i := range labels {
		if !tr.involved[i] {
			continue
		}
		from := c.labels[i].opacity
		labels[i] = labelState{
			display: p < 1 || tr.target[i] > 0,
			opacity: from + (tr.target[i]-from)*e,
		}
	}
	return tr.path.At(e), labels
}
