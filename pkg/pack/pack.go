package pack

import (
	"fmt"
	"math"

	"github.com/matzehuels/packview/pkg/errors"
	"github.com/matzehuels/packview/pkg/hierarchy"
)

// DefaultPadding is the approximate gap, in pixels, kept between sibling
// circles and between a circle and its parent's edge.
const DefaultPadding = 3.0

var errNoBasis = errors.New(errors.ErrCodeInternal, "no enclosing basis found")

// Circle is a circle in layout coordinates.
type Circle struct {
	X, Y, R float64
}

// Options configures [Compute].
type Options struct {
	Width   float64 // frame width in pixels
	Height  float64 // frame height in pixels
	Padding float64 // approximate gap in pixels; use DefaultPadding for the usual look
}

// Validate checks the frame size and padding.
func (o Options) Validate() error {
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	return errors.ValidatePadding(o.Padding)
}

// Layout holds one circle per tree item, indexed by [hierarchy.Item.Index].
type Layout struct {
	Width   float64
	Height  float64
	Padding float64
	Circles []Circle
}

// Circle returns the circle assigned to it.
func (l *Layout) Circle(it *hierarchy.Item) Circle {
	return l.Circles[it.Index]
}

// Compute packs t into a Width×Height frame.
func Compute(t *hierarchy.Tree, opts Options) (l *Layout, err error) {
	if t == nil || t.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil tree")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			if r != errNoBasis {
				panic(r)
			}
			l, err = nil, fmt.Errorf("pack %d items: %w", t.Len(), errNoBasis)
		}
	}()

	circles := make([]Circle, t.Len())
	for _, it := range t.Items {
		if it.IsLeaf() {
			circles[it.Index].R = math.Sqrt(it.Value)
		}
	}

	random := lcg()
	order := postOrder(t.Root)
	packChildren(order, circles, 0, random)

	size := min(opts.Width, opts.Height)
	root := t.Root.Index
	packChildren(order, circles, opts.Padding*circles[root].R/size, random)

	k := size / (2 * circles[root].R)
	circles[root].X = opts.Width / 2
	circles[root].Y = opts.Height / 2
	for _, it := range t.Items {
		c := &circles[it.Index]
		c.R *= k
		if it.Parent != nil {
			p := circles[it.Parent.Index]
			c.X = p.X + k*c.X
			c.Y = p.Y + k*c.Y
		}
	}

	return &Layout{
		Width:   opts.Width,
		Height:  opts.Height,
		Padding: opts.Padding,
		Circles: circles,
	}, nil
}

// packChildren packs every internal item's children around the item's
// centre, children first. pad is added to each child's radius while packing
// and to the parent's radius afterwards.
func packChildren(order []*hierarchy.Item, circles []Circle, pad float64, random func() float64) {
	var buf []Circle
	for _, it := range order {
		if it.IsLeaf() {
			continue
		}

		buf = buf[:0]
		for _, c := range it.Children {
			cc := circles[c.Index]
			cc.R += pad
			buf = append(buf, cc)
		}
		e := packSiblings(buf, random)
		for i, c := range it.Children {
			circles[c.Index] = Circle{X: buf[i].X, Y: buf[i].Y, R: buf[i].R - pad}
		}
		circles[it.Index].R = e + pad
	}
}

// postOrder lists items so that every item follows all of its descendants,
// visiting later siblings first.
func postOrder(root *hierarchy.Item) []*hierarchy.Item {
	var visit []*hierarchy.Item
	stack := []*hierarchy.Item{root}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit = append(visit, it)
		stack = append(stack, it.Children...)
	}
	for i, j := 0, len(visit)-1; i < j; i, j = i+1, j-1 {
		visit[i], visit[j] = visit[j], visit[i]
	}
	return visit
}
