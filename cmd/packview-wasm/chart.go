//go:build js && wasm

package main

import (
	"fmt"
	"strconv"
	"syscall/js"
	"time"

	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/pack"
	"github.com/matzehuels/packview/pkg/render"
	"github.com/matzehuels/packview/pkg/zoom"
)

const svgNS = "http://www.w3.org/2000/svg"

// chart owns the SVG elements and the zoom controller. Every method runs on
// the JS event loop.
type chart struct {
	doc     js.Value
	svg     js.Value
	tree    *hierarchy.Tree
	ctrl    *zoom.Controller
	nodes   []js.Value // index-aligned with tree.Items; [0] is unused
	labels  []js.Value // index-aligned with tree.Items
	funcs   []js.Func
	tick    js.Func
	ticking bool
}

func newChart(doc, svg js.Value, t *hierarchy.Tree, l *pack.Layout) *chart {
	return &chart{
		doc:    doc,
		svg:    svg,
		tree:   t,
		ctrl:   zoom.New(t, l, zoom.Options{}),
		nodes:  make([]js.Value, len(t.Items)),
		labels: make([]js.Value, len(t.Items)),
	}
}

// mount builds the DOM once, wires the event handlers and draws the first
// frame.
func (c *chart) mount() {
	f := c.ctrl.Frame(time.Now())

	c.svg.Call("setAttribute", "viewBox", fmt.Sprintf("%g %g %g %g", -f.Width/2, -f.Height/2, f.Width, f.Height))
	c.svg.Call("setAttribute", "width", ftoa(f.Width))
	c.svg.Call("setAttribute", "height", ftoa(f.Height))
	c.svg.Call("setAttribute", "style", "display: block; cursor: pointer; background: "+render.Background().Hex()+";")

	circles := c.el("g")
	for _, it := range c.tree.Items[1:] {
		circle := c.el("circle")
		circle.Call("setAttribute", "fill", render.Fill(it).Hex())
		if it.IsLeaf() {
			circle.Call("setAttribute", "pointer-events", "none")
		} else {
			c.on(circle, "mouseover", func(js.Value) { circle.Call("setAttribute", "stroke", render.HoverStroke) })
			c.on(circle, "mouseout", func(js.Value) { circle.Call("removeAttribute", "stroke") })
			index := it.Index
			c.on(circle, "click", func(ev js.Value) {
				ev.Call("stopPropagation")
				if c.ctrl.Click(index, time.Now()) {
					c.animate()
				}
			})
		}
		circles.Call("appendChild", circle)
		c.nodes[it.Index] = circle
	}
	c.svg.Call("appendChild", circles)

	text := c.el("g")
	text.Call("setAttribute", "style", "font: 10px sans-serif;")
	text.Call("setAttribute", "pointer-events", "none")
	text.Call("setAttribute", "text-anchor", "middle")
	for _, it := range c.tree.Items {
		label := c.el("text")
		label.Call("setAttribute", "dy", "0.35em")
		label.Set("textContent", it.Name())
		text.Call("appendChild", label)
		c.labels[it.Index] = label
	}
	c.svg.Call("appendChild", text)

	c.on(c.svg, "click", func(js.Value) {
		if c.ctrl.ClickBackground(time.Now()) {
			c.animate()
		}
	})

	c.tick = js.FuncOf(func(js.Value, []js.Value) any {
		f := c.ctrl.Frame(time.Now())
		c.draw(f)
		if f.Animating {
			js.Global().Call("requestAnimationFrame", c.tick)
		} else {
			c.ticking = false
		}
		return nil
	})

	c.draw(f)
}

// animate starts the frame loop unless it is already running.
func (c *chart) animate() {
	if c.ticking {
		return
	}
	c.ticking = true
	js.Global().Call("requestAnimationFrame", c.tick)
}

// draw applies f to the mounted elements.
func (c *chart) draw(f zoom.Frame) {
	for _, it := range c.tree.Items[1:] {
		tf := f.Circles[it.Index]
		node := c.nodes[it.Index]
		node.Call("setAttribute", "transform", translate(tf.TX, tf.TY))
		node.Call("setAttribute", "r", ftoa(tf.R))
	}
	for _, it := range c.tree.Items {
		l := f.Labels[it.Index]
		label := c.labels[it.Index]
		if !l.Display {
			label.Get("style").Set("display", "none")
			continue
		}
		label.Get("style").Set("display", "inline")
		label.Call("setAttribute", "transform", translate(l.TX, l.TY))
		label.Call("setAttribute", "fill-opacity", ftoa(l.Opacity))
		label.Get("style").Set("font-size", ftoa(l.FontSize)+"px")
	}
}

func (c *chart) el(name string) js.Value {
	return c.doc.Call("createElementNS", svgNS, name)
}

// on registers fn for event on target. The js.Func lives as long as the page.
func (c *chart) on(target js.Value, event string, fn func(ev js.Value)) {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	})
	c.funcs = append(c.funcs, f)
	target.Call("addEventListener", event, f)
}

func translate(x, y float64) string {
	return "translate(" + ftoa(x) + "," + ftoa(y) + ")"
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
