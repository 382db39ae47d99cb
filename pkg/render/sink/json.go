package sink

import (
	"encoding/json"

	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/pack"
	"github.com/matzehuels/packview/pkg/zoom"
)

type jsonOutput struct {
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Padding float64    `json:"padding"`
	Focus   string     `json:"focus"`
	View    jsonView   `json:"view"`
	Nodes   []jsonNode `json:"nodes"`
}

type jsonView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	D float64 `json:"d"`
}

type jsonNode struct {
	Index  int        `json:"index"`
	Name   string     `json:"name"`
	Parent *int       `json:"parent,omitempty"`
	Depth  int        `json:"depth"`
	Value  float64    `json:"value"`
	Leaf   bool       `json:"leaf,omitempty"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	R      float64    `json:"r"`
	Screen jsonScreen `json:"screen"`
	Label  jsonLabel  `json:"label"`
}

type jsonScreen struct {
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
	R  float64 `json:"r"`
}

type jsonLabel struct {
	FontSize float64 `json:"font_size"`
	Display  bool    `json:"display"`
	Opacity  float64 `json:"opacity"`
}

// RenderJSON exports the layout together with frame f as a pretty-printed
// JSON document. Nodes are listed in breadth-first order; x, y and r are
// layout coordinates and screen holds the projection under the frame's view.
func RenderJSON(t *hierarchy.Tree, l *pack.Layout, f zoom.Frame) ([]byte, error) {
	out := jsonOutput{
		Width:   l.Width,
		Height:  l.Height,
		Padding: l.Padding,
		Focus:   t.Items[f.Focus].Name(),
		View:    jsonView{X: f.View.X, Y: f.View.Y, D: f.View.D},
		Nodes:   make([]jsonNode, 0, t.Len()),
	}
	for _, it := range t.Items {
		c := l.Circles[it.Index]
		s := f.Circles[it.Index]
		lb := f.Labels[it.Index]
		n := jsonNode{
			Index:  it.Index,
			Name:   it.Name(),
			Depth:  it.Depth,
			Value:  it.Value,
			Leaf:   it.IsLeaf(),
			X:      c.X,
			Y:      c.Y,
			R:      c.R,
			Screen: jsonScreen{TX: s.TX, TY: s.TY, R: s.R},
			Label:  jsonLabel{FontSize: lb.FontSize, Display: lb.Display, Opacity: lb.Opacity},
		}
		if it.Parent != nil {
			p := it.Parent.Index
			n.Parent = &p
		}
		out.Nodes = append(out.Nodes, n)
	}
	return json.MarshalIndent(out, "", "  ")
}
