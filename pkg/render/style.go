package render

import (
	"bytes"
	"encoding/xml"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/packview/pkg/hierarchy"
)

// MaxDepth is the depth at which the colour scale reaches its end.
const MaxDepth = 5

// HoverStroke is the outline drawn around a hovered circle.
const HoverStroke = "#000"

var (
	shallow = colorful.Hsl(200, 0.8, 0.8)
	deep    = colorful.Hsl(228, 0.3, 0.4)
	white   = colorful.Color{R: 1, G: 1, B: 1}
)

// DepthColor returns the fill for an internal circle at the given depth.
// Depths outside [0, MaxDepth] are clamped.
func DepthColor(depth int) colorful.Color {
	t := min(max(float64(depth)/MaxDepth, 0), 1)
	return shallow.BlendHcl(deep, t).Clamped()
}

// Background is the chart background colour.
func Background() colorful.Color { return DepthColor(0) }

// Fill returns the fill colour of an item's circle.
func Fill(it *hierarchy.Item) colorful.Color {
	if it.IsLeaf() {
		return white
	}
	return DepthColor(it.Depth)
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
