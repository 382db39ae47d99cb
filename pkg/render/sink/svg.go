package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/render"
	"github.com/matzehuels/packview/pkg/zoom"
)

const hoverCSS = `
    circle:hover { stroke: %s; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title string
	hover bool
}

// WithTitle adds a <title> element to the document.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithHover outlines internal circles under the pointer.
func WithHover() SVGOption { return func(r *svgRenderer) { r.hover = true } }

// RenderSVG renders f as a standalone SVG document. Circles are drawn in
// breadth-first order without the root; only displayed labels are written.
func RenderSVG(f zoom.Frame, t *hierarchy.Tree, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f" style="display: block; background: %s; cursor: pointer;">`+"\n",
		-f.Width/2, -f.Height/2, f.Width, f.Height, f.Width, f.Height, render.Background().Hex())

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", render.EscapeXML(r.title))
	}
	if r.hover {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", fmt.Sprintf(hoverCSS, render.HoverStroke))
	}

	renderCircles(&buf, f, t)
	renderLabels(&buf, f, t)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCircles(buf *bytes.Buffer, f zoom.Frame, t *hierarchy.Tree) {
	buf.WriteString("  <g>\n")
	for _, it := range t.Items[1:] {
		c := f.Circles[it.Index]
		events := ""
		if it.IsLeaf() {
			events = ` pointer-events="none"`
		}
		fmt.Fprintf(buf, `    <circle transform="translate(%.2f,%.2f)" r="%.2f" fill="%s"%s/>`+"\n",
			c.TX, c.TY, c.R, render.Fill(it).Hex(), events)
	}
	buf.WriteString("  </g>\n")
}

func renderLabels(buf *bytes.Buffer, f zoom.Frame, t *hierarchy.Tree) {
	buf.WriteString(`  <g pointer-events="none" text-anchor="middle" font-family="sans-serif">` + "\n")
	for _, it := range t.Items {
		l := f.Labels[it.Index]
		if !l.Display {
			continue
		}
		fmt.Fprintf(buf, `    <text transform="translate(%.2f,%.2f)" dy="0.35em" font-size="%.2f" fill-opacity="%.3g">%s</text>`+"\n",
			l.TX, l.TY, l.FontSize, l.Opacity, render.EscapeXML(it.Name()))
	}
	buf.WriteString("  </g>\n")
}
