package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/packview/pkg/fonts"
	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/render"
	"github.com/matzehuels/packview/pkg/zoom"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes f. The image is Width*scale by Height*scale pixels.
func RenderPNG(f zoom.Frame, t *hierarchy.Tree, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, fmt.Errorf("png: invalid scale %v", r.scale)
	}

	w := int(math.Ceil(f.Width * r.scale))
	h := int(math.Ceil(f.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty frame %vx%v", f.Width, f.Height)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(render.Background())
	dc.Clear()

	dc.Scale(r.scale, r.scale)
	dc.Translate(f.Width/2, f.Height/2)

	for _, it := range t.Items[1:] {
		c := f.Circles[it.Index]
		dc.DrawCircle(c.TX, c.TY, c.R)
		dc.SetColor(render.Fill(it))
		dc.Fill()
	}

	if err := drawLabels(dc, f, t); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func drawLabels(dc *gg.Context, f zoom.Frame, t *hierarchy.Tree) error {
	size := 0.0
	for _, it := range t.Items {
		l := f.Labels[it.Index]
		if !l.Display || l.Opacity <= 0 {
			continue
		}
		if l.FontSize != size {
			face, err := fonts.Face(l.FontSize)
			if err != nil {
				return fmt.Errorf("png: font: %w", err)
			}
			dc.SetFontFace(face)
			size = l.FontSize
		}
		dc.SetRGBA(0, 0, 0, l.Opacity)
		dc.DrawStringAnchored(it.Name(), l.TX, l.TY, 0.5, 0.35)
	}
	return nil
}
