package pipeline

import (
	"fmt"

	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/pack"
	"github.com/matzehuels/packview/pkg/render/sink"
	"github.com/matzehuels/packview/pkg/zoom"
)

// Render generates output artifacts in the requested formats.
func Render(t *hierarchy.Tree, l *pack.Layout, f zoom.Frame, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(t, l, f, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(t *hierarchy.Tree, l *pack.Layout, f zoom.Frame, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithHover()}
		if opts.Title != "" {
			svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
		}
		return sink.RenderSVG(f, t, svgOpts...), nil
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = DefaultScale
		}
		return sink.RenderPNG(f, t, sink.WithScale(scale))
	case FormatJSON:
		return sink.RenderJSON(t, l, f)
	default:
		return nil, ValidateFormat(format)
	}
}
