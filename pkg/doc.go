// Package pkg provides the core libraries for packview circle-packing charts.
//
// # Overview
//
// Packview turns a hierarchical JSON document into a zoomable circle-packing
// chart: every node is a circle, children nest inside their parent, and leaf
// area is proportional to value. Clicking a circle zooms the view so that
// circle fills the frame.
//
// # Architecture
//
// The data flow, shared by the browser renderer and the snapshot pipeline:
//
//	data.json
//	    ↓
//	[hierarchy] (validate, sum, sort, index)
//	    ↓
//	[pack] (sibling packing and enclosing circles)
//	    ↓
//	[zoom] (focus, interpolated viewport, label fades)
//	    ↓
//	[view] (project circles into screen space)
//	    ↓
//	browser DOM, or [render/sink] (SVG, PNG, JSON)
//
// # Quick Start
//
//	root, _ := hierarchy.ImportJSON("data.json")
//	tree, _ := hierarchy.New(root)
//	layout, _ := pack.Compute(tree, pack.Options{Width: 960, Height: 960, Padding: pack.DefaultPadding})
//
//	ctrl := zoom.New(tree, layout, zoom.Options{})
//	ctrl.Click(1, time.Now())
//	frame := ctrl.Frame(time.Now().Add(zoom.DefaultDuration))
//
//	svg := sink.RenderSVG(frame, tree)
//
// # Main Packages
//
// [hierarchy] - The input tree and its derived, breadth-first items.
//
// [pack] - Circle packing: front-chain sibling placement and smallest
// enclosing circles.
//
// [view] - Viewports, projection and the smooth zoom interpolator.
//
// [zoom] - The click-driven zoom controller and projected frames.
//
// [render] - Colours and styling; [render/sink] writes frames as SVG, PNG
// or JSON.
//
// [pipeline] - load → layout → focus → render with artifact caching, used
// by the CLI.
//
// [cache] - Artifact caches (file, Redis, null) and cache keys.
//
// [observability] - Hooks for metrics; [observability/prom] implements them
// with Prometheus.
//
// [errors] - Coded errors shared by every layer.
package pkg
