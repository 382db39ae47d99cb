package pipeline

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packview/pkg/cache"
	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/observability"
	"github.com/matzehuels/packview/pkg/pack"
	"github.com/matzehuels/packview/pkg/zoom"
)

const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → layout → focus → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	t, data, err := Load(ctx, opts)
	if err != nil {
		return nil, wrapStage("load", err)
	}
	result.Tree = t
	result.DataHash = cache.Digest(data)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = t.Len()
	result.Stats.LeafCount = t.Leaves()
	result.Stats.DataBytes = len(data)

	r.Logger.Info("loaded hierarchy",
		"source", opts.source(),
		"nodes", t.Len(),
		"leaves", t.Leaves(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, err := r.ComputeLayout(ctx, t, opts)
	if err != nil {
		return nil, wrapStage("layout", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)

	// Stage 3: Focus
	frame, err := Settle(t, l, opts.Focus)
	if err != nil {
		return nil, wrapStage("focus", err)
	}
	result.Frame = frame
	r.Logger.Debug("settled view",
		"focus", t.Items[frame.Focus].Name(),
		"view", fmt.Sprintf("%.1f,%.1f,%.1f", frame.View.X, frame.View.Y, frame.View.D))

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, result.DataHash, t, l, frame, opts)
	if err != nil {
		return nil, wrapStage("render", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayout packs t for the frame in opts and reports the duration to
// the pipeline hooks.
func (r *Runner) ComputeLayout(ctx context.Context, t *hierarchy.Tree, opts Options) (*pack.Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, t.Len())
	start := time.Now()
	l, err := pack.Compute(t, opts.PackOptions())
	hooks.OnLayoutComplete(ctx, t.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("computed layout",
		"width", l.Width,
		"height", l.Height,
		"padding", l.Padding,
		"duration", time.Since(start))
	return l, nil
}

// RenderWithCacheInfo renders every requested format, serving what it can
// from the cache. It returns the formats that were cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, dataHash string, t *hierarchy.Tree, l *pack.Layout, f zoom.Frame, opts Options) (map[string][]byte, []string, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits, missing []string
	cacheHooks := observability.Cache()

	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(dataHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache lookup failed", "format", format, "error", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
			hits = append(hits, format)
			continue
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, hits, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	pipelineHooks := observability.Pipeline()
	pipelineHooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(t, l, f, renderOpts)
	pipelineHooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}

	for _, format := range slices.Sorted(maps.Keys(rendered)) {
		data := rendered[format]
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(dataHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
			r.Logger.Warn("cache store failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return artifacts, hits, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
