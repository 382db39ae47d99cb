// Package observability lets library code report events without importing
// a metrics backend.
//
// Each area gets a small hook interface with a no-op default. The serve
// command swaps in the Prometheus recorder from [prom] before it starts
// listening; the CLI and the wasm build keep the defaults.
//
//	start := time.Now()
//	observability.Pipeline().OnLayoutStart(ctx, tree.Len())
//	layout, err := pack.Compute(tree, opts)
//	observability.Pipeline().OnLayoutComplete(ctx, tree.Len(), time.Since(start), err)
//
// [prom]: github.com/matzehuels/packview/pkg/observability/prom
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// ServerHooks receives events from the HTTP data provider.
type ServerHooks interface {
	// OnRequest fires once per response. route is the chi route pattern,
	// or "unmatched" when the request fell through to the 404 handler.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
	// OnDataServed fires after the data file was written to a client.
	OnDataServed(ctx context.Context, size int)
}

// PipelineHooks receives events from snapshot rendering.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache lookups and writes. keyType is the key
// prefix, such as "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}
func (NoopServerHooks) OnDataServed(context.Context, int)                            {}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// registry is replaced wholesale on every Set call, so readers never lock.
type registry struct {
	server   ServerHooks
	pipeline PipelineHooks
	cache    CacheHooks
}

var (
	defaults = registry{NoopServerHooks{}, NoopPipelineHooks{}, NoopCacheHooks{}}
	current  atomic.Pointer[registry]
)

func init() { Reset() }

// update applies fn to a copy of the current registry and publishes it.
func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetServerHooks installs h. A nil h is ignored.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		update(func(r *registry) { r.server = h })
	}
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

func Server() ServerHooks     { return current.Load().server }
func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks       { return current.Load().cache }

// Reset puts the no-op hooks back. Tests that install hooks call it in
// t.Cleanup.
func Reset() {
	r := defaults
	current.Store(&r)
}
