// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/packview/pkg/observability"
)

// Registry holds the packview metrics on a private Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DataBytesServed     prometheus.Counter

	LayoutDuration *prometheus.HistogramVec
	RenderDuration *prometheus.HistogramVec

	CacheRequests *prometheus.CounterVec
	CacheBytes    *prometheus.CounterVec
}

// NewRegistry creates a registry with all metrics initialized, plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)
	return &Registry{
		registry: reg,

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "packview_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "packview_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		DataBytesServed: f.NewCounter(prometheus.CounterOpts{
			Name: "packview_data_bytes_served_total",
			Help: "Bytes of hierarchy data served on /data",
		}),

		LayoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "packview_layout_duration_seconds",
			Help:    "Circle packing duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"status"}),

		RenderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "packview_render_duration_seconds",
			Help:    "Snapshot render duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"status"}),

		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "packview_cache_requests_total",
			Help: "Cache lookups by key type and result",
		}, []string{"key_type", "result"}),

		CacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "packview_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}, []string{"key_type"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer returns the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

// Install registers r as the server, pipeline and cache hooks.
func (r *Registry) Install() {
	observability.SetServerHooks(r)
	observability.SetPipelineHooks(r)
	observability.SetCacheHooks(r)
}

func (r *Registry) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	r.HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
}

func (r *Registry) OnDataServed(_ context.Context, size int) {
	r.DataBytesServed.Add(float64(size))
}

func (r *Registry) OnLayoutStart(context.Context, int) {}

func (r *Registry) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	r.LayoutDuration.WithLabelValues(status(err)).Observe(d.Seconds())
}

func (r *Registry) OnRenderStart(context.Context, []string) {}

func (r *Registry) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	r.RenderDuration.WithLabelValues(status(err)).Observe(d.Seconds())
}

func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

var (
	_ observability.ServerHooks   = (*Registry)(nil)
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
)
