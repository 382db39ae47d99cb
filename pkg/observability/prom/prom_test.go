package prom

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/matzehuels/packview/pkg/observability"
)

func TestOnRequest(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnRequest(ctx, "GET", "/data", 200, 10*time.Millisecond)
	r.OnRequest(ctx, "GET", "/data", 200, 20*time.Millisecond)
	r.OnRequest(ctx, "POST", "unmatched", 404, time.Millisecond)

	if got := value(t, r.HTTPRequestsTotal.WithLabelValues("GET", "/data", "200")); got != 2 {
		t.Errorf("GET /data 200 = %v, want 2", got)
	}
	if got := value(t, r.HTTPRequestsTotal.WithLabelValues("POST", "unmatched", "404")); got != 1 {
		t.Errorf("POST unmatched 404 = %v, want 1", got)
	}
}

func TestOnDataServed(t *testing.T) {
	r := NewRegistry()
	r.OnDataServed(context.Background(), 100)
	r.OnDataServed(context.Background(), 50)
	if got := value(t, r.DataBytesServed); got != 150 {
		t.Errorf("DataBytesServed = %v, want 150", got)
	}
}

func TestPipelineDurations(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	r.OnLayoutComplete(ctx, 10, time.Millisecond, nil)
	r.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, errors.New("boom"))

	if n := sampleCount(t, r.LayoutDuration.WithLabelValues("success")); n != 1 {
		t.Errorf("layout samples = %d, want 1", n)
	}
	if n := sampleCount(t, r.RenderDuration.WithLabelValues("error")); n != 1 {
		t.Errorf("render error samples = %d, want 1", n)
	}
}

func TestCacheCounters(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	r.OnCacheHit(ctx, "artifact")
	r.OnCacheMiss(ctx, "artifact")
	r.OnCacheMiss(ctx, "artifact")
	r.OnCacheSet(ctx, "artifact", 2048)

	if got := value(t, r.CacheRequests.WithLabelValues("artifact", "miss")); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
	if got := value(t, r.CacheBytes.WithLabelValues("artifact")); got != 2048 {
		t.Errorf("bytes = %v, want 2048", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.OnDataServed(context.Background(), 7)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "packview_data_bytes_served_total 7") {
		t.Errorf("metrics output missing data counter:\n%s", body)
	}
}

func TestInstall(t *testing.T) {
	defer observability.Reset()
	r := NewRegistry()
	r.Install()
	if observability.Server() != r || observability.Pipeline() != r || observability.Cache() != r {
		t.Error("Install did not register all hooks")
	}
}

func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func sampleCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	var m dto.Metric
	if err := o.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
