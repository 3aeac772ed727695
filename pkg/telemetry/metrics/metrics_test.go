package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edgarviewer/edgarproxy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:                true,
		Namespace:              "test",
		RequestDurationBuckets: []float64{0.1, 0.5, 1.0, 5.0},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, config.DefaultMetricsNamespace)
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		t.Error("RequestDurationBuckets not defaulted")
	}

	families, err := collector.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "go_") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Go runtime collector not registered on default registry")
	}
}

func TestCollector_RecordHTTPRequest(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordHTTPRequest("GET", "GET /api/tickers", 200, 120*time.Millisecond, 2048)
	collector.RecordHTTPRequest("GET", "GET /api/tickers", 200, 80*time.Millisecond, 2048)
	collector.RecordHTTPRequest("GET", "GET /api/tickers", 503, 10*time.Millisecond, 22)

	ok := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("GET", "GET /api/tickers", "200"))
	if ok != 2 {
		t.Errorf("requests_total{status=200} = %v, want 2", ok)
	}
	failed := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("GET", "GET /api/tickers", "503"))
	if failed != 1 {
		t.Errorf("requests_total{status=503} = %v, want 1", failed)
	}
}

func TestCollector_RecordUpstream(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordUpstreamRequest("submissions", 200, 300*time.Millisecond)
	collector.RecordUpstreamRequest("submissions", 404, 50*time.Millisecond)
	collector.RecordUpstreamError("submissions", "client_error")
	collector.RecordUpstreamError("tickers", "network")

	if got := testutil.ToFloat64(collector.upstreamMetrics.requests.WithLabelValues("submissions", "404")); got != 1 {
		t.Errorf("upstream_requests_total{404} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.upstreamMetrics.errors.WithLabelValues("tickers", "network")); got != 1 {
		t.Errorf("upstream_errors_total{network} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(collector.upstreamMetrics.errors); got != 2 {
		t.Errorf("upstream_errors_total series = %d, want 2", got)
	}
}

func TestCollector_RecordDiscoveryStage(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordDiscoveryStage("ticker_lookup", "ok", 200*time.Millisecond)
	collector.RecordDiscoveryStage("filing_index", "not_found", 100*time.Millisecond)

	if got := testutil.ToFloat64(collector.discoveryMetrics.stages.WithLabelValues("filing_index", "not_found")); got != 1 {
		t.Errorf("discovery_stages_total{filing_index,not_found} = %v, want 1", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordHTTPRequest("GET", "GET /api/tickers", 200, time.Second, 1)
	collector.RecordUpstreamError("tickers", "network")

	if got := testutil.CollectAndCount(collector.requestMetrics.requestsTotal); got != 0 {
		t.Errorf("requests_total series = %d, want 0 when disabled", got)
	}
	if got := testutil.CollectAndCount(collector.upstreamMetrics.errors); got != 0 {
		t.Errorf("upstream_errors_total series = %d, want 0 when disabled", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordUpstreamRequest("tickers", 200, time.Second)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `test_upstream_requests_total{endpoint="tickers",status="200"} 1`) {
		t.Errorf("metrics output missing upstream counter:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `promhttp_metric_handler_requests_total{code="200"} 1`) {
		t.Errorf("metrics output missing scrape counter:\n%s", rec.Body.String())
	}
}
