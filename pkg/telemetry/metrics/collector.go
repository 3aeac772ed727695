package metrics

import (
	"time"

	"edgarviewer/edgarproxy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns the Prometheus registry and every metric the proxy records.
// It satisfies middleware.RequestRecorder, upstream.Recorder and
// discovery.StageRecorder.
//
// When metrics are disabled the Record methods return immediately.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics   *RequestMetrics
	upstreamMetrics  *UpstreamMetrics
	discoveryMetrics *DiscoveryMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a new registry with the Go
// runtime and process collectors is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "edgarproxy",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = config.DefaultRequestDurationBuckets()
	}

	return &Collector{
		config:           cfg,
		registry:         registry,
		requestMetrics:   NewRequestMetrics(cfg, registry),
		upstreamMetrics:  NewUpstreamMetrics(cfg, registry),
		discoveryMetrics: NewDiscoveryMetrics(cfg, registry),
	}
}

// Registry returns the registry metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordHTTPRequest records a completed inbound request.
//
// Parameters:
//   - method: HTTP method
//   - route: matched ServeMux pattern, or "unmatched"
//   - status: response status code
//   - duration: time from first byte in to last byte out
//   - bytes: response body size
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration, bytes int64) {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.RecordRequest(method, route, status, duration, bytes)
}

// RecordUpstreamRequest records an EDGAR call that produced a response.
func (c *Collector) RecordUpstreamRequest(endpoint string, statusCode int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.upstreamMetrics.RecordRequest(endpoint, statusCode, duration)
}

// RecordUpstreamError records a failed EDGAR call.
//
// Error types:
//   - "client_error": upstream answered 4xx
//   - "server_error": upstream answered 5xx
//   - "network": no response received
//   - "decode": response body was not the expected JSON
func (c *Collector) RecordUpstreamError(endpoint, errorType string) {
	if !c.config.Enabled {
		return
	}
	c.upstreamMetrics.RecordError(endpoint, errorType)
}

// RecordDiscoveryStage records the outcome of one discovery pipeline stage.
func (c *Collector) RecordDiscoveryStage(stage, outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.discoveryMetrics.RecordStage(stage, outcome, duration)
}
