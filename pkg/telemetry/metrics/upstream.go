package metrics

import (
	"strconv"
	"time"

	"edgarviewer/edgarproxy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics tracks calls to SEC EDGAR.
//
// Metrics:
//   - edgarproxy_upstream_requests_total: Calls by endpoint and status code
//   - edgarproxy_upstream_latency_seconds: Time to response headers
//   - edgarproxy_upstream_errors_total: Failed calls by endpoint and error type
type UpstreamMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewUpstreamMetrics creates and registers upstream metrics with the provided registry.
func NewUpstreamMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_requests_total",
				Help:      "Total number of EDGAR calls that received a response",
			},
			[]string{"endpoint", "status"},
		),

		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_latency_seconds",
				Help:      "EDGAR call latency to response headers in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"endpoint"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_errors_total",
				Help:      "Total number of failed EDGAR calls by type",
			},
			[]string{"endpoint", "error_type"},
		),
	}

	registry.MustRegister(
		um.requests,
		um.latency,
		um.errors,
	)

	return um
}

// RecordRequest records a call that produced a response.
func (um *UpstreamMetrics) RecordRequest(endpoint string, statusCode int, duration time.Duration) {
	um.requests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	um.latency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordError records a failed call.
func (um *UpstreamMetrics) RecordError(endpoint, errorType string) {
	um.errors.WithLabelValues(endpoint, errorType).Inc()
}
