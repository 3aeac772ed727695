package metrics

import (
	"strconv"
	"time"

	"edgarviewer/edgarproxy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks inbound HTTP requests.
//
// Metrics:
//   - edgarproxy_http_requests_total: Request count by method, route, status
//   - edgarproxy_http_request_duration_seconds: Request duration histogram
//   - edgarproxy_http_response_size_bytes: Response body size histogram
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"method", "route"},
		),

		responseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_response_size_bytes",
				Help:      "Size of HTTP response bodies in bytes",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 9), // 1KB to 64MB
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.responseSize,
	)

	return rm
}

// RecordRequest records metrics for a completed request.
func (rm *RequestMetrics) RecordRequest(method, route string, status int, duration time.Duration, bytes int64) {
	rm.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	rm.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	if bytes > 0 {
		rm.responseSize.WithLabelValues(route).Observe(float64(bytes))
	}
}
