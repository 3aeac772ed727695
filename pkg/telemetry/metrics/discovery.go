package metrics

import (
	"time"

	"edgarviewer/edgarproxy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DiscoveryMetrics tracks the latest-filing discovery pipeline.
//
// Metrics:
//   - edgarproxy_discovery_stages_total: Stage runs by stage and outcome
//   - edgarproxy_discovery_stage_duration_seconds: Stage duration histogram
type DiscoveryMetrics struct {
	stages   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewDiscoveryMetrics creates and registers discovery metrics with the provided registry.
func NewDiscoveryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DiscoveryMetrics {
	dm := &DiscoveryMetrics{
		stages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "discovery_stages_total",
				Help:      "Total number of discovery stage runs by outcome",
			},
			[]string{"stage", "outcome"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "discovery_stage_duration_seconds",
				Help:      "Duration of discovery stages in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"stage"},
		),
	}

	registry.MustRegister(dm.stages, dm.duration)

	return dm
}

// RecordStage records one stage run.
//
// Outcomes: "ok", "not_found", "upstream_status", "transport_error", "decode_error".
func (dm *DiscoveryMetrics) RecordStage(stage, outcome string, duration time.Duration) {
	dm.stages.WithLabelValues(stage, outcome).Inc()
	dm.duration.WithLabelValues(stage).Observe(duration.Seconds())
}
