// Package metrics provides Prometheus metrics collection for the EDGAR proxy.
//
// # Metrics Categories
//
//   - Request Metrics: inbound request count, duration and response size per route
//   - Upstream Metrics: EDGAR call count, latency and errors per endpoint
//   - Discovery Metrics: latest-filing pipeline stage outcomes and durations
//
// Go runtime and process collectors are registered alongside.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	client, _ := upstream.NewClient(ucfg, upstream.WithRecorder(collector))
//	workflow := discovery.New(client, ep, discovery.WithRecorder(collector))
//	handler := middleware.MetricsMiddleware(collector)(mux)
//
//	http.Handle("/metrics", collector.Handler())
//
// # Labels
//
// Route labels are ServeMux patterns ("GET /api/submissions/{cik}") and
// endpoint labels are fixed names ("tickers", "submissions", ...), so no
// caller-supplied value ever becomes a label.
package metrics
