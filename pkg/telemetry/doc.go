// Package telemetry groups the proxy's observability packages.
//
// # Components
//
//   - logging: slog setup with request_id, trace_id and span_id attached from context
//   - metrics: Prometheus collectors for inbound requests, EDGAR calls and discovery stages
//   - tracing: OpenTelemetry tracer with an OTLP/gRPC exporter
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	cfg := config.MustGetConfig()
//
//	logger, err := logging.New(logging.Config{
//	    Level:  cfg.Telemetry.Logging.Level,
//	    Format: cfg.Telemetry.Logging.Format,
//	})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
// The collector and tracer are passed to the upstream client, the discovery
// workflow and the server. None of them sees EDGAR response bodies.
package telemetry
