// Package tracing provides OpenTelemetry distributed tracing for the EDGAR proxy.
//
// # Overview
//
// Every inbound request gets a server span (HTTPMiddleware). Discovery
// stages and upstream EDGAR calls open child spans, so one download-latest
// request appears as a single trace:
//
//	GET /api/download-latest/{ticker}
//	└── discovery.download
//	    ├── discovery.ticker_lookup
//	    │   └── upstream.tickers
//	    ├── discovery.submissions
//	    │   └── upstream.submissions
//	    ├── discovery.filing_index
//	    │   └── upstream.filing_index
//	    └── discovery.document
//	        └── upstream.document
//
// # Sampling Strategies
//
//   - always: Sample all traces (development/debugging)
//   - never: Sample no traces
//   - ratio: Sample a percentage of traces
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "discovery.download")
//	defer span.End()
//
// # Exporter
//
// Spans are exported over OTLP/gRPC:
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    exporter: otlp
//	    endpoint: localhost:4317
//	    otlp:
//	      insecure: true
//	      timeout: 10s
//
// When tracing is disabled the tracer is a noop and adds no measurable
// overhead.
package tracing
