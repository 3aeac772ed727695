// Package server provides the EDGAR proxy HTTP server.
//
// It ties together the resource and download handlers, the middleware
// chain, the operational endpoints and the static frontend, and manages
// the server lifecycle.
//
// # Basic Usage
//
//	cfg := config.MustGetConfig()
//
//	client, err := upstream.NewClient(upstream.Config{UserAgent: cfg.Upstream.UserAgent})
//	if err != nil {
//	    return err
//	}
//	endpoints := edgar.NewEndpoints(cfg.Upstream.WWWBaseURL, cfg.Upstream.DataBaseURL)
//
//	srv := server.NewServer(cfg, server.Dependencies{
//	    Fetcher:    client,
//	    Downloader: discovery.New(client, endpoints),
//	})
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully. In-flight requests get up to proxy.shutdown_timeout to
// complete.
//
// # Routes
//
//   - GET /api/tickers - company ticker directory
//   - GET /api/submissions/{cik} - company submission metadata
//   - GET /api/concept/{cik}/{tag} - XBRL company concept
//   - GET /api/download-latest/{ticker} - latest filing document as an attachment
//   - GET /health - liveness probe
//   - GET /ready - readiness probe (static directory and User-Agent checks)
//   - GET /version - build information
//   - GET /metrics - Prometheus metrics (when telemetry.metrics.enabled)
//   - GET / - static frontend assets (when static.enabled)
//
// # Middleware Chain
//
// Requests pass through the following middleware (innermost to outermost):
//  1. Metrics: per-route request count, latency and size
//  2. CORS: Cross-Origin Resource Sharing headers
//  3. Logging: one line per completed request, with request and trace ids
//  4. Tracing: server span per request (when a tracer is configured)
//  5. RequestID: X-Request-ID propagation
//  6. Recovery: panics become 500 responses
//
// A Server is started at most once; Start after Shutdown returns an error.
package server
