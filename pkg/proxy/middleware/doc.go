// Package middleware holds the HTTP middleware the proxy wraps around its
// mux.
//
// # Chain
//
//	handler = Recovery(RequestID(Tracing(Logging(CORS(Metrics(mux))))))
//
// Metrics wraps the mux directly so it sees the matched route pattern.
// Tracing is tracing.HTTPMiddleware and sits inside RequestID so the server
// span carries the request id. Logging sits inside both so each completed
// request is logged with its request_id, trace_id and span_id. No middleware imposes a request timeout:
// downloads stream for as long as EDGAR keeps sending.
//
// # Middleware
//
//   - RequestIDMiddleware: reuse or mint X-Request-ID and put it in the context
//   - LoggingMiddleware: one record per request, probes at debug, attachment
//     name for filing downloads
//   - MetricsMiddleware: report method, route, status, latency and size to a
//     RequestRecorder
//   - CORSMiddleware: origin checks and preflight answers for browser clients
//   - RecoveryMiddleware: 500 on panic, or abort the connection when the
//     response had already started
package middleware
