package middleware

import (
	"net/http"
	"time"
)

// RequestRecorder receives one measurement per completed request.
// *metrics.Collector satisfies it.
type RequestRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration, bytes int64)
}

// MetricsMiddleware records request count, latency and response size.
//
// The route label is the ServeMux pattern that matched (r.Pattern), so
// path parameters never become label values. It must wrap the ServeMux
// directly: the mux sets Pattern on the request it receives, and any
// middleware in between that copies the request hides it.
//
// Example usage:
//
//	handler = MetricsMiddleware(collector)(mux)
func MetricsMiddleware(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			recorder.RecordHTTPRequest(r.Method, route, rw.statusCode, time.Since(start), rw.bytes)
		})
	}
}
