package middleware

import (
	"log/slog"
	"mime"
	"net/http"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int64
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += int64(n)
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// probePaths are polled by orchestrators and scrapers. Successful probes
// log at debug.
var probePaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

// LoggingMiddleware logs one line per completed request.
// The level follows the status class: 5xx logs at error, 4xx at warn,
// everything else at info (debug for successful probes). Filing downloads
// also log the attachment name.
//
// Log format (JSON):
//
//	{
//	  "time": "2026-10-17T10:30:00Z",
//	  "level": "INFO",
//	  "msg": "request completed",
//	  "method": "GET",
//	  "path": "/api/download-latest/AAPL",
//	  "status": 200,
//	  "latency_ms": 842,
//	  "bytes": 1590874,
//	  "attachment": "aapl-20230930.htm",
//	  "request_id": "7c0e0d9e-...",
//	  "remote_addr": "127.0.0.1:54321"
//	}
//
// Example usage:
//
//	handler = LoggingMiddleware(handler)
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", rw.bytes,
		}
		if name := attachmentName(rw.Header()); name != "" {
			attrs = append(attrs, "attachment", name)
		}
		attrs = append(attrs,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		slog.Log(r.Context(), logLevel(r.URL.Path, rw.statusCode), "request completed", attrs...)
	})
}

func logLevel(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case probePaths[path]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// attachmentName returns the filename of a Content-Disposition attachment.
func attachmentName(h http.Header) string {
	cd := h.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	disposition, params, err := mime.ParseMediaType(cd)
	if err != nil || disposition != "attachment" {
		return ""
	}
	return params["filename"]
}
