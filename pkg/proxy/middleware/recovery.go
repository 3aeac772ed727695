package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware turns a handler panic into a plain-text 500 and logs
// it with its stack trace.
//
// When the response has already started, as in a filing download that
// panics mid-stream, a 500 can no longer be sent. The connection is aborted
// instead so the client sees a truncated transfer rather than a
// complete-looking file. http.ErrAbortHandler passes through unlogged.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newResponseWriter(w)

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			slog.ErrorContext(r.Context(), "panic in handler",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"response_started", rw.written,
				"stack", string(debug.Stack()),
			)

			if rw.written {
				panic(http.ErrAbortHandler)
			}
			http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()

		next.ServeHTTP(rw, r)
	})
}
