package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"edgarviewer/edgarproxy/pkg/telemetry/logging"
)

// captureLogs installs a JSON logger writing to a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New() error = %v", err)
	}
	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// completedRecord returns the "request completed" log record.
func completedRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var rec map[string]any
		if err := json.Unmarshal(line, &rec); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		if rec["msg"] == "request completed" {
			return rec
		}
	}
	t.Fatalf("no request completed record in %s", buf.String())
	return nil
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success logs at info", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error logs at warn", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "server error logs at error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			})

			wrapped := RequestIDMiddleware(LoggingMiddleware(handler))
			req := httptest.NewRequest(http.MethodGet, "/api/submissions/320193", nil)
			req.Header.Set(RequestIDHeader, "req-abc")
			wrapped.ServeHTTP(httptest.NewRecorder(), req)

			rec := completedRecord(t, buf)
			if rec["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", rec["level"], tt.wantLevel)
			}
			if rec["status"] != float64(tt.status) {
				t.Errorf("status = %v, want %d", rec["status"], tt.status)
			}
			if rec["path"] != "/api/submissions/320193" {
				t.Errorf("path = %v", rec["path"])
			}
			if rec["bytes"] != float64(4) {
				t.Errorf("bytes = %v, want 4", rec["bytes"])
			}
			if rec["request_id"] != "req-abc" {
				t.Errorf("request_id = %v, want req-abc", rec["request_id"])
			}
		})
	}
}

func TestResponseWriter_DefaultStatus(t *testing.T) {
	rw := newResponseWriter(httptest.NewRecorder())
	_, _ = rw.Write([]byte("x"))
	rw.WriteHeader(http.StatusTeapot)

	if rw.statusCode != http.StatusOK {
		t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusOK)
	}
}

func TestLoggingMiddleware_ProbesAndAttachments(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		status         int
		disposition    string
		wantLevel      string
		wantAttachment any
	}{
		{name: "health probe", path: "/health", status: http.StatusOK, wantLevel: "DEBUG"},
		{name: "failing readiness", path: "/ready", status: http.StatusServiceUnavailable, wantLevel: "WARN"},
		{
			name:           "filing download",
			path:           "/api/download-latest/AAPL",
			status:         http.StatusOK,
			disposition:    `attachment; filename="aapl-20230930.htm"`,
			wantLevel:      "INFO",
			wantAttachment: "aapl-20230930.htm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.disposition != "" {
					w.Header().Set("Content-Disposition", tt.disposition)
				}
				w.WriteHeader(tt.status)
			})

			LoggingMiddleware(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			rec := completedRecord(t, buf)
			if rec["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", rec["level"], tt.wantLevel)
			}
			if rec["attachment"] != tt.wantAttachment {
				t.Errorf("attachment = %v, want %v", rec["attachment"], tt.wantAttachment)
			}
		})
	}
}
