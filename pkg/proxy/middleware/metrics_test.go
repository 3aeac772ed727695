package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type recordedRequest struct {
	method string
	route  string
	status int
	bytes  int64
}

type fakeRequestRecorder struct {
	requests []recordedRequest
}

func (f *fakeRequestRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration, bytes int64) {
	f.requests = append(f.requests, recordedRequest{method: method, route: route, status: status, bytes: bytes})
}

func TestMetricsMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/submissions/{cik}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cik":"1"}`))
	})

	rec := &fakeRequestRecorder{}
	handler := MetricsMiddleware(rec)(mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/submissions/320193", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	want := []recordedRequest{
		{method: "GET", route: "GET /api/submissions/{cik}", status: http.StatusOK, bytes: 11},
		{method: "GET", route: "unmatched", status: http.StatusNotFound},
	}
	if len(rec.requests) != len(want) {
		t.Fatalf("recorded %d requests, want %d", len(rec.requests), len(want))
	}
	for i := range want {
		got := rec.requests[i]
		if got.method != want[i].method || got.route != want[i].route || got.status != want[i].status {
			t.Errorf("request[%d] = %+v, want %+v", i, got, want[i])
		}
	}
	if rec.requests[0].bytes != want[0].bytes {
		t.Errorf("bytes = %d, want %d", rec.requests[0].bytes, want[0].bytes)
	}
}

func TestMetricsMiddleware_NilRecorder(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	if got := MetricsMiddleware(nil)(inner); got == nil {
		t.Error("MetricsMiddleware(nil) returned nil handler")
	}
}
