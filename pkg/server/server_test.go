package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"edgarviewer/edgarproxy/pkg/config"
	"edgarviewer/edgarproxy/pkg/discovery"
	"edgarviewer/edgarproxy/pkg/edgar"
	"edgarviewer/edgarproxy/pkg/telemetry/logging"
	"edgarviewer/edgarproxy/pkg/telemetry/metrics"
	"edgarviewer/edgarproxy/pkg/telemetry/tracing"
	"edgarviewer/edgarproxy/pkg/upstream"

	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const testUserAgent = "EDGARViewer test@example.com"

// newFakeEDGAR serves every upstream path the proxy can request.
func newFakeEDGAR(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"0":{"cik_str":320193,"ticker":"AAPL","title":"Apple Inc."}}`)
	})
	mux.HandleFunc("GET /submissions/CIK0000320193.json", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"cik":"320193","name":"Apple Inc.","filings":{"recent":{"accessionNumber":["0000320193-23-000106"],"form":["10-K"]}}}`)
	})
	mux.HandleFunc("GET /submissions/CIK0000000404.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /api/xbrl/companyconcept/CIK0000320193/us-gaap/Revenues.json", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"tag":"Revenues"}`)
	})
	mux.HandleFunc("GET /Archives/edgar/data/320193/000032019323000106/index.json", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"directory":{"item":[{"name":"aapl-20230930.htm"}]}}`)
	})
	mux.HandleFunc("GET /Archives/edgar/data/320193/000032019323000106/aapl-20230930.htm", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>10-K</html>")
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != testUserAgent {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, edgarURL string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>viewer</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Defaults()
	config.ApplyDefaults(cfg)
	cfg.Proxy.ListenAddress = "127.0.0.1:0"
	cfg.Proxy.ShutdownTimeout = 5 * time.Second
	cfg.Upstream.UserAgent = testUserAgent
	cfg.Upstream.WWWBaseURL = edgarURL
	cfg.Upstream.DataBaseURL = edgarURL
	cfg.Static.Dir = dir
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *metrics.Collector) {
	t.Helper()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
	client, err := upstream.NewClient(upstream.Config{UserAgent: cfg.Upstream.UserAgent}, upstream.WithRecorder(collector))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	endpoints := edgar.NewEndpoints(cfg.Upstream.WWWBaseURL, cfg.Upstream.DataBaseURL)

	srv := NewServer(cfg, Dependencies{
		Fetcher:    client,
		Downloader: discovery.New(client, endpoints, discovery.WithRecorder(collector)),
		Metrics:    collector,
		Build:      BuildInfo{Version: "1.2.3", Commit: "abc123"},
	})
	return srv, collector
}

func TestServer_Routes(t *testing.T) {
	edgarSrv := newFakeEDGAR(t)
	cfg := testConfig(t, edgarSrv.URL)
	srv, _ := newTestServer(t, cfg)
	handler := srv.Handler()

	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantBody    string
		wantType    string
		wantHeaders map[string]string
	}{
		{
			name:       "tickers",
			method:     http.MethodGet,
			path:       "/api/tickers",
			wantStatus: http.StatusOK,
			wantBody:   `"AAPL"`,
			wantType:   "application/json",
		},
		{
			name:       "submissions",
			method:     http.MethodGet,
			path:       "/api/submissions/0000320193",
			wantStatus: http.StatusOK,
			wantBody:   `"Apple Inc."`,
			wantType:   "application/json",
		},
		{
			name:       "submissions upstream 404",
			method:     http.MethodGet,
			path:       "/api/submissions/0000000404",
			wantStatus: http.StatusNotFound,
			wantBody:   "Error fetching submissions",
		},
		{
			name:       "concept",
			method:     http.MethodGet,
			path:       "/api/concept/0000320193/Revenues",
			wantStatus: http.StatusOK,
			wantBody:   `"Revenues"`,
			wantType:   "application/json",
		},
		{
			name:       "download latest",
			method:     http.MethodGet,
			path:       "/api/download-latest/aapl",
			wantStatus: http.StatusOK,
			wantBody:   "<html>10-K</html>",
			wantType:   "application/xml",
			wantHeaders: map[string]string{
				"Content-Disposition": `attachment; filename="aapl-20230930.htm"`,
			},
		},
		{
			name:       "download unknown ticker",
			method:     http.MethodGet,
			path:       "/api/download-latest/ZZZZ",
			wantStatus: http.StatusNotFound,
			wantBody:   "Ticker not found",
		},
		{
			name:       "post not allowed",
			method:     http.MethodPost,
			path:       "/api/tickers",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "static index",
			method:     http.MethodGet,
			path:       "/",
			wantStatus: http.StatusOK,
			wantBody:   "<h1>viewer</h1>",
		},
		{
			name:       "health",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
			wantBody:   `"ok"`,
		},
		{
			name:       "ready",
			method:     http.MethodGet,
			path:       "/ready",
			wantStatus: http.StatusOK,
			wantBody:   `"ready"`,
		},
		{
			name:       "version",
			method:     http.MethodGet,
			path:       "/version",
			wantStatus: http.StatusOK,
			wantBody:   `"1.2.3"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
			if tt.wantType != "" && !strings.HasPrefix(rec.Header().Get("Content-Type"), tt.wantType) {
				t.Errorf("Content-Type = %q, want %q", rec.Header().Get("Content-Type"), tt.wantType)
			}
			for k, v := range tt.wantHeaders {
				if got := rec.Header().Get(k); got != v {
					t.Errorf("%s = %q, want %q", k, got, v)
				}
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID header not set")
			}
		})
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	edgarSrv := newFakeEDGAR(t)
	cfg := testConfig(t, edgarSrv.URL)
	srv, _ := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/tickers", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Errorf("Access-Control-Allow-Origin not set on preflight (status %d)", rec.Code)
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	edgarSrv := newFakeEDGAR(t)
	cfg := testConfig(t, edgarSrv.URL)
	srv, _ := newTestServer(t, cfg)
	handler := srv.Handler()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/submissions/0000320193", nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`edgarproxy_http_requests_total{method="GET",route="GET /api/submissions/{cik}",status="200"} 1`,
		`edgarproxy_upstream_requests_total{endpoint="submissions",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestServer_OptionalRoutesDisabled(t *testing.T) {
	edgarSrv := newFakeEDGAR(t)
	cfg := testConfig(t, edgarSrv.URL)
	cfg.Static.Enabled = false
	cfg.Telemetry.Metrics.Enabled = false
	srv, _ := newTestServer(t, cfg)
	handler := srv.Handler()

	for _, path := range []string{"/", "/metrics"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
		}
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	edgarSrv := newFakeEDGAR(t)
	cfg := testConfig(t, edgarSrv.URL)
	srv, _ := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	select {
	case <-srv.Ready():
	case err := <-errChan:
		t.Fatalf("Start() returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not become ready")
	}

	if !srv.IsRunning() {
		t.Error("IsRunning() = false after Ready")
	}

	resp, err := http.Get("http://" + srv.Addr().String() + "/api/tickers")
	if err != nil {
		t.Fatalf("GET /api/tickers: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
	if err := srv.Start(context.Background()); err == nil {
		t.Error("Start() after Shutdown error = nil, want restart refused")
	}
}

func TestServer_RequestLogCarriesIDs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New() error = %v", err)
	}
	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })

	provider := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	edgarSrv := newFakeEDGAR(t)
	cfg := testConfig(t, edgarSrv.URL)
	base, _ := newTestServer(t, cfg)
	deps := base.deps
	deps.Tracer = tracing.FromProvider(provider)
	srv := NewServer(cfg, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/tickers", nil)
	req.Header.Set("X-Request-ID", "viewer-req-1")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var record map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var r map[string]any
		if err := json.Unmarshal(line, &r); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		if r["msg"] == "request completed" {
			record = r
		}
	}
	if record == nil {
		t.Fatalf("no request completed record in %s", buf.String())
	}

	if record["request_id"] != "viewer-req-1" {
		t.Errorf("request_id = %v, want viewer-req-1", record["request_id"])
	}
	traceID := rec.Header().Get("X-Trace-ID")
	if traceID == "" || record["trace_id"] != traceID {
		t.Errorf("trace_id = %v, want %q (X-Trace-ID)", record["trace_id"], traceID)
	}
	if id, _ := record["span_id"].(string); id == "" {
		t.Error("span_id missing from request completed record")
	}
}

func TestServer_StartRequiresHandlers(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	srv := NewServer(cfg, Dependencies{})

	if err := srv.Start(context.Background()); err == nil {
		t.Fatal("Start() error = nil, want missing dependency error")
	}
}

func TestStaticHandler_CustomIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.html"), []byte("app"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	staticHandler(dir, "app.html").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "app" {
		t.Errorf("GET / = %d %q, want 200 %q", rec.Code, rec.Body.String(), "app")
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"127.0.0.1:3000", "127.0.0.1:3000"},
		{"0.0.0.0:3000", "localhost:3000"},
		{"[::]:8080", "localhost:8080"},
	}

	for _, tt := range tests {
		addr, err := net.ResolveTCPAddr("tcp", tt.addr)
		if err != nil {
			t.Fatalf("resolve %s: %v", tt.addr, err)
		}
		if got := displayAddr(addr); got != tt.want {
			t.Errorf("displayAddr(%s) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
