package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"edgarviewer/edgarproxy/pkg/config"
	"edgarviewer/edgarproxy/pkg/edgar"
	"edgarviewer/edgarproxy/pkg/proxy/handlers"
	"edgarviewer/edgarproxy/pkg/proxy/middleware"
	"edgarviewer/edgarproxy/pkg/telemetry/health"
	"edgarviewer/edgarproxy/pkg/telemetry/metrics"
	"edgarviewer/edgarproxy/pkg/telemetry/tracing"
)

// BuildInfo is reported by GET /version.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Dependencies are the components the server routes to. Fetcher and
// Downloader are required; the rest are optional.
type Dependencies struct {
	// Fetcher serves the three pass-through resource routes.
	Fetcher handlers.RawFetcher

	// Downloader serves /api/download-latest/{ticker}.
	Downloader handlers.Downloader

	// Metrics records request metrics and serves the metrics endpoint.
	Metrics *metrics.Collector

	// Tracer wraps each request in a server span.
	Tracer *tracing.Tracer

	// Checker backs /ready. A checker with the static and user agent
	// checks is created when nil.
	Checker *health.Checker

	Build BuildInfo
}

// Server is the EDGAR proxy HTTP server.
type Server struct {
	config       *config.Config
	deps         Dependencies
	httpServer   *http.Server
	listener     net.Listener
	ready        chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	started      bool
}

// NewServer creates a new proxy server.
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	if deps.Checker == nil {
		deps.Checker = health.New(2 * time.Second)
		if cfg.Static.Enabled {
			deps.Checker.RegisterCheck("static", health.StaticDirCheck(cfg.Static.Dir, cfg.Static.Index))
		}
		deps.Checker.RegisterCheck("user_agent", health.UserAgentCheck(cfg.Upstream.UserAgent))
	}

	return &Server{
		config: cfg,
		deps:   deps,
		ready:  make(chan struct{}),
	}
}

// Start binds the listen address, serves requests, and blocks until ctx is
// cancelled, SIGINT/SIGTERM arrives, or the server fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return errors.New("server is already running")
	}
	if s.started {
		s.mu.Unlock()
		return errors.New("server cannot be restarted after shutdown")
	}

	if s.deps.Fetcher == nil || s.deps.Downloader == nil {
		s.mu.Unlock()
		return errors.New("server requires a fetcher and a downloader")
	}

	proxyCfg := s.config.Proxy
	listener, err := net.Listen("tcp", proxyCfg.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", proxyCfg.ListenAddress, err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    proxyCfg.ReadTimeout,
		WriteTimeout:   proxyCfg.WriteTimeout,
		IdleTimeout:    proxyCfg.IdleTimeout,
		MaxHeaderBytes: proxyCfg.MaxHeaderBytes,
	}
	s.isRunning = true
	s.started = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("EDGAR proxy running",
			"url", "http://"+displayAddr(listener.Addr()),
			"static_dir", s.staticDir(),
			"metrics", s.config.Telemetry.Metrics.Enabled,
			"tracing", s.deps.Tracer != nil && s.deps.Tracer.Enabled(),
		)

		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()
	close(s.ready)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server. In-flight downloads get up to
// the configured shutdown timeout to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		timeout := s.config.Proxy.ShutdownTimeout
		slog.Info("initiating graceful shutdown", "timeout", timeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("EDGAR proxy stopped")
	})

	return shutdownErr
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	cfg := s.config
	endpoints := edgar.NewEndpoints(cfg.Upstream.WWWBaseURL, cfg.Upstream.DataBaseURL)

	mux := http.NewServeMux()

	// API routes
	mux.Handle("GET /api/tickers", handlers.NewTickersHandler(s.deps.Fetcher, endpoints))
	mux.Handle("GET /api/submissions/{cik}", handlers.NewSubmissionsHandler(s.deps.Fetcher, endpoints))
	mux.Handle("GET /api/concept/{cik}/{tag}", handlers.NewConceptHandler(s.deps.Fetcher, endpoints))
	mux.Handle("GET /api/download-latest/{ticker}", handlers.NewDownloadLatestHandler(s.deps.Downloader))

	// Operational routes
	health.Register(mux, s.deps.Checker, s.deps.Build.Version, s.deps.Build.Commit, s.deps.Build.BuildTime)
	if s.deps.Metrics != nil && cfg.Telemetry.Metrics.Enabled {
		mux.Handle("GET "+cfg.Telemetry.Metrics.Path, s.deps.Metrics.Handler())
	}

	// Frontend assets
	if cfg.Static.Enabled {
		mux.Handle("GET /", staticHandler(cfg.Static.Dir, cfg.Static.Index))
	}

	// Middleware, innermost first. Metrics wraps the mux directly so that it
	// sees the matched pattern on the request the mux received.
	var handler http.Handler = mux

	if s.deps.Metrics != nil {
		handler = middleware.MetricsMiddleware(s.deps.Metrics)(handler)
	}

	handler = middleware.CORSMiddleware(s.convertCORSConfig())(handler)

	// Logging sits inside tracing and request id so the request it logs
	// carries both ids in its context.
	handler = middleware.LoggingMiddleware(handler)

	if s.deps.Tracer != nil {
		handler = tracing.HTTPMiddleware(s.deps.Tracer)(handler)
	}

	handler = middleware.RequestIDMiddleware(handler)

	// Recovery middleware (outermost)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// staticHandler serves the frontend directory. http.FileServer already
// serves index.html for directory paths; any other index name is served
// explicitly.
func staticHandler(dir, index string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	if index == "" || index == "index.html" {
		return files
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			name := filepath.Join(dir, filepath.FromSlash(path.Clean(r.URL.Path)), index)
			http.ServeFile(w, r, name)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func (s *Server) staticDir() string {
	if !s.config.Static.Enabled {
		return ""
	}
	return s.config.Static.Dir
}

// convertCORSConfig converts config.CORSConfig to middleware.CORSConfig.
func (s *Server) convertCORSConfig() *middleware.CORSConfig {
	cors := s.config.Proxy.CORS
	return &middleware.CORSConfig{
		Enabled:          cors.Enabled,
		AllowedOrigins:   cors.AllowedOrigins,
		AllowedMethods:   cors.AllowedMethods,
		AllowedHeaders:   cors.AllowedHeaders,
		ExposedHeaders:   cors.ExposedHeaders,
		MaxAge:           cors.MaxAge,
		AllowCredentials: cors.AllowCredentials,
	}
}

// displayAddr renders an unspecified bind address as localhost, matching
// what a browser should open.
func displayAddr(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
