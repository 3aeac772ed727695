package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"edgarviewer/edgarproxy/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config configures the upstream client.
type Config struct {
	// UserAgent is sent on every request. Required.
	UserAgent string

	// Timeout bounds a whole request including the body read.
	// Zero means no client-side timeout.
	Timeout time.Duration

	// MaxIdleConns is the maximum number of idle connections across hosts.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum number of idle connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection stays in the pool.
	IdleConnTimeout time.Duration
}

// SpanStarter starts tracing spans. *tracing.Tracer satisfies it.
type SpanStarter interface {
	Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span)
}

// Recorder receives per-request measurements.
type Recorder interface {
	RecordUpstreamRequest(endpoint string, statusCode int, duration time.Duration)
	RecordUpstreamError(endpoint, errorType string)
}

// Option customizes a Client.
type Option func(*Client)

// WithTracer sets the tracer used for upstream spans.
func WithTracer(t SpanStarter) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// Client performs identified GET requests against EDGAR.
// It is safe for concurrent use.
type Client struct {
	config   Config
	client   *http.Client
	tracer   SpanStarter
	recorder Recorder
}

// NewClient creates a Client with a pooled transport.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, errors.New("upstream: user agent is required")
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		config: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		tracer:   noop.NewTracerProvider().Tracer("edgarproxy/upstream"),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UserAgent returns the identification header value sent upstream.
func (c *Client) UserAgent() string {
	return c.config.UserAgent
}

// Fetch issues one GET to url. endpoint names the call for logs, spans and
// metrics. On success the caller owns the response body.
func (c *Client) Fetch(ctx context.Context, endpoint, url string) (*http.Response, error) {
	ctx, span := c.tracer.Start(ctx, "upstream."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrHTTPMethod, http.MethodGet),
			attribute.String(tracing.AttrHTTPURL, url),
			attribute.String(tracing.AttrEndpoint, endpoint),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, c.fail(span, endpoint, &TransportError{Endpoint: endpoint, URL: url, Cause: err})
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	slog.Debug("sending upstream request",
		"endpoint", endpoint,
		"url", url,
	)

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		return nil, c.fail(span, endpoint, &TransportError{Endpoint: endpoint, URL: url, Cause: err})
	}

	c.recorder.RecordUpstreamRequest(endpoint, resp.StatusCode, duration)
	span.SetAttributes(attribute.Int(tracing.AttrHTTPStatusCode, resp.StatusCode))

	slog.Debug("upstream response received",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"latency_ms", duration.Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, c.fail(span, endpoint, &StatusError{Endpoint: endpoint, URL: url, StatusCode: resp.StatusCode})
	}

	tracing.Finish(span, nil)
	return resp, nil
}

// FetchJSON fetches url and decodes the JSON body into v.
func (c *Client) FetchJSON(ctx context.Context, endpoint, url string, v any) error {
	resp, err := c.Fetch(ctx, endpoint, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return c.decodeFailure(endpoint, url, err)
	}
	return nil
}

// FetchRaw fetches url and returns the body unmodified after checking it is
// valid JSON.
func (c *Client) FetchRaw(ctx context.Context, endpoint, url string) (json.RawMessage, error) {
	resp, err := c.Fetch(ctx, endpoint, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recorder.RecordUpstreamError(endpoint, "network")
		return nil, &TransportError{Endpoint: endpoint, URL: url, Cause: err}
	}
	if !json.Valid(body) {
		return nil, c.decodeFailure(endpoint, url, fmt.Errorf("invalid JSON in %d-byte body", len(body)))
	}
	return json.RawMessage(body), nil
}

func (c *Client) decodeFailure(endpoint, url string, cause error) error {
	c.recorder.RecordUpstreamError(endpoint, "decode")
	return &DecodeError{Endpoint: endpoint, URL: url, Cause: cause}
}

func (c *Client) fail(span trace.Span, endpoint string, err error) error {
	c.recorder.RecordUpstreamError(endpoint, errorType(err))
	tracing.Finish(span, err)
	return err
}

type nopRecorder struct{}

func (nopRecorder) RecordUpstreamRequest(string, int, time.Duration) {}
func (nopRecorder) RecordUpstreamError(string, string)               {}
