package config

import "time"

// Config is the root configuration structure for the EDGAR proxy.
type Config struct {
	// Proxy contains HTTP server configuration including listen address,
	// timeouts, and CORS.
	Proxy ProxyConfig `yaml:"proxy"`

	// Upstream contains the EDGAR client configuration, most importantly the
	// identification header sent on every request.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Static contains configuration for serving the frontend assets.
	Static StaticConfig `yaml:"static"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProxyConfig contains configuration for the HTTP server.
type ProxyConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:3000", "0.0.0.0:3000").
	// Default: "127.0.0.1:3000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Filing downloads are streamed, so zero (no timeout) is the
	// default.
	// Default: 0
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for in-flight requests
	// during graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) configuration.
type CORSConfig struct {
	// Enabled controls whether CORS headers are added.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is a list of allowed origins. ["*"] allows all.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is a list of allowed HTTP methods.
	// Default: ["GET", "HEAD", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is a list of allowed request headers.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// ExposedHeaders is a list of response headers readable by the browser.
	// Default: ["X-Request-ID", "Content-Disposition"]
	ExposedHeaders []string `yaml:"exposed_headers"`

	// MaxAge is the preflight cache lifetime in seconds.
	// Default: 3600
	MaxAge int `yaml:"max_age"`

	// AllowCredentials controls whether credentials are allowed.
	// Default: false
	AllowCredentials bool `yaml:"allow_credentials"`
}

// UpstreamConfig contains configuration for calls to SEC EDGAR.
type UpstreamConfig struct {
	// UserAgent is the identification header sent on every upstream request.
	// EDGAR requires a value naming the application and a contact address.
	// Default: "EDGARViewer contact@example.com"
	UserAgent string `yaml:"user_agent"`

	// WWWBaseURL is the base of the www.sec.gov host (ticker list, archives).
	// Default: "https://www.sec.gov"
	WWWBaseURL string `yaml:"www_base_url"`

	// DataBaseURL is the base of the data.sec.gov host (submissions,
	// concepts, filing indexes).
	// Default: "https://data.sec.gov"
	DataBaseURL string `yaml:"data_base_url"`

	// Timeout bounds a whole upstream request. Zero means none; the inbound
	// request context still cancels the call.
	// Default: 0
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns is the maximum number of idle connections across hosts.
	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the maximum number of idle connections per host.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long an idle connection is kept.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// StaticConfig contains configuration for the frontend asset server.
type StaticConfig struct {
	// Enabled controls whether assets are served at "/".
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Dir is the directory holding the pre-built frontend.
	// Default: "./public"
	Dir string `yaml:"dir"`

	// Index is the document served for directory requests and checked by
	// the readiness probe.
	// Default: "index.html"
	Index string `yaml:"index"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are recorded and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "edgarproxy"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: ""
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets defines histogram buckets for request,
	// upstream and stage durations (seconds).
	// Default: [0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Exporter determines the trace exporter to use.
	// Options: "otlp"
	// Default: "otlp"
	Exporter string `yaml:"exporter"`

	// Endpoint is the OTLP/gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "edgarproxy"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
