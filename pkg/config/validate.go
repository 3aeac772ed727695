package config

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"
	"time"
)

// FieldError is a problem with one configuration field, addressed by its
// dotted YAML path such as "upstream.user_agent".
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError collects every FieldError found by Validate.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "configuration validation failed"
	case 1:
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(e.Errors))
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", fe.Error())
	}
	return sb.String()
}

// problems accumulates FieldErrors across sections.
type problems []FieldError

func (p *problems) add(field, format string, args ...any) {
	*p = append(*p, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (p *problems) oneOf(field, value string, allowed ...string) {
	switch {
	case value == "":
		p.add(field, "value is required (one of %s)", strings.Join(allowed, ", "))
	case !slices.Contains(allowed, value):
		p.add(field, "invalid value %q: must be one of %s", value, strings.Join(allowed, ", "))
	}
}

func nonNegative[T int | time.Duration](p *problems, field string, v T) {
	if v < 0 {
		p.add(field, "must not be negative")
	}
}

// Validate checks cfg after defaults have been applied. It reports every
// problem at once rather than stopping at the first.
func Validate(cfg *Config) error {
	var p problems
	p.proxy(&cfg.Proxy)
	p.upstream(&cfg.Upstream)
	p.static(&cfg.Static)
	p.telemetry(&cfg.Telemetry)
	if len(p) > 0 {
		return ValidationError{Errors: p}
	}
	return nil
}

const maxHeaderBytesLimit = 10 << 20

func (p *problems) proxy(c *ProxyConfig) {
	if c.ListenAddress == "" {
		p.add("proxy.listen_address", "listen address is required")
	} else if _, _, err := net.SplitHostPort(c.ListenAddress); err != nil {
		p.add("proxy.listen_address", "invalid listen address %q: %v", c.ListenAddress, err)
	}

	nonNegative(p, "proxy.read_timeout", c.ReadTimeout)
	nonNegative(p, "proxy.write_timeout", c.WriteTimeout)
	nonNegative(p, "proxy.idle_timeout", c.IdleTimeout)
	nonNegative(p, "proxy.shutdown_timeout", c.ShutdownTimeout)
	nonNegative(p, "proxy.max_header_bytes", c.MaxHeaderBytes)
	if c.MaxHeaderBytes > maxHeaderBytesLimit {
		p.add("proxy.max_header_bytes", "exceeds the 10MB limit")
	}

	if !c.CORS.Enabled {
		return
	}
	if c.CORS.AllowCredentials && slices.Contains(c.CORS.AllowedOrigins, "*") {
		p.add("proxy.cors.allow_credentials", "credentials cannot be allowed with wildcard origin")
	}
	nonNegative(p, "proxy.cors.max_age", c.CORS.MaxAge)
}

func (p *problems) upstream(c *UpstreamConfig) {
	switch {
	case strings.TrimSpace(c.UserAgent) == "":
		p.add("upstream.user_agent", "user agent is required; EDGAR rejects anonymous requests")
	case strings.ContainsAny(c.UserAgent, "\r\n"):
		p.add("upstream.user_agent", "user agent must be a single line")
	}

	p.baseURL("upstream.www_base_url", c.WWWBaseURL)
	p.baseURL("upstream.data_base_url", c.DataBaseURL)

	nonNegative(p, "upstream.timeout", c.Timeout)
	nonNegative(p, "upstream.max_idle_conns", c.MaxIdleConns)
	nonNegative(p, "upstream.max_idle_conns_per_host", c.MaxIdleConnsPerHost)
	nonNegative(p, "upstream.idle_conn_timeout", c.IdleConnTimeout)
}

func (p *problems) baseURL(field, raw string) {
	if raw == "" {
		p.add(field, "base URL is required")
		return
	}
	u, err := url.Parse(raw)
	switch {
	case err != nil:
		p.add(field, "invalid URL: %v", err)
	case u.Scheme != "http" && u.Scheme != "https":
		p.add(field, "URL scheme must be http or https, got %q", u.Scheme)
	case u.Host == "":
		p.add(field, "URL must include a host")
	}
}

// static does not require the directory to exist; readiness reports that.
func (p *problems) static(c *StaticConfig) {
	if c.Enabled && c.Dir == "" {
		p.add("static.dir", "static directory is required when static serving is enabled")
	}
	if strings.ContainsAny(c.Index, `/\`) {
		p.add("static.index", "index must be a file name, not a path")
	}
}

func (p *problems) telemetry(c *TelemetryConfig) {
	p.oneOf("telemetry.logging.level", c.Logging.Level, "debug", "info", "warn", "error")
	p.oneOf("telemetry.logging.format", c.Logging.Format, "json", "text", "console")

	if c.Metrics.Enabled {
		switch {
		case !strings.HasPrefix(c.Metrics.Path, "/"):
			p.add("telemetry.metrics.path", "metrics path must start with /")
		case strings.HasPrefix(c.Metrics.Path, "/api/"):
			p.add("telemetry.metrics.path", "metrics path must not be under /api/")
		}
		if !slices.IsSorted(c.Metrics.RequestDurationBuckets) || hasDuplicate(c.Metrics.RequestDurationBuckets) {
			p.add("telemetry.metrics.request_duration_buckets", "buckets must be strictly increasing")
		}
	}

	if c.Tracing.Enabled {
		if c.Tracing.Endpoint == "" {
			p.add("telemetry.tracing.endpoint", "tracing endpoint is required when tracing is enabled")
		}
		p.oneOf("telemetry.tracing.exporter", c.Tracing.Exporter, "otlp")
		p.oneOf("telemetry.tracing.sampler", c.Tracing.Sampler, "always", "never", "ratio")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		p.add("telemetry.tracing.sample_ratio", "sample ratio must be between 0.0 and 1.0")
	}
}

// hasDuplicate reports adjacent equal values in a sorted slice.
func hasDuplicate(sorted []float64) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}
