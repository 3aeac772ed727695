package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EDGARPROXY_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. An empty path yields the defaults.
//
// Unknown keys are rejected so that a misspelled option does not silently
// fall back to its default.
func LoadConfig(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention EDGARPROXY_SECTION_FIELD (e.g., EDGARPROXY_UPSTREAM_USER_AGENT).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Start from defaults
// 2. Decode YAML from file (if path is not empty)
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if errs := applyEnvOverrides(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid environment override: %w", ValidationError{Errors: errs})
	}
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from a .env file into the process
// environment. Variables already set in the environment win. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	return nil
}

// envOverrides collects parse failures while applying overrides.
type envOverrides struct {
	errs []FieldError
}

func (o *envOverrides) lookup(key string) (string, bool) {
	val, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

func (o *envOverrides) fail(key, val string, err error) {
	o.errs = append(o.errs, FieldError{
		Field:   EnvPrefix + key,
		Message: fmt.Sprintf("cannot parse %q: %v", val, err),
	})
}

func (o *envOverrides) setString(key string, dst *string) {
	if val, ok := o.lookup(key); ok {
		*dst = val
	}
}

func (o *envOverrides) setDuration(key string, dst *time.Duration) {
	if val, ok := o.lookup(key); ok {
		d, err := time.ParseDuration(val)
		if err != nil {
			o.fail(key, val, err)
			return
		}
		*dst = d
	}
}

func (o *envOverrides) setBool(key string, dst *bool) {
	if val, ok := o.lookup(key); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			o.fail(key, val, err)
			return
		}
		*dst = b
	}
}

func (o *envOverrides) setInt(key string, dst *int) {
	if val, ok := o.lookup(key); ok {
		i, err := strconv.Atoi(val)
		if err != nil {
			o.fail(key, val, err)
			return
		}
		*dst = i
	}
}

func (o *envOverrides) setFloat(key string, dst *float64) {
	if val, ok := o.lookup(key); ok {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			o.fail(key, val, err)
			return
		}
		*dst = f
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration and reports values that could not be parsed.
func applyEnvOverrides(cfg *Config) []FieldError {
	o := &envOverrides{}

	// Proxy overrides
	o.setString("PROXY_LISTEN_ADDRESS", &cfg.Proxy.ListenAddress)
	o.setDuration("PROXY_READ_TIMEOUT", &cfg.Proxy.ReadTimeout)
	o.setDuration("PROXY_WRITE_TIMEOUT", &cfg.Proxy.WriteTimeout)
	o.setDuration("PROXY_IDLE_TIMEOUT", &cfg.Proxy.IdleTimeout)
	o.setDuration("PROXY_SHUTDOWN_TIMEOUT", &cfg.Proxy.ShutdownTimeout)
	o.setInt("PROXY_MAX_HEADER_BYTES", &cfg.Proxy.MaxHeaderBytes)
	o.setBool("PROXY_CORS_ENABLED", &cfg.Proxy.CORS.Enabled)

	// Upstream overrides
	o.setString("UPSTREAM_USER_AGENT", &cfg.Upstream.UserAgent)
	o.setString("UPSTREAM_WWW_BASE_URL", &cfg.Upstream.WWWBaseURL)
	o.setString("UPSTREAM_DATA_BASE_URL", &cfg.Upstream.DataBaseURL)
	o.setDuration("UPSTREAM_TIMEOUT", &cfg.Upstream.Timeout)

	// Static overrides
	o.setBool("STATIC_ENABLED", &cfg.Static.Enabled)
	o.setString("STATIC_DIR", &cfg.Static.Dir)
	o.setString("STATIC_INDEX", &cfg.Static.Index)

	// Telemetry overrides
	o.setString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	o.setString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	o.setBool("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	o.setBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	o.setString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	o.setBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	o.setString("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	o.setFloat("TELEMETRY_TRACING_SAMPLE_RATIO", &cfg.Telemetry.Tracing.SampleRatio)
	o.setString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	o.setString("TELEMETRY_TRACING_SERVICE_NAME", &cfg.Telemetry.Tracing.ServiceName)
	o.setBool("TELEMETRY_TRACING_OTLP_INSECURE", &cfg.Telemetry.Tracing.OTLP.Insecure)

	return o.errs
}
