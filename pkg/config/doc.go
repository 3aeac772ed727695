// Package config provides configuration management for the EDGAR proxy.
//
// Configuration is loaded from an optional YAML file, overridden by
// environment variables, and validated once at startup. The proxy runs
// with no configuration at all: every field has a default.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("edgarproxy.yaml")           // file + defaults
//	cfg, err := config.LoadConfigWithEnvOverrides("")          // defaults + env
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention EDGARPROXY_SECTION_FIELD:
//
//   - EDGARPROXY_PROXY_LISTEN_ADDRESS overrides proxy.listen_address
//   - EDGARPROXY_UPSTREAM_USER_AGENT overrides upstream.user_agent
//   - EDGARPROXY_STATIC_DIR overrides static.dir
//   - EDGARPROXY_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// LoadDotEnv reads a .env file into the environment first; variables that
// are already set are left alone.
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton
//
//	if err := config.Initialize(path); err != nil {
//	    return err
//	}
//	cfg := config.GetConfig()
//
// The singleton is set once; there is no reload.
//
// # Example
//
//	proxy:
//	  listen_address: "0.0.0.0:3000"
//	upstream:
//	  user_agent: "EDGARViewer ops@example.org"
//	static:
//	  dir: "./public"
//	telemetry:
//	  logging:
//	    level: debug
//	    format: text
//	  tracing:
//	    enabled: true
//	    endpoint: "otel-collector:4317"
package config
