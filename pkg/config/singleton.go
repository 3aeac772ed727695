package config

import (
	"sync"
	"sync/atomic"
)

// The process-wide configuration. It is loaded once at startup and never
// reloaded, so the upstream User-Agent cannot change under a running server.
var (
	current  atomic.Pointer[Config]
	loadOnce sync.Once
	loadErr  error
)

// Initialize loads the configuration at path (defaults plus environment
// overrides when path is empty) and publishes it for GetConfig. Only the
// first call loads anything; later calls return the first call's error.
func Initialize(path string) error {
	loadOnce.Do(func() {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err != nil {
			loadErr = err
			return
		}
		current.Store(cfg)
	})
	return loadErr
}

// GetConfig returns the published configuration, or nil before a
// successful Initialize.
func GetConfig() *Config {
	return current.Load()
}

// MustGetConfig is GetConfig for callers that run after startup.
func MustGetConfig() *Config {
	if cfg := current.Load(); cfg != nil {
		return cfg
	}
	panic("config: MustGetConfig called before Initialize succeeded")
}

// SetConfig replaces the published configuration. Tests use it to install
// a fixture without touching the filesystem.
func SetConfig(cfg *Config) {
	current.Store(cfg)
}
