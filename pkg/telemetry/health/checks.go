package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// StaticDirCheck reports whether the frontend asset directory exists and
// contains the index document.
func StaticDirCheck(dir, index string) CheckFunc {
	return func(ctx context.Context) error {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("static directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("static directory: %s is not a directory", dir)
		}
		if index == "" {
			return nil
		}
		if _, err := os.Stat(filepath.Join(dir, index)); err != nil {
			return fmt.Errorf("static index: %w", err)
		}
		return nil
	}
}

// UserAgentCheck reports whether an identification header is configured.
// EDGAR rejects requests without one.
func UserAgentCheck(userAgent string) CheckFunc {
	return func(ctx context.Context) error {
		if userAgent == "" {
			return errors.New("upstream user agent is not configured")
		}
		return nil
	}
}
