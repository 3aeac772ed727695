package cli

import (
	"errors"
	"fmt"
	"testing"

	"edgarviewer/edgarproxy/pkg/config"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "proxy.listen_address",
		Message: "missing required field",
	}

	expected := "config error in proxy.listen_address: missing required field"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("latest", underlyingErr)

	expected := "command latest failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should see through CommandError")
	}
}

func TestConfigErrors(t *testing.T) {
	verr := config.ValidationError{Errors: []config.FieldError{
		{Field: "upstream.user_agent", Message: "must not be empty"},
		{Field: "static.dir", Message: "must not be empty"},
	}}

	got := ConfigErrors(fmt.Errorf("loading: %w", verr))
	if len(got) != 2 {
		t.Fatalf("ConfigErrors() returned %d errors, want 2", len(got))
	}
	if got[0].Field != "upstream.user_agent" || got[1].Field != "static.dir" {
		t.Errorf("fields = %q, %q", got[0].Field, got[1].Field)
	}

	if got := ConfigErrors(errors.New("other")); got != nil {
		t.Errorf("ConfigErrors(other) = %v, want nil", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"generic", errors.New("boom"), ExitFailure},
		{"command", NewCommandError("run", errors.New("boom")), ExitFailure},
		{"config error", NewConfigError("proxy.listen_address", "bad"), ExitConfig},
		{"wrapped validation", fmt.Errorf("load: %w", config.ValidationError{}), ExitConfig},
		{"command wrapping validation", NewCommandError("run", config.ValidationError{}), ExitConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
