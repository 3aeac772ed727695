package upstream

import (
	"errors"
	"fmt"
)

// StatusError is returned when the upstream responds with a non-2xx status.
type StatusError struct {
	// Endpoint is the logical endpoint name (e.g. "tickers")
	Endpoint string

	// URL is the requested URL
	URL string

	// StatusCode is the upstream HTTP status
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %q returned status %d", e.Endpoint, e.StatusCode)
}

// TransportError is returned when the request could not be completed.
// This covers DNS, connection, TLS and body read failures as well as
// context cancellation.
type TransportError struct {
	// Endpoint is the logical endpoint name
	Endpoint string

	// URL is the requested URL
	URL string

	// Cause is the underlying network error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream %q request failed: %v", e.Endpoint, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// DecodeError is returned when a successful response body is not valid JSON
// or does not match the expected shape.
type DecodeError struct {
	// Endpoint is the logical endpoint name
	Endpoint string

	// URL is the requested URL
	URL string

	// Cause is the underlying decode error
	Cause error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("upstream %q response decode error: %v", e.Endpoint, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// StatusCode reports the upstream status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

// errorType classifies err for metrics labels.
func errorType(err error) string {
	var (
		se *StatusError
		de *DecodeError
	)
	switch {
	case errors.As(err, &se):
		if se.StatusCode >= 500 {
			return "server_error"
		}
		return "client_error"
	case errors.As(err, &de):
		return "decode"
	default:
		return "network"
	}
}
