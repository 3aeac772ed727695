// Package logging configures log/slog for the proxy.
//
// # Overview
//
// New builds a *slog.Logger from a Config:
//   - JSON, text or console output
//   - Configurable level (debug, info, warn, error)
//   - Request-scoped fields read from the context
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
// # Context Fields
//
// The handler returned by New adds request_id, trace_id and span_id to every
// record logged through a *Context method (slog.InfoContext and friends)
// when the context carries them. Request IDs are attached with WithRequestID;
// trace and span IDs come from the active OpenTelemetry span.
package logging
