package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the level, encoding and destination of the process logger.
// It mirrors the telemetry.logging config section.
type Config struct {
	// Level is one of debug, info, warn or error. Empty means info.
	Level string

	// Format is json (default), text, or console. Console is text without
	// timestamps, for an interactive terminal running `edgarproxy latest`.
	Format string

	AddSource bool

	// Writer defaults to os.Stdout.
	Writer io.Writer
}

var levels = map[string]slog.Level{
	"":        slog.LevelInfo,
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

type handlerFunc func(io.Writer, *slog.HandlerOptions) slog.Handler

var formats = map[string]handlerFunc{
	"": func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewJSONHandler(w, opts)
	},
	"json": func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewJSONHandler(w, opts)
	},
	"text": func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewTextHandler(w, opts)
	},
	"console": func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		opts.ReplaceAttr = dropTime
		return slog.NewTextHandler(w, opts)
	},
}

// New builds the process logger. Every record logged with a context picks
// up the request id and trace/span ids the context carries.
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	build, ok := formats[strings.ToLower(cfg.Format)]
	if !ok {
		return nil, fmt.Errorf("invalid log format %q (valid: json, text, console)", cfg.Format)
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	h := build(w, &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource})
	return slog.New(contextHandler{h}), nil
}

// ParseLevel accepts level names in any case.
func ParseLevel(s string) (slog.Level, error) {
	if l, ok := levels[strings.ToLower(s)]; ok {
		return l, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

// contextHandler appends contextAttrs to each record.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := contextAttrs(ctx); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}
