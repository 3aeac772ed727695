package tracing

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"edgarviewer/edgarproxy/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const instrumentationName = "edgarviewer/edgarproxy"

// Tracer opens the spans of the proxy: one server span per inbound request,
// plus children for discovery stages and EDGAR calls.
//
// A disabled Tracer hands out noop spans, so callers never check Enabled
// before starting a span.
type Tracer struct {
	tracer   trace.Tracer
	shutdown func(context.Context) error
	enabled  bool
}

// New builds a Tracer from the telemetry.tracing section. When tracing is
// enabled it installs the SDK provider and the W3C propagator globally.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
func New(cfg *config.TracingConfig) (*Tracer, error) {
	if cfg == nil {
		return nil, errors.New("tracing config is nil")
	}
	if !cfg.Enabled {
		return &Tracer{
			tracer:   noop.NewTracerProvider().Tracer(instrumentationName),
			shutdown: func(context.Context) error { return nil },
		}, nil
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Tracer{
		tracer:   provider.Tracer(instrumentationName),
		shutdown: provider.Shutdown,
		enabled:  true,
	}, nil
}

func newProvider(cfg *config.TracingConfig) (*sdktrace.TracerProvider, error) {
	sampler, err := newSampler(cfg.Sampler, cfg.SampleRatio)
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}

	if cfg.Exporter != ExporterOTLP {
		return nil, fmt.Errorf("unsupported exporter %q (valid: %s)", cfg.Exporter, ExporterOTLP)
	}
	exporter, err := otlpExporter(cfg)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(moduleVersion()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	), nil
}

// ExporterOTLP is the only supported span exporter.
const ExporterOTLP = "otlp"

// otlpExporter dials the collector lazily; an unreachable collector only
// costs dropped spans.
func otlpExporter(cfg *config.TracingConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.OTLP.Insecure {
		opts = append(opts, otlptracegrpc.WithDialOption(
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		))
	}
	if cfg.OTLP.Timeout > 0 {
		opts = append(opts, otlptracegrpc.WithTimeout(cfg.OTLP.Timeout))
	}

	exporter, err := otlptrace.New(context.Background(), otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter for %s: %w", cfg.Endpoint, err)
	}
	return exporter, nil
}

func moduleVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// FromProvider wraps a provider configured elsewhere. The provider's owner
// remains responsible for shutting it down.
func FromProvider(tp trace.TracerProvider) *Tracer {
	return &Tracer{
		tracer:   tp.Tracer(instrumentationName),
		shutdown: func(context.Context) error { return nil },
		enabled:  true,
	}
}

// Start opens a span parented to whatever span ctx carries.
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// Shutdown flushes buffered spans. It is a no-op for a disabled Tracer.
func (t *Tracer) Shutdown(ctx context.Context) error {
	return t.shutdown(ctx)
}

// Enabled reports whether spans are exported.
func (t *Tracer) Enabled() bool {
	return t.enabled
}
