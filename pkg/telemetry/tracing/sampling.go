package tracing

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Values accepted by telemetry.tracing.sampler.
const (
	SamplerAlways = "always"
	SamplerNever  = "never"
	SamplerRatio  = "ratio"
)

// newSampler maps the configured strategy to an SDK sampler. The strategy
// only decides root spans; a request carrying a traceparent header keeps
// the caller's decision, so a sampled frontend trace always includes the
// proxy's EDGAR calls.
func newSampler(strategy string, ratio float64) (sdktrace.Sampler, error) {
	var root sdktrace.Sampler
	switch strategy {
	case SamplerAlways:
		root = sdktrace.AlwaysSample()
	case SamplerNever:
		root = sdktrace.NeverSample()
	case SamplerRatio:
		if ratio < 0 || ratio > 1 {
			return nil, fmt.Errorf("sample ratio %g outside [0, 1]", ratio)
		}
		root = sdktrace.TraceIDRatioBased(ratio)
	default:
		return nil, fmt.Errorf("unknown sampler %q (valid: %s, %s, %s)", strategy, SamplerAlways, SamplerNever, SamplerRatio)
	}
	return sdktrace.ParentBased(root), nil
}
