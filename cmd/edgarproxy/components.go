package main

import (
	"context"
	"errors"
	"fmt"

	"edgarviewer/edgarproxy/pkg/config"
	"edgarviewer/edgarproxy/pkg/discovery"
	"edgarviewer/edgarproxy/pkg/edgar"
	"edgarviewer/edgarproxy/pkg/telemetry/metrics"
	"edgarviewer/edgarproxy/pkg/telemetry/tracing"
	"edgarviewer/edgarproxy/pkg/upstream"
)

// components are the long-lived objects shared by the run and latest commands.
type components struct {
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	client   *upstream.Client
	workflow *discovery.Workflow
}

func newComponents(cfg *config.Config) (*components, error) {
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	up := cfg.Upstream
	client, err := upstream.NewClient(upstream.Config{
		UserAgent:           up.UserAgent,
		Timeout:             up.Timeout,
		MaxIdleConns:        up.MaxIdleConns,
		MaxIdleConnsPerHost: up.MaxIdleConnsPerHost,
		IdleConnTimeout:     up.IdleConnTimeout,
	},
		upstream.WithTracer(tracer),
		upstream.WithRecorder(collector),
	)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create upstream client: %w", err), tracer.Shutdown(context.Background()))
	}

	endpoints := edgar.NewEndpoints(up.WWWBaseURL, up.DataBaseURL)
	workflow := discovery.New(client, endpoints,
		discovery.WithTracer(tracer),
		discovery.WithRecorder(collector),
	)

	return &components{
		metrics:  collector,
		tracer:   tracer,
		client:   client,
		workflow: workflow,
	}, nil
}

// close flushes pending spans.
func (c *components) close(ctx context.Context) error {
	return c.tracer.Shutdown(ctx)
}
