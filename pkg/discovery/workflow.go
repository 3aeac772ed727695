package discovery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"edgarviewer/edgarproxy/pkg/edgar"
	"edgarviewer/edgarproxy/pkg/telemetry/tracing"
	"edgarviewer/edgarproxy/pkg/upstream"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Stage names, in execution order.
const (
	StageTickerLookup = "ticker_lookup"
	StageSubmissions  = "submissions"
	StageFilingIndex  = "filing_index"
	StageDocument     = "document"
)

// Stage outcomes reported to a StageRecorder.
const (
	OutcomeOK             = "ok"
	OutcomeNotFound       = "not_found"
	OutcomeUpstreamStatus = "upstream_status"
	OutcomeTransport      = "transport_error"
	OutcomeDecode         = "decode_error"
)

// Fetcher is the upstream primitive the workflow is built on.
// *upstream.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint, url string) (*http.Response, error)
	FetchJSON(ctx context.Context, endpoint, url string, v any) error
}

// StageRecorder receives per-stage measurements.
type StageRecorder interface {
	RecordDiscoveryStage(stage, outcome string, duration time.Duration)
}

// Filing describes the document selected for a ticker.
type Filing struct {
	Ticker          string `json:"ticker"`
	Company         string `json:"company"`
	CIK             int64  `json:"cik"`
	AccessionNumber string `json:"accession_number"`
	Accession       string `json:"accession"`
	Form            string `json:"form,omitempty"`
	FilingDate      string `json:"filing_date,omitempty"`
	FileName        string `json:"file_name"`
	URL             string `json:"url"`
}

// Document is a selected filing plus its streaming body.
// The caller must close Body.
type Document struct {
	Filing
	Body          io.ReadCloser
	ContentLength int64
}

// Workflow runs the latest-filing discovery pipeline.
// It holds no per-request state and is safe for concurrent use.
type Workflow struct {
	fetcher   Fetcher
	endpoints edgar.Endpoints
	tracer    upstream.SpanStarter
	recorder  StageRecorder
}

// Option customizes a Workflow.
type Option func(*Workflow)

// WithTracer sets the tracer used for stage spans.
func WithTracer(t upstream.SpanStarter) Option {
	return func(w *Workflow) {
		if t != nil {
			w.tracer = t
		}
	}
}

// WithRecorder sets the stage metrics recorder.
func WithRecorder(r StageRecorder) Option {
	return func(w *Workflow) {
		if r != nil {
			w.recorder = r
		}
	}
}

// New creates a Workflow.
func New(fetcher Fetcher, endpoints edgar.Endpoints, opts ...Option) *Workflow {
	w := &Workflow{
		fetcher:   fetcher,
		endpoints: endpoints,
		tracer:    noop.NewTracerProvider().Tracer("edgarproxy/discovery"),
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Discover runs the first three stages and returns the selected filing.
func (w *Workflow) Discover(ctx context.Context, ticker string) (*Filing, error) {
	ctx, span := w.tracer.Start(ctx, "discovery.discover",
		trace.WithAttributes(attribute.String(tracing.AttrTicker, ticker)))
	defer span.End()

	filing, err := w.discover(ctx, ticker)
	tracing.Finish(span, err)
	if err != nil {
		return nil, err
	}
	tracing.SetFilingAttributes(span, filing.Ticker, edgar.FormatCIK(filing.CIK), filing.Accession)
	return filing, nil
}

// Download runs all four stages and returns the selected document with its
// body still streaming from upstream.
func (w *Workflow) Download(ctx context.Context, ticker string) (*Document, error) {
	ctx, span := w.tracer.Start(ctx, "discovery.download",
		trace.WithAttributes(attribute.String(tracing.AttrTicker, ticker)))
	defer span.End()

	filing, err := w.discover(ctx, ticker)
	if err != nil {
		tracing.Finish(span, err)
		return nil, err
	}

	resp, err := runStage(ctx, w, StageDocument, func(ctx context.Context) (*http.Response, error) {
		return w.fetcher.Fetch(ctx, StageDocument, filing.URL)
	})
	tracing.Finish(span, err)
	if err != nil {
		return nil, err
	}

	return &Document{
		Filing:        *filing,
		Body:          resp.Body,
		ContentLength: resp.ContentLength,
	}, nil
}

func (w *Workflow) discover(ctx context.Context, ticker string) (*Filing, error) {
	entry, err := runStage(ctx, w, StageTickerLookup, func(ctx context.Context) (edgar.TickerEntry, error) {
		var dir edgar.TickerDirectory
		if err := w.fetcher.FetchJSON(ctx, "tickers", w.endpoints.Tickers(), &dir); err != nil {
			return edgar.TickerEntry{}, err
		}
		entry, ok := dir.Lookup(ticker)
		if !ok {
			return edgar.TickerEntry{}, &NotFoundError{Resource: ResourceTicker}
		}
		return entry, nil
	})
	if err != nil {
		return nil, err
	}

	cik := edgar.FormatCIK(entry.CIK)

	ref, err := runStage(ctx, w, StageSubmissions, func(ctx context.Context) (edgar.FilingRef, error) {
		var subs edgar.Submissions
		if err := w.fetcher.FetchJSON(ctx, StageSubmissions, w.endpoints.Submissions(edgar.PadCIK(entry.CIK)), &subs); err != nil {
			return edgar.FilingRef{}, err
		}
		ref, ok := subs.Filings.Recent.Latest()
		if !ok {
			return edgar.FilingRef{}, &NotFoundError{Resource: ResourceFiling}
		}
		return ref, nil
	})
	if err != nil {
		return nil, err
	}

	accession := edgar.NormalizeAccession(ref.AccessionNumber)

	item, err := runStage(ctx, w, StageFilingIndex, func(ctx context.Context) (edgar.IndexItem, error) {
		var idx edgar.FilingIndex
		if err := w.fetcher.FetchJSON(ctx, StageFilingIndex, w.endpoints.FilingIndex(cik, accession), &idx); err != nil {
			return edgar.IndexItem{}, err
		}
		item, ok := idx.SelectDocument()
		if !ok {
			return edgar.IndexItem{}, &NotFoundError{Resource: ResourceDocument}
		}
		return item, nil
	})
	if err != nil {
		return nil, err
	}

	return &Filing{
		Ticker:          entry.Ticker,
		Company:         entry.Title,
		CIK:             entry.CIK,
		AccessionNumber: ref.AccessionNumber,
		Accession:       accession,
		Form:            ref.Form,
		FilingDate:      ref.FilingDate,
		FileName:        item.Name,
		URL:             w.endpoints.ArchiveFile(cik, accession, item.Name),
	}, nil
}

// runStage executes one stage with a span, a measurement and uniform error
// wrapping. A failed stage returns the zero T and a *StageError.
func runStage[T any](ctx context.Context, w *Workflow, stage string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := w.tracer.Start(ctx, "discovery."+stage,
		trace.WithAttributes(attribute.String(tracing.AttrStage, stage)))
	defer span.End()

	start := time.Now()
	result, err := fn(ctx)
	duration := time.Since(start)

	outcome := classify(err)
	w.recorder.RecordDiscoveryStage(stage, outcome, duration)

	if err != nil {
		slog.WarnContext(ctx, "discovery stage failed",
			"stage", stage,
			"outcome", outcome,
			"latency_ms", duration.Milliseconds(),
			"error", err,
		)
		tracing.Finish(span, err)
		var zero T
		return zero, &StageError{Stage: stage, Err: err}
	}

	slog.DebugContext(ctx, "discovery stage completed",
		"stage", stage,
		"latency_ms", duration.Milliseconds(),
	)
	tracing.Finish(span, nil)
	return result, nil
}

func classify(err error) string {
	var (
		nf *NotFoundError
		se *upstream.StatusError
		de *upstream.DecodeError
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &nf):
		return OutcomeNotFound
	case errors.As(err, &se):
		return OutcomeUpstreamStatus
	case errors.As(err, &de):
		return OutcomeDecode
	default:
		return OutcomeTransport
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordDiscoveryStage(string, string, time.Duration) {}
