package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span Attribute Helpers
//
// Standard attribute keys follow OpenTelemetry semantic conventions (http.*).
// Custom attribute keys use the "edgar.*" namespace:
//   - edgar.endpoint: upstream endpoint name
//   - edgar.ticker: requested ticker symbol
//   - edgar.cik / edgar.accession: resolved filing identifiers
//   - edgar.stage: discovery pipeline stage
const (
	AttrEndpoint  = "edgar.endpoint"
	AttrTicker    = "edgar.ticker"
	AttrCIK       = "edgar.cik"
	AttrAccession = "edgar.accession"
	AttrStage     = "edgar.stage"
	AttrRequestID = "edgar.request_id"

	AttrHTTPMethod     = "http.method"
	AttrHTTPRoute      = "http.route"
	AttrHTTPTarget     = "http.target"
	AttrHTTPStatusCode = "http.status_code"
	AttrHTTPURL        = "http.url"

	AttrErrorMessage = "error.message"
)

// SetFilingAttributes sets the identifiers of a discovered filing on a span.
//
// Example:
//
//	SetFilingAttributes(span, "AAPL", "320193", "000032019324000123")
func SetFilingAttributes(span trace.Span, ticker, cik, accession string) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrTicker, ticker),
	}
	if cik != "" {
		attrs = append(attrs, attribute.String(AttrCIK, cik))
	}
	if accession != "" {
		attrs = append(attrs, attribute.String(AttrAccession, accession))
	}
	span.SetAttributes(attrs...)
}

// SetHTTPServerAttributes sets inbound request attributes on a span.
func SetHTTPServerAttributes(span trace.Span, method, target, route string, statusCode int) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPTarget, target),
		attribute.Int(AttrHTTPStatusCode, statusCode),
	}
	if route != "" {
		attrs = append(attrs, attribute.String(AttrHTTPRoute, route))
	}
	span.SetAttributes(attrs...)
}
