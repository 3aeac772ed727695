package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"edgarviewer/edgarproxy/pkg/edgar"
	"edgarviewer/edgarproxy/pkg/proxy"
)

// RawFetcher fetches a JSON payload without decoding it.
// *upstream.Client satisfies it.
type RawFetcher interface {
	FetchRaw(ctx context.Context, endpoint, url string) (json.RawMessage, error)
}

// TickersHandler relays the company ticker directory.
type TickersHandler struct {
	Fetcher   RawFetcher
	Endpoints edgar.Endpoints
}

// NewTickersHandler creates a new ticker directory handler.
func NewTickersHandler(f RawFetcher, ep edgar.Endpoints) *TickersHandler {
	return &TickersHandler{Fetcher: f, Endpoints: ep}
}

// ServeHTTP implements http.Handler.
func (h *TickersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.Fetcher, "tickers", h.Endpoints.Tickers(), proxy.MsgTickersFailed)
}

// SubmissionsHandler relays a company's submission metadata.
// The cik parameter is forwarded as given.
type SubmissionsHandler struct {
	Fetcher   RawFetcher
	Endpoints edgar.Endpoints
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(f RawFetcher, ep edgar.Endpoints) *SubmissionsHandler {
	return &SubmissionsHandler{Fetcher: f, Endpoints: ep}
}

// ServeHTTP implements http.Handler.
func (h *SubmissionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cik, ok := pathParam(w, r, "cik")
	if !ok {
		return
	}
	relay(w, r, h.Fetcher, "submissions", h.Endpoints.Submissions(cik), proxy.MsgSubmissionsFailed)
}

// ConceptHandler relays one us-gaap concept for a company.
type ConceptHandler struct {
	Fetcher   RawFetcher
	Endpoints edgar.Endpoints
}

// NewConceptHandler creates a new concept handler.
func NewConceptHandler(f RawFetcher, ep edgar.Endpoints) *ConceptHandler {
	return &ConceptHandler{Fetcher: f, Endpoints: ep}
}

// ServeHTTP implements http.Handler.
func (h *ConceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cik, ok := pathParam(w, r, "cik")
	if !ok {
		return
	}
	tag, ok := pathParam(w, r, "tag")
	if !ok {
		return
	}
	relay(w, r, h.Fetcher, "concept", h.Endpoints.Concept(cik, tag), proxy.MsgConceptFailed)
}

// relay performs one upstream call and writes its body or mapped error.
func relay(w http.ResponseWriter, r *http.Request, f RawFetcher, endpoint, url, failMsg string) {
	body, err := f.FetchRaw(r.Context(), endpoint, url)
	if err != nil {
		status, msg := proxy.HandleError(err, failMsg)
		proxy.WriteErrorResponse(w, status, msg)
		return
	}
	proxy.WriteRawJSON(w, body)
}

// pathParam returns a required path value, writing 400 when it is empty.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if v == "" {
		proxy.WriteErrorResponse(w, http.StatusBadRequest, "Missing parameter: "+name)
		return "", false
	}
	return v, true
}
