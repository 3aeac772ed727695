package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"edgarviewer/edgarproxy/pkg/discovery"
	"edgarviewer/edgarproxy/pkg/proxy"
)

// Downloader resolves a ticker to its latest filing document.
// *discovery.Workflow satisfies it.
type Downloader interface {
	Download(ctx context.Context, ticker string) (*discovery.Document, error)
}

// DownloadLatestHandler streams the latest filing document for a ticker.
type DownloadLatestHandler struct {
	Downloader Downloader
}

// NewDownloadLatestHandler creates a new download-latest handler.
func NewDownloadLatestHandler(d Downloader) *DownloadLatestHandler {
	return &DownloadLatestHandler{Downloader: d}
}

// ServeHTTP implements http.Handler.
func (h *DownloadLatestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ticker, ok := pathParam(w, r, "ticker")
	if !ok {
		return
	}

	doc, err := h.Downloader.Download(r.Context(), ticker)
	if err != nil {
		status, msg := proxy.HandleError(err, proxy.MsgDocumentFailed)
		proxy.WriteErrorResponse(w, status, msg)
		return
	}
	defer doc.Body.Close()

	slog.InfoContext(r.Context(), "streaming latest filing",
		"ticker", doc.Ticker,
		"cik", doc.CIK,
		"accession", doc.AccessionNumber,
		"file", doc.FileName,
	)

	// Headers are already sent once copying starts; a failure here can only
	// be logged.
	if n, err := proxy.WriteAttachment(w, doc.FileName, doc.ContentLength, doc.Body); err != nil {
		slog.WarnContext(r.Context(), "filing stream interrupted",
			"file", doc.FileName,
			"bytes_written", n,
			"error", err,
		)
	}
}
