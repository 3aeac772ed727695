package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"edgarviewer/edgarproxy/pkg/cli"
	"edgarviewer/edgarproxy/pkg/config"
	"edgarviewer/edgarproxy/pkg/discovery"
)

type fakeDownloader struct {
	doc *discovery.Document
	err error
}

func (f *fakeDownloader) Download(ctx context.Context, ticker string) (*discovery.Document, error) {
	return f.doc, f.err
}

// failingReader returns some bytes and then an error.
type failingReader struct {
	sent bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.sent {
		return 0, errors.New("connection reset")
	}
	r.sent = true
	return copy(p, "<xbrl"), nil
}

func TestDownloadLatest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "filings")
	d := &fakeDownloader{doc: &discovery.Document{
		Filing: discovery.Filing{
			Ticker:   "AAPL",
			Form:     "10-K",
			FileName: "aapl-20230930.htm",
		},
		Body:          io.NopCloser(strings.NewReader("<html>10-K</html>")),
		ContentLength: 17,
	}}

	progressOut := &bytes.Buffer{}
	result, err := downloadLatest(context.Background(), d, "aapl", dir, cli.NewProgressReporter(progressOut))
	if err != nil {
		t.Fatalf("downloadLatest() error = %v", err)
	}

	wantPath := filepath.Join(dir, "aapl-20230930.htm")
	if result.Path != wantPath {
		t.Errorf("Path = %q, want %q", result.Path, wantPath)
	}
	if result.Bytes != 17 {
		t.Errorf("Bytes = %d, want 17", result.Bytes)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "<html>10-K</html>" {
		t.Errorf("file content = %q", data)
	}
	if !strings.Contains(progressOut.String(), "100.0%") {
		t.Errorf("progress output %q missing completion", progressOut.String())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("output directory has %d entries, want 1", len(entries))
	}
}

func TestDownloadLatest_Errors(t *testing.T) {
	t.Run("discovery failure", func(t *testing.T) {
		wantErr := &discovery.NotFoundError{Resource: discovery.ResourceTicker}
		_, err := downloadLatest(context.Background(), &fakeDownloader{err: wantErr}, "ZZZZ", t.TempDir(), cli.NewProgressReporter(io.Discard))
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
	})

	t.Run("body failure leaves no file", func(t *testing.T) {
		dir := t.TempDir()
		d := &fakeDownloader{doc: &discovery.Document{
			Filing:        discovery.Filing{FileName: "doc.xml"},
			Body:          io.NopCloser(&failingReader{}),
			ContentLength: -1,
		}}

		_, err := downloadLatest(context.Background(), d, "AAPL", dir, cli.NewProgressReporter(io.Discard))
		if err == nil {
			t.Fatal("downloadLatest() error = nil, want copy error")
		}

		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("output directory has %d entries after failure, want 0", len(entries))
		}
	})
}

func TestFilingInfo_WriteText(t *testing.T) {
	info := filingInfo{Filing: &discovery.Filing{
		Ticker:          "AAPL",
		Company:         "Apple Inc.",
		CIK:             320193,
		AccessionNumber: "0000320193-23-000106",
		Form:            "10-K",
		FileName:        "aapl-20230930.htm",
		URL:             "https://www.sec.gov/Archives/edgar/data/320193/000032019323000106/aapl-20230930.htm",
	}}

	buf := &bytes.Buffer{}
	if err := info.WriteText(buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"AAPL (Apple Inc.)", "CIK:       320193", "0000320193-23-000106", "aapl-20230930.htm"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "Filed:") {
		t.Errorf("output %q should omit empty filing date", out)
	}
}

func TestNewComponents_Discover(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"0":{"cik_str":320193,"ticker":"AAPL","title":"Apple Inc."}}`)
	})
	mux.HandleFunc("GET /submissions/CIK0000320193.json", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"name":"Apple Inc.","filings":{"recent":{"accessionNumber":["0000320193-23-000106"],"form":["10-K"],"filingDate":["2023-11-03"]}}}`)
	})
	mux.HandleFunc("GET /Archives/edgar/data/320193/000032019323000106/index.json", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"directory":{"item":[{"name":"FilingSummary.xml"}]}}`)
	})

	var (
		mu    sync.Mutex
		gotUA string
	)
	edgarSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotUA = r.Header.Get("User-Agent")
		mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	defer edgarSrv.Close()

	cfg := config.Defaults()
	config.ApplyDefaults(cfg)
	cfg.Upstream.UserAgent = "EDGARViewer cli@example.com"
	cfg.Upstream.WWWBaseURL = edgarSrv.URL
	cfg.Upstream.DataBaseURL = edgarSrv.URL

	comps, err := newComponents(cfg)
	if err != nil {
		t.Fatalf("newComponents() error = %v", err)
	}
	defer comps.close(context.Background())

	filing, err := comps.workflow.Discover(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if filing.FileName != "FilingSummary.xml" || filing.FilingDate != "2023-11-03" {
		t.Errorf("filing = %+v", filing)
	}
	mu.Lock()
	if gotUA != "EDGARViewer cli@example.com" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	mu.Unlock()

	buf := &bytes.Buffer{}
	if err := cli.NewFormatter(cli.FormatJSON).FormatTo(buf, filingInfo{Filing: filing}); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["ticker"] != "AAPL" || decoded["file_name"] != "FilingSummary.xml" {
		t.Errorf("decoded = %v", decoded)
	}
}
