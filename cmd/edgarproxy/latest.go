package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"edgarviewer/edgarproxy/pkg/cli"
	"edgarviewer/edgarproxy/pkg/discovery"
	"edgarviewer/edgarproxy/pkg/edgar"
	"edgarviewer/edgarproxy/pkg/proxy/handlers"

	"github.com/spf13/cobra"
)

var latestFlags struct {
	output string
	info   bool
	format string
}

var latestCmd = &cobra.Command{
	Use:   "latest TICKER",
	Short: "Download the latest filing document for a ticker",
	Long: `Run the latest-filing discovery against SEC EDGAR from the command line.

The ticker is resolved to a CIK, the most recent filing is looked up, and
the first .xml or .htm document in its index is downloaded to the output
directory. With --info the document is not downloaded; the discovered
filing is printed instead.

Examples:
  # Download into the current directory
  edgarproxy latest AAPL

  # Download into ./filings
  edgarproxy latest msft --output ./filings

  # Show the latest filing as JSON
  edgarproxy latest AAPL --info --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runLatest,
}

func init() {
	rootCmd.AddCommand(latestCmd)

	latestCmd.Flags().StringVarP(&latestFlags.output, "output", "o", ".", "directory to write the document to")
	latestCmd.Flags().BoolVar(&latestFlags.info, "info", false, "print the discovered filing without downloading")
	latestCmd.Flags().StringVar(&latestFlags.format, "format", "text", "output format: text, json")
}

func runLatest(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(latestFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, cmd.ErrOrStderr()); err != nil {
		return err
	}

	comps, err := newComponents(cfg)
	if err != nil {
		return cli.NewCommandError("latest", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := comps.close(ctx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	formatter := cli.NewFormatter(format)
	ticker := args[0]

	if latestFlags.info {
		filing, err := comps.workflow.Discover(ctx, ticker)
		if err != nil {
			return cli.NewCommandError("latest", err)
		}
		return formatter.FormatTo(cmd.OutOrStdout(), filingInfo{Filing: filing})
	}

	progress := cli.NewProgressReporter(cmd.ErrOrStderr())
	result, err := downloadLatest(ctx, comps.workflow, ticker, latestFlags.output, progress)
	if err != nil {
		return cli.NewCommandError("latest", err)
	}
	return formatter.FormatTo(cmd.OutOrStdout(), result)
}

// filingInfo renders a discovered filing.
type filingInfo struct {
	*discovery.Filing
}

func (f filingInfo) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Ticker:    %s (%s)\n", f.Ticker, f.Company)
	fmt.Fprintf(w, "CIK:       %s\n", edgar.FormatCIK(f.CIK))
	if f.Form != "" {
		fmt.Fprintf(w, "Form:      %s\n", f.Form)
	}
	if f.FilingDate != "" {
		fmt.Fprintf(w, "Filed:     %s\n", f.FilingDate)
	}
	fmt.Fprintf(w, "Accession: %s\n", f.AccessionNumber)
	fmt.Fprintf(w, "Document:  %s\n", f.FileName)
	_, err := fmt.Fprintf(w, "URL:       %s\n", f.URL)
	return err
}

// downloadResult is the latest command result.
type downloadResult struct {
	discovery.Filing
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

func (r downloadResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "✓ %s %s %s saved to %s (%d bytes)\n",
		r.Ticker, r.Form, r.FileName, r.Path, r.Bytes)
	return err
}

// downloadLatest runs the full discovery pipeline and writes the document
// into dir under its archive file name. The file only appears once the
// body has been copied completely.
func downloadLatest(ctx context.Context, d handlers.Downloader, ticker, dir string, progress cli.ProgressReporter) (*downloadResult, error) {
	doc, err := d.Download(ctx, ticker)
	if err != nil {
		return nil, err
	}
	defer doc.Body.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".edgarproxy-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	progress.Start(doc.ContentLength)
	pw := cli.NewProgressWriter(tmp, progress)
	if _, err := io.Copy(pw, doc.Body); err != nil {
		progress.Error(err)
		tmp.Close()
		return nil, fmt.Errorf("failed to download %s: %w", doc.FileName, err)
	}
	progress.Finish()

	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", doc.FileName, err)
	}

	path := filepath.Join(dir, filepath.Base(doc.FileName))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Debug("filing document saved", "ticker", doc.Ticker, "path", path, "bytes", pw.Written())

	return &downloadResult{
		Filing: doc.Filing,
		Path:   path,
		Bytes:  pw.Written(),
	}, nil
}
