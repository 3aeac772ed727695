/*
Package cli provides command-line helpers for the edgarproxy command.

Output Formatting:

Command results are printed as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, filing); err != nil {
		return err
	}

Results that implement TextWriter control their own text rendering.

Download Progress:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(doc.ContentLength)
	pw := cli.NewProgressWriter(file, progress)
	_, err := io.Copy(pw, doc.Body)
	progress.Finish()

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Exit Codes:

ExitCode maps command errors to process exit codes: configuration errors
exit with 2, everything else with 1.
*/
package cli
