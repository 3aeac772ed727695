package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"edgarviewer/edgarproxy/pkg/cli"
	"edgarviewer/edgarproxy/pkg/config"
	"edgarviewer/edgarproxy/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "edgarproxy",
	Short: "edgarproxy - HTTP proxy for the SEC EDGAR public data API",
	Long: `edgarproxy forwards browser requests to the SEC EDGAR public data API,
adding the User-Agent identification header SEC requires.

It provides:
  - Pass-through routes for the ticker directory, company submissions
    and XBRL company concepts
  - Discovery and download of the latest filing document for a ticker
  - Static serving of the frontend assets

Configuration comes from an optional YAML file, a .env file and
EDGARPROXY_* environment variables, in increasing order of precedence.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code derived from the error.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		printError(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults only when empty)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// loadConfig loads the .env file, then initializes the process-wide
// configuration from the config file and the environment.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, cli.NewConfigError("env-file", err.Error())
	}

	if err := config.Initialize(cfgFile); err != nil {
		if cli.ConfigErrors(err) != nil {
			return nil, err
		}
		return nil, cli.NewConfigError("config", err.Error())
	}

	return config.MustGetConfig(), nil
}

// setupLogging installs the configured logger as the slog default.
func setupLogging(cfg *config.Config, w io.Writer) error {
	logCfg := cfg.Telemetry.Logging
	level := logCfg.Level
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     level,
		Format:    logCfg.Format,
		AddSource: logCfg.AddSource,
		Writer:    w,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	slog.SetDefault(logger)
	return nil
}

// reportedError marks an error whose details the command already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

func printError(w io.Writer, err error) {
	var rep *reportedError
	if errors.As(err, &rep) {
		return
	}
	if fieldErrs := cli.ConfigErrors(err); len(fieldErrs) > 0 {
		fmt.Fprintln(w, "✗ Invalid configuration:")
		for _, fe := range fieldErrs {
			fmt.Fprintf(w, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return
	}
	fmt.Fprintf(w, "✗ %v\n", err)
}
