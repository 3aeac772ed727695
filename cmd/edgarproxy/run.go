package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"edgarviewer/edgarproxy/pkg/cli"
	"edgarviewer/edgarproxy/pkg/config"
	"edgarviewer/edgarproxy/pkg/server"
	"edgarviewer/edgarproxy/pkg/telemetry/health"

	"github.com/spf13/cobra"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the EDGAR proxy server",
	Long: `Start the EDGAR proxy server with the specified configuration.

The server listens on the configured address, proxies /api requests to
SEC EDGAR and serves the frontend from the static directory.

Examples:
  # Start with defaults (http://127.0.0.1:3000, ./public)
  edgarproxy run

  # Start with custom config
  edgarproxy run --config /etc/edgarproxy/config.yaml

  # Override listen address
  edgarproxy run --listen 0.0.0.0:8080

  # Validate config without starting server
  edgarproxy run --dry-run`,
	Args: cobra.NoArgs,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cfg, err = applyRunFlags(cfg, runFlags.listenAddress, runFlags.logLevel)
	if err != nil {
		return err
	}

	if err := setupLogging(cfg, os.Stdout); err != nil {
		return err
	}

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	if cfg.Static.Enabled {
		if err := health.StaticDirCheck(cfg.Static.Dir, cfg.Static.Index)(cmd.Context()); err != nil {
			slog.Warn("static assets unavailable", "error", err)
		}
	}

	comps, err := newComponents(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := comps.close(ctx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	slog.Debug("upstream configured",
		"user_agent", comps.client.UserAgent(),
		"www_base_url", cfg.Upstream.WWWBaseURL,
		"data_base_url", cfg.Upstream.DataBaseURL,
	)

	srv := server.NewServer(cfg, server.Dependencies{
		Fetcher:    comps.client,
		Downloader: comps.workflow,
		Metrics:    comps.metrics,
		Tracer:     comps.tracer,
		Build: server.BuildInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildTime: BuildDate,
		},
	})

	if err := srv.Start(cmd.Context()); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

// applyRunFlags returns a copy of cfg with the run command overrides
// applied. The copy is validated and only then published, so a rejected
// override leaves the loaded configuration untouched.
func applyRunFlags(cfg *config.Config, listenAddress, logLevel string) (*config.Config, error) {
	if listenAddress == "" && logLevel == "" {
		return cfg, nil
	}
	c := *cfg
	if listenAddress != "" {
		c.Proxy.ListenAddress = listenAddress
	}
	if logLevel != "" {
		c.Telemetry.Logging.Level = logLevel
	}
	if err := config.Validate(&c); err != nil {
		return nil, err
	}
	config.SetConfig(&c)
	return &c, nil
}
