package main

import (
	"fmt"
	"io"

	"edgarviewer/edgarproxy/pkg/cli"
	"edgarviewer/edgarproxy/pkg/config"

	"github.com/spf13/cobra"
)

var validateFlags struct {
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Load the configuration file, the .env file and EDGARPROXY_* environment
variables, validate the result and print a summary.

Exits with status 2 when the configuration is invalid.

Examples:
  # Validate defaults plus environment
  edgarproxy validate

  # Validate a file and print JSON
  edgarproxy validate --config edgarproxy.yaml --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cli.ParseFormat(validateFlags.format)
		if err != nil {
			return err
		}
		if err := config.LoadDotEnv(envFile); err != nil {
			return cli.NewConfigError("env-file", err.Error())
		}
		return validateConfig(cmd.OutOrStdout(), cfgFile, format)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

// configSummary is the validate command result.
type configSummary struct {
	Valid      bool               `json:"valid"`
	ConfigFile string             `json:"config_file,omitempty"`
	Listen     string             `json:"listen_address,omitempty"`
	UserAgent  string             `json:"user_agent,omitempty"`
	WWWBase    string             `json:"www_base_url,omitempty"`
	DataBase   string             `json:"data_base_url,omitempty"`
	StaticDir  string             `json:"static_dir,omitempty"`
	Metrics    string             `json:"metrics_path,omitempty"`
	Tracing    string             `json:"tracing_endpoint,omitempty"`
	Errors     []*cli.ConfigError `json:"errors,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func (s configSummary) WriteText(w io.Writer) error {
	if !s.Valid {
		fmt.Fprintln(w, "✗ Configuration invalid")
		for _, fe := range s.Errors {
			fmt.Fprintf(w, "  - %s: %s\n", fe.Field, fe.Message)
		}
		if s.Error != "" {
			fmt.Fprintf(w, "  %s\n", s.Error)
		}
		return nil
	}

	source := s.ConfigFile
	if source == "" {
		source = "(defaults)"
	}
	fmt.Fprintln(w, "✓ Configuration valid")
	fmt.Fprintf(w, "  Source:     %s\n", source)
	fmt.Fprintf(w, "  Listen:     http://%s\n", s.Listen)
	fmt.Fprintf(w, "  User-Agent: %s\n", s.UserAgent)
	fmt.Fprintf(w, "  EDGAR:      %s, %s\n", s.WWWBase, s.DataBase)
	fmt.Fprintf(w, "  Static:     %s\n", orDisabled(s.StaticDir))
	fmt.Fprintf(w, "  Metrics:    %s\n", orDisabled(s.Metrics))
	_, err := fmt.Fprintf(w, "  Tracing:    %s\n", orDisabled(s.Tracing))
	return err
}

func orDisabled(s string) string {
	if s == "" {
		return "disabled"
	}
	return s
}

// validateConfig loads and validates the configuration at path, writes a
// summary to w, and returns the load error if any.
func validateConfig(w io.Writer, path string, format cli.OutputFormat) error {
	summary := configSummary{ConfigFile: path}

	cfg, loadErr := config.LoadConfigWithEnvOverrides(path)
	if loadErr != nil {
		summary.Errors = cli.ConfigErrors(loadErr)
		if summary.Errors == nil {
			summary.Error = loadErr.Error()
		}
	} else {
		summary.Valid = true
		summary.Listen = cfg.Proxy.ListenAddress
		summary.UserAgent = cfg.Upstream.UserAgent
		summary.WWWBase = cfg.Upstream.WWWBaseURL
		summary.DataBase = cfg.Upstream.DataBaseURL
		if cfg.Static.Enabled {
			summary.StaticDir = cfg.Static.Dir
		}
		if cfg.Telemetry.Metrics.Enabled {
			summary.Metrics = cfg.Telemetry.Metrics.Path
		}
		if cfg.Telemetry.Tracing.Enabled {
			summary.Tracing = cfg.Telemetry.Tracing.Endpoint
		}
	}

	if err := cli.NewFormatter(format).FormatTo(w, summary); err != nil {
		return err
	}

	if loadErr == nil {
		return nil
	}
	if summary.Errors == nil {
		return reported(cli.NewConfigError("config", loadErr.Error()))
	}
	return reported(loadErr)
}
