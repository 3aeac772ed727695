package main

import (
	"fmt"
	"io"
	"runtime"

	"edgarviewer/edgarproxy/pkg/cli"
	"edgarviewer/edgarproxy/pkg/telemetry/health"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.Version=... -X main.GitCommit=... -X main.BuildDate=...".
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the build information also served at GET /version.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cli.ParseFormat(versionFormat)
		if err != nil {
			return err
		}
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), buildVersion())
	},
}

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "text", "output format (text, json)")
	rootCmd.AddCommand(versionCmd)
}

// versionInfo is health.VersionInfo with a terminal rendering.
type versionInfo struct {
	health.VersionInfo
}

func buildVersion() versionInfo {
	return versionInfo{health.VersionInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
		GoVersion: runtime.Version(),
	}}
}

func (v versionInfo) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "edgarproxy %s\nGit Commit: %s\nBuild Date: %s\nGo Version: %s\nOS/Arch: %s/%s\n",
		v.Version, v.Commit, v.BuildTime, v.GoVersion, runtime.GOOS, runtime.GOARCH)
	return err
}
