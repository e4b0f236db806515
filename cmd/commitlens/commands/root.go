// Package commands implements the commitlens CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/commitlens/pkg/version"
)

// Persistent flag names.
const (
	flagConfig   = "config"
	flagVerbose  = "verbose"
	flagQuiet    = "quiet"
	flagGit      = "git"
	flagRevision = "revision"
)

// NewRootCommand creates the commitlens command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commitlens",
		Short: "Explore when and where a codebase was written",
		Long: `commitlens loads a line-level change log (CSV file, URL or git blame) and
explores it by time window, hour x weekday brushing and a commit narrative.

Commands:
  summary   Summary statistics in the terminal
  render    Interactive-style HTML report
  replay    Apply a scripted event list and print snapshot digests
  mcp       MCP server over stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "config file (default: ./config.yaml, ./config/config.yaml, /etc/commitlens/config.yaml)")
	flags.BoolP(flagVerbose, "v", false, "verbose output")
	flags.BoolP(flagQuiet, "q", false, "suppress output")
	flags.String(flagGit, "", "build the change log by blaming this git repository")
	flags.String(flagRevision, "", "revision to blame with --git (default: config source.git.revision or HEAD)")

	rootCmd.AddCommand(
		NewSummaryCommand(),
		NewRenderCommand(),
		NewReplayCommand(),
		NewMCPCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "commitlens %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
