package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/commitlens/pkg/terminal"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	var (
		progress float64
		points   bool
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "summary [change-log.csv|url]",
		Short: "Print summary statistics of a change log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, args, envOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			snap := e.session.Snapshot()
			if cmd.Flags().Changed("progress") {
				snap = e.session.SetProgress(cmd.Context(), progress)
			}

			termCfg := terminal.NewConfig()
			termCfg.NoColor = termCfg.NoColor || noColor

			err = terminal.RenderSummary(cmd.OutOrStdout(), termCfg, snap)
			if err != nil {
				return err
			}

			if points {
				return terminal.RenderPoints(cmd.OutOrStdout(), termCfg, snap)
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&progress, "progress", 100, "time window position between 0 and 100")
	cmd.Flags().BoolVar(&points, "points", false, "also list the commits inside the window")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}
