package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/commitlens/pkg/plotpage"
	"github.com/Sumatoshi-tech/commitlens/pkg/replay"
)

const (
	renderOutputFlag  = "output"
	renderOutputShort = "o"
	renderFilePerm    = 0o644
)

// ErrNoOutput is returned when the --output flag is not set.
var ErrNoOutput = errors.New("output file is required (use --output)")

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var (
		output     string
		progress   float64
		scriptPath string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "render [change-log.csv|url] -o page.html",
		Short: "Render the change log as an HTML report",
		Long: `Render the change log as a single HTML page: summary cards, the hour x
weekday scatter, line totals by time of day and weekday, the language breakdown
of a brushed region, the file unit table and the commit narrative.

--script applies a replay script first, so a brush or focus can be captured.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return ErrNoOutput
			}

			e, err := newEnv(cmd, args, envOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()

			snap := e.session.Snapshot()
			if cmd.Flags().Changed("progress") {
				snap = e.session.SetProgress(ctx, progress)
			}

			if scriptPath != "" {
				script, scriptErr := readScript(scriptPath)
				if scriptErr != nil {
					return scriptErr
				}

				replay.Run(ctx, e.session, script)
				snap = e.session.Snapshot()
			}

			if title == "" {
				title = e.cfg.Render.Title
			}

			page := plotpage.NewReport(snap, plotpage.ReportOptions{
				Title:       title,
				Theme:       plotpage.ParseTheme(e.cfg.Render.Theme),
				BoundLayout: e.cfg.Render.BoundLayout,
			})

			f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, renderFilePerm)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}

			renderErr := page.Render(f)
			closeErr := f.Close()

			if renderErr != nil {
				return fmt.Errorf("render page: %w", renderErr)
			}

			if closeErr != nil {
				return fmt.Errorf("close output: %w", closeErr)
			}

			e.providers.Logger.InfoContext(ctx, "report written", "path", output, "commits", len(snap.Points))

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, renderOutputFlag, renderOutputShort, "", "output HTML file")
	cmd.Flags().Float64Var(&progress, "progress", 100, "time window position between 0 and 100")
	cmd.Flags().StringVar(&scriptPath, "script", "", "replay script applied before rendering")
	cmd.Flags().StringVar(&title, "title", "", "page title (default: config render.title)")

	return cmd
}
