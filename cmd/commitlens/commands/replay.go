package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/commitlens/pkg/replay"
)

// NewReplayCommand creates the replay command.
func NewReplayCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "replay [change-log.csv|url] <script.json>",
		Short: "Apply an event script and print one snapshot digest per event",
		Long: `Apply a JSON event script to a fresh session and print a digest of the
snapshot published after each event.

Script format:
  {"events": [
    {"type": "progress", "progress": 40},
    {"type": "brush", "rect": [0, 0, 300, 200]},
    {"type": "brush_end", "rect": [0, 0, 300, 200]},
    {"type": "focus", "index": 2}
  ]}

Event types: progress, bound, brush, brush_end, clear, focus, scroll,
resize_viewport, resize_chart.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != replay.FormatYAML && format != replay.FormatJSON {
				return fmt.Errorf("%w: %s", replay.ErrUnknownFormat, format)
			}

			scriptPath := args[len(args)-1]

			script, err := readScript(scriptPath)
			if err != nil {
				return err
			}

			e, err := newEnv(cmd, args[:len(args)-1], envOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			digests := replay.Run(cmd.Context(), e.session, script)

			return replay.Write(cmd.OutOrStdout(), digests, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", replay.FormatYAML, "output format: yaml or json")

	return cmd
}

func readScript(path string) (replay.Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return replay.Script{}, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	return replay.Parse(f)
}
