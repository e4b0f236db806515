package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/commitlens/pkg/selection"
	"github.com/Sumatoshi-tech/commitlens/pkg/session"
	"github.com/Sumatoshi-tech/commitlens/pkg/summary"
)

// Layout of the summary output.
const (
	labelWidth    = 12
	barWidth      = 24
	topFilesLimit = 10
	notAvailable  = "(n/a)"
	unknownAuthor = "(unknown)"
)

// RenderSummary writes the statistics of a snapshot: headline metrics, line
// totals per time-of-day bucket and weekday, the longest files, and the
// language breakdown of a finalized selection.
func RenderSummary(w io.Writer, cfg Config, snap session.Snapshot) error {
	var b strings.Builder

	s := snap.Summary

	b.WriteString(DrawHeader(cfg.Colorize("COMMIT SUMMARY", color.Bold), window(snap), cfg.Width))
	b.WriteString("\n\n")
	b.WriteString(metricsTable(s))
	b.WriteString("\n\n")

	writeTotals(&b, cfg, "Lines by time of day", s.TimeOfDay, s.TopTimeOfDay)
	writeTotals(&b, cfg, "Lines by weekday", s.Weekdays, s.TopDay)

	if len(s.FileStats) > 0 {
		b.WriteString(cfg.Colorize("Longest files", color.Bold))
		b.WriteString("\n")
		b.WriteString(filesTable(s.FileStats))
		b.WriteString("\n\n")
	}

	if tallies := snap.Tallies(); len(tallies) > 0 {
		writeTallies(&b, cfg, snap.Count(), tallies)
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

func window(snap session.Snapshot) string {
	bound := snap.BoundLabel
	if bound == "" {
		bound = notAvailable
	}

	return fmt.Sprintf("%d/%d commits to %s", len(snap.Points), snap.Commits, bound)
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func metricsTable(s summary.Summary) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Metric", "Value", "Detail"})
	tbl.AppendRows([]table.Row{
		{"Records", humanize.Comma(int64(s.TotalRecords)), ""},
		{"Commits", humanize.Comma(int64(s.Commits)), fmt.Sprintf("%s commit ids", humanize.Comma(int64(s.DistinctCommitIDs)))},
		{"Authors", humanize.Comma(int64(s.Authors)), ""},
		{"Files", humanize.Comma(int64(s.Files)), ""},
		{"Max file length", humanize.Comma(int64(s.MaxFileLength)), orNA(s.LongestFile)},
		{"Avg file length", fmt.Sprintf("%.0f", s.AvgFileLength), ""},
		{"Longest line (chars)", humanize.Comma(int64(s.MaxLineLength)), ""},
		{"Max depth", s.MaxDepth, fmt.Sprintf("avg %.1f", s.AvgDepth)},
		{"Most work by time", orNA(s.TopTimeOfDay), ""},
		{"Most work by day", orNA(s.TopDay), ""},
	})

	return tbl.Render()
}

func writeTotals(b *strings.Builder, cfg Config, title string, totals []summary.Total, leader string) {
	sum := 0
	for _, t := range totals {
		sum += t.Lines
	}

	b.WriteString(cfg.Colorize(title, color.Bold))
	b.WriteString("\n")

	for _, t := range totals {
		pct := 0.0
		if sum > 0 {
			pct = float64(t.Lines) / float64(sum) * 100
		}

		line := DrawPercentBar(t.Label, pct, t.Lines, labelWidth, barWidth)
		if t.Label == leader {
			line = cfg.Colorize(line, color.FgGreen)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
}

func filesTable(stats []summary.FileStat) string {
	ordered := make([]summary.FileStat, len(stats))
	copy(ordered, stats)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].MaxLineNumber > ordered[j].MaxLineNumber })

	tbl := newTable()
	tbl.AppendHeader(table.Row{"File", "Length", "Avg depth"})

	for i, fs := range ordered {
		if i == topFilesLimit {
			tbl.AppendFooter(table.Row{fmt.Sprintf("+%d more", len(ordered)-topFilesLimit), "", ""})

			break
		}

		tbl.AppendRow(table.Row{TruncateWithEllipsis(fs.Path, 48), humanize.Comma(int64(fs.MaxLineNumber)), fmt.Sprintf("%.1f", fs.AvgNestingDepth)})
	}

	return tbl.Render()
}

func writeTallies(b *strings.Builder, cfg Config, count int, tallies []selection.Tally) {
	b.WriteString(cfg.Colorize(fmt.Sprintf("Languages in selection (%d commits)", count), color.Bold))
	b.WriteString("\n")

	for _, t := range tallies {
		b.WriteString(DrawPercentBar(t.Label, t.Percentage, t.Count, labelWidth, barWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
}

// RenderPoints lists the filtered commits with their selection state.
func RenderPoints(w io.Writer, cfg Config, snap session.Snapshot) error {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Commit", "Author", "When", "Day", "Hour", "Lines"})

	for _, p := range snap.Points {
		id := p.CommitID
		if len(id) > 7 {
			id = id[:7]
		}

		author := p.Author
		if author == "" {
			author = unknownAuthor
		}

		row := table.Row{id, author, p.Datetime.Format("2006-01-02 15:04"), p.Day, fmt.Sprintf("%.2f", p.Hour), p.Lines}
		if p.Selected {
			row[0] = cfg.Colorize(id, color.FgCyan)
		}

		tbl.AppendRow(row)
	}

	_, err := io.WriteString(w, tbl.Render()+"\n")
	if err != nil {
		return fmt.Errorf("write points: %w", err)
	}

	return nil
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}

	return s
}
