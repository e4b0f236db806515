package plotpage

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/commitlens/pkg/commits"
	"github.com/Sumatoshi-tech/commitlens/pkg/selection"
	"github.com/Sumatoshi-tech/commitlens/pkg/session"
	"github.com/Sumatoshi-tech/commitlens/pkg/summary"
)

// DefaultMaxFiles caps the unit table.
const DefaultMaxFiles = 40

const notAvailable = "(n/a)"

// ReportOptions controls NewReport.
type ReportOptions struct {
	Title       string
	Theme       Theme
	BoundLayout string
	// MaxFiles limits the unit table rows; zero means DefaultMaxFiles.
	MaxFiles int
}

// NewReport lays out a snapshot as a page: headline statistics, the commit
// scatter, line totals, the language breakdown of a finalized brush, the
// file units and the narrative.
func NewReport(snap session.Snapshot, ro ReportOptions) *Page {
	if ro.MaxFiles <= 0 {
		ro.MaxFiles = DefaultMaxFiles
	}

	cOpts := NewChartOpts(ro.Theme)
	colors := newLanguageColors(cOpts.Theme())

	page := NewPage(ro.Title, windowDescription(snap)).WithTheme(ro.Theme)

	page.Add(
		Section{Title: "Summary", Subtitle: "Whole log, independent of the time window", Chart: summaryStats(snap.Summary)},
		Section{
			Title:    "Commits by hour and weekday",
			Subtitle: "Symbol size follows the number of changed lines",
			Chart:    WrapChart(BuildScatterChart(cOpts, commits.DayLabels[:], scatterPoints(snap), selection.DimmedOpacity)),
			Hint:     selectionHint(snap),
		},
		Section{
			Title: "Lines by time of day",
			Chart: WrapChart(BuildBarChart(cOpts, labelsOf(snap.Summary.TimeOfDay),
				[]BarSeries{{Name: "Lines", Data: linesOfTotals(snap.Summary.TimeOfDay)}}, "Lines")),
		},
		Section{
			Title: "Lines by weekday",
			Chart: WrapChart(BuildBarChart(cOpts, labelsOf(snap.Summary.Weekdays),
				[]BarSeries{{Name: "Lines", Data: linesOfTotals(snap.Summary.Weekdays), Color: cOpts.Theme().Color(1)}}, "Lines")),
		},
	)

	if tallies := snap.Tallies(); len(tallies) > 0 {
		page.Add(Section{
			Title:    "Languages in selection",
			Subtitle: fmt.Sprintf("%s commits selected", humanize.Comma(int64(snap.Count()))),
			Chart:    WrapChart(BuildPieChart(cOpts, "Languages", pieSlices(tallies, colors))),
		})
	}

	page.Add(
		Section{
			Title:    "Files",
			Subtitle: fmt.Sprintf("%s lines changed up to %s", humanize.Comma(int64(snap.Units())), boundLabel(snap)),
			Chart:    unitTable(snap, colors, ro.MaxFiles),
		},
		Section{Title: "Narrative", Subtitle: "One step per commit", Chart: stepList(snap, ro.BoundLayout)},
	)

	return page
}

func windowDescription(snap session.Snapshot) string {
	return fmt.Sprintf("%s of %s commits shown, up to %s (%.0f%%)",
		humanize.Comma(int64(len(snap.Points))), humanize.Comma(int64(snap.Commits)),
		boundLabel(snap), snap.Progress)
}

func boundLabel(snap session.Snapshot) string {
	if snap.BoundLabel == "" {
		return notAvailable
	}

	return snap.BoundLabel
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}

	return s
}

func summaryStats(s summary.Summary) Stats {
	return Stats{
		{Label: "Commits", Value: humanize.Comma(int64(s.Commits)),
			Note: fmt.Sprintf("%s commit ids in %s records", humanize.Comma(int64(s.DistinctCommitIDs)), humanize.Comma(int64(s.TotalRecords)))},
		{Label: "Authors", Value: humanize.Comma(int64(s.Authors))},
		{Label: "Files", Value: humanize.Comma(int64(s.Files))},
		{Label: "Max file length", Value: humanize.Comma(int64(s.MaxFileLength)), Note: orNA(s.LongestFile)},
		{Label: "Avg file length", Value: strconv.Itoa(int(s.AvgFileLength + 0.5))},
		{Label: "Longest line (chars)", Value: humanize.Comma(int64(s.MaxLineLength))},
		{Label: "Max depth", Value: strconv.Itoa(s.MaxDepth), Note: fmt.Sprintf("Avg depth: %.1f", s.AvgDepth)},
		{Label: "Most work by time", Value: orNA(s.TopTimeOfDay)},
		{Label: "Most work by day", Value: orNA(s.TopDay)},
	}
}

func scatterPoints(snap session.Snapshot) []ScatterPoint {
	points := make([]ScatterPoint, len(snap.Points))
	for i, p := range snap.Points {
		points[i] = ScatterPoint{
			Name:    fmt.Sprintf("%s by %s", shortID(p.CommitID), p.Author),
			Hour:    p.Hour,
			Weekday: p.Weekday,
			Lines:   p.Lines,
			Dimmed:  p.Opacity < selection.FullOpacity,
		}
	}

	return points
}

func selectionHint(snap session.Snapshot) Hint {
	if snap.Selection == nil {
		return Hint{}
	}

	r := snap.Selection.Rect

	return Hint{
		Title: "Selection",
		Items: []string{
			fmt.Sprintf("%s commits inside x %.0f to %.0f, y %.0f to %.0f",
				humanize.Comma(int64(snap.Selection.Count)), r.X0, r.X1, r.Y0, r.Y1),
		},
	}
}

func labelsOf(totals []summary.Total) []string {
	labels := make([]string, len(totals))
	for i, t := range totals {
		labels[i] = t.Label
	}

	return labels
}

func linesOfTotals(totals []summary.Total) []int {
	lines := make([]int, len(totals))
	for i, t := range totals {
		lines[i] = t.Lines
	}

	return lines
}

func pieSlices(tallies []selection.Tally, colors *languageColors) []PieSlice {
	slices := make([]PieSlice, len(tallies))
	for i, t := range tallies {
		slices[i] = PieSlice{Label: t.Label, Value: t.Count, Color: colors.of(t.Label)}
	}

	return slices
}

func unitTable(snap session.Snapshot, colors *languageColors, maxFiles int) UnitTable {
	groups := snap.Files

	var table UnitTable

	if len(groups) > maxFiles {
		table.Hidden = len(groups) - maxFiles
		groups = groups[:maxFiles]
	}

	for _, g := range groups {
		row := UnitGroup{Path: g.Path, Linguist: orNA(g.Linguist), Count: len(g.Units)}

		for _, u := range g.Units {
			row.Units = append(row.Units, UnitCell{
				Line:     u.Line,
				Language: u.Language,
				CommitID: shortID(u.CommitID),
				Color:    colors.of(u.Language),
			})
		}

		table.Groups = append(table.Groups, row)
	}

	table.Legend = colors.legend()

	return table
}

func stepList(snap session.Snapshot, layout string) StepList {
	if layout == "" {
		layout = session.DefaultBoundLayout
	}

	steps := make(StepList, len(snap.Steps))
	for i, s := range snap.Steps {
		steps[i] = StepItem{
			ID:      shortID(s.CommitID),
			When:    s.Datetime.Format(layout),
			Author:  s.Author,
			Lines:   s.Lines,
			Focused: i == snap.Focused,
		}
	}

	return steps
}

func shortID(id string) string {
	return commits.Commit{ID: id}.ShortID()
}

// languageColors hands out palette colors to language classes in the order
// they are first asked for.
type languageColors struct {
	theme  ThemeConfig
	order  []string
	colors map[string]string
}

func newLanguageColors(theme ThemeConfig) *languageColors {
	return &languageColors{theme: theme, colors: make(map[string]string)}
}

func (lc *languageColors) of(label string) string {
	if c, ok := lc.colors[label]; ok {
		return c
	}

	c := lc.theme.Color(len(lc.order))
	lc.colors[label] = c
	lc.order = append(lc.order, label)

	return c
}

func (lc *languageColors) legend() []LegendEntry {
	entries := make([]LegendEntry, len(lc.order))
	for i, label := range lc.order {
		entries[i] = LegendEntry{Label: label, Color: lc.colors[label]}
	}

	return entries
}
