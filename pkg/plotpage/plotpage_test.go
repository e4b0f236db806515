package plotpage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractChartContent(t *testing.T) {
	t.Parallel()

	full := `<!DOCTYPE html><html><head><style>.x{}</style></head><body>` +
		`<div class="container"><div id="c1"></div></div><style>.y{}</style><script>init()</script></body></html>`

	got := extractChartContent(full)

	assert.Equal(t, `<div class="echart-box"><div id="c1"></div></div><script>init()</script>`, got)
	assert.Equal(t, "<p>fragment</p>", extractChartContent("<p>fragment</p>"))
}

func TestPage_RenderIncludesSectionsAndTheme(t *testing.T) {
	t.Parallel()

	page := NewPage("History", "A <small> log").WithTheme(ThemeLight)
	page.Add(
		Section{Title: "Cards", Chart: Stats{{Label: "Commits", Value: "3", Note: "note"}}},
		Section{
			Title: "Table",
			Chart: Table{Headers: []string{"A"}, Rows: [][]string{{"<b>"}}},
			Hint:  Hint{Title: "Reading", Items: []string{"first"}},
		},
	)

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>History</title>")
	assert.Contains(t, html, "A &lt;small&gt; log")
	assert.Contains(t, html, lightTheme.Background)
	assert.Contains(t, html, `<div class="v">3</div>`)
	assert.Contains(t, html, "<td>&lt;b&gt;</td>")
	assert.Contains(t, html, "<li>first</li>")
}

func TestRadiusScale(t *testing.T) {
	t.Parallel()

	scale := NewRadiusScale([]int{1, 4, 9, 16, 25, 36, 49, 64, 81, 100})

	// q99 interpolates between 81 and 100: 81 + 19*0.91.
	assert.InDelta(t, 98.29, scale.q99, 1e-9)
	assert.InDelta(t, 2.0, scale.Radius(1), 1e-9)
	assert.Greater(t, scale.Radius(100), 12.0)
	assert.Less(t, scale.Radius(4), scale.Radius(9))

	flat := NewRadiusScale([]int{1, 1, 1})
	assert.InDelta(t, 7.0, flat.Radius(1), 1e-9)

	empty := NewRadiusScale(nil)
	assert.InDelta(t, 7.0, empty.Radius(5), 1e-9)
}

func TestBuildCharts(t *testing.T) {
	t.Parallel()

	bar := BuildBarChart(nil, []string{"Night", "Morning"}, []BarSeries{{Name: "Lines", Data: []int{1, 2}}}, "Lines")
	require.Len(t, bar.MultiSeries, 1)
	assert.Equal(t, "Lines", bar.MultiSeries[0].Name)

	scatter := BuildScatterChart(nil, []string{"Sun"}, []ScatterPoint{
		{Name: "a", Hour: 2, Lines: 3},
		{Name: "b", Hour: 4, Lines: 1, Dimmed: true},
	}, 0.15)
	require.Len(t, scatter.MultiSeries, 2)
	assert.Equal(t, "Commits", scatter.MultiSeries[0].Name)
	assert.Equal(t, "Outside selection", scatter.MultiSeries[1].Name)

	undimmed := BuildScatterChart(nil, []string{"Sun"}, []ScatterPoint{{Name: "a", Hour: 2, Lines: 3}}, 0.15)
	assert.Len(t, undimmed.MultiSeries, 1)

	pie := BuildPieChart(NewChartOpts(ThemeLight), "Languages", []PieSlice{{Label: "JS", Value: 3}, {Label: "CSS", Value: 1}})
	require.Len(t, pie.MultiSeries, 1)
}

func TestThemes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeDark, ParseTheme("neon"))

	tc := GetThemeConfig(ThemeDark)
	assert.Equal(t, tc.Palette[0], tc.Color(len(tc.Palette)))
	assert.Equal(t, tc.Accent, ThemeConfig{Accent: tc.Accent}.Color(3))
}

func TestStepList_PluralizesLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	steps := StepList{
		{ID: "aaaaaaa", When: "2024-03-03 02:00", Author: "ann", Lines: 1},
		{ID: "bbbbbbb", When: "2024-03-06 10:30", Author: "bob", Lines: 1204, Focused: true},
	}
	require.NoError(t, steps.Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "· 1 line ·")
	assert.Contains(t, html, "· 1,204 lines ·")
	assert.Contains(t, html, `<li class="focused">`)
}

func TestChartOpts_CommitAxes(t *testing.T) {
	t.Parallel()

	cOpts := NewChartOpts(ThemeLight)
	theme := cOpts.Theme()

	hour := cOpts.HourAxis()
	assert.Equal(t, "value", hour.Type)
	assert.Equal(t, 0, hour.Min)
	assert.Equal(t, 24, hour.Max)

	days := []string{"Sun", "Mon"}
	weekday := cOpts.WeekdayAxis(days)
	assert.Equal(t, "category", weekday.Type)
	assert.Equal(t, days, weekday.Data)

	dimmed := cOpts.PointStyle(0.15)
	assert.Equal(t, theme.Point, dimmed.Color)
	require.NotNil(t, dimmed.Opacity)
	assert.InDelta(t, 0.15, *dimmed.Opacity, 1e-6)

	assert.Equal(t, theme.Color(2), cOpts.SeriesColor(2, ""))
	assert.Equal(t, "#123456", cOpts.SeriesColor(2, "#123456"))
	assert.Equal(t, "{b}: {d}%", cOpts.ShareLabel().Formatter)
	assert.Equal(t, DefaultChartWidth, cOpts.Init(PieChartHeight).Width)
}
