package plotpage

import (
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Default chart sizes.
const (
	DefaultChartWidth  = "100%"
	DefaultChartHeight = "450px"
	PieChartHeight     = "360px"
)

// Symbol radius range of the scatter, in pixels.
const (
	minRadius      = 2
	maxRadius      = 12
	radiusQuantile = 0.99
)

// BarSeries defines the properties and data for a single bar chart series.
type BarSeries struct {
	Name  string
	Data  []int
	Color string // Optional, uses theme if empty.
}

// BuildBarChart constructs a themed bar chart. If cOpts is nil,
// DefaultChartOpts() is used.
func BuildBarChart(cOpts *ChartOpts, labels []string, series []BarSeries, yAxisLabel string) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(PieChartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.BucketAxis()),
		charts.WithYAxisOpts(cOpts.LinesAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	bar.SetXAxis(labels)

	for i, s := range series {
		barData := make([]opts.BarData, len(s.Data))
		for j, v := range s.Data {
			barData[j] = opts.BarData{Value: v}
		}

		bar.AddSeries(s.Name, barData, charts.WithItemStyleOpts(opts.ItemStyle{Color: cOpts.SeriesColor(i, s.Color)}))
	}

	return bar
}

// ScatterPoint is a commit on the hour by weekday plane.
type ScatterPoint struct {
	Name    string
	Hour    float64
	Weekday int
	Lines   int
	Dimmed  bool
}

// BuildScatterChart plots commits by hour of day (x) and weekday (y), sized
// by line count. Dimmed points go to a separate, faded series.
func BuildScatterChart(cOpts *ChartOpts, dayLabels []string, points []ScatterPoint, dimmedOpacity float32) *charts.Scatter {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(DefaultChartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.HourAxis()),
		charts.WithYAxisOpts(cOpts.WeekdayAxis(dayLabels)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	radius := NewRadiusScale(linesOf(points))

	// Large symbols first so small ones stay on top.
	ordered := make([]ScatterPoint, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Lines > ordered[j].Lines })

	var visible, dimmed []opts.ScatterData

	for _, p := range ordered {
		d := opts.ScatterData{
			Name:       p.Name,
			Value:      []any{p.Hour, p.Weekday, p.Lines},
			SymbolSize: int(math.Round(2 * radius.Radius(p.Lines))),
		}

		if p.Dimmed {
			dimmed = append(dimmed, d)
		} else {
			visible = append(visible, d)
		}
	}

	scatter.AddSeries("Commits", visible, charts.WithItemStyleOpts(cOpts.PointStyle(pointOpacity)))

	if len(dimmed) > 0 {
		scatter.AddSeries("Outside selection", dimmed, charts.WithItemStyleOpts(cOpts.PointStyle(dimmedOpacity)))
	}

	return scatter
}

// PieSlice is one labeled share.
type PieSlice struct {
	Label string
	Value int
	Color string
}

// BuildPieChart constructs a themed pie chart labeled with percentages.
func BuildPieChart(cOpts *ChartOpts, name string, slices []PieSlice) *charts.Pie {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(PieChartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	data := make([]opts.PieData, len(slices))
	for i, s := range slices {
		data[i] = opts.PieData{Name: s.Label, Value: s.Value, ItemStyle: &opts.ItemStyle{Color: cOpts.SeriesColor(i, s.Color)}}
	}

	pie.AddSeries(name, data, charts.WithLabelOpts(cOpts.ShareLabel()))

	return pie
}

// RadiusScale maps line counts to symbol radii with a square-root scale
// from [1, q99] onto [2, 12] px, where q99 is the 99th percentile count.
// Counts above q99 extrapolate past the range; a degenerate domain maps
// every count to the middle of the range.
type RadiusScale struct {
	q99 float64
}

// NewRadiusScale fits the scale to the given line counts.
func NewRadiusScale(lines []int) RadiusScale {
	q := quantile(lines, radiusQuantile)
	if q <= 0 {
		q = 1
	}

	return RadiusScale{q99: q}
}

// Radius returns the radius for a line count.
func (s RadiusScale) Radius(lines int) float64 {
	lo, hi := 1.0, math.Sqrt(s.q99)
	if hi == lo {
		return (minRadius + maxRadius) / 2
	}

	t := (math.Sqrt(math.Max(float64(lines), 0)) - lo) / (hi - lo)

	return minRadius + t*(maxRadius-minRadius)
}

// quantile interpolates linearly between the sorted values around p.
func quantile(values []int, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	h := float64(len(sorted)-1) * p
	i := int(math.Floor(h))

	if i+1 >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}

	return float64(sorted[i]) + (float64(sorted[i+1])-float64(sorted[i]))*(h-float64(i))
}

func linesOf(points []ScatterPoint) []int {
	lines := make([]int, len(points))
	for i, p := range points {
		lines[i] = p.Lines
	}

	return lines
}
