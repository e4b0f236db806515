package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Hour axis of the commit scatter.
const (
	hoursPerDay    = 24
	hourAxisSplits = 12
	pointOpacity   = 0.8
)

// ChartOpts builds the go-echarts options of the commit charts in one theme.
type ChartOpts struct {
	theme ThemeConfig
}

// NewChartOpts creates options for theme.
func NewChartOpts(theme Theme) *ChartOpts {
	return &ChartOpts{theme: GetThemeConfig(theme)}
}

// DefaultChartOpts uses the dark theme.
func DefaultChartOpts() *ChartOpts {
	return NewChartOpts(ThemeDark)
}

// Theme returns the colors in use.
func (c *ChartOpts) Theme() ThemeConfig {
	return c.theme
}

// Init sizes a full-width chart on the themed background.
func (c *ChartOpts) Init(height string) opts.Initialization {
	return opts.Initialization{
		Width:           DefaultChartWidth,
		Height:          height,
		BackgroundColor: c.theme.ChartBackground,
	}
}

// Legend is shown on top, scrolling when the language classes overflow.
func (c *ChartOpts) Legend() opts.Legend {
	return opts.Legend{
		Show:      opts.Bool(true),
		Type:      "scroll",
		Top:       "0",
		Left:      "center",
		TextStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

func (c *ChartOpts) Tooltip(trigger string) opts.Tooltip {
	return opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}
}

func (c *ChartOpts) Grid() opts.Grid {
	return opts.Grid{Top: "12%", Bottom: "12%", Left: "5%", Right: "5%", ContainLabel: opts.Bool(true)}
}

// HourAxis is the continuous 0-24 x axis of the scatter, labeled every two hours.
func (c *ChartOpts) HourAxis() opts.XAxis {
	return opts.XAxis{
		Name:        "Hour of day",
		Type:        "value",
		Min:         0,
		Max:         hoursPerDay,
		SplitNumber: hourAxisSplits,
		AxisLabel:   c.axisLabel(),
		AxisLine:    c.axisLine(),
	}
}

// WeekdayAxis is the banded y axis of the scatter, one category per day label.
func (c *ChartOpts) WeekdayAxis(dayLabels []string) opts.YAxis {
	return opts.YAxis{
		Name:      "Day of week",
		Type:      "category",
		Data:      dayLabels,
		AxisLabel: c.axisLabel(),
		AxisLine:  c.axisLine(),
		SplitLine: c.splitLine(),
	}
}

// BucketAxis is the category x axis of the line total bars.
func (c *ChartOpts) BucketAxis() opts.XAxis {
	return opts.XAxis{AxisLabel: c.axisLabel(), AxisLine: c.axisLine()}
}

// LinesAxis is the value y axis of the line total bars.
func (c *ChartOpts) LinesAxis(name string) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		AxisLabel: c.axisLabel(),
		AxisLine:  c.axisLine(),
		SplitLine: c.splitLine(),
	}
}

// PointStyle colors commit dots. Dots outside a selection pass a lower opacity.
func (c *ChartOpts) PointStyle(opacity float32) opts.ItemStyle {
	return opts.ItemStyle{Color: c.theme.Point, Opacity: opts.Float(opacity)}
}

// SeriesColor returns color, or the i-th palette color when it is empty.
func (c *ChartOpts) SeriesColor(i int, color string) string {
	if color == "" {
		return c.theme.Color(i)
	}

	return color
}

// ShareLabel prints each language slice with its percentage.
func (c *ChartOpts) ShareLabel() opts.Label {
	return opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%", Color: c.theme.ChartText}
}

func (c *ChartOpts) axisLabel() *opts.AxisLabel {
	return &opts.AxisLabel{Color: c.theme.ChartTextMuted}
}

func (c *ChartOpts) axisLine() *opts.AxisLine {
	return &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}}
}

func (c *ChartOpts) splitLine() *opts.SplitLine {
	return &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid}}
}
