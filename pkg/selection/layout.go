package selection

import (
	"github.com/Sumatoshi-tech/commitlens/pkg/commits"
)

// Chart domain.
const (
	hoursPerDay = 24
	dayBands    = 7
)

// Default chart geometry.
const (
	DefaultWidth       = 1000
	DefaultHeight      = 450
	DefaultBandPadding = 0.2
)

// Point is a commit position in chart pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Projector places commits on the chart.
type Projector interface {
	Project(c commits.Commit) Point
}

// Layout is the scatter geometry: hour maps linearly across the width and the
// weekday maps to the centre of one of seven bands down the height.
type Layout struct {
	Width   float64 `json:"width"        yaml:"width"`
	Height  float64 `json:"height"       yaml:"height"`
	Padding float64 `json:"band_padding" yaml:"band_padding"`
}

// DefaultLayout returns the default geometry.
func DefaultLayout() Layout {
	return Layout{Width: DefaultWidth, Height: DefaultHeight, Padding: DefaultBandPadding}
}

// Project returns the commit's point.
func (l Layout) Project(c commits.Commit) Point {
	return Point{X: l.X(c.Hour), Y: l.BandCenter(int(c.Day))}
}

// X maps an hour in [0,24] to a horizontal pixel.
func (l Layout) X(hour float64) float64 {
	return hour / hoursPerDay * l.Width
}

// BandCenter returns the vertical centre of a weekday band. Inner and outer
// padding are both Padding, with the bands centred in the height.
func (l Layout) BandCenter(day int) float64 {
	step := l.Height / (dayBands + l.Padding)
	start := (l.Height - step*(dayBands-l.Padding)) / 2

	return start + step*float64(day) + l.Bandwidth()/2
}

// Bandwidth returns the height of one weekday band.
func (l Layout) Bandwidth() float64 {
	step := l.Height / (dayBands + l.Padding)

	return step * (1 - l.Padding)
}
