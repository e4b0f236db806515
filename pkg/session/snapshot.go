package session

import (
	"time"

	"github.com/Sumatoshi-tech/commitlens/pkg/narrative"
	"github.com/Sumatoshi-tech/commitlens/pkg/selection"
	"github.com/Sumatoshi-tech/commitlens/pkg/summary"
	"github.com/Sumatoshi-tech/commitlens/pkg/unitview"
)

// State is the phase of the session.
type State string

// Session states.
const (
	StateIdle      State = "IDLE"
	StateFiltered  State = "FILTERED"
	StateSelecting State = "SELECTING"
	StateSelected  State = "SELECTED"
)

// Point is a filtered commit as drawn on the chart.
type Point struct {
	CommitID string    `json:"commit"   yaml:"commit"`
	Author   string    `json:"author"   yaml:"author"`
	Datetime time.Time `json:"datetime" yaml:"datetime"`
	Hour     float64   `json:"hour"     yaml:"hour"`
	Weekday  int       `json:"weekday"  yaml:"weekday"`
	Day      string    `json:"day"      yaml:"day"`
	Lines    int       `json:"lines"    yaml:"lines"`
	X        float64   `json:"x"        yaml:"x"`
	Y        float64   `json:"y"        yaml:"y"`
	Opacity  float64   `json:"opacity"  yaml:"opacity"`
	Selected bool      `json:"selected" yaml:"selected"`
}

// Selection describes the live or finalized brush. Tallies are only set once
// the brush is finalized.
type Selection struct {
	Rect    selection.Rect    `json:"rect"              yaml:"rect"`
	Count   int               `json:"count"             yaml:"count"`
	Final   bool              `json:"final"             yaml:"final"`
	Tallies []selection.Tally `json:"tallies,omitempty" yaml:"tallies,omitempty"`
}

// Snapshot is the read-only view published after every event. Adapters key
// commits by CommitID and files by Path.
type Snapshot struct {
	State      State                `json:"state"               yaml:"state"`
	Progress   float64              `json:"progress"            yaml:"progress"`
	Bound      time.Time            `json:"bound"               yaml:"bound"`
	BoundLabel string               `json:"bound_label"         yaml:"bound_label"`
	Commits    int                  `json:"commits"             yaml:"commits"`
	Layout     selection.Layout     `json:"layout"              yaml:"layout"`
	Points     []Point              `json:"points"              yaml:"points"`
	Summary    summary.Summary      `json:"summary"             yaml:"summary"`
	Files      []unitview.FileGroup `json:"files"               yaml:"files"`
	Selection  *Selection           `json:"selection,omitempty" yaml:"selection,omitempty"`
	Steps      []narrative.Step     `json:"steps"               yaml:"steps"`
	Focused    int                  `json:"focused"             yaml:"focused"`
}

// Count returns the live selection count, or 0 without a brush.
func (s Snapshot) Count() int {
	if s.Selection == nil {
		return 0
	}

	return s.Selection.Count
}

// Tallies returns the language tallies of a finalized brush.
func (s Snapshot) Tallies() []selection.Tally {
	if s.Selection == nil {
		return nil
	}

	return s.Selection.Tallies
}

// Units returns the number of line units across the file groups.
func (s Snapshot) Units() int {
	return unitview.Count(s.Files)
}
