// Package selection implements brush selection over the commit scatter: the
// live membership count while a rectangle is dragged and the language
// breakdown once the gesture ends.
package selection

import (
	"github.com/Sumatoshi-tech/commitlens/pkg/changelog"
	"github.com/Sumatoshi-tech/commitlens/pkg/commits"
)

// Point opacities.
const (
	FullOpacity   = 1.0
	DimmedOpacity = 0.15
)

// Phase is the lifecycle of a brush gesture.
type Phase int

// Brush phases.
const (
	PhaseNone Phase = iota
	PhaseBrushing
	PhaseFinalized
)

// Rect is a brush rectangle in chart pixels, normalized so X0<=X1 and Y0<=Y1.
type Rect struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// NewRect builds a normalized rectangle from two corners.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{X0: min(x0, x1), Y0: min(y0, y1), X1: max(x0, x1), Y1: max(y0, y1)}
}

// Empty reports whether the rectangle has no width or no height.
func (r Rect) Empty() bool {
	return r.X0 == r.X1 || r.Y0 == r.Y1
}

// Contains reports whether p lies inside the closed rectangle.
func (r Rect) Contains(p Point) bool {
	return r.X0 <= p.X && p.X <= r.X1 && r.Y0 <= p.Y && p.Y <= r.Y1
}

// Engine owns the brush rectangle and the results derived from it.
type Engine struct {
	projector Projector
	rect      Rect
	phase     Phase
	selected  map[string]struct{}
	records   []changelog.ChangeRecord
	tallies   []Tally
}

// NewEngine returns an engine with no selection.
func NewEngine(projector Projector) *Engine {
	return &Engine{projector: projector}
}

// Update handles a rectangle change during a drag: it recomputes membership
// over the filtered commits and returns the live count. Tallies stay empty
// until Finalize. An empty rectangle clears the selection.
func (e *Engine) Update(r Rect, filtered []commits.Commit) int {
	r = NewRect(r.X0, r.Y0, r.X1, r.Y1)
	if r.Empty() {
		e.Clear()

		return 0
	}

	e.rect = r
	e.phase = PhaseBrushing
	e.tallies = nil
	e.records = nil
	e.selected = e.members(r, filtered)

	return len(e.selected)
}

// Finalize ends the gesture: membership is recomputed and the language
// breakdown of the selected commits' records is tallied.
func (e *Engine) Finalize(r Rect, filtered []commits.Commit) []Tally {
	e.Update(r, filtered)
	if e.phase == PhaseNone {
		return nil
	}

	e.phase = PhaseFinalized

	for _, c := range filtered {
		if _, ok := e.selected[c.ID]; ok {
			e.records = append(e.records, c.Lines...)
		}
	}

	e.tallies = Tallies(e.records)

	return e.Tallies()
}

// Clear discards the rectangle, the count and the tallies.
func (e *Engine) Clear() {
	e.rect = Rect{}
	e.phase = PhaseNone
	e.selected = nil
	e.records = nil
	e.tallies = nil
}

// SetProjector replaces the chart geometry. The current rectangle belongs to
// the old geometry, so the selection is cleared.
func (e *Engine) SetProjector(p Projector) {
	e.projector = p
	e.Clear()
}

// Projector returns the chart geometry in use.
func (e *Engine) Projector() Projector {
	return e.projector
}

// Phase returns the gesture phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Rect returns the active rectangle, if any.
func (e *Engine) Rect() (Rect, bool) {
	return e.rect, e.phase != PhaseNone
}

// Count returns the number of selected commits; ok is false without a selection.
func (e *Engine) Count() (n int, ok bool) {
	if e.phase == PhaseNone {
		return 0, false
	}

	return len(e.selected), true
}

// Tallies returns a copy of the language breakdown of the finalized selection.
func (e *Engine) Tallies() []Tally {
	if len(e.tallies) == 0 {
		return nil
	}

	out := make([]Tally, len(e.tallies))
	copy(out, e.tallies)

	return out
}

// SelectedRecords returns the records behind the finalized selection.
func (e *Engine) SelectedRecords() []changelog.ChangeRecord {
	return e.records
}

// IsSelected reports whether the commit is inside the active rectangle.
func (e *Engine) IsSelected(c commits.Commit) bool {
	_, ok := e.selected[c.ID]

	return ok
}

// Opacity returns how a point should be drawn: fully visible without a
// selection or when selected, dimmed otherwise.
func (e *Engine) Opacity(c commits.Commit) float64 {
	if e.phase == PhaseNone || e.IsSelected(c) {
		return FullOpacity
	}

	return DimmedOpacity
}

// Point projects a commit with the current geometry.
func (e *Engine) Point(c commits.Commit) Point {
	return e.projector.Project(c)
}

func (e *Engine) members(r Rect, filtered []commits.Commit) map[string]struct{} {
	selected := make(map[string]struct{})

	for _, c := range filtered {
		if r.Contains(e.projector.Project(c)) {
			selected[c.ID] = struct{}{}
		}
	}

	return selected
}
