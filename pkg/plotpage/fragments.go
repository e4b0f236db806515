package plotpage

import "io"

// Stat is one headline card.
type Stat struct {
	Label string
	Value string
	Note  string
}

// Stats renders a grid of headline cards.
type Stats []Stat

// Render writes the cards.
func (s Stats) Render(w io.Writer) error {
	return executeTemplate(w, "stats.html", s)
}

// Table is a plain header-and-rows table.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render writes the table.
func (t Table) Render(w io.Writer) error {
	return executeTemplate(w, "table.html", t)
}

// UnitCell is one colored line unit.
type UnitCell struct {
	Line     int
	Language string
	CommitID string
	Color    string
}

// UnitGroup is one file row of the unit view.
type UnitGroup struct {
	Path     string
	Linguist string
	Count    int
	Units    []UnitCell
}

// LegendEntry pairs a language class with its color.
type LegendEntry struct {
	Label string
	Color string
}

// UnitTable renders one row of colored units per file.
type UnitTable struct {
	Legend []LegendEntry
	Groups []UnitGroup
	Hidden int
}

// Render writes the unit table.
func (u UnitTable) Render(w io.Writer) error {
	return executeTemplate(w, "units.html", u)
}

// StepItem is one narrative entry.
type StepItem struct {
	ID      string
	When    string
	Author  string
	Lines   int
	Focused bool
}

// StepList renders the narrative steps in order.
type StepList []StepItem

// Render writes the list.
func (s StepList) Render(w io.Writer) error {
	return executeTemplate(w, "steps.html", s)
}
