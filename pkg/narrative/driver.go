// Package narrative drives the time window from a scrolling list of commit
// steps.
package narrative

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sumatoshi-tech/commitlens/pkg/commits"
)

// ErrStepOutOfRange is returned when a step index does not name a commit.
var ErrStepOutOfRange = errors.New("step out of range")

// NoFocus is the focused index before any step has been entered.
const NoFocus = -1

// BoundSetter receives the bound of a focused step.
type BoundSetter interface {
	SetBound(t time.Time)
}

// Step is one entry of the narrative.
type Step struct {
	Index    int       `json:"index"    yaml:"index"`
	CommitID string    `json:"commit"   yaml:"commit"`
	Author   string    `json:"author"   yaml:"author"`
	Datetime time.Time `json:"datetime" yaml:"datetime"`
	Lines    int       `json:"lines"    yaml:"lines"`
}

// Driver maps step focus onto the time window.
type Driver struct {
	target  BoundSetter
	steps   []Step
	focused int
}

// NewDriver builds one step per commit, in the given (canonical) order.
func NewDriver(target BoundSetter, sorted []commits.Commit) *Driver {
	steps := make([]Step, len(sorted))
	for i, c := range sorted {
		steps[i] = Step{Index: i, CommitID: c.ID, Author: c.Author, Datetime: c.Datetime, Lines: c.LineCount}
	}

	return &Driver{target: target, steps: steps, focused: NoFocus}
}

// Focus moves the time window bound to the datetime of step i.
func (d *Driver) Focus(i int) error {
	if i < 0 || i >= len(d.steps) {
		return fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, i, len(d.steps))
	}

	d.focused = i
	d.target.SetBound(d.steps[i].Datetime)

	return nil
}

// Steps returns a copy of the steps.
func (d *Driver) Steps() []Step {
	out := make([]Step, len(d.steps))
	copy(out, d.steps)

	return out
}

// Len returns the number of steps.
func (d *Driver) Len() int {
	return len(d.steps)
}

// Focused returns the last focused step, or NoFocus.
func (d *Driver) Focused() int {
	return d.focused
}
