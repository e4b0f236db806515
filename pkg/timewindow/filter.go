// Package timewindow owns the current time bound and the commit subset it
// admits. It is the only writer of progress and bound; every other component
// reads its output or subscribes to its changes.
package timewindow

import (
	"sort"
	"time"

	"github.com/Sumatoshi-tech/commitlens/pkg/commits"
)

// Window is the published pair of progress and bound.
type Window struct {
	Progress float64   `json:"progress" yaml:"progress"`
	Bound    time.Time `json:"bound"    yaml:"bound"`
}

// Listener is notified after every write, synchronously and in subscription order.
type Listener func(w Window, filtered []commits.Commit)

// Filter maps progress to a time bound and derives the commits at or before it.
// It is not safe for concurrent use; the owning session serializes access.
type Filter struct {
	commits   []commits.Commit
	scale     Scale
	window    Window
	filtered  []commits.Commit
	listeners []Listener
}

// New builds a filter over commits, which must be sorted ascending by
// datetime. The initial window admits every commit.
func New(sorted []commits.Commit) *Filter {
	f := &Filter{commits: sorted}

	if len(sorted) > 0 {
		f.scale = NewScale(sorted[0].Datetime, sorted[len(sorted)-1].Datetime)
	}

	_, hi := f.scale.Domain()
	f.window = Window{Progress: MaxProgress, Bound: hi}
	f.filtered = f.prefix(hi)

	return f
}

// Subscribe registers a listener and returns a function removing it.
func (f *Filter) Subscribe(l Listener) func() {
	f.listeners = append(f.listeners, l)
	idx := len(f.listeners) - 1

	return func() {
		f.listeners[idx] = nil
	}
}

// SetProgress moves the slider. p is clamped to [0,100] and the bound follows.
func (f *Filter) SetProgress(p float64) {
	p = clamp(p)
	f.apply(Window{Progress: p, Bound: f.scale.BoundOf(p)})
}

// SetBound moves the bound to t exactly; progress follows, clamped to [0,100].
func (f *Filter) SetBound(t time.Time) {
	f.apply(Window{Progress: clamp(f.scale.ProgressOf(t)), Bound: t})
}

// Window returns the current progress and bound.
func (f *Filter) Window() Window {
	return f.window
}

// Progress returns the current slider position.
func (f *Filter) Progress() float64 {
	return f.window.Progress
}

// Bound returns the current inclusive upper time limit.
func (f *Filter) Bound() time.Time {
	return f.window.Bound
}

// Filtered returns the commits whose datetime is at or before the bound, in
// canonical order. The slice is shared; callers must not modify it.
func (f *Filter) Filtered() []commits.Commit {
	return f.filtered
}

// All returns the complete commit sequence.
func (f *Filter) All() []commits.Commit {
	return f.commits
}

// Scale returns the progress/time mapping.
func (f *Filter) Scale() Scale {
	return f.scale
}

// ProgressOf maps a time to unclamped progress.
func (f *Filter) ProgressOf(t time.Time) float64 {
	return f.scale.ProgressOf(t)
}

// BoundOf maps progress to a time.
func (f *Filter) BoundOf(p float64) time.Time {
	return f.scale.BoundOf(p)
}

func (f *Filter) apply(w Window) {
	f.window = w
	f.filtered = f.prefix(w.Bound)

	for _, l := range f.listeners {
		if l != nil {
			l(f.window, f.filtered)
		}
	}
}

// prefix relies on the canonical ascending order: the admitted commits are
// always a prefix, which makes the result monotone in the bound.
func (f *Filter) prefix(bound time.Time) []commits.Commit {
	n := sort.Search(len(f.commits), func(i int) bool {
		return f.commits[i].Datetime.After(bound)
	})

	return f.commits[:n:n]
}
