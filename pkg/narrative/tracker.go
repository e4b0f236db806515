package narrative

import (
	"math"
	"sort"
)

// Tracker defaults.
const (
	DefaultThreshold      = 0.5
	DefaultViewportHeight = 800.0
	DefaultStepHeight     = 120.0
)

// EnterFunc is called when the threshold line enters a different step.
type EnterFunc func(i int)

// Tracker converts scroll offsets into step focus. Steps are stacked from
// offset 0 in order; the threshold line sits at offset + threshold*viewport.
// Leaving every step keeps the last focus.
type Tracker struct {
	threshold float64
	viewport  float64
	tops      []float64
	bottom    float64
	offset    float64
	focused   int
	onEnter   EnterFunc
}

// NewTracker creates a tracker. A threshold outside [0,1] is clamped.
func NewTracker(threshold, viewport float64, heights []float64, onEnter EnterFunc) *Tracker {
	t := &Tracker{
		threshold: clampUnit(threshold),
		focused:   NoFocus,
		onEnter:   onEnter,
	}
	t.layout(viewport, heights)

	return t
}

// UniformHeights returns n steps of the same height.
func UniformHeights(n int, height float64) []float64 {
	heights := make([]float64, n)
	for i := range heights {
		heights[i] = height
	}

	return heights
}

// Scroll records a new scroll offset and reports the focused step. The
// callback runs only when the focus changes.
func (t *Tracker) Scroll(offset float64) int {
	t.offset = offset

	i := t.stepAt(t.line())
	if i == NoFocus || i == t.focused {
		return t.focused
	}

	t.focused = i
	if t.onEnter != nil {
		t.onEnter(i)
	}

	return i
}

// Resize recomputes step boundaries. The focused step is kept and no
// callback runs.
func (t *Tracker) Resize(viewport float64, heights []float64) {
	t.layout(viewport, heights)

	if t.focused >= len(t.tops) {
		t.focused = NoFocus
	}
}

// SetFocused records i as the focused step without running the callback. It
// keeps the tracker in step with a focus made outside of scrolling. An index
// outside the steps clears the focus.
func (t *Tracker) SetFocused(i int) {
	if i < 0 || i >= len(t.tops) {
		i = NoFocus
	}

	t.focused = i
}

// Focused returns the focused step, or NoFocus.
func (t *Tracker) Focused() int {
	return t.focused
}

// Offset returns the last scroll offset.
func (t *Tracker) Offset() float64 {
	return t.offset
}

// OffsetOf returns the scroll offset that puts the threshold line at the top
// of step i.
func (t *Tracker) OffsetOf(i int) (float64, bool) {
	if i < 0 || i >= len(t.tops) {
		return 0, false
	}

	return t.tops[i] - t.threshold*t.viewport, true
}

func (t *Tracker) line() float64 {
	return t.offset + t.threshold*t.viewport
}

func (t *Tracker) stepAt(y float64) int {
	if len(t.tops) == 0 || y < t.tops[0] || y >= t.bottom {
		return NoFocus
	}

	return sort.Search(len(t.tops), func(i int) bool { return t.tops[i] > y }) - 1
}

func (t *Tracker) layout(viewport float64, heights []float64) {
	t.viewport = math.Max(viewport, 0)
	t.tops = make([]float64, len(heights))

	y := 0.0
	for i, h := range heights {
		t.tops[i] = y
		y += math.Max(h, 0)
	}

	t.bottom = y
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultThreshold
	}

	return math.Min(math.Max(v, 0), 1)
}
