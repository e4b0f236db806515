package timewindow

import (
	"math"
	"time"
)

// Progress range of the slider.
const (
	MinProgress = 0.0
	MaxProgress = 100.0
)

// Scale is the fixed linear mapping between slider progress and time.
type Scale struct {
	min  time.Time
	span time.Duration
}

// NewScale builds a scale over [lo, hi].
func NewScale(lo, hi time.Time) Scale {
	if hi.Before(lo) {
		lo, hi = hi, lo
	}

	return Scale{min: lo, span: hi.Sub(lo)}
}

// Domain returns the time range of the scale.
func (s Scale) Domain() (time.Time, time.Time) {
	return s.min, s.min.Add(s.span)
}

// ProgressOf maps t to progress. The result is not clamped. A zero-width
// domain maps everything at or after its instant to MaxProgress.
func (s Scale) ProgressOf(t time.Time) float64 {
	if s.span <= 0 {
		if t.Before(s.min) {
			return MinProgress
		}

		return MaxProgress
	}

	return s.progressAt(t.Sub(s.min))
}

// BoundOf maps progress to the latest instant of the domain whose progress
// does not exceed p. Any t in the domain with ProgressOf(t) <= p is therefore
// at or before BoundOf(p), whatever the float rounding of long spans.
func (s Scale) BoundOf(p float64) time.Time {
	switch {
	case s.span <= 0:
		return s.min
	case p >= MaxProgress:
		return s.min.Add(s.span)
	case p < MinProgress:
		return s.min.Add(time.Duration(math.Floor(p / MaxProgress * float64(s.span))))
	}

	// progressAt(lo) <= p < progressAt(hi) holds throughout.
	lo, hi := time.Duration(0), s.span
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if s.progressAt(mid) <= p {
			lo = mid
		} else {
			hi = mid
		}
	}

	return s.min.Add(lo)
}

func (s Scale) progressAt(d time.Duration) float64 {
	return float64(d) / float64(s.span) * MaxProgress
}

func clamp(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return MaxProgress
	case p < MinProgress:
		return MinProgress
	case p > MaxProgress:
		return MaxProgress
	default:
		return p
	}
}
