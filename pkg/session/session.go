// Package session owns one exploration session: the loaded log, its derived
// commits and statistics, the time window, the brush and the narrative. Every
// adapter drives it through events and reads the published snapshots.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sumatoshi-tech/commitlens/pkg/changelog"
	"github.com/Sumatoshi-tech/commitlens/pkg/commits"
	"github.com/Sumatoshi-tech/commitlens/pkg/narrative"
	"github.com/Sumatoshi-tech/commitlens/pkg/observability"
	"github.com/Sumatoshi-tech/commitlens/pkg/selection"
	"github.com/Sumatoshi-tech/commitlens/pkg/summary"
	"github.com/Sumatoshi-tech/commitlens/pkg/timewindow"
	"github.com/Sumatoshi-tech/commitlens/pkg/unitview"
)

// DefaultBoundLayout formats the bound label.
const DefaultBoundLayout = "2006-01-02 15:04"

// ErrHeightsMismatch is returned when step heights do not match the steps.
var ErrHeightsMismatch = errors.New("step heights do not match the narrative steps")

var sessionSeq atomic.Uint64

// Options configures a session. Zero values take the package defaults.
type Options struct {
	// ID tags the session's log records. Defaults to session-N.
	ID             string
	Location       *time.Location
	Layout         selection.Layout
	Threshold      float64
	ViewportHeight float64
	StepHeight     float64
	BoundLayout    string
	LoadTimeout    time.Duration
	Logger         *slog.Logger
	Metrics        *observability.REDMetrics
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}

	if o.Layout == (selection.Layout{}) {
		o.Layout = selection.DefaultLayout()
	}

	if o.Threshold == 0 {
		o.Threshold = narrative.DefaultThreshold
	}

	if o.ViewportHeight == 0 {
		o.ViewportHeight = narrative.DefaultViewportHeight
	}

	if o.StepHeight == 0 {
		o.StepHeight = narrative.DefaultStepHeight
	}

	if o.BoundLayout == "" {
		o.BoundLayout = DefaultBoundLayout
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	if o.ID == "" {
		o.ID = fmt.Sprintf("session-%d", sessionSeq.Add(1))
	}

	return o
}

// Session serializes events: each event runs its whole recompute cycle under
// the lock and publishes exactly one snapshot.
type Session struct {
	mu   sync.Mutex
	opts Options

	records []changelog.ChangeRecord
	commits []commits.Commit
	summary summary.Summary

	filter   *timewindow.Filter
	engine   *selection.Engine
	driver   *narrative.Driver
	tracker  *narrative.Tracker
	enterErr error
	files    []unitview.FileGroup

	subscribers []func(Snapshot)
	snapshot    Snapshot
}

// New returns an empty session.
func New(opts Options) *Session {
	s := &Session{opts: opts.withDefaults()}
	s.reset(nil)
	s.publish()

	return s
}

// Subscribe registers fn to receive every published snapshot. fn runs while
// the session is locked and must not call back into it.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, fn)
	idx := len(s.subscribers) - 1

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.subscribers[idx] = nil
	}
}

// Load replaces the session data with the records of src. A failing source
// leaves an empty session and is logged, never returned.
func (s *Session) Load(ctx context.Context, src changelog.Source) Snapshot {
	ctx = observability.WithOp(observability.WithSession(ctx, s.opts.ID), "session.load")

	if s.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.opts.LoadTimeout)
		defer cancel()
	}

	var records []changelog.ChangeRecord

	err := s.opts.Metrics.Observe(ctx, "session.load", func() error {
		var loadErr error

		records, loadErr = changelog.Load(ctx, src)

		return loadErr
	})
	if err != nil {
		s.opts.Logger.WarnContext(ctx, "load failed, continuing with an empty log",
			"source", src.Name(), "error", err)

		records = nil
	}

	return s.LoadRecords(ctx, records)
}

// LoadRecords replaces the session data with records.
func (s *Session) LoadRecords(ctx context.Context, records []changelog.ChangeRecord) Snapshot {
	ctx = observability.WithOp(observability.WithSession(ctx, s.opts.ID), "session.reset")

	return s.cycle(ctx, "session.reset", func() error {
		s.reset(records)

		s.opts.Logger.InfoContext(ctx, "log loaded",
			"records", len(s.records),
			"commit_ids", s.summary.DistinctCommitIDs,
			"commits", len(s.commits))

		return nil
	})
}

// SetProgress moves the slider.
func (s *Session) SetProgress(ctx context.Context, p float64) Snapshot {
	return s.cycle(ctx, "session.set_progress", func() error {
		s.filter.SetProgress(p)

		return nil
	})
}

// SetBound moves the bound to t.
func (s *Session) SetBound(ctx context.Context, t time.Time) Snapshot {
	return s.cycle(ctx, "session.set_bound", func() error {
		s.filter.SetBound(t)

		return nil
	})
}

// Brush updates the live selection rectangle.
func (s *Session) Brush(ctx context.Context, r selection.Rect) Snapshot {
	return s.cycle(ctx, "session.brush", func() error {
		s.engine.Update(r, s.filter.Filtered())

		return nil
	})
}

// BrushEnd finalizes the selection and computes its language breakdown.
func (s *Session) BrushEnd(ctx context.Context, r selection.Rect) Snapshot {
	return s.cycle(ctx, "session.brush_end", func() error {
		s.engine.Finalize(r, s.filter.Filtered())

		return nil
	})
}

// ClearBrush removes the selection.
func (s *Session) ClearBrush(ctx context.Context) Snapshot {
	return s.cycle(ctx, "session.clear", func() error {
		s.engine.Clear()

		return nil
	})
}

// Focus enters narrative step i, moving the bound to its commit. The scroll
// tracker takes i as its focus so that scrolling back into any other step
// moves the bound again.
func (s *Session) Focus(ctx context.Context, i int) (Snapshot, error) {
	var focusErr error

	snap := s.cycle(ctx, "session.focus", func() error {
		focusErr = s.driver.Focus(i)
		if focusErr == nil {
			s.tracker.SetFocused(i)
		}

		return focusErr
	})

	return snap, focusErr
}

// Scroll moves the narrative scroll offset. Entering a new step focuses it.
func (s *Session) Scroll(ctx context.Context, offset float64) Snapshot {
	return s.cycle(ctx, "session.scroll", func() error {
		s.enterErr = nil
		s.tracker.Scroll(offset)

		if s.enterErr != nil {
			s.tracker.SetFocused(s.driver.Focused())

			return s.enterErr
		}

		return nil
	})
}

// ResizeViewport recomputes narrative step boundaries. Nil heights keep one
// uniform step height per commit; otherwise there must be one height per
// step, and a mismatch leaves the layout unchanged.
func (s *Session) ResizeViewport(ctx context.Context, viewport float64, heights []float64) (Snapshot, error) {
	var resizeErr error

	snap := s.cycle(ctx, "session.resize_viewport", func() error {
		if heights == nil {
			heights = narrative.UniformHeights(s.driver.Len(), s.opts.StepHeight)
		}

		if len(heights) != s.driver.Len() {
			resizeErr = fmt.Errorf("%w: %d heights for %d steps", ErrHeightsMismatch, len(heights), s.driver.Len())

			return resizeErr
		}

		s.opts.ViewportHeight = viewport
		s.tracker.Resize(viewport, heights)

		return nil
	})

	return snap, resizeErr
}

// ResizeChart changes the chart geometry. The brush belongs to the old
// geometry and is cleared.
func (s *Session) ResizeChart(ctx context.Context, layout selection.Layout) Snapshot {
	return s.cycle(ctx, "session.resize_chart", func() error {
		s.opts.Layout = layout
		s.engine.SetProjector(layout)

		return nil
	})
}

// ID returns the session id used in logs.
func (s *Session) ID() string {
	return s.opts.ID
}

// Snapshot returns the last published snapshot.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot
}

// Records returns the loaded records.
func (s *Session) Records() []changelog.ChangeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.records
}

// SelectedRecords returns the records of the finalized selection.
func (s *Session) SelectedRecords() []changelog.ChangeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.SelectedRecords()
}

func (s *Session) cycle(ctx context.Context, op string, fn func() error) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = observability.WithOp(observability.WithSession(ctx, s.opts.ID), op)

	err := s.opts.Metrics.Observe(ctx, op, fn)
	if err != nil {
		s.opts.Logger.DebugContext(ctx, "event rejected", "op", op, "error", err)
	}

	s.publish()

	return s.snapshot
}

// reset rebuilds every component without publishing. The selection is subscribed to the filter
// first so that any window change clears the brush before the views refresh.
func (s *Session) reset(records []changelog.ChangeRecord) {
	s.records = records
	s.commits = commits.Aggregate(records, s.opts.Location)
	s.summary = summary.Compute(records, s.commits)

	s.filter = timewindow.New(s.commits)
	s.engine = selection.NewEngine(s.opts.Layout)

	s.filter.Subscribe(func(timewindow.Window, []commits.Commit) {
		s.engine.Clear()
	})
	s.filter.Subscribe(func(_ timewindow.Window, filtered []commits.Commit) {
		s.files = unitview.Build(filtered)
	})

	s.files = unitview.Build(s.filter.Filtered())
	s.driver = narrative.NewDriver(s.filter, s.commits)
	s.tracker = narrative.NewTracker(
		s.opts.Threshold,
		s.opts.ViewportHeight,
		narrative.UniformHeights(len(s.commits), s.opts.StepHeight),
		func(i int) {
			s.enterErr = s.driver.Focus(i)
		},
	)
}

func (s *Session) publish() {
	s.snapshot = s.build()

	for _, fn := range s.subscribers {
		if fn != nil {
			fn(s.snapshot)
		}
	}
}

func (s *Session) build() Snapshot {
	w := s.filter.Window()
	filtered := s.filter.Filtered()

	points := make([]Point, len(filtered))
	for i, c := range filtered {
		p := s.engine.Point(c)
		points[i] = Point{
			CommitID: c.ID,
			Author:   c.Author,
			Datetime: c.Datetime,
			Hour:     c.Hour,
			Weekday:  int(c.Day),
			Day:      c.DayLabel(),
			Lines:    c.LineCount,
			X:        p.X,
			Y:        p.Y,
			Opacity:  s.engine.Opacity(c),
			Selected: s.engine.IsSelected(c),
		}
	}

	snap := Snapshot{
		State:     s.state(),
		Progress:  w.Progress,
		Bound:     w.Bound,
		Commits:   len(s.commits),
		Layout:    s.opts.Layout,
		Points:    points,
		Summary:   s.summary,
		Files:     s.files,
		Selection: s.selection(),
		Steps:     s.driver.Steps(),
		Focused:   s.driver.Focused(),
	}

	if !w.Bound.IsZero() {
		snap.BoundLabel = w.Bound.In(s.opts.Location).Format(s.opts.BoundLayout)
	}

	return snap
}

func (s *Session) selection() *Selection {
	r, ok := s.engine.Rect()
	if !ok {
		return nil
	}

	n, _ := s.engine.Count()

	return &Selection{
		Rect:    r,
		Count:   n,
		Final:   s.engine.Phase() == selection.PhaseFinalized,
		Tallies: s.engine.Tallies(),
	}
}

func (s *Session) state() State {
	switch s.engine.Phase() {
	case selection.PhaseBrushing:
		return StateSelecting
	case selection.PhaseFinalized:
		return StateSelected
	default:
		if s.filter.Progress() < timewindow.MaxProgress {
			return StateFiltered
		}

		return StateIdle
	}
}
