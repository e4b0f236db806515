package replay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/commitlens/pkg/selection"
	"github.com/Sumatoshi-tech/commitlens/pkg/session"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Digest is the part of a snapshot worth comparing between runs.
type Digest struct {
	Step     int               `json:"step"              yaml:"step"`
	Event    string            `json:"event"             yaml:"event"`
	State    session.State     `json:"state"             yaml:"state"`
	Progress float64           `json:"progress"          yaml:"progress"`
	Bound    string            `json:"bound"             yaml:"bound"`
	Visible  []string          `json:"visible"           yaml:"visible"`
	Selected int               `json:"selected"          yaml:"selected"`
	Tallies  []selection.Tally `json:"tallies,omitempty" yaml:"tallies,omitempty"`
	Focused  int               `json:"focused"           yaml:"focused"`
	Units    int               `json:"units"             yaml:"units"`
	Error    string            `json:"error,omitempty"   yaml:"error,omitempty"`
}

// NewDigest summarizes a snapshot.
func NewDigest(step int, event string, snap session.Snapshot) Digest {
	visible := make([]string, len(snap.Points))
	for i, p := range snap.Points {
		visible[i] = p.CommitID
	}

	d := Digest{
		Step:     step,
		Event:    event,
		State:    snap.State,
		Progress: snap.Progress,
		Visible:  visible,
		Selected: snap.Count(),
		Tallies:  snap.Tallies(),
		Focused:  snap.Focused,
		Units:    snap.Units(),
	}

	if !snap.Bound.IsZero() {
		d.Bound = snap.Bound.Format(time.RFC3339)
	}

	return d
}

// Run applies the events in order and returns one digest per event. Event
// errors (such as focusing a missing step) are recorded in the digest and do
// not stop the run; the session keeps its state in that case.
func Run(ctx context.Context, s *session.Session, script Script) []Digest {
	out := make([]Digest, 0, len(script.Events))

	for i, ev := range script.Events {
		snap, err := Apply(ctx, s, ev)

		d := NewDigest(i+1, ev.Type, snap)
		if err != nil {
			d.Error = err.Error()
		}

		out = append(out, d)
	}

	return out
}

// Apply dispatches a single event to the session.
func Apply(ctx context.Context, s *session.Session, ev Event) (session.Snapshot, error) {
	switch ev.Type {
	case EventProgress:
		return s.SetProgress(ctx, ev.Progress), nil
	case EventBound:
		return s.SetBound(ctx, ev.Bound), nil
	case EventBrush:
		return s.Brush(ctx, rect(ev.Rect)), nil
	case EventBrushEnd:
		return s.BrushEnd(ctx, rect(ev.Rect)), nil
	case EventClear:
		return s.ClearBrush(ctx), nil
	case EventFocus:
		return s.Focus(ctx, ev.Index)
	case EventScroll:
		return s.Scroll(ctx, ev.Offset), nil
	case EventResizeViewport:
		return s.ResizeViewport(ctx, ev.Viewport, ev.Heights)
	case EventResizeChart:
		return s.ResizeChart(ctx, selection.Layout{Width: ev.Width, Height: ev.Height, Padding: ev.Padding}), nil
	default:
		return s.Snapshot(), fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}

func rect(r [4]float64) selection.Rect {
	return selection.NewRect(r[0], r[1], r[2], r[3])
}

// Write encodes the digests in the given format.
func Write(w io.Writer, digests []Digest, format string) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		err := enc.Encode(digests)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(digests)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
