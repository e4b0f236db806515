package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/commitlens/pkg/replay"
	"github.com/Sumatoshi-tech/commitlens/pkg/selection"
	"github.com/Sumatoshi-tech/commitlens/pkg/session"
	"github.com/Sumatoshi-tech/commitlens/pkg/summary"
)

// Tool name constants.
const (
	ToolNameSummary  = "commitlens_summary"
	ToolNameWindow   = "commitlens_window"
	ToolNameBrush    = "commitlens_brush"
	ToolNameFocus    = "commitlens_focus"
	ToolNameSnapshot = "commitlens_snapshot"
)

// Sentinel errors for tool input validation.
var (
	// ErrWindowTarget indicates neither or both of progress and bound were given.
	ErrWindowTarget = errors.New("exactly one of progress or bound is required")
	// ErrInvalidBound indicates the bound is not an RFC 3339 timestamp.
	ErrInvalidBound = errors.New("bound must be an RFC 3339 timestamp")
	// ErrBrushMode indicates final and clear were both set.
	ErrBrushMode = errors.New("final and clear are mutually exclusive")
)

// Input types (auto-generate JSON schemas via struct tags).

// SummaryInput is the input schema for the commitlens_summary tool.
type SummaryInput struct{}

// WindowInput is the input schema for the commitlens_window tool.
type WindowInput struct {
	Progress *float64 `json:"progress,omitempty" jsonschema:"slider position between 0 and 100"`
	Bound    string   `json:"bound,omitempty"    jsonschema:"upper time bound as RFC 3339 (e.g. 2024-03-06T12:00:00Z)"`
}

// BrushInput is the input schema for the commitlens_brush tool.
type BrushInput struct {
	X0    float64 `json:"x0,omitempty"    jsonschema:"first corner x in chart pixels"`
	Y0    float64 `json:"y0,omitempty"    jsonschema:"first corner y in chart pixels"`
	X1    float64 `json:"x1,omitempty"    jsonschema:"second corner x in chart pixels"`
	Y1    float64 `json:"y1,omitempty"    jsonschema:"second corner y in chart pixels"`
	Final bool    `json:"final,omitempty" jsonschema:"end the gesture and compute the language breakdown"`
	Clear bool    `json:"clear,omitempty" jsonschema:"drop the current brush"`
}

// FocusInput is the input schema for the commitlens_focus tool.
type FocusInput struct {
	Index int `json:"index" jsonschema:"zero-based narrative step index"`
}

// SnapshotInput is the input schema for the commitlens_snapshot tool.
type SnapshotInput struct {
	Points bool `json:"points,omitempty" jsonschema:"include the visible chart points"`
	Files  bool `json:"files,omitempty"  jsonschema:"include the file unit groups"`
}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// SummaryOutput is the commitlens_summary payload.
type SummaryOutput struct {
	Summary    summary.Summary `json:"summary"`
	Visible    int             `json:"visible"`
	BoundLabel string          `json:"bound_label"`
}

// BrushOutput is the commitlens_brush payload.
type BrushOutput struct {
	State     session.State      `json:"state"`
	Selection *session.Selection `json:"selection,omitempty"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

func (s *Server) handleSummary(_ context.Context, _ *mcpsdk.CallToolRequest, _ SummaryInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	snap := s.session.Snapshot()

	return jsonResult(SummaryOutput{Summary: snap.Summary, Visible: len(snap.Points), BoundLabel: snap.BoundLabel})
}

func (s *Server) handleWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, input WindowInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if (input.Progress == nil) == (input.Bound == "") {
		return errorResult(ErrWindowTarget)
	}

	if input.Progress != nil {
		return jsonResult(replay.NewDigest(0, replay.EventProgress, s.session.SetProgress(ctx, *input.Progress)))
	}

	bound, err := time.Parse(time.RFC3339, input.Bound)
	if err != nil {
		return errorResult(fmt.Errorf("%w: %q", ErrInvalidBound, input.Bound))
	}

	return jsonResult(replay.NewDigest(0, replay.EventBound, s.session.SetBound(ctx, bound)))
}

func (s *Server) handleBrush(ctx context.Context, _ *mcpsdk.CallToolRequest, input BrushInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	var snap session.Snapshot

	rect := selection.NewRect(input.X0, input.Y0, input.X1, input.Y1)

	switch {
	case input.Final && input.Clear:
		return errorResult(ErrBrushMode)
	case input.Clear:
		snap = s.session.ClearBrush(ctx)
	case input.Final:
		snap = s.session.BrushEnd(ctx, rect)
	default:
		snap = s.session.Brush(ctx, rect)
	}

	return jsonResult(BrushOutput{State: snap.State, Selection: snap.Selection})
}

func (s *Server) handleFocus(ctx context.Context, _ *mcpsdk.CallToolRequest, input FocusInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	snap, err := s.session.Focus(ctx, input.Index)
	if err != nil {
		return errorResult(fmt.Errorf("focus %d: %w", input.Index, err))
	}

	return jsonResult(replay.NewDigest(0, replay.EventFocus, snap))
}

func (s *Server) handleSnapshot(_ context.Context, _ *mcpsdk.CallToolRequest, input SnapshotInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	snap := s.session.Snapshot()

	if !input.Points {
		snap.Points = nil
	}

	if !input.Files {
		snap.Files = nil
	}

	return jsonResult(snap)
}
