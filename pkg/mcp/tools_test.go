package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/commitlens/pkg/changelog"
	"github.com/Sumatoshi-tech/commitlens/pkg/replay"
	"github.com/Sumatoshi-tech/commitlens/pkg/selection"
	"github.com/Sumatoshi-tech/commitlens/pkg/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	a := time.Date(2024, time.March, 3, 2, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 6, 10, 30, 0, 0, time.UTC)

	sess := session.New(session.Options{
		Location: time.UTC,
		Layout:   selection.Layout{Width: 240, Height: 700},
	})
	sess.LoadRecords(context.Background(), []changelog.ChangeRecord{
		{CommitID: "a", FilePath: "a.js", LineNumber: 1, Author: "ann", Timestamp: a},
		{CommitID: "a", FilePath: "b.css", LineNumber: 1, Author: "ann", Timestamp: a},
		{CommitID: "b", FilePath: "index.html", LineNumber: 1, Author: "bo", Timestamp: b},
	})

	return NewServer(ServerDeps{Session: sess})
}

func errorText(t *testing.T, result *mcpsdk.CallToolResult) string {
	t.Helper()

	require.NotNil(t, result)
	require.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	return text.Text
}

func TestListToolNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		ToolNameBrush, ToolNameFocus, ToolNameSnapshot, ToolNameSummary, ToolNameWindow,
	}, newTestServer(t).ListToolNames())
}

func TestHandleSummary(t *testing.T) {
	t.Parallel()

	result, out, err := newTestServer(t).handleSummary(context.Background(), &mcpsdk.CallToolRequest{}, SummaryInput{})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	payload, ok := out.Data.(SummaryOutput)
	require.True(t, ok)
	assert.Equal(t, 2, payload.Summary.Commits)
	assert.Equal(t, 2, payload.Visible)
}

func TestHandleWindow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()
	zero := 0.0

	_, out, err := srv.handleWindow(ctx, &mcpsdk.CallToolRequest{}, WindowInput{Progress: &zero})
	require.NoError(t, err)

	digest, ok := out.Data.(replay.Digest)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, digest.Visible)
	assert.Equal(t, session.StateFiltered, digest.State)

	_, out, err = srv.handleWindow(ctx, &mcpsdk.CallToolRequest{}, WindowInput{Bound: "2024-03-07T00:00:00Z"})
	require.NoError(t, err)

	digest, ok = out.Data.(replay.Digest)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, digest.Visible)
}

func TestHandleWindow_Errors(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()
	half := 50.0

	result, _, err := srv.handleWindow(ctx, &mcpsdk.CallToolRequest{}, WindowInput{})
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "exactly one")

	result, _, err = srv.handleWindow(ctx, &mcpsdk.CallToolRequest{}, WindowInput{Progress: &half, Bound: "2024-03-07T00:00:00Z"})
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "exactly one")

	result, _, err = srv.handleWindow(ctx, &mcpsdk.CallToolRequest{}, WindowInput{Bound: "tomorrow"})
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "RFC 3339")
}

func TestHandleBrush(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()
	in := BrushInput{X0: 0, Y0: 0, X1: 240, Y1: 700}

	_, out, err := srv.handleBrush(ctx, &mcpsdk.CallToolRequest{}, in)
	require.NoError(t, err)

	live, ok := out.Data.(BrushOutput)
	require.True(t, ok)
	assert.Equal(t, session.StateSelecting, live.State)
	require.NotNil(t, live.Selection)
	assert.Equal(t, 2, live.Selection.Count)

	in.Final = true
	_, out, err = srv.handleBrush(ctx, &mcpsdk.CallToolRequest{}, in)
	require.NoError(t, err)

	final, ok := out.Data.(BrushOutput)
	require.True(t, ok)
	assert.Equal(t, session.StateSelected, final.State)
	assert.Len(t, final.Selection.Tallies, 3)

	_, out, err = srv.handleBrush(ctx, &mcpsdk.CallToolRequest{}, BrushInput{Clear: true})
	require.NoError(t, err)

	cleared, ok := out.Data.(BrushOutput)
	require.True(t, ok)
	assert.Nil(t, cleared.Selection)

	result, _, err := srv.handleBrush(ctx, &mcpsdk.CallToolRequest{}, BrushInput{Final: true, Clear: true})
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "mutually exclusive")
}

func TestHandleFocus(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()

	_, out, err := srv.handleFocus(ctx, &mcpsdk.CallToolRequest{}, FocusInput{Index: 0})
	require.NoError(t, err)

	digest, ok := out.Data.(replay.Digest)
	require.True(t, ok)
	assert.Equal(t, 0, digest.Focused)
	assert.Equal(t, []string{"a"}, digest.Visible)

	result, _, err := srv.handleFocus(ctx, &mcpsdk.CallToolRequest{}, FocusInput{Index: 9})
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "focus 9")
}

func TestHandleSnapshot(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	result, _, err := srv.handleSnapshot(context.Background(), &mcpsdk.CallToolRequest{}, SnapshotInput{})
	require.NoError(t, err)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	var snap session.Snapshot

	require.NoError(t, json.Unmarshal([]byte(text.Text), &snap))
	assert.Empty(t, snap.Points)
	assert.Empty(t, snap.Files)
	assert.Len(t, snap.Steps, 2)

	_, out, err := srv.handleSnapshot(context.Background(), &mcpsdk.CallToolRequest{}, SnapshotInput{Points: true, Files: true})
	require.NoError(t, err)

	full, ok := out.Data.(session.Snapshot)
	require.True(t, ok)
	assert.Len(t, full.Points, 2)
	assert.Len(t, full.Files, 3)
}
