package mcp_test

import (
	"context"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/commitlens/pkg/mcp"
	"github.com/Sumatoshi-tech/commitlens/pkg/observability"
)

func connect(t *testing.T, srv *mcp.Server) (context.Context, *mcpsdk.ClientSession) {
	t.Helper()

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()

		cancel()
		<-serverDone
	})

	return ctx, session
}

func TestMCPServer_InMemoryTransport_ToolsList(t *testing.T) {
	t.Parallel()

	ctx, session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	toolsResult, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, toolsResult)

	toolNames := make([]string, 0, len(toolsResult.Tools))
	for _, tool := range toolsResult.Tools {
		toolNames = append(toolNames, tool.Name)
	}

	assert.ElementsMatch(t, []string{
		"commitlens_summary", "commitlens_window", "commitlens_brush", "commitlens_focus", "commitlens_snapshot",
	}, toolNames)

	for _, tool := range toolsResult.Tools {
		assert.NotNil(t, tool.InputSchema, "tool %s missing input schema", tool.Name)
	}
}

func TestMCPServer_InMemoryTransport_CallSummary(t *testing.T) {
	t.Parallel()

	ctx, session := connect(t, mcp.NewServer(mcp.ServerDeps{}))

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "commitlens_summary",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
	assert.NotEmpty(t, result.Content)
}

func TestMCPServer_InMemoryTransport_CallFocus_Error(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx, session := connect(t, mcp.NewServer(mcp.ServerDeps{Metrics: metrics}))

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "commitlens_focus",
		Arguments: map[string]any{"index": 0},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError, "an empty session has no steps")

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := make([]string, 0)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names = append(names, m.Name)
		}
	}

	assert.Contains(t, names, "commitlens.errors.total")
}
