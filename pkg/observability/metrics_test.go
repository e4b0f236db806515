package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/commitlens/pkg/observability"
)

var errBoom = errors.New("boom")

func setupTestMeter(t *testing.T) (*observability.REDMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return red, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func TestREDMetrics_RecordRequest(t *testing.T) {
	t.Parallel()

	red, reader := setupTestMeter(t)

	red.RecordRequest(context.Background(), "session.brush", observability.StatusOK, time.Millisecond)

	rm := collectMetrics(t, reader)

	require.NotNil(t, findMetric(rm, "commitlens.events.total"))
	require.NotNil(t, findMetric(rm, "commitlens.event.duration.seconds"))
	assert.Nil(t, findMetric(rm, "commitlens.errors.total"))
}

func TestREDMetrics_ObserveCountsErrors(t *testing.T) {
	t.Parallel()

	red, reader := setupTestMeter(t)

	err := red.Observe(context.Background(), "session.focus", func() error { return errBoom })
	require.ErrorIs(t, err, errBoom)

	rm := collectMetrics(t, reader)

	errTotal := findMetric(rm, "commitlens.errors.total")
	require.NotNil(t, errTotal)

	sum, ok := errTotal.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
}

func TestREDMetrics_NilObserveRunsFn(t *testing.T) {
	t.Parallel()

	var red *observability.REDMetrics

	called := false
	require.NoError(t, red.Observe(context.Background(), "op", func() error {
		called = true

		return nil
	}))
	assert.True(t, called)
}

func TestREDMetrics_TrackInflight(t *testing.T) {
	t.Parallel()

	red, reader := setupTestMeter(t)

	done := red.TrackInflight(context.Background(), "session.load")
	done()

	rm := collectMetrics(t, reader)

	inflight := findMetric(rm, "commitlens.inflight.events")
	require.NotNil(t, inflight)

	sum, ok := inflight.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(0), sum.DataPoints[0].Value)
}
