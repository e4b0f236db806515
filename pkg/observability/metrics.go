package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricEventsTotal    = "commitlens.events.total"
	metricEventDuration  = "commitlens.event.duration.seconds"
	metricErrorsTotal    = "commitlens.errors.total"
	metricInflightEvents = "commitlens.inflight.events"

	attrOp     = "op"
	attrStatus = "status"

	// StatusOK marks a successful event.
	StatusOK = "ok"
	// StatusError marks a failed event.
	StatusError = "error"
)

// Session events finish in microseconds; loads can take seconds.
var durationBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30}

// REDMetrics holds the OTel instruments for Rate, Error, Duration metrics.
type REDMetrics struct {
	eventsTotal    metric.Int64Counter
	eventDuration  metric.Float64Histogram
	errorsTotal    metric.Int64Counter
	inflightEvents metric.Int64UpDownCounter
}

// NewREDMetrics creates RED metric instruments from the given meter.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	total, err := mt.Int64Counter(metricEventsTotal,
		metric.WithDescription("Total number of session events"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricEventsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricEventDuration,
		metric.WithDescription("Session event duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricEventDuration, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of failed session events"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricInflightEvents,
		metric.WithDescription("Number of in-flight session events"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInflightEvents, err)
	}

	return &REDMetrics{
		eventsTotal:    total,
		eventDuration:  duration,
		errorsTotal:    errTotal,
		inflightEvents: inflight,
	}, nil
}

// RecordRequest records a completed event with its operation, status, and duration.
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.eventsTotal.Add(ctx, 1, attrs)
	rm.eventDuration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		rm.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrOp, op),
		))
	}
}

// TrackInflight increments the in-flight gauge and returns a function to decrement it.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflightEvents.Add(ctx, 1, attrs)

	return func() {
		rm.inflightEvents.Add(ctx, -1, attrs)
	}
}

// Observe runs fn as operation op, recording duration and status. A nil
// receiver runs fn unobserved.
func (rm *REDMetrics) Observe(ctx context.Context, op string, fn func() error) error {
	if rm == nil {
		return fn()
	}

	done := rm.TrackInflight(ctx, op)
	defer done()

	start := time.Now()
	err := fn()

	status := StatusOK
	if err != nil {
		status = StatusError
	}

	rm.RecordRequest(ctx, op, status, time.Since(start))

	return err
}
