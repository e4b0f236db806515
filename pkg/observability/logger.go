package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Log attribute keys.
const (
	AttrSession = "session"
	AttrOp      = "op"

	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrMode    = "mode"
)

type scopeKey struct{}

// scope names the session and the event a log record belongs to.
type scope struct {
	session string
	op      string
}

// WithSession tags every record logged with ctx with the session id.
func WithSession(ctx context.Context, id string) context.Context {
	sc := scopeFrom(ctx)
	sc.session = id

	return context.WithValue(ctx, scopeKey{}, sc)
}

// WithOp tags every record logged with ctx with the event or tool being run.
// An inner op replaces an outer one.
func WithOp(ctx context.Context, op string) context.Context {
	sc := scopeFrom(ctx)
	sc.op = op

	return context.WithValue(ctx, scopeKey{}, sc)
}

func scopeFrom(ctx context.Context) scope {
	sc, _ := ctx.Value(scopeKey{}).(scope)

	return sc
}

// TracingHandler is an [slog.Handler] adding to each record the session and
// op of its context, the trace and span ids of a recording span, and the
// service metadata.
type TracingHandler struct {
	inner slog.Handler
}

// NewTracingHandler wraps inner. Service attributes go on first so they
// stay at the top level under later WithGroup calls.
func NewTracingHandler(inner slog.Handler, service string, appMode AppMode) *TracingHandler {
	return &TracingHandler{
		inner: inner.WithAttrs([]slog.Attr{
			slog.String(attrService, service),
			slog.String(attrMode, string(appMode)),
		}),
	}
}

func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.inner.Enabled(ctx, level)
}

func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	if sc := scopeFrom(ctx); sc != (scope{}) {
		if sc.session != "" {
			record.AddAttrs(slog.String(AttrSession, sc.session))
		}

		if sc.op != "" {
			record.AddAttrs(slog.String(AttrOp, sc.op))
		}
	}

	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, span.TraceID().String()),
			slog.String(attrSpanID, span.SpanID().String()),
		)
	}

	if err := th.inner.Handle(ctx, record); err != nil {
		return fmt.Errorf("log record: %w", err)
	}

	return nil
}

func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{inner: th.inner.WithAttrs(attrs)}
}

func (th *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{inner: th.inner.WithGroup(name)}
}
