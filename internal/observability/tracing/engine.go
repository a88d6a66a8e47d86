package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const engineTracerName = "github.com/hushd/hushd/internal/service/scheduler"

func EngineTracer() trace.Tracer {
	return otel.Tracer(engineTracerName)
}

func StartEvaluationSpan(ctx context.Context, runID, trigger string, now time.Time) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "dnd.evaluation",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("trigger", trigger),
			attribute.String("evaluated_at", now.Format(time.RFC3339)),
		),
	)
}

func StartSourceQuerySpan(ctx context.Context, windowStart, windowEnd time.Time) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "dnd.source_query",
		trace.WithAttributes(
			attribute.String("window.start", windowStart.Format(time.RFC3339)),
			attribute.String("window.end", windowEnd.Format(time.RFC3339)),
			attribute.Int64("window.minutes", int64(windowEnd.Sub(windowStart).Minutes())),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartApplySpan(ctx context.Context, active bool) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "dnd.apply",
		trace.WithAttributes(
			attribute.Bool("dnd_active", active),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordEvaluationResult(span trace.Span, active, applied, pendingPermission bool, boundary *time.Time, err error) {
	span.SetAttributes(
		attribute.Bool("decision.dnd_active", active),
		attribute.Bool("decision.applied", applied),
		attribute.Bool("decision.pending_permission", pendingPermission),
	)
	if boundary != nil {
		span.SetAttributes(attribute.String("decision.next_boundary", boundary.Format(time.RFC3339)))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// InjectToHTTPRequest propagates the current trace context onto an outgoing
// adapter request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
