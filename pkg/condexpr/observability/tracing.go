package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies the condexpr instrumentation scope.
const tracerName = "condexpr"

// tracer resolves the condexpr tracer from the global OTel tracer
// provider at span creation time, so a provider installed after
// package init is picked up.
func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when
// disabled.
type SpanManager interface {
	// StartSelectSpan starts a span for a whole branch selection.
	// Returns the context with span and the span itself.
	StartSelectSpan(ctx context.Context, invocationID string) (context.Context, trace.Span)

	// StartStageSpan starts a span for one stage of an invocation
	// ("splice", "conditions", "select"). The stage span should be a
	// child of the selection span.
	StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartSelectSpan starts a span for a whole branch selection.
func (m *otelSpanManager) StartSelectSpan(ctx context.Context, invocationID string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "condexpr.select",
		trace.WithAttributes(
			attribute.String("invocation.id", invocationID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartStageSpan starts a span for one invocation stage.
func (m *otelSpanManager) StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "condexpr.stage."+stage,
		trace.WithAttributes(
			attribute.String("stage", stage),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Convenience functions that operate on the global tracer.

// StartSelectSpan starts a span for a whole branch selection.
// Uses the global OTel tracer.
func StartSelectSpan(ctx context.Context, invocationID string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "condexpr.select",
		trace.WithAttributes(
			attribute.String("invocation.id", invocationID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartStageSpan starts a span for one invocation stage.
// Uses the global OTel tracer.
func StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "condexpr.stage."+stage,
		trace.WithAttributes(
			attribute.String("stage", stage),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}
