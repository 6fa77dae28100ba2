package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records engine invocation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when
// disabled.
type MetricsRecorder interface {
	// RecordSelection records a completed branch selection.
	// branchIndex is -1 when the default branch was used.
	RecordSelection(ctx context.Context, branchIndex int, duration time.Duration, err error)

	// RecordStage records the duration of one invocation stage
	// ("splice", "conditions", "select").
	RecordStage(ctx context.Context, stage string, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	selections       metric.Int64Counter
	selectionLatency metric.Float64Histogram
	selectionErrors  metric.Int64Counter
	stageLatency     metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("condexpr")

	selections, err := meter.Int64Counter("condexpr.selections",
		metric.WithDescription("Number of branch selections"),
	)
	if err != nil {
		return nil, err
	}

	selectionLatency, err := meter.Float64Histogram("condexpr.selection.latency_ms",
		metric.WithDescription("Branch selection latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	selectionErrors, err := meter.Int64Counter("condexpr.selection.errors",
		metric.WithDescription("Number of failed branch selections"),
	)
	if err != nil {
		return nil, err
	}

	stageLatency, err := meter.Float64Histogram("condexpr.stage.latency_ms",
		metric.WithDescription("Invocation stage latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		selections:       selections,
		selectionLatency: selectionLatency,
		selectionErrors:  selectionErrors,
		stageLatency:     stageLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordSelection records a completed branch selection.
func (m *otelMetrics) RecordSelection(ctx context.Context, branchIndex int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("default_used", branchIndex < 0),
	}

	m.selections.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.selectionLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.selectionErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordStage records the duration of one invocation stage.
func (m *otelMetrics) RecordStage(ctx context.Context, stage string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("stage", stage),
	}
	m.stageLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}
