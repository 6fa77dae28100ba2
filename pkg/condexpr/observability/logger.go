// Package observability provides opt-in observability for engine
// invocations: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Everything is opt-in: the engine is silent and emits nothing unless
// a logger, span manager, or metrics recorder is configured, and all
// interfaces have no-op implementations.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds invocation context to a logger.
// Returns a new logger with the invocation_id field.
//
// Example:
//
//	enriched := EnrichLogger(logger, "b2f7...")
//	enriched.Debug("evaluating condition") // includes invocation_id
func EnrichLogger(logger *slog.Logger, invocationID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("invocation_id", invocationID),
	)
}

// LogSelectStart logs the start of a branch selection.
func LogSelectStart(logger *slog.Logger, invocationID string, flags []string) {
	if logger == nil {
		return
	}
	logger.Debug("selection starting",
		slog.String("invocation_id", invocationID),
		slog.Any("flags", flags),
	)
}

// LogSelectComplete logs a completed branch selection.
// branchIndex is -1 when the default branch was used.
func LogSelectComplete(logger *slog.Logger, invocationID string, durationMs float64, branchIndex int) {
	if logger == nil {
		return
	}
	logger.Info("selection completed",
		slog.String("invocation_id", invocationID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("branch_index", branchIndex),
		slog.Bool("default_used", branchIndex < 0),
	)
}

// LogSelectError logs a failed branch selection.
func LogSelectError(logger *slog.Logger, invocationID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("selection failed",
		slog.String("invocation_id", invocationID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogConditionEvaluated logs the outcome of a single condition.
func LogConditionEvaluated(logger *slog.Logger, index int, condition string, truthy bool) {
	if logger == nil {
		return
	}
	logger.Debug("condition evaluated",
		slog.Int("index", index),
		slog.String("condition", condition),
		slog.Bool("truthy", truthy),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in
// milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
