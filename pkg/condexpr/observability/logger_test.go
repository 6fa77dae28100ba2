package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}

func TestEnrichLogger(t *testing.T) {
	logger, buf := debugLogger()

	enriched := EnrichLogger(logger, "inv-123")
	require.NotNil(t, enriched)
	enriched.Debug("checking")

	assert.Contains(t, buf.String(), "invocation_id=inv-123")
	assert.Contains(t, buf.String(), "checking")
}

func TestEnrichLogger_Nil(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "inv-123"))
}

func TestLogSelectStart(t *testing.T) {
	logger, buf := debugLogger()

	LogSelectStart(logger, "inv-123", []string{"case_insensitive"})

	out := buf.String()
	assert.Contains(t, out, "selection starting")
	assert.Contains(t, out, "invocation_id=inv-123")
	assert.Contains(t, out, "case_insensitive")
}

func TestLogSelectComplete(t *testing.T) {
	logger, buf := debugLogger()

	LogSelectComplete(logger, "inv-123", 1.5, 2)

	out := buf.String()
	assert.Contains(t, out, "selection completed")
	assert.Contains(t, out, "branch_index=2")
	assert.Contains(t, out, "default_used=false")
}

func TestLogSelectComplete_DefaultBranch(t *testing.T) {
	logger, buf := debugLogger()

	LogSelectComplete(logger, "inv-123", 0.1, -1)

	assert.Contains(t, buf.String(), "default_used=true")
}

func TestLogSelectError(t *testing.T) {
	logger, buf := debugLogger()

	LogSelectError(logger, "inv-123", errors.New("boom"), 0.2)

	out := buf.String()
	assert.Contains(t, out, "selection failed")
	assert.Contains(t, out, "boom")
}

func TestLogConditionEvaluated(t *testing.T) {
	logger, buf := debugLogger()

	LogConditionEvaluated(logger, 0, "VALUE > 10", true)

	out := buf.String()
	assert.Contains(t, out, "condition evaluated")
	assert.Contains(t, out, "truthy=true")
	assert.Contains(t, out, "VALUE > 10")
}

func TestLogHelpers_NilLogger(t *testing.T) {
	// None of these should panic with a nil logger.
	LogSelectStart(nil, "inv", nil)
	LogSelectComplete(nil, "inv", 0, 0)
	LogSelectError(nil, "inv", errors.New("boom"), 0)
	LogConditionEvaluated(nil, 0, "true", true)
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	elapsed := done()
	assert.GreaterOrEqual(t, elapsed, 0.0)
}
