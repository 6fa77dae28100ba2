package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	m.RecordSelection(context.Background(), 0, time.Millisecond, nil)
	m.RecordSelection(context.Background(), -1, time.Millisecond, errors.New("boom"))
	m.RecordStage(context.Background(), "select", time.Millisecond)
}

func TestNoopSpanManager(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	gotCtx, span := m.StartSelectSpan(ctx, "inv-123")
	assert.Equal(t, ctx, gotCtx)
	assert.False(t, span.IsRecording())

	gotCtx, span = m.StartStageSpan(ctx, "conditions")
	assert.Equal(t, ctx, gotCtx)
	assert.False(t, span.IsRecording())

	m.EndSpanWithError(span, errors.New("boom"))
	m.AddSpanEvent(ctx, "event", attribute.Int("index", 1))
}
