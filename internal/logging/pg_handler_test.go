package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newIdleHandler builds a handler whose ticker never fires during a test,
// so buffered entries can be inspected without a database behind it.
func newIdleHandler(batchSize int) *PGHandler {
	return NewPGHandler(nil, batchSize, time.Hour)
}

func TestNewPGHandlerClampsInvalidSettings(t *testing.T) {
	h := NewPGHandler(nil, 0, 0)
	defer h.Stop()
	assert.Equal(t, defaultLogBatchSize, h.batchSize)

	h2 := NewPGHandler(nil, -5, -time.Second)
	defer h2.Stop()
	assert.Equal(t, defaultLogBatchSize, h2.batchSize)
}

func TestPGHandlerHonorsConfiguredBatchSize(t *testing.T) {
	h := newIdleHandler(200)
	assert.Equal(t, 200, h.batchSize)
	assert.Equal(t, 200, cap(h.buffer))
}

func TestPGHandlerEnabledErrorAndAbove(t *testing.T) {
	h := newIdleHandler(10)
	ctx := context.Background()

	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.False(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))
}

func TestPGHandlerMapsKnownAttrs(t *testing.T) {
	h := newIdleHandler(10)

	record := slog.NewRecord(time.Now(), slog.LevelError, "payment failed", 0)
	record.AddAttrs(
		slog.String("app_id", "silvergrove"),
		slog.String("trace_id", "trace-123"),
		slog.String("user_id", "user-456"),
		slog.String("action", "reserve"),
		slog.String("error", "timeout"),
		slog.String("region", "eu-west"),
	)
	require.NoError(t, h.Handle(context.Background(), record))

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.buffer, 1)

	entry := h.buffer[0]
	assert.Equal(t, "payment failed", entry.Message)
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "silvergrove", entry.AppID)
	assert.Equal(t, "trace-123", entry.TraceID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "user-456", *entry.UserID)
	assert.Equal(t, "reserve", entry.Action)
	assert.Equal(t, "timeout", entry.Error)
	// Unknown keys land in the Extra JSON blob.
	assert.Contains(t, string(entry.Extra), "eu-west")
}
