package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelWarn, cfg.Level)
	assert.False(t, cfg.JSON)
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.AddSource)
}

func TestInit(t *testing.T) {
	t.Run("debug_flag_follows_level", func(t *testing.T) {
		captureJSON(t)
		assert.True(t, Debug)
	})

	t.Run("nil_output_uses_stderr", func(t *testing.T) {
		Init(Config{Level: slog.LevelInfo})
		assert.NotNil(t, Logger())
		assert.False(t, Debug)
	})
}

func TestLogOperation(t *testing.T) {
	buf := captureJSON(t)
	LogOperation("add_widget", KeyDashboard, "main")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "operation", record["msg"])
	assert.Equal(t, "add_widget", record[KeyOperation])
	assert.Equal(t, "main", record[KeyDashboard])
}

func TestLevelsBelowThresholdAreDropped(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelWarn, Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	DebugLog("hidden")
	Logger().Info("hidden")
	assert.Empty(t, buf.String())

	Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSessionContext(t *testing.T) {
	ctx := NewSessionContext(context.Background())
	id := SessionIDFromContext(ctx)
	assert.Len(t, id, 16)

	assert.Empty(t, SessionIDFromContext(context.Background()))
	assert.Equal(t, "abc", SessionIDFromContext(WithSessionID(context.Background(), "abc")))
}

func TestLoggerFromContext(t *testing.T) {
	buf := captureJSON(t)
	ctx := WithSessionID(context.Background(), "session-1")

	LoggerFromContext(ctx).Debug("tagged")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "session-1", record[KeySessionID])
}

func TestGenerateSessionIDUnique(t *testing.T) {
	assert.NotEqual(t, GenerateSessionID(), GenerateSessionID())
}
