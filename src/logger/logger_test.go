package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsUsableWithoutInit(t *testing.T) {
	require.NotNil(t, L)
	L.Info("logging before InitLogger runs")
	assert.False(t, L.Enabled(context.Background(), slog.LevelDebug))
}

func TestInitLoggerAppliesLevel(t *testing.T) {
	InitLogger("debug")
	assert.True(t, L.Enabled(context.Background(), slog.LevelDebug))

	InitLogger("warn")
	assert.False(t, L.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, L.Enabled(context.Background(), slog.LevelWarn))
}

func TestInitLoggerDefaultsUnknownLevelToInfo(t *testing.T) {
	InitLogger("loud")
	assert.True(t, L.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, L.Enabled(context.Background(), slog.LevelDebug))
}
