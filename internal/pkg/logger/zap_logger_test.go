package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewWithCore(core)

	l.Info("CHAT", "message stored", map[string]interface{}{"session_id": "abc"})
	l.Error("CHAT", "relay failed", map[string]interface{}{"error": errors.New("boom")})
	l.Debug("CHAT", "nil details", nil)

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "message stored", entries[0].Message)
	assert.Equal(t, "CHAT", entries[0].ContextMap()["module"])

	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])

	assert.Equal(t, map[string]interface{}{}, entries[2].ContextMap()["details"])
}

func TestNewZapLogger_WritesFile(t *testing.T) {
	path := t.TempDir() + "/app.log"
	l := NewZapLogger(path, true)
	l.Info("TEST", "hello", nil)
	_ = l.Sync()
	assert.FileExists(t, path)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Warn("TEST", "ignored", nil)
		_ = l.Sync()
	})
}
