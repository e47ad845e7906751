package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNew_JSONInProduction(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "production", Level: slog.LevelInfo})

	log.Info("book created", "id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "book created", entry["msg"])
	assert.Equal(t, "abc", entry["id"])
}

func TestPrettyHandler(t *testing.T) {
	t.Run("writes message and attributes", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Config{Writer: &buf, Format: FormatPretty, Level: slog.LevelInfo})

		log.With("component", "http").WithGroup("req").Info("served", "status", 200)

		out := buf.String()
		assert.Contains(t, out, "served")
		assert.Contains(t, out, "component")
		assert.Contains(t, out, "req.status")
	})

	t.Run("drops records below level", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Config{Writer: &buf, Format: FormatPretty, Level: slog.LevelWarn})

		log.Info("hidden")

		assert.Empty(t, buf.String())
	})
}
