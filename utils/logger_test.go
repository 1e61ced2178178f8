package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithOptions("info", "json", &buf)

	l.Info("[loader] loaded %d rows", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "[loader] loaded 3 rows", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithOptions("warn", "json", &buf)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown %s", "warn")
	l.Error("shown %s", "error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithOptions("chatty", "json", &buf)

	l.Debug("dropped")
	l.Info("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
