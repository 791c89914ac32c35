package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"repayment-engine/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNewHandler_JSON(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(newHandler(config.LoggerConfig{Level: "warn", Encoding: "json"}, buf))

	logger.Info("dropped")
	logger.Warn("kept", "loanID", int64(7))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, float64(7), entry["loanID"])
}

func TestNewHandler_Text(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(newHandler(config.LoggerConfig{Level: "info", Encoding: "text"}, buf))

	logger.Info("hello", "component", "test")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "component=test")
}
