package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.LevelInfo, &buf)

	assert.NotNil(t, logger)
	assert.NotNil(t, logger.logger)
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		log   func(l *SlogLogger)
		want  string
	}{
		{"debug", slog.LevelDebug, func(l *SlogLogger) { l.Debug("test debug", "key", "value") }, "test debug"},
		{"info", slog.LevelInfo, func(l *SlogLogger) { l.Info("test info", "key", "value") }, "test info"},
		{"warn", slog.LevelWarn, func(l *SlogLogger) { l.Warn("test warn", "key", "value") }, "test warn"},
		{"error", slog.LevelError, func(l *SlogLogger) { l.Error("test error", "key", "value") }, "test error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewSlogLogger(tt.level, &buf))

			output := buf.String()
			assert.Contains(t, output, tt.want)
			assert.Contains(t, output, "key=value")
		})
	}
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.LevelWarn, &buf)

	logger.Debug("debug message") // should be filtered out
	logger.Info("info message")   // should be filtered out
	logger.Warn("warn message")   // should appear
	logger.Error("error message") // should appear

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(slog.LevelInfo, FormatJSON, &buf)
	require.NoError(t, err)

	logger.Info("container started", "container", "abc123")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "container started", line["msg"])
	assert.Equal(t, "abc123", line["container"])
}

func TestNew_TextFormatIsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(slog.LevelInfo, "", &buf)
	require.NoError(t, err)

	logger.Info("hello", "key", "value")
	assert.Contains(t, buf.String(), "key=value")
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New(slog.LevelInfo, "xml", &bytes.Buffer{})
	assert.EqualError(t, err, "invalid log format: xml")
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("verbose")
	assert.EqualError(t, err, "invalid log level: verbose")
}
