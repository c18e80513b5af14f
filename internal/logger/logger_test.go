package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	result := New("", "info")
	assert.IsType(t, &slog.Logger{}, result)
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{
			name:     "Test 1: Debug level",
			input:    "Debug",
			expected: slog.LevelDebug,
		},
		{
			name:     "Test 2: Info level",
			input:    "info",
			expected: slog.LevelInfo,
		},
		{
			name:     "Test 3: Warn level",
			input:    "Warn",
			expected: slog.LevelWarn,
		},
		{
			name:     "Test 4: Error level",
			input:    "ERROR",
			expected: slog.LevelError,
		},
		{
			name:     "Test 5: Unknown level",
			input:    "Unknown",
			expected: slog.LevelInfo,
		},
		{
			name:     "Test 6: Empty level",
			input:    "",
			expected: slog.LevelInfo,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(tt *testing.T) {
			assert.Equal(tt, test.expected, LogLevel(test.input))
		})
	}
}

func TestLogWriter(t *testing.T) {
	dir := t.TempDir()

	w := logWriter(dir)
	assert.NotEqual(t, os.Stderr, w)
	assert.FileExists(t, filepath.Join(dir, defaultLogFile))

	file := filepath.Join(dir, "custom.log")
	logWriter(file)
	assert.FileExists(t, file)

	assert.Equal(t, os.Stderr, logWriter(""))
	assert.Equal(t, os.Stderr, logWriter(filepath.Join(dir, "missing", "x.log")))
}

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "info")

	ctx := WithCaller(WithRequestID(context.Background(), ""), "client1")
	require.NotEmpty(t, RequestID(ctx))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))

	l.With("component", "test").InfoContext(ctx, "hello")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "component=test")
	assert.Contains(t, out, "caller=client1")
	assert.Contains(t, out, "request_id="+RequestID(ctx))
}

func TestContextHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Empty(t, RequestID(context.Background()))
}
