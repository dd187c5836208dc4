package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ Logger = (*MeshLogger)(nil)
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = NoOpLogger{}
)

func newBufferLogger(level LogLevel) (*MeshLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := DefaultLoggerConfig()
	cfg.Output = &buf
	cfg.Level = level
	cfg.AddSource = false
	return NewLogger(cfg), &buf
}

func TestMeshLogger_ContextAttrs(t *testing.T) {
	l, buf := newBufferLogger(LogLevelInfo)
	l.WithComponent("runner").WithRole("editor").Info("turn", "history_len", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "turn", entry["msg"])
	assert.Equal(t, "runner", entry["component"])
	assert.Equal(t, "editor", entry["role"])
	assert.EqualValues(t, 3, entry["history_len"])
}

func TestMeshLogger_LevelFilter(t *testing.T) {
	l, buf := newBufferLogger(LogLevelWarn)
	l.Info("dropped")
	l.Debug("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestMeshLogger_WithIsolation(t *testing.T) {
	base, buf := newBufferLogger(LogLevelInfo)
	_ = base.WithContext("k", "v")
	base.Info("plain")
	assert.NotContains(t, buf.String(), `"k"`)
}

func TestMeshLogger_StartTimer(t *testing.T) {
	l, buf := newBufferLogger(LogLevelInfo)
	done := l.StartTimer("chat")
	done()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Operation completed", entry["msg"])
	assert.Equal(t, "chat", entry["operation"])
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{"debug": LogLevelDebug, "INFO": LogLevelInfo, "": LogLevelInfo, "warning": LogLevelWarn, "error": LogLevelError}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
