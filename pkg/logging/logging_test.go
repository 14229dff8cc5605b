package logging

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: LevelInfo, Output: &buf})

	l.Debug("Runtime", "hidden %d", 1)
	l.Info("Runtime", "refresh started for %s", "dashboard")
	l.Error("Gate", errors.New("boom"), "probe failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "refresh started for dashboard")
	assert.Contains(t, out, "subsystem=Runtime")
	assert.Contains(t, out, "error=boom")
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: LevelDebug, Output: &buf, Format: "json"})
	l.With("Frame").Info("emitted %d", 3)

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"))
	assert.Contains(t, line, `"subsystem":"Frame"`)
	assert.Contains(t, line, `"msg":"emitted 3"`)
}

func TestLogger_TUIChannelDropsWhenFull(t *testing.T) {
	l := New(Options{Level: LevelDebug, TUIChannel: true, ChannelBufferSize: 2})

	l.Info("A", "one")
	l.Info("A", "two")
	l.Info("A", "three")

	require.NotNil(t, l.Entries())
	assert.Equal(t, int64(1), l.Dropped())

	first := <-l.Entries()
	assert.Equal(t, "one", first.Message)
	assert.Equal(t, "A", first.Subsystem)
	l.Close()
}

func TestLogger_CloseWhileLogging(t *testing.T) {
	l := New(Options{Level: LevelDebug, TUIChannel: true, ChannelBufferSize: 16})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			l.Debug("Runtime", "tick %d", i)
		}
	}()

	assert.NotPanics(t, func() {
		l.Close()
		l.Close()
	})
	wg.Wait()

	assert.NotPanics(t, func() { l.Warn("Runtime", "after close") })
	for range l.Entries() {
	}
	_, ok := <-l.Entries()
	assert.False(t, ok, "channel stays closed")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("X", "nothing")
	})
}
