package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo // Default to INFO for unknown
	}
}

// ParseLevel maps a config string onto a LogLevel. Unknown values yield LevelInfo.
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// LogEntry is the structured log entry passed to the TUI.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Subsystem string
	Message   string
	Err       error
}

const tuiChannelBufferSize = 2048

// Options configures a Logger.
type Options struct {
	Level LogLevel
	// Output receives slog records when no TUI channel is requested.
	Output io.Writer
	// Format is "text" (default) or "json".
	Format string
	// TUIChannel routes entries to a buffered channel instead of Output.
	TUIChannel bool
	// ChannelBufferSize overrides the TUI channel capacity.
	ChannelBufferSize int
}

// Logger is a subsystem-tagged logger. It is constructed once per process run
// and handed to every component that logs.
type Logger struct {
	level   LogLevel
	slogger *slog.Logger
	dropped atomic.Int64

	// mu guards entries against Close while other goroutines still log.
	mu      sync.RWMutex
	entries chan LogEntry
	closed  bool
	now     func() time.Time
}

// New creates a Logger from opts.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level.SlogLevel()}

	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	l := &Logger{
		level:   opts.Level,
		slogger: slog.New(handler),
		now:     time.Now,
	}
	if opts.TUIChannel {
		size := opts.ChannelBufferSize
		if size <= 0 {
			size = tuiChannelBufferSize
		}
		l.entries = make(chan LogEntry, size)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(Options{Level: LevelError + 1, Output: io.Discard})
}

// Entries returns the TUI channel, or nil when the logger writes to Output.
func (l *Logger) Entries() <-chan LogEntry {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries
}

// Dropped reports how many TUI entries were discarded because the channel was full.
func (l *Logger) Dropped() int64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Close closes the TUI channel. Channel entries logged afterwards are
// dropped silently. Safe to call more than once.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.entries != nil {
		close(l.entries)
	}
}

func (l *Logger) log(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.entries != nil {
		if l.closed {
			return
		}
		entry := LogEntry{
			Timestamp: l.now(),
			Level:     level,
			Subsystem: subsystem,
			Message:   msg,
			Err:       err,
		}
		select {
		case l.entries <- entry:
		default:
			l.dropped.Add(1)
		}
		return
	}

	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.slogger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message.
func (l *Logger) Debug(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func (l *Logger) Info(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func (l *Logger) Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	l.log(LevelError, subsystem, err, messageFmt, args...)
}

// With binds the logger to one subsystem.
func (l *Logger) With(subsystem string) *SubLogger {
	return &SubLogger{parent: l, subsystem: subsystem}
}

// SubLogger is a Logger bound to a fixed subsystem name.
type SubLogger struct {
	parent    *Logger
	subsystem string
}

func (s *SubLogger) Debug(messageFmt string, args ...interface{}) {
	s.parent.Debug(s.subsystem, messageFmt, args...)
}

func (s *SubLogger) Info(messageFmt string, args ...interface{}) {
	s.parent.Info(s.subsystem, messageFmt, args...)
}

func (s *SubLogger) Warn(messageFmt string, args ...interface{}) {
	s.parent.Warn(s.subsystem, messageFmt, args...)
}

func (s *SubLogger) Error(err error, messageFmt string, args ...interface{}) {
	s.parent.Error(s.subsystem, err, messageFmt, args...)
}
