// Package log wraps the standard library's log/slog for Steel's structured
// logging needs. By default logging is disabled (a discard logger) so a
// library consumer pays nothing unless it opts in via SetLogger.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Level mirrors slog.Level's four-tier scheme without exposing slog in the
// package's public surface, so callers write log.LevelWarn rather than
// reaching for slog directly.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
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

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Field is a key-value attribute attached to a log record. It is a thin
// alias over slog.Attr so callers never need to import log/slog themselves.
type Field = slog.Attr

func String(key, value string) Field   { return slog.String(key, value) }
func Int(key string, value int) Field  { return slog.Int(key, value) }
func Int64(key string, value int64) Field {
	return slog.Int64(key, value)
}
func Float64(key string, value float64) Field { return slog.Float64(key, value) }
func Bool(key string, value bool) Field       { return slog.Bool(key, value) }

// Err creates an error field. A nil error still produces the key with a nil
// value, matching the other field constructors' zero-value behavior.
func Err(err error) Field {
	if err == nil {
		return slog.Any("error", nil)
	}
	return slog.String("error", err.Error())
}

func Duration(key string, value time.Duration) Field {
	return slog.String(key, value.String())
}

// Logger is the interface every Steel component logs through.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
}

// nullLogger discards everything; it is the default so importing this
// package carries no runtime cost until a caller opts in.
type nullLogger struct{}

func (nullLogger) Debug(string, ...Field)      {}
func (nullLogger) Info(string, ...Field)       {}
func (nullLogger) Warn(string, ...Field)       {}
func (nullLogger) Error(string, ...Field)      {}
func (n nullLogger) WithFields(...Field) Logger { return n }

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	inner *slog.Logger
}

// NewSimpleLogger builds a Logger backed by a slog.TextHandler writing to
// out, filtered at the given level.
func NewSimpleLogger(out io.Writer, level Level) Logger {
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level.slog()})
	return &slogLogger{inner: slog.New(handler)}
}

func (s *slogLogger) Debug(msg string, fields ...Field) { s.log(slog.LevelDebug, msg, fields) }
func (s *slogLogger) Info(msg string, fields ...Field)  { s.log(slog.LevelInfo, msg, fields) }
func (s *slogLogger) Warn(msg string, fields ...Field)  { s.log(slog.LevelWarn, msg, fields) }
func (s *slogLogger) Error(msg string, fields ...Field) { s.log(slog.LevelError, msg, fields) }

func (s *slogLogger) log(level slog.Level, msg string, fields []Field) {
	if !s.inner.Enabled(context.Background(), level) {
		return
	}
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = f
	}
	s.inner.Log(context.Background(), level, msg, args...)
}

func (s *slogLogger) WithFields(fields ...Field) Logger {
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = f
	}
	return &slogLogger{inner: s.inner.With(args...)}
}

var (
	defaultLogger Logger = nullLogger{}
	loggerMu      sync.RWMutex
)

// SetLogger installs the package-level logger. A nil argument restores the
// discarding default.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		defaultLogger = nullLogger{}
		return
	}
	defaultLogger = l
}

// GetLogger returns the current package-level logger.
func GetLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// EnableDebugLogging installs a debug-level logger writing to stderr; a
// convenience for ad-hoc troubleshooting.
func EnableDebugLogging() {
	SetLogger(NewSimpleLogger(os.Stderr, LevelDebug))
}

// EnableFileLogging installs a logger writing to the file at path, creating
// or appending to it.
func EnableFileLogging(path string, level Level) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	SetLogger(NewSimpleLogger(f, level))
	return nil
}

func Debug(msg string, fields ...Field) { GetLogger().Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { GetLogger().Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { GetLogger().Warn(msg, fields...) }
func Error(msg string, fields ...Field) { GetLogger().Error(msg, fields...) }
