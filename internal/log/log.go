// ABOUTME: Level-gated logger over slog levels for the note client
// ABOUTME: Output defaults to stderr; the TUI redirects it to a log file while running

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64

	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// ParseLevel maps a config string (debug, info, warn, error) to a level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return LevelInfo
	}
	return l
}

// SetOutput redirects log output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// OpenFile appends logs to path and returns a closer that restores stderr.
func OpenFile(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	SetOutput(f)
	return func() error {
		SetOutput(nil)
		return f.Close()
	}, nil
}

func emit(l slog.Level, tag, format string, args ...any) {
	if slog.Level(level.Load()) > l {
		return
	}
	line := fmt.Sprintf(format, args...)
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, "%s [%s] %s\n", time.Now().Format("15:04:05.000"), tag, line)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	emit(LevelDebug, "DEBUG", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	emit(LevelInfo, "INFO", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	emit(LevelWarn, "WARN", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, "%s [ERROR] %s\n", time.Now().Format("15:04:05.000"), line)
}
