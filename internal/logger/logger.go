// Package logger holds the process-wide structured logger. Output is
// discarded until Init enables it, so library code can log freely.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Writer  io.Writer  // Destination. Default: os.Stderr
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	JSON    bool       // Emit JSON records instead of text
}

// Init configures logging. Call from main() before any log calls.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(w, handlerOpts))
		return
	}
	L = slog.New(slog.NewTextHandler(w, handlerOpts))
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }

// FromEnv enables logging when HEAP_LOG is set. Accepted values are a slog
// level name ("debug", "info", "warn", "error"); a "json:" prefix selects
// JSON output. Unknown levels fall back to info.
func FromEnv() {
	v := os.Getenv("HEAP_LOG")
	if v == "" {
		return
	}
	opts := Options{Enabled: true, Level: slog.LevelInfo}
	if rest, ok := strings.CutPrefix(v, "json:"); ok {
		opts.JSON = true
		v = rest
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err == nil {
		opts.Level = lvl
	}
	Init(opts)
}
