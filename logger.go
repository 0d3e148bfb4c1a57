package dxfkit

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with consistent field names for drawing
// comparison operations.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output. This is the
// default for library use.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithRunID tags the logger with an identifier for one comparison run.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{Logger: l.Logger.With("run_id", id)}
}

// LogLoad logs the outcome of loading one drawing.
func (l *Logger) LogLoad(ctx context.Context, path string, entities int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "load completed",
			"path", path,
			"entities", entities,
		)
	}
}

// LogCompare logs the outcome of a comparison.
func (l *Logger) LogCompare(ctx context.Context, tolerance float64, unchanged, removed, added int) {
	l.InfoContext(ctx, "comparison completed",
		"tolerance", tolerance,
		"unchanged", unchanged,
		"removed", removed,
		"added", added,
	)
}

// LogWrite logs the outcome of writing the delta drawing.
func (l *Logger) LogWrite(ctx context.Context, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "delta written",
			"path", path,
		)
	}
}
