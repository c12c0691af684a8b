package lingmatch

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with lingmatch-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithRows adds a row-count field to the logger.
func (l *Logger) WithRows(rows int) *Logger {
	return &Logger{Logger: l.Logger.With("rows", rows)}
}

// LogClassify logs the resolved comparison classification.
func (l *Logger) LogClassify(compType string, groups int) {
	l.Debug("comparison classified",
		"comp_type", compType,
		"groups", groups,
	)
}

// LogResolve logs one argument resolution.
func (l *Logger) LogResolve(ref, source string) {
	l.Debug("reference resolved",
		"ref", ref,
		"source", source,
	)
}

// LogWarning logs a non-fatal integrity warning.
func (l *Logger) LogWarning(msg string) {
	l.Warn("integrity warning", "detail", msg)
}

// LogMatch logs a completed match call.
func (l *Logger) LogMatch(rows int, compType string, duration time.Duration, err error) {
	if err != nil {
		l.Error("match failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.Debug("match completed",
			"rows", rows,
			"comp_type", compType,
			"duration", duration,
		)
	}
}
