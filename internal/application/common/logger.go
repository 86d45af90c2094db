package common

import (
	"context"
	"log/slog"
)

// Logger is the narrow logging interface application handlers depend on
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// SlogLogger adapts a slog.Logger to Logger
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps logger; a nil logger uses slog.Default()
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

// Log writes message at level ("debug", "info", "warn", "error") with metadata as attributes
func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	attrs := make([]any, 0, len(metadata)*2)
	for k, v := range metadata {
		attrs = append(attrs, k, v)
	}
	l.logger.Log(context.Background(), parseLevel(level), message, attrs...)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN", "warning", "WARNING":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
