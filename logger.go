package rowmap

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with rowmap-specific helpers.
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
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithKind adds a backing kind field to the logger.
func (l *Logger) WithKind(k Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", k.String()),
	}
}

// LogConversion logs a backing change.
func (l *Logger) LogConversion(from, to Kind, size uint32) {
	l.Debug("rowmap backing converted",
		"from", from.String(),
		"to", to.String(),
		"size", size,
	)
}

// LogSelect logs the backings chosen for a composition.
func (l *Logger) LogSelect(base, picker, result Kind, size uint32) {
	l.Debug("rowmap rows selected",
		"base", base.String(),
		"picker", picker.String(),
		"result", result.String(),
		"size", size,
	)
}
