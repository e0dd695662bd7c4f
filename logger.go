package meshgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with meshgo-specific context.
// This provides structured logging with consistent field names.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithMesh adds vertex and facet counts to the logger.
func (l *Logger) WithMesh(numVertices, numFacets int) *Logger {
	return &Logger{
		Logger: l.Logger.With("vertices", numVertices, "facets", numFacets),
	}
}

// WithAttribute adds an attribute name field to the logger.
func (l *Logger) WithAttribute(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("attribute", name),
	}
}

// LogCompute logs a per-element computation over the mesh.
func (l *Logger) LogCompute(ctx context.Context, op string, elements int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "computation failed",
			"op", op,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "computation completed",
			"op", op,
			"elements", elements,
		)
	}
}

// LogTransfer logs an attribute transfer between meshes.
func (l *Logger) LogTransfer(ctx context.Context, attributes, vertices int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "attribute transfer failed",
			"attributes", attributes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "attribute transfer completed",
			"attributes", attributes,
			"vertices", vertices,
		)
	}
}
