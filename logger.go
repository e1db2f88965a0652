package geoarrow

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with geoarrow-specific context.
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

// WithKind adds a geometry kind field to the logger.
func (l *Logger) WithKind(kind Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim Dimension) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim.String()),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogDecode logs the outcome of decoding a batch of encoded geometries.
func (l *Logger) LogDecode(ctx context.Context, format string, rows, nulls int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "decode failed",
			"format", format,
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "decode completed",
			"format", format,
			"rows", rows,
			"nulls", nulls,
		)
	}
}

// LogEncode logs the outcome of encoding an array.
func (l *Logger) LogEncode(ctx context.Context, format string, rows, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"format", format,
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "encode completed",
			"format", format,
			"rows", rows,
			"bytes", bytes,
		)
	}
}

// LogChunkMap logs a per-chunk map over a chunked column.
func (l *Logger) LogChunkMap(ctx context.Context, chunks, failed int, err error) {
	if err != nil {
		l.WarnContext(ctx, "chunk map failed",
			"chunks", chunks,
			"failed", failed,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "chunk map completed",
			"chunks", chunks,
		)
	}
}

// LogConvert logs a conversion between the native arrays and an external representation.
func (l *Logger) LogConvert(ctx context.Context, target string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "conversion failed",
			"target", target,
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "conversion completed",
			"target", target,
			"rows", rows,
		)
	}
}
