package arffconv

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/arffconv/vector"
)

// Logger wraps slog.Logger with arffconv-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr that shows warnings
// and errors.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// LogVocabulary logs the vocabulary build of a training archive.
func (l *Logger) LogVocabulary(ctx context.Context, relation string, size int, err error) {
	if err != nil {
		l.WarnContext(ctx, "vocabulary built with failures",
			"relation", relation,
			"size", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "vocabulary built",
			"relation", relation,
			"size", size,
		)
	}
}

// LogVectorize logs the vectorization of one label of an archive.
func (l *Logger) LogVectorize(ctx context.Context, relation string, label vector.Label, docs int, err error) {
	if err != nil {
		l.WarnContext(ctx, "vectorize completed with failures",
			"relation", relation,
			"label", label.String(),
			"documents", docs,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "vectorize completed",
			"relation", relation,
			"label", label.String(),
			"documents", docs,
		)
	}
}

// LogWrite logs the write of an output file.
func (l *Logger) LogWrite(ctx context.Context, relation, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"relation", relation,
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "written",
			"relation", relation,
			"name", name,
			"bytes", bytes,
		)
	}
}

// LogFailure logs a failure that the run skips over.
func (l *Logger) LogFailure(ctx context.Context, f Failure) {
	attrs := []any{
		"family", f.Family,
		"relation", f.Relation,
		"stage", string(f.Stage),
	}
	if f.Archive != "" {
		attrs = append(attrs, "archive", f.Archive)
	}
	if f.Entry != "" {
		attrs = append(attrs, "entry", f.Entry)
	}
	attrs = append(attrs, "error", f.Err)
	l.ErrorContext(ctx, "stage failed", attrs...)
}

// LogFamily logs the end of a family conversion.
func (l *Logger) LogFamily(ctx context.Context, family string, vocabSize, failed int, duration time.Duration) {
	if failed > 0 {
		l.WarnContext(ctx, "family converted with failures",
			"family", family,
			"vocabulary", vocabSize,
			"failed", failed,
			"duration", duration,
		)
	} else {
		l.InfoContext(ctx, "family converted",
			"family", family,
			"vocabulary", vocabSize,
			"duration", duration,
		)
	}
}
