package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies every line emitted by one extraction run.
	FieldRunID = "run_id"
	// FieldStreamID is the Plex media stream identifier of a subtitle.
	FieldStreamID = "stream_id"
	// FieldPath is the file a log line refers to.
	FieldPath = "path"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step for the operator.
	FieldErrorHint = "error_hint"
)

type runIDKey struct{}

// WithRunID stores a freshly generated run identifier in ctx and returns it.
func WithRunID(ctx context.Context) (context.Context, string) {
	if ctx == nil {
		ctx = context.Background()
	}
	id := uuid.NewString()
	return context.WithValue(ctx, runIDKey{}, id), id
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if id, ok := RunIDFromContext(ctx); ok {
		return []slog.Attr{slog.String(FieldRunID, id)}
	}
	return nil
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
