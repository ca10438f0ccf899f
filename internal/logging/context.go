package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies a single sort invocation.
	FieldRunID = "run_id"
	// FieldDir is the directory a sort pass is working on.
	FieldDir = "dir"
	// FieldMode is the sort mode (extension, lexical, semantic).
	FieldMode = "mode"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey int

const (
	runIDKey contextKey = iota
	dirKey
	modeKey
)

// WithRunID stores the run identifier on ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// WithDir stores the directory being sorted on ctx.
func WithDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, dirKey, dir)
}

// WithMode stores the sort mode on ctx.
func WithMode(ctx context.Context, mode string) context.Context {
	return context.WithValue(ctx, modeKey, mode)
}

// RunIDFromContext returns the run identifier, if any.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

func stringFromContext(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := stringFromContext(ctx, runIDKey); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if dir, ok := stringFromContext(ctx, dirKey); ok {
		fields = append(fields, slog.String(FieldDir, dir))
	}
	if mode, ok := stringFromContext(ctx, modeKey); ok {
		fields = append(fields, slog.String(FieldMode, mode))
	}
	return fields
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
	return logger.With(toArgs(fields)...)
}
