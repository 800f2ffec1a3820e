package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldTaskID is the standardized structured logging key for task run identifiers.
	FieldTaskID = "task_id"
	// FieldTaskKind is the standardized structured logging key for the task kind (content, filename).
	FieldTaskKind = "task_kind"
	// FieldItemIndex is the 1-based position of an item within its task.
	FieldItemIndex = "item_index"
	// FieldItemPath is the path of the item being processed.
	FieldItemPath = "item_path"
	// FieldStatus is the terminal status recorded for an item.
	FieldStatus = "status"
	// FieldEventType classifies log lines for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to check next.
	FieldErrorHint = "error_hint"
)

type contextKey string

const (
	taskIDKey   contextKey = "task_id"
	taskKindKey contextKey = "task_kind"
)

// WithTask annotates context with the task identifier and kind.
func WithTask(ctx context.Context, id, kind string) context.Context {
	if id != "" {
		ctx = context.WithValue(ctx, taskIDKey, id)
	}
	if kind != "" {
		ctx = context.WithValue(ctx, taskKindKey, kind)
	}
	return ctx
}

// TaskIDFromContext returns the task identifier if present.
func TaskIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(taskIDKey).(string)
	return v, ok && v != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := TaskIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldTaskID, id))
	}
	if kind, ok := ctx.Value(taskKindKey).(string); ok && kind != "" {
		fields = append(fields, slog.String(FieldTaskKind, kind))
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
	return logger.With(attrsToArgs(fields)...)
}
