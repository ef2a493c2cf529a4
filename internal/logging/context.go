package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldBot is the standardized structured logging key for bot names.
	FieldBot = "bot"
	// FieldItemID is the standardized structured logging key for content item identifiers.
	FieldItemID = "item_id"
	// FieldWorkItemID is the standardized structured logging key for work item identifiers.
	FieldWorkItemID = "work_item_id"
	// FieldRunID is the standardized structured logging key for run correlation identifiers.
	FieldRunID = "run_id"
	// FieldChannel is the standardized structured logging key for content channels.
	FieldChannel = "channel"
)

type contextKey int

const (
	botContextKey contextKey = iota
	itemIDContextKey
	runIDContextKey
)

// WithBot attaches a bot name to the context for log enrichment.
func WithBot(ctx context.Context, bot string) context.Context {
	return context.WithValue(ctx, botContextKey, bot)
}

// WithItemID attaches a content item identifier to the context.
func WithItemID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, itemIDContextKey, id)
}

// WithRunID attaches a run correlation identifier to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDContextKey, id)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if bot, ok := ctx.Value(botContextKey).(string); ok && bot != "" {
		fields = append(fields, slog.String(FieldBot, bot))
	}
	if id, ok := ctx.Value(itemIDContextKey).(int64); ok {
		fields = append(fields, slog.Int64(FieldItemID, id))
	}
	if rid, ok := ctx.Value(runIDContextKey).(string); ok && rid != "" {
		fields = append(fields, slog.String(FieldRunID, rid))
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
