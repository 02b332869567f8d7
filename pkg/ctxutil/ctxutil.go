package ctxutil

import (
	"context"
)

type ctxKey string

const (
	runIDKey ctxKey = "run_id"
	stageKey ctxKey = "stage"
)

// WithRunID stores the import or export run ID in the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the run ID from the context.
// Returns an empty string if absent.
func RunIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// WithStage stores the current pipeline stage in the context.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromCtx extracts the pipeline stage from the context.
// Returns an empty string if absent.
func StageFromCtx(ctx context.Context) string {
	s, _ := ctx.Value(stageKey).(string)
	return s
}
