package ctxutil

import (
	"context"
	"testing"
)

func TestWithRunID_And_RunIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRunID(context.Background(), "run-42")
	if got := RunIDFromCtx(ctx); got != "run-42" {
		t.Fatalf("expected run-42, got %q", got)
	}
}

func TestRunIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if got := RunIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestWithStage_And_StageFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithStage(WithRunID(context.Background(), "run-1"), "Skill")
	if got := StageFromCtx(ctx); got != "Skill" {
		t.Fatalf("expected Skill, got %q", got)
	}
	if got := RunIDFromCtx(ctx); got != "run-1" {
		t.Fatalf("run id lost, got %q", got)
	}
}
