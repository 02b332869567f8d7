package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Reporter receives row-level warnings and batch or stage level errors.
type Reporter interface {
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, err error, attrs ...slog.Attr)
}

// RunLog is the Reporter of one import run. It writes through to the logger
// and counts what it saw so the run status can be derived.
type RunLog struct {
	log      *slog.Logger
	warnings atomic.Int64
	errors   atomic.Int64
}

// NewRunLog creates a RunLog writing to log.
func NewRunLog(log *slog.Logger) *RunLog {
	return &RunLog{log: log}
}

func (l *RunLog) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.warnings.Add(1)
	l.log.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func (l *RunLog) Error(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	l.errors.Add(1)
	l.log.LogAttrs(ctx, slog.LevelError, msg, append(attrs, slog.Any("error", err))...)
}

// Warnings returns the number of warnings reported.
func (l *RunLog) Warnings() int { return int(l.warnings.Load()) }

// Errors returns the number of errors reported.
func (l *RunLog) Errors() int { return int(l.errors.Load()) }

func rowWarning(kind string, ordinal int, ref string) string {
	return fmt.Sprintf("Failed to import %s from row:%d %s", kind, ordinal, ref)
}

func importIDRef(importID string) string {
	return fmt.Sprintf("with importId:'%s'", importID)
}

func batchError(kind string, n int) string {
	return fmt.Sprintf("Failed to import %s batch of %d rows", kind, n)
}
