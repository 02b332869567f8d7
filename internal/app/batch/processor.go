// Package batch provides a bounded accumulator that commits items in
// fixed-size groups and keeps running row statistics.
package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// CommitFunc persists one batch and reports how many of its rows succeeded.
// A returned error means the whole batch was dropped.
type CommitFunc[T any] func(ctx context.Context, items []T) (domain.RowsProcessedStats, error)

// Outcome is the result of a single flush.
type Outcome struct {
	Size  int
	Stats domain.RowsProcessedStats
	Err   error
}

// Committed reports whether the commit function accepted the batch.
func (o Outcome) Committed() bool { return o.Err == nil }

// Observer is notified after every commit attempt.
type Observer interface {
	ObserveBatch(stage string, out Outcome, elapsed time.Duration)
}

type settings struct {
	stage    string
	observer Observer
}

// Option configures a Processor.
type Option func(*settings)

// WithStage names the stage in logs and observer callbacks.
func WithStage(stage string) Option {
	return func(s *settings) { s.stage = stage }
}

// WithObserver registers an observer for commit outcomes.
func WithObserver(o Observer) Option {
	return func(s *settings) { s.observer = o }
}

// Processor accumulates items and hands them to a CommitFunc in groups of
// at most size items. It is owned by one goroutine; Add blocks on the flush
// it triggers, so memory stays bounded by one batch.
//
// Neither Add nor Flush propagates a commit failure. A failed batch is
// logged, reported to the observer and dropped; its rows are not retried.
type Processor[T any] struct {
	log      *slog.Logger
	size     int
	commit   CommitFunc[T]
	stage    string
	observer Observer

	pending []T
	flushed int
	stats   domain.RowsProcessedStats
}

// New creates a Processor. A size below 1 is treated as 1.
func New[T any](log *slog.Logger, size int, commit CommitFunc[T], opts ...Option) *Processor[T] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if size < 1 {
		size = 1
	}
	return &Processor[T]{
		log:      log,
		size:     size,
		commit:   commit,
		stage:    s.stage,
		observer: s.observer,
		pending:  make([]T, 0, size),
	}
}

// Add appends item and flushes once the accumulator reaches the batch size.
func (p *Processor[T]) Add(ctx context.Context, item T) {
	p.pending = append(p.pending, item)
	if len(p.pending) >= p.size {
		p.Flush(ctx)
	}
}

// Flush commits the pending items. With nothing pending the commit function
// is not invoked and a zero Outcome is returned.
func (p *Processor[T]) Flush(ctx context.Context) Outcome {
	if len(p.pending) == 0 {
		return Outcome{}
	}

	items := p.pending
	p.pending = make([]T, 0, p.size)
	p.flushed += len(items)

	start := time.Now()
	stats, err := p.commit(ctx, items)
	out := Outcome{Size: len(items), Stats: stats, Err: err}

	if err != nil {
		out.Stats = domain.RowsProcessedStats{}
		p.log.ErrorContext(ctx, "batch commit failed",
			slog.String("stage", p.stage),
			slog.Int("size", len(items)),
			slog.Any("error", err),
		)
	} else {
		p.stats = p.stats.Add(stats)
	}

	if p.observer != nil {
		p.observer.ObserveBatch(p.stage, out, time.Since(start))
	}
	return out
}

// Stats returns the running total of every committed batch.
func (p *Processor[T]) Stats() domain.RowsProcessedStats { return p.stats }

// Pending returns the number of items waiting for the next flush.
func (p *Processor[T]) Pending() int { return len(p.pending) }

// Flushed returns how many items have been handed to the commit function.
func (p *Processor[T]) Flushed() int { return p.flushed }
