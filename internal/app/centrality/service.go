// Package centrality computes degree centrality for skills and occupations
// from the occupation→skill relations of a model.
package centrality

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/taxonomy-loader/internal/app/batch"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// ErrConsumed is yielded when an aggregate sequence is ranged over twice.
var ErrConsumed = errors.New("aggregate sequence already consumed")

// Repo defines the store operations consumed by the service.
// Implemented by taxonomy.Repo.
type Repo interface {
	// AggregateDegrees counts relations per entity of target within a model.
	AggregateDegrees(ctx context.Context, modelID uuid.UUID, target domain.CentralityTarget) (domain.Cursor[domain.EdgeCount], error)
	// SetDegreeCentrality writes every count in one statement and returns the
	// number of rows it matched.
	SetDegreeCentrality(ctx context.Context, modelID uuid.UUID, target domain.CentralityTarget, counts []domain.EdgeCount) (int, error)
}

// Config holds service settings.
type Config struct {
	BatchSize int
}

// Service aggregates relation counts and writes them back in batches.
type Service struct {
	log      *slog.Logger
	repo     Repo
	cfg      Config
	observer batch.Observer
}

// NewService creates a Service. observer may be nil.
func NewService(log *slog.Logger, repo Repo, cfg Config, observer batch.Observer) *Service {
	return &Service{log: log, repo: repo, cfg: cfg, observer: observer}
}

// Aggregate opens a cursor over the per-entity relation counts of target.
//
// A failing query is returned immediately. The returned sequence can be
// ranged over once; the cursor is closed when the range ends for any reason.
// A read error in the middle of the stream is yielded as the last element,
// after the counts already produced.
func (s *Service) Aggregate(ctx context.Context, modelID uuid.UUID, target domain.CentralityTarget) (iter.Seq2[domain.EdgeCount, error], error) {
	cur, err := s.repo.AggregateDegrees(ctx, modelID, target)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s degrees: %w", target, err)
	}

	used := false
	return func(yield func(domain.EdgeCount, error) bool) {
		if used {
			yield(domain.EdgeCount{}, ErrConsumed)
			return
		}
		used = true
		defer cur.Close()

		for cur.Next() {
			if !yield(cur.Value(), nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(domain.EdgeCount{}, fmt.Errorf("read %s degrees: %w", target, err))
		}
	}, nil
}

// Update writes counts to target in one bulk statement. An empty list
// returns zero stats without touching the store. Store failures are
// returned, not absorbed.
func (s *Service) Update(ctx context.Context, modelID uuid.UUID, target domain.CentralityTarget, counts []domain.EdgeCount) (domain.RowsProcessedStats, error) {
	if len(counts) == 0 {
		return domain.RowsProcessedStats{}, nil
	}

	modified, err := s.repo.SetDegreeCentrality(ctx, modelID, target, counts)
	if err != nil {
		return domain.RowsProcessedStats{}, fmt.Errorf("update %s degree centrality: %w", target, err)
	}
	return domain.RowsProcessedStats{
		RowsProcessed: len(counts),
		RowsSuccess:   modified,
		RowsFailed:    len(counts) - modified,
	}, nil
}

// CalculateDegreeCentrality aggregates and writes back degree centrality for
// every target in turn. Failing update batches are logged and skipped. A
// query or stream error stops the run and is returned with the stats of the
// targets processed so far.
func (s *Service) CalculateDegreeCentrality(ctx context.Context, modelID uuid.UUID, targets ...domain.CentralityTarget) (map[domain.CentralityTarget]domain.RowsProcessedStats, error) {
	results := make(map[domain.CentralityTarget]domain.RowsProcessedStats, len(targets))

	for _, target := range targets {
		stats, err := s.calculate(ctx, modelID, target)
		results[target] = stats
		if err != nil {
			s.log.ErrorContext(ctx, "degree centrality failed",
				slog.String("target", target.String()),
				slog.Any("error", err),
			)
			return results, err
		}
		s.log.InfoContext(ctx, "degree centrality updated",
			slog.String("target", target.String()),
			slog.Int("rows_processed", stats.RowsProcessed),
			slog.Int("rows_success", stats.RowsSuccess),
			slog.Int("rows_failed", stats.RowsFailed),
		)
	}
	return results, nil
}

func (s *Service) calculate(ctx context.Context, modelID uuid.UUID, target domain.CentralityTarget) (domain.RowsProcessedStats, error) {
	seq, err := s.Aggregate(ctx, modelID, target)
	if err != nil {
		return domain.RowsProcessedStats{}, err
	}

	opts := []batch.Option{batch.WithStage("centrality_" + target.String())}
	if s.observer != nil {
		opts = append(opts, batch.WithObserver(s.observer))
	}
	bp := batch.New(s.log, s.cfg.BatchSize, func(ctx context.Context, counts []domain.EdgeCount) (domain.RowsProcessedStats, error) {
		return s.Update(ctx, modelID, target, counts)
	}, opts...)

	var streamErr error
	for ec, err := range seq {
		if err != nil {
			streamErr = err
			break
		}
		bp.Add(ctx, ec)
	}
	bp.Flush(ctx)

	return bp.Stats(), streamErr
}
