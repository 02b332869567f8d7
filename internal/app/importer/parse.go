package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/taxonomy-loader/internal/app/batch"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
	"github.com/heartmarshall/taxonomy-loader/pkg/ctxutil"
)

// FileSpec binds everything needed to load one kind of file.
type FileSpec[S any] struct {
	Kind      string
	Required  []string
	Transform func(Record) Result[S]
	Commit    batch.CommitFunc[Numbered[S]]
}

// Env carries the run-scoped collaborators of ParseFile.
type Env struct {
	Log       *slog.Logger
	Report    Reporter
	BatchSize int
	Observer  batch.Observer
}

// ParseFile streams src through header validation, the row transform and a
// batch processor bound to f.Commit.
//
// Missing required columns abort the file before any row is read and return
// an error wrapping domain.ErrMissingColumns with zero stats. Skipped rows are
// warned with their 1-based ordinal and counted failed. A read error in the
// middle of the file flushes what was accepted and returns the stats so far
// together with the error.
func ParseFile[S any](ctx context.Context, src io.Reader, f FileSpec[S], env Env) (domain.RowsProcessedStats, error) {
	ctx = ctxutil.WithStage(ctx, f.Kind)

	rr, err := NewRecordReader(src)
	if err != nil {
		return domain.RowsProcessedStats{}, fmt.Errorf("%s: %w", f.Kind, err)
	}
	if err := ValidateHeaders(rr.Header(), f.Required); err != nil {
		return domain.RowsProcessedStats{}, fmt.Errorf("%s: %w", f.Kind, err)
	}

	opts := []batch.Option{batch.WithStage(f.Kind)}
	if env.Observer != nil {
		opts = append(opts, batch.WithObserver(env.Observer))
	}
	bp := batch.New(env.Log, env.BatchSize, f.Commit, opts...)

	var skipped domain.RowsProcessedStats
	ordinal := 0
	var readErr error
	for {
		if err := ctx.Err(); err != nil {
			readErr = err
			break
		}
		rec, err := rr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			readErr = fmt.Errorf("%s: read row %d: %w", f.Kind, ordinal+1, err)
			break
		}
		ordinal++

		res := f.Transform(rec)
		if !res.Accepted() {
			skipped = skipped.Add(domain.FailedStats(1))
			env.Report.Warn(ctx, rowWarning(f.Kind, ordinal, res.Ref), slog.String("reason", res.Reason))
			continue
		}
		bp.Add(ctx, Numbered[S]{Ordinal: ordinal, Ref: res.Ref, Spec: res.Spec})
	}

	if ctx.Err() == nil {
		bp.Flush(ctx)
	}

	stats := skipped.Add(bp.Stats())
	if readErr != nil {
		return stats, readErr
	}

	env.Log.InfoContext(ctx, "file imported",
		slog.String("kind", f.Kind),
		slog.Int("rows_processed", stats.RowsProcessed),
		slog.Int("rows_success", stats.RowsSuccess),
		slog.Int("rows_failed", stats.RowsFailed),
	)
	return stats, nil
}
