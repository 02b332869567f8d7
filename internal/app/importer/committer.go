package importer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// EntitySpec is a spec identified by a file-local import id.
type EntitySpec interface {
	GetImportID() string
}

// RelationSpec is a spec whose endpoints are already resolved store ids.
type RelationSpec interface {
	Pair() domain.PairKey
}

// CreateEntitiesFunc bulk-creates entities and returns what was created.
// Partial success is reported as fewer refs than specs.
type CreateEntitiesFunc[S EntitySpec] func(ctx context.Context, specs []S) ([]domain.CreatedRef, error)

// CreateRelationsFunc bulk-creates relations and returns the created pairs.
type CreateRelationsFunc[S RelationSpec] func(ctx context.Context, specs []S) ([]domain.PairKey, error)

// EntityCommitter commits batches of leaf entities and records the store id
// of every created entity in the run's IDTable.
type EntityCommitter[S EntitySpec] struct {
	kind   string
	ids    *IDTable
	report Reporter
	create CreateEntitiesFunc[S]
}

// NewEntityCommitter creates an EntityCommitter for one entity kind.
func NewEntityCommitter[S EntitySpec](kind string, ids *IDTable, report Reporter, create CreateEntitiesFunc[S]) *EntityCommitter[S] {
	return &EntityCommitter[S]{kind: kind, ids: ids, report: report, create: create}
}

// Commit creates the rows that carry an import id and then counts a row as
// succeeded when its import id is present in the table. A row whose id was
// resolved by an earlier batch therefore succeeds even though this batch did
// not create it. Commit never returns an error; a failed create marks the
// whole batch failed.
func (c *EntityCommitter[S]) Commit(ctx context.Context, rows []Numbered[S]) (domain.RowsProcessedStats, error) {
	specs := make([]S, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Spec.GetImportID()) != "" {
			specs = append(specs, r.Spec)
		}
	}

	if len(specs) > 0 {
		created, err := c.create(ctx, specs)
		if err != nil {
			c.report.Error(ctx, batchError(c.kind, len(rows)), err)
			for _, r := range rows {
				c.report.Warn(ctx, rowWarning(c.kind, r.Ordinal, importIDRef(r.Spec.GetImportID())))
			}
			return domain.FailedStats(len(rows)), nil
		}
		for _, ref := range created {
			c.ids.Set(ref.ImportID, ref.ID)
		}
	}

	stats := domain.RowsProcessedStats{RowsProcessed: len(rows)}
	for _, r := range rows {
		if c.ids.Has(r.Spec.GetImportID()) {
			stats.RowsSuccess++
			continue
		}
		stats.RowsFailed++
		c.report.Warn(ctx, rowWarning(c.kind, r.Ordinal, importIDRef(r.Spec.GetImportID())))
	}
	return stats, nil
}

// RelationCommitter commits batches of resolved relation specs. A row
// succeeds when the store reports its pair as created.
type RelationCommitter[S RelationSpec] struct {
	kind   string
	report Reporter
	create CreateRelationsFunc[S]
}

// NewRelationCommitter creates a RelationCommitter for one relation kind.
func NewRelationCommitter[S RelationSpec](kind string, report Reporter, create CreateRelationsFunc[S]) *RelationCommitter[S] {
	return &RelationCommitter[S]{kind: kind, report: report, create: create}
}

// Commit never returns an error; a failed create marks the whole batch
// failed.
func (c *RelationCommitter[S]) Commit(ctx context.Context, rows []Numbered[S]) (domain.RowsProcessedStats, error) {
	if len(rows) == 0 {
		return domain.RowsProcessedStats{}, nil
	}

	specs := make([]S, len(rows))
	for i, r := range rows {
		specs[i] = r.Spec
	}

	created, err := c.create(ctx, specs)
	if err != nil {
		c.report.Error(ctx, batchError(c.kind, len(rows)), err)
		for _, r := range rows {
			c.report.Warn(ctx, rowWarning(c.kind, r.Ordinal, r.Ref))
		}
		return domain.FailedStats(len(rows)), nil
	}

	done := make(map[domain.PairKey]bool, len(created))
	for _, p := range created {
		done[p] = true
	}

	stats := domain.RowsProcessedStats{RowsProcessed: len(rows)}
	for _, r := range rows {
		if done[r.Spec.Pair()] {
			stats.RowsSuccess++
			continue
		}
		stats.RowsFailed++
		c.report.Warn(ctx, rowWarning(c.kind, r.Ordinal, r.Ref), slog.String("reason", "not created"))
	}
	return stats, nil
}
