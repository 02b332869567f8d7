// Package taxonomy implements the taxonomy store on PostgreSQL: models,
// entity and relation tables, import/export processes and the degree
// aggregation used by the centrality service.
package taxonomy

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taxonomy-loader/internal/adapter/postgres"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// Repo provides taxonomy persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new taxonomy repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// builder produces $n placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ---------------------------------------------------------------------------
// Models
// ---------------------------------------------------------------------------

const modelColumns = "id, name, locale, description, version, released, created_at"

// CreateModel inserts a new, unreleased model.
func (r *Repo) CreateModel(ctx context.Context, spec domain.ModelSpec) (domain.Model, error) {
	query := builder().
		Insert("models").
		Columns("name", "locale", "description", "version").
		Values(spec.Name, spec.Locale, spec.Description, spec.Version).
		Suffix("RETURNING " + modelColumns)

	var row modelRow
	if err := r.get(ctx, &row, query); err != nil {
		return domain.Model{}, postgres.MapError(err, "model", uuid.Nil)
	}
	return row.toDomain(), nil
}

// GetModel returns a model by id.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetModel(ctx context.Context, id uuid.UUID) (domain.Model, error) {
	query := builder().
		Select(modelColumns).
		From("models").
		Where(squirrel.Eq{"id": id})

	var row modelRow
	if err := r.get(ctx, &row, query); err != nil {
		return domain.Model{}, postgres.MapError(err, "model", id)
	}
	return row.toDomain(), nil
}

// ---------------------------------------------------------------------------
// Query helpers
// ---------------------------------------------------------------------------

func (r *Repo) get(ctx context.Context, dst any, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Get(ctx, r.q, dst, sql, args...)
}

func (r *Repo) selectAll(ctx context.Context, dst any, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, r.q, dst, sql, args...)
}

func (r *Repo) exec(ctx context.Context, query squirrel.Sqlizer) (int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// openCursor runs query and streams its rows as T.
func openCursor[R, T any](ctx context.Context, q postgres.Querier, query squirrel.Sqlizer, convert func(R) T) (domain.Cursor[T], error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return postgres.NewCursor(rows, convert), nil
}

// textArray keeps NOT NULL text[] columns from receiving NULL.
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
