package taxonomy

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taxonomy-loader/internal/adapter/postgres"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

const (
	importProcessColumns = "id, model_id, status, errored, warnings, created_at, updated_at"
	exportProcessColumns = "id, model_id, status, errored, download_url, created_at, updated_at"
)

// CreateImportProcess records a pending import run for a model.
func (r *Repo) CreateImportProcess(ctx context.Context, modelID uuid.UUID) (domain.ImportProcess, error) {
	query := builder().
		Insert("import_processes").
		Columns("model_id", "status").
		Values(modelID, string(domain.ProcessStatusPending)).
		Suffix("RETURNING " + importProcessColumns)

	var row importProcessRow
	if err := r.get(ctx, &row, query); err != nil {
		return domain.ImportProcess{}, postgres.MapError(err, "import process", uuid.Nil)
	}
	return row.toDomain(), nil
}

// UpdateImportProcess applies the status and flags of state.
// Returns domain.ErrNotFound if the process does not exist.
func (r *Repo) UpdateImportProcess(ctx context.Context, id uuid.UUID, state domain.ProcessState) error {
	query := builder().
		Update("import_processes").
		Set("status", string(state.Status)).
		Set("errored", state.Errored).
		Set("warnings", state.Warnings).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	return r.updateProcess(ctx, "import process", id, query)
}

// CreateExportProcess records a pending export run for a model.
func (r *Repo) CreateExportProcess(ctx context.Context, modelID uuid.UUID) (domain.ExportProcess, error) {
	query := builder().
		Insert("export_processes").
		Columns("model_id", "status").
		Values(modelID, string(domain.ProcessStatusPending)).
		Suffix("RETURNING " + exportProcessColumns)

	var row exportProcessRow
	if err := r.get(ctx, &row, query); err != nil {
		return domain.ExportProcess{}, postgres.MapError(err, "export process", uuid.Nil)
	}
	return row.toDomain(), nil
}

// UpdateExportProcess applies the status, error flag and download location
// of state. Returns domain.ErrNotFound if the process does not exist.
func (r *Repo) UpdateExportProcess(ctx context.Context, id uuid.UUID, state domain.ProcessState) error {
	query := builder().
		Update("export_processes").
		Set("status", string(state.Status)).
		Set("errored", state.Errored).
		Set("download_url", state.DownloadURL).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	return r.updateProcess(ctx, "export process", id, query)
}

func (r *Repo) updateProcess(ctx context.Context, entity string, id uuid.UUID, query squirrel.UpdateBuilder) error {
	affected, err := r.exec(ctx, query)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
