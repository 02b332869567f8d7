// Package exporter turns the stored collections of a model back into CSV
// files packed into one ZIP archive.
package exporter

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// TaxonomyRepo defines the read cursors consumed by the exporter.
// Implemented by taxonomy.Repo.
type TaxonomyRepo interface {
	GetModel(ctx context.Context, id uuid.UUID) (domain.Model, error)

	StreamOccupationGroups(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.OccupationGroup], error)
	StreamOccupations(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.Occupation], error)
	StreamSkillGroups(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.SkillGroup], error)
	StreamSkills(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.Skill], error)
	StreamOccupationHierarchy(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.HierarchyPair], error)
	StreamSkillHierarchy(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.HierarchyPair], error)
	StreamOccupationSkillRelations(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.OccupationSkillRelation], error)
	StreamSkillSkillRelations(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.SkillSkillRelation], error)
}

// ProcessRepo records the lifecycle of an export run.
type ProcessRepo interface {
	CreateExportProcess(ctx context.Context, modelID uuid.UUID) (domain.ExportProcess, error)
	UpdateExportProcess(ctx context.Context, id uuid.UUID, state domain.ProcessState) error
}

// Uploader stores an archive under name and returns where it can be
// downloaded from. Implemented by gcs.Uploader and local.Uploader.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}
