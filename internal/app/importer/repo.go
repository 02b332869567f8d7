// Package importer loads a taxonomy from a fixed set of CSV files into the
// store, one batch at a time.
package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// TaxonomyRepo defines the bulk-create contract consumed by the importer.
// Every method inserts with ON CONFLICT DO NOTHING and returns only what it
// created. Implemented by taxonomy.Repo.
type TaxonomyRepo interface {
	CreateOccupationGroups(ctx context.Context, modelID uuid.UUID, specs []domain.OccupationGroupSpec) ([]domain.CreatedRef, error)
	CreateOccupations(ctx context.Context, modelID uuid.UUID, specs []domain.OccupationSpec) ([]domain.CreatedRef, error)
	CreateSkillGroups(ctx context.Context, modelID uuid.UUID, specs []domain.SkillGroupSpec) ([]domain.CreatedRef, error)
	CreateSkills(ctx context.Context, modelID uuid.UUID, specs []domain.SkillSpec) ([]domain.CreatedRef, error)

	CreateOccupationHierarchy(ctx context.Context, modelID uuid.UUID, specs []domain.HierarchyPairSpec) ([]domain.PairKey, error)
	CreateSkillHierarchy(ctx context.Context, modelID uuid.UUID, specs []domain.HierarchyPairSpec) ([]domain.PairKey, error)
	CreateOccupationSkillRelations(ctx context.Context, modelID uuid.UUID, specs []domain.OccupationSkillRelationSpec) ([]domain.PairKey, error)
	CreateSkillSkillRelations(ctx context.Context, modelID uuid.UUID, specs []domain.SkillSkillRelationSpec) ([]domain.PairKey, error)
}

// ProcessRepo records the lifecycle of an import run.
type ProcessRepo interface {
	CreateImportProcess(ctx context.Context, modelID uuid.UUID) (domain.ImportProcess, error)
	UpdateImportProcess(ctx context.Context, id uuid.UUID, state domain.ProcessState) error
}
