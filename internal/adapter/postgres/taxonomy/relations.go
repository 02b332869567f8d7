package taxonomy

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taxonomy-loader/internal/adapter/postgres"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// CreateOccupationHierarchy inserts parent/child pairs between occupation
// groups and occupations.
func (r *Repo) CreateOccupationHierarchy(ctx context.Context, modelID uuid.UUID, specs []domain.HierarchyPairSpec) ([]domain.PairKey, error) {
	return r.createHierarchy(ctx, "occupation_hierarchy", modelID, specs)
}

// CreateSkillHierarchy inserts parent/child pairs between skill groups and
// skills.
func (r *Repo) CreateSkillHierarchy(ctx context.Context, modelID uuid.UUID, specs []domain.HierarchyPairSpec) ([]domain.PairKey, error) {
	return r.createHierarchy(ctx, "skill_hierarchy", modelID, specs)
}

func (r *Repo) createHierarchy(ctx context.Context, table string, modelID uuid.UUID, specs []domain.HierarchyPairSpec) ([]domain.PairKey, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	query := builder().
		Insert(table).
		Columns("model_id", "parent_type", "parent_id", "child_type", "child_id")
	for _, s := range specs {
		query = query.Values(modelID, string(s.ParentType), s.ParentID, string(s.ChildType), s.ChildID)
	}
	query = query.Suffix("ON CONFLICT (model_id, parent_id, child_id) DO NOTHING " +
		"RETURNING parent_id AS from_id, child_id AS to_id")

	return r.insertPairs(ctx, table, query)
}

// CreateOccupationSkillRelations inserts occupation→skill requirements.
func (r *Repo) CreateOccupationSkillRelations(ctx context.Context, modelID uuid.UUID, specs []domain.OccupationSkillRelationSpec) ([]domain.PairKey, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	query := builder().
		Insert("occupation_skill_relations").
		Columns("model_id", "occupation_type", "occupation_id", "relation_type", "skill_id")
	for _, s := range specs {
		query = query.Values(modelID, string(s.OccupationType), s.OccupationID, string(s.RelationType), s.SkillID)
	}
	query = query.Suffix("ON CONFLICT (model_id, occupation_id, skill_id) DO NOTHING " +
		"RETURNING occupation_id AS from_id, skill_id AS to_id")

	return r.insertPairs(ctx, "occupation_skill_relations", query)
}

// CreateSkillSkillRelations inserts skill→skill requirements.
func (r *Repo) CreateSkillSkillRelations(ctx context.Context, modelID uuid.UUID, specs []domain.SkillSkillRelationSpec) ([]domain.PairKey, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	query := builder().
		Insert("skill_skill_relations").
		Columns("model_id", "requiring_skill_id", "relation_type", "required_skill_id")
	for _, s := range specs {
		query = query.Values(modelID, s.RequiringSkillID, string(s.RelationType), s.RequiredSkillID)
	}
	query = query.Suffix("ON CONFLICT (model_id, requiring_skill_id, required_skill_id) DO NOTHING " +
		"RETURNING requiring_skill_id AS from_id, required_skill_id AS to_id")

	return r.insertPairs(ctx, "skill_skill_relations", query)
}

func (r *Repo) insertPairs(ctx context.Context, table string, query squirrel.InsertBuilder) ([]domain.PairKey, error) {
	var rows []pairRow
	if err := r.selectAll(ctx, &rows, query); err != nil {
		return nil, postgres.MapError(err, table, uuid.Nil)
	}

	pairs := make([]domain.PairKey, len(rows))
	for i, row := range rows {
		pairs[i] = domain.PairKey{From: row.FromID, To: row.ToID}
	}
	return pairs, nil
}
