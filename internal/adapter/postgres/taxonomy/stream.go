package taxonomy

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taxonomy-loader/internal/adapter/postgres"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// Export cursors read one model's rows in insertion order.

const (
	occupationGroupColumns = "id, model_id, import_id, group_type, code, origin_uri, preferred_label, " +
		"alt_labels, description, uuid_history"
	occupationColumns = "id, model_id, import_id, occupation_type, occupation_group_code, code, origin_uri, " +
		"preferred_label, alt_labels, description, definition, scope_note, regulated_profession_note, " +
		"is_localized, uuid_history, degree_centrality"
	skillGroupColumns = "id, model_id, import_id, code, origin_uri, preferred_label, alt_labels, " +
		"description, scope_note, uuid_history"
	skillColumns = "id, model_id, import_id, skill_type, reuse_level, origin_uri, preferred_label, " +
		"alt_labels, description, definition, scope_note, uuid_history, degree_centrality"
	hierarchyColumns       = "id, model_id, parent_type, parent_id, child_type, child_id"
	occupationSkillColumns = "id, model_id, occupation_type, occupation_id, relation_type, skill_id"
	skillSkillColumns      = "id, model_id, requiring_skill_id, relation_type, required_skill_id"
)

func streamQuery(table, columns string, modelID uuid.UUID) squirrel.SelectBuilder {
	return builder().
		Select(columns).
		From(table).
		Where(squirrel.Eq{"model_id": modelID}).
		OrderBy("created_at", "id")
}

func stream[R, T any](ctx context.Context, q postgres.Querier, table, columns string, modelID uuid.UUID, convert func(R) T) (domain.Cursor[T], error) {
	cur, err := openCursor(ctx, q, streamQuery(table, columns, modelID), convert)
	if err != nil {
		return nil, postgres.MapError(err, table, uuid.Nil)
	}
	return cur, nil
}

func (r *Repo) StreamOccupationGroups(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.OccupationGroup], error) {
	return stream(ctx, r.q, "occupation_groups", occupationGroupColumns, modelID, toOccupationGroup)
}

func (r *Repo) StreamOccupations(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.Occupation], error) {
	return stream(ctx, r.q, "occupations", occupationColumns, modelID, toOccupation)
}

func (r *Repo) StreamSkillGroups(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.SkillGroup], error) {
	return stream(ctx, r.q, "skill_groups", skillGroupColumns, modelID, toSkillGroup)
}

func (r *Repo) StreamSkills(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.Skill], error) {
	return stream(ctx, r.q, "skills", skillColumns, modelID, toSkill)
}

func (r *Repo) StreamOccupationHierarchy(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.HierarchyPair], error) {
	return stream(ctx, r.q, "occupation_hierarchy", hierarchyColumns, modelID, toHierarchyPair)
}

func (r *Repo) StreamSkillHierarchy(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.HierarchyPair], error) {
	return stream(ctx, r.q, "skill_hierarchy", hierarchyColumns, modelID, toHierarchyPair)
}

func (r *Repo) StreamOccupationSkillRelations(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.OccupationSkillRelation], error) {
	return stream(ctx, r.q, "occupation_skill_relations", occupationSkillColumns, modelID, toOccupationSkillRelation)
}

func (r *Repo) StreamSkillSkillRelations(ctx context.Context, modelID uuid.UUID) (domain.Cursor[domain.SkillSkillRelation], error) {
	return stream(ctx, r.q, "skill_skill_relations", skillSkillColumns, modelID, toSkillSkillRelation)
}
