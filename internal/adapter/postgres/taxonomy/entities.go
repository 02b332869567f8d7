package taxonomy

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taxonomy-loader/internal/adapter/postgres"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// Entity inserts skip rows whose (model_id, import_id) already exists, so
// the returned refs are exactly the rows this call created.
const entityConflictSuffix = "ON CONFLICT (model_id, import_id) DO NOTHING RETURNING id, import_id"

// CreateOccupationGroups inserts ISCO and local occupation groups.
func (r *Repo) CreateOccupationGroups(ctx context.Context, modelID uuid.UUID, specs []domain.OccupationGroupSpec) ([]domain.CreatedRef, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	query := builder().
		Insert("occupation_groups").
		Columns("model_id", "import_id", "group_type", "code", "origin_uri",
			"preferred_label", "alt_labels", "description", "uuid_history")
	for _, s := range specs {
		query = query.Values(modelID, s.ImportID, string(s.GroupType), s.Code, s.OriginURI,
			s.PreferredLabel, textArray(s.AltLabels), s.Description, textArray(s.UUIDHistory))
	}

	return r.insertEntities(ctx, "occupation_groups", query)
}

// CreateOccupations inserts ESCO and local occupations.
func (r *Repo) CreateOccupations(ctx context.Context, modelID uuid.UUID, specs []domain.OccupationSpec) ([]domain.CreatedRef, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	query := builder().
		Insert("occupations").
		Columns("model_id", "import_id", "occupation_type", "occupation_group_code", "code",
			"origin_uri", "preferred_label", "alt_labels", "description", "definition",
			"scope_note", "regulated_profession_note", "is_localized", "uuid_history")
	for _, s := range specs {
		query = query.Values(modelID, s.ImportID, string(s.OccupationType), s.OccupationGroupCode, s.Code,
			s.OriginURI, s.PreferredLabel, textArray(s.AltLabels), s.Description, s.Definition,
			s.ScopeNote, s.RegulatedProfessionNote, s.IsLocalized, textArray(s.UUIDHistory))
	}

	return r.insertEntities(ctx, "occupations", query)
}

// CreateSkillGroups inserts skill groups.
func (r *Repo) CreateSkillGroups(ctx context.Context, modelID uuid.UUID, specs []domain.SkillGroupSpec) ([]domain.CreatedRef, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	query := builder().
		Insert("skill_groups").
		Columns("model_id", "import_id", "code", "origin_uri", "preferred_label",
			"alt_labels", "description", "scope_note", "uuid_history")
	for _, s := range specs {
		query = query.Values(modelID, s.ImportID, s.Code, s.OriginURI, s.PreferredLabel,
			textArray(s.AltLabels), s.Description, s.ScopeNote, textArray(s.UUIDHistory))
	}

	return r.insertEntities(ctx, "skill_groups", query)
}

// CreateSkills inserts skills.
func (r *Repo) CreateSkills(ctx context.Context, modelID uuid.UUID, specs []domain.SkillSpec) ([]domain.CreatedRef, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	query := builder().
		Insert("skills").
		Columns("model_id", "import_id", "skill_type", "reuse_level", "origin_uri",
			"preferred_label", "alt_labels", "description", "definition", "scope_note", "uuid_history")
	for _, s := range specs {
		query = query.Values(modelID, s.ImportID, string(s.SkillType), string(s.ReuseLevel), s.OriginURI,
			s.PreferredLabel, textArray(s.AltLabels), s.Description, s.Definition, s.ScopeNote, textArray(s.UUIDHistory))
	}

	return r.insertEntities(ctx, "skills", query)
}

func (r *Repo) insertEntities(ctx context.Context, table string, query squirrel.InsertBuilder) ([]domain.CreatedRef, error) {
	var rows []createdRow
	if err := r.selectAll(ctx, &rows, query.Suffix(entityConflictSuffix)); err != nil {
		return nil, postgres.MapError(err, table, uuid.Nil)
	}

	refs := make([]domain.CreatedRef, len(rows))
	for i, row := range rows {
		refs[i] = domain.CreatedRef{ID: row.ID, ImportID: row.ImportID}
	}
	return refs, nil
}
