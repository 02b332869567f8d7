package taxonomy

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

type modelRow struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Locale      string    `db:"locale"`
	Description string    `db:"description"`
	Version     string    `db:"version"`
	Released    bool      `db:"released"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r modelRow) toDomain() domain.Model {
	return domain.Model{
		ID:          r.ID,
		Name:        r.Name,
		Locale:      r.Locale,
		Description: r.Description,
		Version:     r.Version,
		Released:    r.Released,
		CreatedAt:   r.CreatedAt,
	}
}

type createdRow struct {
	ID       uuid.UUID `db:"id"`
	ImportID string    `db:"import_id"`
}

type pairRow struct {
	FromID uuid.UUID `db:"from_id"`
	ToID   uuid.UUID `db:"to_id"`
}

type occupationGroupRow struct {
	ID             uuid.UUID `db:"id"`
	ModelID        uuid.UUID `db:"model_id"`
	ImportID       string    `db:"import_id"`
	GroupType      string    `db:"group_type"`
	Code           string    `db:"code"`
	OriginURI      string    `db:"origin_uri"`
	PreferredLabel string    `db:"preferred_label"`
	AltLabels      []string  `db:"alt_labels"`
	Description    string    `db:"description"`
	UUIDHistory    []string  `db:"uuid_history"`
}

func toOccupationGroup(r occupationGroupRow) domain.OccupationGroup {
	return domain.OccupationGroup{
		ID:      r.ID,
		ModelID: r.ModelID,
		OccupationGroupSpec: domain.OccupationGroupSpec{
			ImportID:       r.ImportID,
			GroupType:      domain.ObjectType(r.GroupType),
			Code:           r.Code,
			OriginURI:      r.OriginURI,
			PreferredLabel: r.PreferredLabel,
			AltLabels:      r.AltLabels,
			Description:    r.Description,
			UUIDHistory:    r.UUIDHistory,
		},
	}
}

type occupationRow struct {
	ID                      uuid.UUID `db:"id"`
	ModelID                 uuid.UUID `db:"model_id"`
	ImportID                string    `db:"import_id"`
	OccupationType          string    `db:"occupation_type"`
	OccupationGroupCode     string    `db:"occupation_group_code"`
	Code                    string    `db:"code"`
	OriginURI               string    `db:"origin_uri"`
	PreferredLabel          string    `db:"preferred_label"`
	AltLabels               []string  `db:"alt_labels"`
	Description             string    `db:"description"`
	Definition              string    `db:"definition"`
	ScopeNote               string    `db:"scope_note"`
	RegulatedProfessionNote string    `db:"regulated_profession_note"`
	IsLocalized             bool      `db:"is_localized"`
	UUIDHistory             []string  `db:"uuid_history"`
	DegreeCentrality        int       `db:"degree_centrality"`
}

func toOccupation(r occupationRow) domain.Occupation {
	return domain.Occupation{
		ID:               r.ID,
		ModelID:          r.ModelID,
		DegreeCentrality: r.DegreeCentrality,
		OccupationSpec: domain.OccupationSpec{
			ImportID:                r.ImportID,
			OccupationType:          domain.ObjectType(r.OccupationType),
			OccupationGroupCode:     r.OccupationGroupCode,
			Code:                    r.Code,
			OriginURI:               r.OriginURI,
			PreferredLabel:          r.PreferredLabel,
			AltLabels:               r.AltLabels,
			Description:             r.Description,
			Definition:              r.Definition,
			ScopeNote:               r.ScopeNote,
			RegulatedProfessionNote: r.RegulatedProfessionNote,
			IsLocalized:             r.IsLocalized,
			UUIDHistory:             r.UUIDHistory,
		},
	}
}

type skillGroupRow struct {
	ID             uuid.UUID `db:"id"`
	ModelID        uuid.UUID `db:"model_id"`
	ImportID       string    `db:"import_id"`
	Code           string    `db:"code"`
	OriginURI      string    `db:"origin_uri"`
	PreferredLabel string    `db:"preferred_label"`
	AltLabels      []string  `db:"alt_labels"`
	Description    string    `db:"description"`
	ScopeNote      string    `db:"scope_note"`
	UUIDHistory    []string  `db:"uuid_history"`
}

func toSkillGroup(r skillGroupRow) domain.SkillGroup {
	return domain.SkillGroup{
		ID:      r.ID,
		ModelID: r.ModelID,
		SkillGroupSpec: domain.SkillGroupSpec{
			ImportID:       r.ImportID,
			Code:           r.Code,
			OriginURI:      r.OriginURI,
			PreferredLabel: r.PreferredLabel,
			AltLabels:      r.AltLabels,
			Description:    r.Description,
			ScopeNote:      r.ScopeNote,
			UUIDHistory:    r.UUIDHistory,
		},
	}
}

type skillRow struct {
	ID               uuid.UUID `db:"id"`
	ModelID          uuid.UUID `db:"model_id"`
	ImportID         string    `db:"import_id"`
	SkillType        string    `db:"skill_type"`
	ReuseLevel       string    `db:"reuse_level"`
	OriginURI        string    `db:"origin_uri"`
	PreferredLabel   string    `db:"preferred_label"`
	AltLabels        []string  `db:"alt_labels"`
	Description      string    `db:"description"`
	Definition       string    `db:"definition"`
	ScopeNote        string    `db:"scope_note"`
	UUIDHistory      []string  `db:"uuid_history"`
	DegreeCentrality int       `db:"degree_centrality"`
}

func toSkill(r skillRow) domain.Skill {
	return domain.Skill{
		ID:               r.ID,
		ModelID:          r.ModelID,
		DegreeCentrality: r.DegreeCentrality,
		SkillSpec: domain.SkillSpec{
			ImportID:       r.ImportID,
			SkillType:      domain.SkillType(r.SkillType),
			ReuseLevel:     domain.ReuseLevel(r.ReuseLevel),
			OriginURI:      r.OriginURI,
			PreferredLabel: r.PreferredLabel,
			AltLabels:      r.AltLabels,
			Description:    r.Description,
			Definition:     r.Definition,
			ScopeNote:      r.ScopeNote,
			UUIDHistory:    r.UUIDHistory,
		},
	}
}

type hierarchyRow struct {
	ID         uuid.UUID `db:"id"`
	ModelID    uuid.UUID `db:"model_id"`
	ParentType string    `db:"parent_type"`
	ParentID   uuid.UUID `db:"parent_id"`
	ChildType  string    `db:"child_type"`
	ChildID    uuid.UUID `db:"child_id"`
}

func toHierarchyPair(r hierarchyRow) domain.HierarchyPair {
	return domain.HierarchyPair{
		ID:      r.ID,
		ModelID: r.ModelID,
		HierarchyPairSpec: domain.HierarchyPairSpec{
			ParentType: domain.ObjectType(r.ParentType),
			ParentID:   r.ParentID,
			ChildType:  domain.ObjectType(r.ChildType),
			ChildID:    r.ChildID,
		},
	}
}

type occupationSkillRow struct {
	ID             uuid.UUID `db:"id"`
	ModelID        uuid.UUID `db:"model_id"`
	OccupationType string    `db:"occupation_type"`
	OccupationID   uuid.UUID `db:"occupation_id"`
	RelationType   string    `db:"relation_type"`
	SkillID        uuid.UUID `db:"skill_id"`
}

func toOccupationSkillRelation(r occupationSkillRow) domain.OccupationSkillRelation {
	return domain.OccupationSkillRelation{
		ID:      r.ID,
		ModelID: r.ModelID,
		OccupationSkillRelationSpec: domain.OccupationSkillRelationSpec{
			OccupationType: domain.ObjectType(r.OccupationType),
			OccupationID:   r.OccupationID,
			RelationType:   domain.RelationType(r.RelationType),
			SkillID:        r.SkillID,
		},
	}
}

type skillSkillRow struct {
	ID               uuid.UUID `db:"id"`
	ModelID          uuid.UUID `db:"model_id"`
	RequiringSkillID uuid.UUID `db:"requiring_skill_id"`
	RelationType     string    `db:"relation_type"`
	RequiredSkillID  uuid.UUID `db:"required_skill_id"`
}

func toSkillSkillRelation(r skillSkillRow) domain.SkillSkillRelation {
	return domain.SkillSkillRelation{
		ID:      r.ID,
		ModelID: r.ModelID,
		SkillSkillRelationSpec: domain.SkillSkillRelationSpec{
			RequiringSkillID: r.RequiringSkillID,
			RelationType:     domain.RelationType(r.RelationType),
			RequiredSkillID:  r.RequiredSkillID,
		},
	}
}

type edgeCountRow struct {
	EntityID  uuid.UUID `db:"entity_id"`
	EdgeCount int       `db:"edge_count"`
}

func toEdgeCount(r edgeCountRow) domain.EdgeCount {
	return domain.EdgeCount{EntityID: r.EntityID, EdgeCount: r.EdgeCount}
}

type importProcessRow struct {
	ID        uuid.UUID `db:"id"`
	ModelID   uuid.UUID `db:"model_id"`
	Status    string    `db:"status"`
	Errored   bool      `db:"errored"`
	Warnings  bool      `db:"warnings"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r importProcessRow) toDomain() domain.ImportProcess {
	return domain.ImportProcess{
		ID:        r.ID,
		ModelID:   r.ModelID,
		Status:    domain.ProcessStatus(r.Status),
		Errored:   r.Errored,
		Warnings:  r.Warnings,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type exportProcessRow struct {
	ID          uuid.UUID `db:"id"`
	ModelID     uuid.UUID `db:"model_id"`
	Status      string    `db:"status"`
	Errored     bool      `db:"errored"`
	DownloadURL string    `db:"download_url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r exportProcessRow) toDomain() domain.ExportProcess {
	return domain.ExportProcess{
		ID:          r.ID,
		ModelID:     r.ModelID,
		Status:      domain.ProcessStatus(r.Status),
		Errored:     r.Errored,
		DownloadURL: r.DownloadURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
