package domain

import (
	"time"

	"github.com/google/uuid"
)

// Model is one version of a taxonomy. Every stored object belongs to exactly
// one model.
type Model struct {
	ID          uuid.UUID
	Name        string
	Locale      string
	Description string
	Version     string
	Released    bool
	CreatedAt   time.Time
}

// ModelSpec describes a model to create.
type ModelSpec struct {
	Name        string
	Locale      string
	Description string
	Version     string
}

// CreatedRef is what the store returns for a created entity: the assigned
// identifier and the import identifier it was created from.
type CreatedRef struct {
	ID       uuid.UUID
	ImportID string
}

// ---------------------------------------------------------------------------
// Entity specifications (store-ready rows of the entity files)
// ---------------------------------------------------------------------------

// OccupationGroupSpec is a row of ISCOGroups.csv or LocalGroups.csv.
type OccupationGroupSpec struct {
	ImportID       string
	GroupType      ObjectType `validate:"oneof=iscogroup localgroup"`
	Code           string     `validate:"required"`
	OriginURI      string
	PreferredLabel string `validate:"required"`
	AltLabels      []string
	Description    string
	UUIDHistory    []string
}

func (s OccupationGroupSpec) GetImportID() string { return s.ImportID }

// OccupationSpec is a row of ESCOOccupations.csv or LocalOccupations.csv.
type OccupationSpec struct {
	ImportID                string
	OccupationType          ObjectType `validate:"oneof=escooccupation localoccupation"`
	OccupationGroupCode     string     `validate:"required"`
	Code                    string     `validate:"required"`
	OriginURI               string
	PreferredLabel          string `validate:"required"`
	AltLabels               []string
	Description             string
	Definition              string
	ScopeNote               string
	RegulatedProfessionNote string
	IsLocalized             bool
	UUIDHistory             []string
}

func (s OccupationSpec) GetImportID() string { return s.ImportID }

// SkillGroupSpec is a row of SkillGroups.csv.
type SkillGroupSpec struct {
	ImportID       string
	Code           string `validate:"required"`
	OriginURI      string
	PreferredLabel string `validate:"required"`
	AltLabels      []string
	Description    string
	ScopeNote      string
	UUIDHistory    []string
}

func (s SkillGroupSpec) GetImportID() string { return s.ImportID }

// SkillSpec is a row of Skills.csv.
type SkillSpec struct {
	ImportID       string
	SkillType      SkillType  `validate:"oneof='' skill/competence knowledge language attitude"`
	ReuseLevel     ReuseLevel `validate:"oneof='' sector-specific occupation-specific cross-sector transversal"`
	OriginURI      string
	PreferredLabel string `validate:"required"`
	AltLabels      []string
	Description    string
	Definition     string
	ScopeNote      string
	UUIDHistory    []string
}

func (s SkillSpec) GetImportID() string { return s.ImportID }

// ---------------------------------------------------------------------------
// Relation specifications (references already resolved to store ids)
// ---------------------------------------------------------------------------

// PairKey identifies a created relation by its two endpoints.
type PairKey struct {
	From uuid.UUID
	To   uuid.UUID
}

// HierarchyPairSpec links a parent object to a child object.
type HierarchyPairSpec struct {
	ParentType ObjectType
	ParentID   uuid.UUID
	ChildType  ObjectType
	ChildID    uuid.UUID
}

func (s HierarchyPairSpec) Pair() PairKey { return PairKey{From: s.ParentID, To: s.ChildID} }

// OccupationSkillRelationSpec links an occupation to a skill it requires.
type OccupationSkillRelationSpec struct {
	OccupationType ObjectType
	OccupationID   uuid.UUID
	RelationType   RelationType
	SkillID        uuid.UUID
}

func (s OccupationSkillRelationSpec) Pair() PairKey {
	return PairKey{From: s.OccupationID, To: s.SkillID}
}

// SkillSkillRelationSpec links a requiring skill to a required skill.
type SkillSkillRelationSpec struct {
	RequiringSkillID uuid.UUID
	RelationType     RelationType
	RequiredSkillID  uuid.UUID
}

func (s SkillSkillRelationSpec) Pair() PairKey {
	return PairKey{From: s.RequiringSkillID, To: s.RequiredSkillID}
}

// ---------------------------------------------------------------------------
// Stored documents (read back by the export pipeline)
// ---------------------------------------------------------------------------

// OccupationGroup is a stored occupation group.
type OccupationGroup struct {
	ID      uuid.UUID
	ModelID uuid.UUID
	OccupationGroupSpec
}

// Occupation is a stored occupation.
type Occupation struct {
	ID               uuid.UUID
	ModelID          uuid.UUID
	DegreeCentrality int
	OccupationSpec
}

// SkillGroup is a stored skill group.
type SkillGroup struct {
	ID      uuid.UUID
	ModelID uuid.UUID
	SkillGroupSpec
}

// Skill is a stored skill.
type Skill struct {
	ID               uuid.UUID
	ModelID          uuid.UUID
	DegreeCentrality int
	SkillSpec
}

// HierarchyPair is a stored occupation or skill hierarchy pair.
type HierarchyPair struct {
	ID      uuid.UUID
	ModelID uuid.UUID
	HierarchyPairSpec
}

// OccupationSkillRelation is a stored occupation→skill relation.
type OccupationSkillRelation struct {
	ID      uuid.UUID
	ModelID uuid.UUID
	OccupationSkillRelationSpec
}

// SkillSkillRelation is a stored skill→skill relation.
type SkillSkillRelation struct {
	ID      uuid.UUID
	ModelID uuid.UUID
	SkillSkillRelationSpec
}

// EdgeCount is one aggregated degree: the number of relations an entity
// takes part in.
type EdgeCount struct {
	EntityID  uuid.UUID
	EdgeCount int
}
