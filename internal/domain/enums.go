package domain

import "strings"

// ObjectType tags the kind of a taxonomy object. It is the discriminant used
// by hierarchy files, relation files and the occupation/group exports.
type ObjectType string

const (
	ObjectTypeISCOGroup       ObjectType = "iscogroup"
	ObjectTypeLocalGroup      ObjectType = "localgroup"
	ObjectTypeESCOOccupation  ObjectType = "escooccupation"
	ObjectTypeLocalOccupation ObjectType = "localoccupation"
	ObjectTypeSkillGroup      ObjectType = "skillgroup"
	ObjectTypeSkill           ObjectType = "skill"
)

func (t ObjectType) String() string { return string(t) }

// IsOccupationGroup reports whether t tags an occupation group.
func (t ObjectType) IsOccupationGroup() bool {
	return t == ObjectTypeISCOGroup || t == ObjectTypeLocalGroup
}

// IsOccupation reports whether t tags an occupation.
func (t ObjectType) IsOccupation() bool {
	return t == ObjectTypeESCOOccupation || t == ObjectTypeLocalOccupation
}

// IsOccupationHierarchyMember reports whether t may appear on either side of
// an occupation hierarchy pair.
func (t ObjectType) IsOccupationHierarchyMember() bool {
	return t.IsOccupationGroup() || t.IsOccupation()
}

// IsSkillHierarchyMember reports whether t may appear on either side of a
// skill hierarchy pair.
func (t ObjectType) IsSkillHierarchyMember() bool {
	return t == ObjectTypeSkillGroup || t == ObjectTypeSkill
}

// ParseObjectType maps a raw column value to an ObjectType.
func ParseObjectType(raw string) (ObjectType, bool) {
	t := ObjectType(NormalizeSymbol(raw))
	switch t {
	case ObjectTypeISCOGroup, ObjectTypeLocalGroup,
		ObjectTypeESCOOccupation, ObjectTypeLocalOccupation,
		ObjectTypeSkillGroup, ObjectTypeSkill:
		return t, true
	}
	return "", false
}

// SkillType classifies a skill.
type SkillType string

const (
	SkillTypeNone      SkillType = ""
	SkillTypeSkill     SkillType = "skill/competence"
	SkillTypeKnowledge SkillType = "knowledge"
	SkillTypeLanguage  SkillType = "language"
	SkillTypeAttitude  SkillType = "attitude"
)

func (s SkillType) String() string { return string(s) }

func (s SkillType) IsValid() bool {
	switch s {
	case SkillTypeNone, SkillTypeSkill, SkillTypeKnowledge, SkillTypeLanguage, SkillTypeAttitude:
		return true
	}
	return false
}

// ReuseLevel describes how widely a skill applies.
type ReuseLevel string

const (
	ReuseLevelNone               ReuseLevel = ""
	ReuseLevelSectorSpecific     ReuseLevel = "sector-specific"
	ReuseLevelOccupationSpecific ReuseLevel = "occupation-specific"
	ReuseLevelCrossSector        ReuseLevel = "cross-sector"
	ReuseLevelTransversal        ReuseLevel = "transversal"
)

func (r ReuseLevel) String() string { return string(r) }

func (r ReuseLevel) IsValid() bool {
	switch r {
	case ReuseLevelNone, ReuseLevelSectorSpecific, ReuseLevelOccupationSpecific,
		ReuseLevelCrossSector, ReuseLevelTransversal:
		return true
	}
	return false
}

// RelationType qualifies an occupation→skill or skill→skill relation.
type RelationType string

const (
	RelationTypeEssential RelationType = "essential"
	RelationTypeOptional  RelationType = "optional"
)

func (r RelationType) String() string { return string(r) }

// ParseRelationType maps a raw column value to a RelationType.
func ParseRelationType(raw string) (RelationType, bool) {
	r := RelationType(NormalizeSymbol(raw))
	switch r {
	case RelationTypeEssential, RelationTypeOptional:
		return r, true
	}
	return "", false
}

// ProcessStatus is the lifecycle state of an import or export run.
type ProcessStatus string

const (
	ProcessStatusPending   ProcessStatus = "pending"
	ProcessStatusRunning   ProcessStatus = "running"
	ProcessStatusCompleted ProcessStatus = "completed"
)

func (s ProcessStatus) String() string { return string(s) }

// CentralityTarget selects which entity collection receives degree counts.
type CentralityTarget string

const (
	CentralityTargetSkills      CentralityTarget = "skills"
	CentralityTargetOccupations CentralityTarget = "occupations"
)

func (t CentralityTarget) String() string { return string(t) }

func (t CentralityTarget) IsValid() bool {
	return t == CentralityTargetSkills || t == CentralityTargetOccupations
}

// ParseCentralityTargets parses a comma-separated target list. An empty
// string selects every target.
func ParseCentralityTargets(raw string) ([]CentralityTarget, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []CentralityTarget{CentralityTargetSkills, CentralityTargetOccupations}, nil
	}
	var targets []CentralityTarget
	for _, p := range strings.Split(raw, ",") {
		t := CentralityTarget(NormalizeSymbol(p))
		if !t.IsValid() {
			return nil, NewValidationError("target", "unknown centrality target "+p)
		}
		targets = append(targets, t)
	}
	return targets, nil
}
