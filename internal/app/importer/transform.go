package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// Column names of the input files, upper-cased.
const (
	colID                      = "ID"
	colCode                    = "CODE"
	colOccupationGroupCode     = "OCCUPATIONGROUPCODE"
	colPreferredLabel          = "PREFERREDLABEL"
	colOriginURI               = "ORIGINURI"
	colAltLabels               = "ALTLABELS"
	colDescription             = "DESCRIPTION"
	colDefinition              = "DEFINITION"
	colScopeNote               = "SCOPENOTE"
	colRegulatedProfessionNote = "REGULATEDPROFESSIONNOTE"
	colIsLocalized             = "ISLOCALIZED"
	colUUIDHistory             = "UUIDHISTORY"
	colSkillType               = "SKILLTYPE"
	colReuseLevel              = "REUSELEVEL"
	colParentObjectType        = "PARENTOBJECTTYPE"
	colParentID                = "PARENTID"
	colChildObjectType         = "CHILDOBJECTTYPE"
	colChildID                 = "CHILDID"
	colOccupationType          = "OCCUPATIONTYPE"
	colOccupationID            = "OCCUPATIONID"
	colSkillID                 = "SKILLID"
	colRelationType            = "RELATIONTYPE"
	colRequiringID             = "REQUIRINGID"
	colRequiredID              = "REQUIREDID"
)

var (
	groupColumns      = []string{colID, colCode, colPreferredLabel}
	occupationColumns = []string{colID, colOccupationGroupCode, colCode, colPreferredLabel}
	skillColumns      = []string{colID, colSkillType, colReuseLevel, colPreferredLabel}
	hierarchyColumns  = []string{colParentObjectType, colParentID, colChildID, colChildObjectType}
	occToSkillColumns = []string{colOccupationType, colOccupationID, colSkillID, colRelationType}
	skillToSkillCols  = []string{colRequiringID, colRelationType, colRequiredID}
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkSpec runs struct validation and returns a skip reason, or "".
func checkSpec(spec any) string {
	err := validate.Struct(spec)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func occupationGroupTransform(groupType domain.ObjectType) func(Record) Result[domain.OccupationGroupSpec] {
	return func(rec Record) Result[domain.OccupationGroupSpec] {
		spec := domain.OccupationGroupSpec{
			ImportID:       rec.Get(colID),
			GroupType:      groupType,
			Code:           rec.Get(colCode),
			OriginURI:      rec.Get(colOriginURI),
			PreferredLabel: rec.Get(colPreferredLabel),
			AltLabels:      domain.SplitLines(rec[colAltLabels]),
			Description:    rec.Get(colDescription),
			UUIDHistory:    domain.SplitLines(rec[colUUIDHistory]),
		}
		ref := importIDRef(spec.ImportID)
		if reason := checkSpec(spec); reason != "" {
			return Skip[domain.OccupationGroupSpec](ref, reason)
		}
		return Accept(spec, ref)
	}
}

func occupationTransform(occupationType domain.ObjectType) func(Record) Result[domain.OccupationSpec] {
	return func(rec Record) Result[domain.OccupationSpec] {
		spec := domain.OccupationSpec{
			ImportID:                rec.Get(colID),
			OccupationType:          occupationType,
			OccupationGroupCode:     rec.Get(colOccupationGroupCode),
			Code:                    rec.Get(colCode),
			OriginURI:               rec.Get(colOriginURI),
			PreferredLabel:          rec.Get(colPreferredLabel),
			AltLabels:               domain.SplitLines(rec[colAltLabels]),
			Description:             rec.Get(colDescription),
			Definition:              rec.Get(colDefinition),
			ScopeNote:               rec.Get(colScopeNote),
			RegulatedProfessionNote: rec.Get(colRegulatedProfessionNote),
			IsLocalized:             occupationType == domain.ObjectTypeLocalOccupation,
			UUIDHistory:             domain.SplitLines(rec[colUUIDHistory]),
		}
		ref := importIDRef(spec.ImportID)
		if raw := rec.Get(colIsLocalized); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return Skip[domain.OccupationSpec](ref, "invalid ISLOCALIZED value "+raw)
			}
			spec.IsLocalized = v
		}
		if reason := checkSpec(spec); reason != "" {
			return Skip[domain.OccupationSpec](ref, reason)
		}
		return Accept(spec, ref)
	}
}

func skillGroupTransform(rec Record) Result[domain.SkillGroupSpec] {
	spec := domain.SkillGroupSpec{
		ImportID:       rec.Get(colID),
		Code:           rec.Get(colCode),
		OriginURI:      rec.Get(colOriginURI),
		PreferredLabel: rec.Get(colPreferredLabel),
		AltLabels:      domain.SplitLines(rec[colAltLabels]),
		Description:    rec.Get(colDescription),
		ScopeNote:      rec.Get(colScopeNote),
		UUIDHistory:    domain.SplitLines(rec[colUUIDHistory]),
	}
	ref := importIDRef(spec.ImportID)
	if reason := checkSpec(spec); reason != "" {
		return Skip[domain.SkillGroupSpec](ref, reason)
	}
	return Accept(spec, ref)
}

func skillTransform(rec Record) Result[domain.SkillSpec] {
	spec := domain.SkillSpec{
		ImportID:       rec.Get(colID),
		SkillType:      domain.SkillType(domain.NormalizeSymbol(rec[colSkillType])),
		ReuseLevel:     domain.ReuseLevel(domain.NormalizeSymbol(rec[colReuseLevel])),
		OriginURI:      rec.Get(colOriginURI),
		PreferredLabel: rec.Get(colPreferredLabel),
		AltLabels:      domain.SplitLines(rec[colAltLabels]),
		Description:    rec.Get(colDescription),
		Definition:     rec.Get(colDefinition),
		ScopeNote:      rec.Get(colScopeNote),
		UUIDHistory:    domain.SplitLines(rec[colUUIDHistory]),
	}
	ref := importIDRef(spec.ImportID)
	if reason := checkSpec(spec); reason != "" {
		return Skip[domain.SkillSpec](ref, reason)
	}
	return Accept(spec, ref)
}

// hierarchyTransform resolves both ends of a hierarchy row. member decides
// which object types may appear in this hierarchy.
func hierarchyTransform(ids *IDTable, member func(domain.ObjectType) bool) func(Record) Result[domain.HierarchyPairSpec] {
	return func(rec Record) Result[domain.HierarchyPairSpec] {
		parentRaw, childRaw := rec.Get(colParentID), rec.Get(colChildID)
		ref := fmt.Sprintf("with parentId:'%s' and childId:'%s'", parentRaw, childRaw)

		parentType, ok := domain.ParseObjectType(rec[colParentObjectType])
		if !ok || !member(parentType) {
			return Skip[domain.HierarchyPairSpec](ref, "unknown parent object type "+rec.Get(colParentObjectType))
		}
		childType, ok := domain.ParseObjectType(rec[colChildObjectType])
		if !ok || !member(childType) {
			return Skip[domain.HierarchyPairSpec](ref, "unknown child object type "+rec.Get(colChildObjectType))
		}
		parentID, ok := ids.Lookup(parentRaw)
		if !ok {
			return Skip[domain.HierarchyPairSpec](ref, "unresolved parent id")
		}
		childID, ok := ids.Lookup(childRaw)
		if !ok {
			return Skip[domain.HierarchyPairSpec](ref, "unresolved child id")
		}

		return Accept(domain.HierarchyPairSpec{
			ParentType: parentType,
			ParentID:   parentID,
			ChildType:  childType,
			ChildID:    childID,
		}, ref)
	}
}

func occupationToSkillTransform(ids *IDTable) func(Record) Result[domain.OccupationSkillRelationSpec] {
	return func(rec Record) Result[domain.OccupationSkillRelationSpec] {
		occRaw, skillRaw := rec.Get(colOccupationID), rec.Get(colSkillID)
		ref := fmt.Sprintf("with occupationId:'%s' and skillId:'%s'", occRaw, skillRaw)

		occType, ok := domain.ParseObjectType(rec[colOccupationType])
		if !ok || !occType.IsOccupation() {
			return Skip[domain.OccupationSkillRelationSpec](ref, "unknown occupation type "+rec.Get(colOccupationType))
		}
		relType, ok := domain.ParseRelationType(rec[colRelationType])
		if !ok {
			return Skip[domain.OccupationSkillRelationSpec](ref, "unknown relation type "+rec.Get(colRelationType))
		}
		occID, ok := ids.Lookup(occRaw)
		if !ok {
			return Skip[domain.OccupationSkillRelationSpec](ref, "unresolved occupation id")
		}
		skillID, ok := ids.Lookup(skillRaw)
		if !ok {
			return Skip[domain.OccupationSkillRelationSpec](ref, "unresolved skill id")
		}

		return Accept(domain.OccupationSkillRelationSpec{
			OccupationType: occType,
			OccupationID:   occID,
			RelationType:   relType,
			SkillID:        skillID,
		}, ref)
	}
}

func skillToSkillTransform(ids *IDTable) func(Record) Result[domain.SkillSkillRelationSpec] {
	return func(rec Record) Result[domain.SkillSkillRelationSpec] {
		requiringRaw, requiredRaw := rec.Get(colRequiringID), rec.Get(colRequiredID)
		ref := fmt.Sprintf("with requiringSkillId:'%s' and requiredSkillId:'%s'", requiringRaw, requiredRaw)

		relType, ok := domain.ParseRelationType(rec[colRelationType])
		if !ok {
			return Skip[domain.SkillSkillRelationSpec](ref, "unknown relation type "+rec.Get(colRelationType))
		}
		requiringID, ok := ids.Lookup(requiringRaw)
		if !ok {
			return Skip[domain.SkillSkillRelationSpec](ref, "unresolved requiring skill id")
		}
		requiredID, ok := ids.Lookup(requiredRaw)
		if !ok {
			return Skip[domain.SkillSkillRelationSpec](ref, "unresolved required skill id")
		}

		return Accept(domain.SkillSkillRelationSpec{
			RequiringSkillID: requiringID,
			RelationType:     relType,
			RequiredSkillID:  requiredID,
		}, ref)
	}
}
