package exporter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

var (
	modelInfoHeader = []string{"ID", "NAME", "LOCALE", "DESCRIPTION", "VERSION", "RELEASED", "CREATEDAT"}

	occupationGroupHeader = []string{
		"ID", "GROUPTYPE", "CODE", "ORIGINURI", "PREFERREDLABEL", "ALTLABELS", "DESCRIPTION", "UUIDHISTORY",
	}
	occupationHeader = []string{
		"ID", "OCCUPATIONTYPE", "OCCUPATIONGROUPCODE", "CODE", "ORIGINURI", "PREFERREDLABEL", "ALTLABELS",
		"DESCRIPTION", "DEFINITION", "SCOPENOTE", "REGULATEDPROFESSIONNOTE", "ISLOCALIZED", "UUIDHISTORY",
		"DEGREECENTRALITY",
	}
	skillGroupHeader = []string{
		"ID", "CODE", "ORIGINURI", "PREFERREDLABEL", "ALTLABELS", "DESCRIPTION", "SCOPENOTE", "UUIDHISTORY",
	}
	skillHeader = []string{
		"ID", "SKILLTYPE", "REUSELEVEL", "ORIGINURI", "PREFERREDLABEL", "ALTLABELS", "DESCRIPTION",
		"DEFINITION", "SCOPENOTE", "UUIDHISTORY", "DEGREECENTRALITY",
	}
	hierarchyHeader    = []string{"PARENTOBJECTTYPE", "PARENTID", "CHILDID", "CHILDOBJECTTYPE"}
	occToSkillHeader   = []string{"OCCUPATIONTYPE", "OCCUPATIONID", "RELATIONTYPE", "SKILLID"}
	skillToSkillHeader = []string{"REQUIRINGID", "RELATIONTYPE", "REQUIREDID"}
)

// unknownDiscriminant describes a document whose type tag is not one of the
// recognized values. The document is included as JSON when it can be
// serialized.
func unknownDiscriminant(field string, value any, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		raw = fmt.Appendf(nil, "%+v", doc)
	}
	return fmt.Errorf("%w: %s %q in document %s", domain.ErrUnknownDiscriminant, field, value, raw)
}

func modelInfoRecord(m domain.Model) ([]string, error) {
	return []string{
		m.ID.String(),
		m.Name,
		m.Locale,
		m.Description,
		m.Version,
		strconv.FormatBool(m.Released),
		m.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func occupationGroupRecord(g domain.OccupationGroup) ([]string, error) {
	if !g.GroupType.IsOccupationGroup() {
		return nil, unknownDiscriminant("groupType", g.GroupType, g)
	}
	return []string{
		g.ID.String(),
		g.GroupType.String(),
		g.Code,
		g.OriginURI,
		g.PreferredLabel,
		domain.JoinLines(g.AltLabels),
		g.Description,
		domain.JoinLines(g.UUIDHistory),
	}, nil
}

func occupationRecord(o domain.Occupation) ([]string, error) {
	if !o.OccupationType.IsOccupation() {
		return nil, unknownDiscriminant("occupationType", o.OccupationType, o)
	}
	return []string{
		o.ID.String(),
		o.OccupationType.String(),
		o.OccupationGroupCode,
		o.Code,
		o.OriginURI,
		o.PreferredLabel,
		domain.JoinLines(o.AltLabels),
		o.Description,
		o.Definition,
		o.ScopeNote,
		o.RegulatedProfessionNote,
		strconv.FormatBool(o.IsLocalized),
		domain.JoinLines(o.UUIDHistory),
		strconv.Itoa(o.DegreeCentrality),
	}, nil
}

func skillGroupRecord(g domain.SkillGroup) ([]string, error) {
	return []string{
		g.ID.String(),
		g.Code,
		g.OriginURI,
		g.PreferredLabel,
		domain.JoinLines(g.AltLabels),
		g.Description,
		g.ScopeNote,
		domain.JoinLines(g.UUIDHistory),
	}, nil
}

func skillRecord(s domain.Skill) ([]string, error) {
	if !s.SkillType.IsValid() {
		return nil, unknownDiscriminant("skillType", s.SkillType, s)
	}
	if !s.ReuseLevel.IsValid() {
		return nil, unknownDiscriminant("reuseLevel", s.ReuseLevel, s)
	}
	return []string{
		s.ID.String(),
		s.SkillType.String(),
		s.ReuseLevel.String(),
		s.OriginURI,
		s.PreferredLabel,
		domain.JoinLines(s.AltLabels),
		s.Description,
		s.Definition,
		s.ScopeNote,
		domain.JoinLines(s.UUIDHistory),
		strconv.Itoa(s.DegreeCentrality),
	}, nil
}

// hierarchyRecord returns the record function for one hierarchy. member
// decides which object types are valid on either side.
func hierarchyRecord(member func(domain.ObjectType) bool) func(domain.HierarchyPair) ([]string, error) {
	return func(p domain.HierarchyPair) ([]string, error) {
		if !member(p.ParentType) {
			return nil, unknownDiscriminant("parentType", p.ParentType, p)
		}
		if !member(p.ChildType) {
			return nil, unknownDiscriminant("childType", p.ChildType, p)
		}
		return []string{
			p.ParentType.String(),
			p.ParentID.String(),
			p.ChildID.String(),
			p.ChildType.String(),
		}, nil
	}
}

func occupationSkillRecord(r domain.OccupationSkillRelation) ([]string, error) {
	if !r.OccupationType.IsOccupation() {
		return nil, unknownDiscriminant("occupationType", r.OccupationType, r)
	}
	if _, ok := domain.ParseRelationType(r.RelationType.String()); !ok {
		return nil, unknownDiscriminant("relationType", r.RelationType, r)
	}
	return []string{
		r.OccupationType.String(),
		r.OccupationID.String(),
		r.RelationType.String(),
		r.SkillID.String(),
	}, nil
}

func skillSkillRecord(r domain.SkillSkillRelation) ([]string, error) {
	if _, ok := domain.ParseRelationType(r.RelationType.String()); !ok {
		return nil, unknownDiscriminant("relationType", r.RelationType, r)
	}
	return []string{
		r.RequiringSkillID.String(),
		r.RelationType.String(),
		r.RequiredSkillID.String(),
	}, nil
}
