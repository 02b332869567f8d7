package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

var (
	dbID1 = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
	dbID3 = uuid.MustParse("00000000-0000-0000-0000-0000000000d3")
)

func numberedSkills(importIDs ...string) []Numbered[domain.SkillSpec] {
	rows := make([]Numbered[domain.SkillSpec], len(importIDs))
	for i, id := range importIDs {
		rows[i] = Numbered[domain.SkillSpec]{Ordinal: i + 1, Spec: domain.SkillSpec{ImportID: id, PreferredLabel: "s"}}
	}
	return rows
}

func TestEntityCommitter_PartitionsBlankImportIDs(t *testing.T) {
	t.Parallel()

	ids := NewIDTable()
	rep := &recordingReporter{}
	var sent []domain.SkillSpec
	c := NewEntityCommitter(KindSkill, ids, rep, func(_ context.Context, specs []domain.SkillSpec) ([]domain.CreatedRef, error) {
		sent = specs
		return []domain.CreatedRef{{ID: dbID1, ImportID: "1"}, {ID: dbID3, ImportID: "3"}}, nil
	})

	// The fourth row has no import id at all.
	rows := numberedSkills("1", "", "3", "")
	stats, err := c.Commit(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, domain.RowsProcessedStats{RowsProcessed: 4, RowsSuccess: 2, RowsFailed: 2}, stats)
	require.Len(t, sent, 2, "blank import ids must not reach the store")
	assert.Equal(t, []string{
		"Failed to import Skill from row:2 with importId:''",
		"Failed to import Skill from row:4 with importId:''",
	}, rep.warnings)

	assert.Equal(t, 2, ids.Len())
	got1, _ := ids.Lookup("1")
	got3, _ := ids.Lookup("3")
	assert.Equal(t, dbID1, got1)
	assert.Equal(t, dbID3, got3)
}

func TestEntityCommitter_EarlierResolvedIDCountsAsSuccess(t *testing.T) {
	t.Parallel()

	ids := NewIDTable()
	ids.Set("1", dbID1)
	rep := &recordingReporter{}
	// Store reports nothing created: "1" is a conflict and "2" was rejected.
	c := NewEntityCommitter(KindSkill, ids, rep, func(context.Context, []domain.SkillSpec) ([]domain.CreatedRef, error) {
		return nil, nil
	})

	stats, err := c.Commit(context.Background(), numberedSkills("1", "2"))
	require.NoError(t, err)

	assert.Equal(t, domain.RowsProcessedStats{RowsProcessed: 2, RowsSuccess: 1, RowsFailed: 1}, stats)
	assert.Equal(t, []string{"Failed to import Skill from row:2 with importId:'2'"}, rep.warnings)
}

func TestEntityCommitter_CreateFailureFailsWholeBatch(t *testing.T) {
	t.Parallel()

	ids := NewIDTable()
	rep := &recordingReporter{}
	boom := errors.New("insert failed")
	c := NewEntityCommitter(KindSkill, ids, rep, func(context.Context, []domain.SkillSpec) ([]domain.CreatedRef, error) {
		return nil, boom
	})

	stats, err := c.Commit(context.Background(), numberedSkills("1", "", "3"))
	require.NoError(t, err)

	assert.Equal(t, domain.FailedStats(3), stats)
	assert.Equal(t, []string{"Failed to import Skill batch of 3 rows"}, rep.errors)
	assert.ErrorIs(t, rep.causes[0], boom)
	assert.Len(t, rep.warnings, 3)
	assert.Zero(t, ids.Len())
}

func TestEntityCommitter_AllBlankSkipsStore(t *testing.T) {
	t.Parallel()

	called := false
	rep := &recordingReporter{}
	c := NewEntityCommitter(KindSkill, NewIDTable(), rep, func(context.Context, []domain.SkillSpec) ([]domain.CreatedRef, error) {
		called = true
		return nil, nil
	})

	stats, err := c.Commit(context.Background(), numberedSkills("", ""))
	require.NoError(t, err)

	assert.False(t, called)
	assert.Equal(t, domain.FailedStats(2), stats)
}

func TestRelationCommitter_CountsCreatedPairs(t *testing.T) {
	t.Parallel()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	rows := []Numbered[domain.SkillSkillRelationSpec]{
		{Ordinal: 1, Ref: "with requiringSkillId:'a' and requiredSkillId:'b'", Spec: domain.SkillSkillRelationSpec{RequiringSkillID: a, RequiredSkillID: b}},
		{Ordinal: 2, Ref: "with requiringSkillId:'b' and requiredSkillId:'c'", Spec: domain.SkillSkillRelationSpec{RequiringSkillID: b, RequiredSkillID: c}},
	}
	rep := &recordingReporter{}
	rc := NewRelationCommitter(KindSkillToSkill, rep, func(context.Context, []domain.SkillSkillRelationSpec) ([]domain.PairKey, error) {
		return []domain.PairKey{{From: a, To: b}}, nil
	})

	stats, err := rc.Commit(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, domain.RowsProcessedStats{RowsProcessed: 2, RowsSuccess: 1, RowsFailed: 1}, stats)
	assert.Equal(t, []string{
		"Failed to import SkillToSkillRelation from row:2 with requiringSkillId:'b' and requiredSkillId:'c'",
	}, rep.warnings)
}

func TestRelationCommitter_CreateFailure(t *testing.T) {
	t.Parallel()

	rep := &recordingReporter{}
	rc := NewRelationCommitter(KindSkillToSkill, rep, func(context.Context, []domain.SkillSkillRelationSpec) ([]domain.PairKey, error) {
		return nil, errors.New("deadlock detected")
	})

	rows := []Numbered[domain.SkillSkillRelationSpec]{{Ordinal: 7, Ref: "with requiringSkillId:'x' and requiredSkillId:'y'"}}
	stats, err := rc.Commit(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, domain.FailedStats(1), stats)
	assert.Len(t, rep.errors, 1)
	assert.Equal(t, []string{"Failed to import SkillToSkillRelation from row:7 with requiringSkillId:'x' and requiredSkillId:'y'"}, rep.warnings)
}
