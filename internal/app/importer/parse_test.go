package importer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

func testEnv(rep Reporter, size int) Env {
	return Env{Log: testLogger(), Report: rep, BatchSize: size}
}

// okRelations accepts every spec it receives and records batch sizes.
type okRelations[S RelationSpec] struct {
	batches [][]S
}

func (o *okRelations[S]) create(_ context.Context, specs []S) ([]domain.PairKey, error) {
	o.batches = append(o.batches, specs)
	keys := make([]domain.PairKey, len(specs))
	for i, s := range specs {
		keys[i] = s.Pair()
	}
	return keys, nil
}

func TestParseFile_MissingColumnsIsStructural(t *testing.T) {
	t.Parallel()

	rep := &recordingReporter{}
	store := &okRelations[domain.OccupationSkillRelationSpec]{}
	c := NewRelationCommitter(KindOccupationToSkill, rep, store.create)

	src := strings.NewReader("OCCUPATIONID,SKILLID\n1,2\n")
	stats, err := ParseFile(context.Background(), src, FileSpec[domain.OccupationSkillRelationSpec]{
		Kind:      KindOccupationToSkill,
		Required:  occToSkillColumns,
		Transform: occupationToSkillTransform(NewIDTable()),
		Commit:    c.Commit,
	}, testEnv(rep, 10))

	require.ErrorIs(t, err, domain.ErrMissingColumns)
	assert.Equal(t, domain.RowsProcessedStats{}, stats)
	assert.Empty(t, store.batches)
}

func TestParseFile_ResolvesForwardReferences(t *testing.T) {
	t.Parallel()

	db1, db2 := uuid.New(), uuid.New()
	ids := NewIDTable()
	ids.Set("1", db1)
	ids.Set("2", db2)

	rep := &recordingReporter{}
	store := &okRelations[domain.OccupationSkillRelationSpec]{}
	c := NewRelationCommitter(KindOccupationToSkill, rep, store.create)

	src := strings.NewReader(strings.Join([]string{
		"OCCUPATIONTYPE,OCCUPATIONID,SKILLID,RELATIONTYPE",
		"escooccupation,1,2,essential",
		"escooccupation,1,9,optional",
	}, "\n"))

	stats, err := ParseFile(context.Background(), src, FileSpec[domain.OccupationSkillRelationSpec]{
		Kind:      KindOccupationToSkill,
		Required:  occToSkillColumns,
		Transform: occupationToSkillTransform(ids),
		Commit:    c.Commit,
	}, testEnv(rep, 10))
	require.NoError(t, err)

	assert.Equal(t, domain.RowsProcessedStats{RowsProcessed: 2, RowsSuccess: 1, RowsFailed: 1}, stats)
	require.Len(t, store.batches, 1)
	require.Len(t, store.batches[0], 1)
	assert.Equal(t, db1, store.batches[0][0].OccupationID)
	assert.Equal(t, db2, store.batches[0][0].SkillID)
	assert.Equal(t, domain.RelationTypeEssential, store.batches[0][0].RelationType)
	assert.Equal(t, []string{
		"Failed to import OccupationToSkillRelation from row:2 with occupationId:'1' and skillId:'9'",
	}, rep.warnings)
}

func TestParseFile_SkipOrdinalsAreContinuousAcrossBatches(t *testing.T) {
	t.Parallel()

	ids := NewIDTable()
	for _, k := range []string{"a", "b"} {
		ids.Set(k, uuid.New())
	}

	rep := &recordingReporter{}
	store := &okRelations[domain.SkillSkillRelationSpec]{}
	c := NewRelationCommitter(KindSkillToSkill, rep, store.create)

	// Rows 3 and 6 carry an unknown relation type.
	src := strings.NewReader(strings.Join([]string{
		"REQUIRINGID,RELATIONTYPE,REQUIREDID",
		"a,essential,b",
		"b,optional,a",
		"a,mandatory,b",
		"a,optional,a",
		"b,essential,b",
		"b,sometimes,a",
	}, "\n"))

	stats, err := ParseFile(context.Background(), src, FileSpec[domain.SkillSkillRelationSpec]{
		Kind:      KindSkillToSkill,
		Required:  skillToSkillCols,
		Transform: skillToSkillTransform(ids),
		Commit:    c.Commit,
	}, testEnv(rep, 2))
	require.NoError(t, err)

	assert.Equal(t, domain.RowsProcessedStats{RowsProcessed: 6, RowsSuccess: 4, RowsFailed: 2}, stats)
	assert.Equal(t, []string{
		"Failed to import SkillToSkillRelation from row:3 with requiringSkillId:'a' and requiredSkillId:'b'",
		"Failed to import SkillToSkillRelation from row:6 with requiringSkillId:'b' and requiredSkillId:'a'",
	}, rep.warnings)
	assert.Len(t, store.batches, 2)
}

func TestParseFile_CommitterOrdinalsAreContinuousAcrossBatches(t *testing.T) {
	t.Parallel()

	ids := NewIDTable()
	rep := &recordingReporter{}
	c := NewEntityCommitter(KindSkillGroup, ids, rep, func(_ context.Context, specs []domain.SkillGroupSpec) ([]domain.CreatedRef, error) {
		refs := make([]domain.CreatedRef, len(specs))
		for i, s := range specs {
			refs[i] = domain.CreatedRef{ID: uuid.New(), ImportID: s.ImportID}
		}
		return refs, nil
	})

	// Rows 3 and 6 have no import id; with batch size 2 they land in the
	// second and third batch.
	src := strings.NewReader(strings.Join([]string{
		"ID,CODE,PREFERREDLABEL",
		"g1,S1,communication",
		"g2,S2,management",
		",S3,unnamed",
		"g4,S4,digital",
		"g5,S5,language",
		",S6,unnamed",
	}, "\n"))

	stats, err := ParseFile(context.Background(), src, FileSpec[domain.SkillGroupSpec]{
		Kind:      KindSkillGroup,
		Required:  groupColumns,
		Transform: skillGroupTransform,
		Commit:    c.Commit,
	}, testEnv(rep, 2))
	require.NoError(t, err)

	assert.Equal(t, domain.RowsProcessedStats{RowsProcessed: 6, RowsSuccess: 4, RowsFailed: 2}, stats)
	assert.Equal(t, []string{
		"Failed to import SkillGroup from row:3 with importId:''",
		"Failed to import SkillGroup from row:6 with importId:''",
	}, rep.warnings)
	assert.Equal(t, 4, ids.Len())
}

func TestParseFile_ValidationSkip(t *testing.T) {
	t.Parallel()

	rep := &recordingReporter{}
	c := NewEntityCommitter(KindSkill, NewIDTable(), rep, func(_ context.Context, specs []domain.SkillSpec) ([]domain.CreatedRef, error) {
		refs := make([]domain.CreatedRef, len(specs))
		for i, s := range specs {
			refs[i] = domain.CreatedRef{ID: uuid.New(), ImportID: s.ImportID}
		}
		return refs, nil
	})

	src := strings.NewReader(strings.Join([]string{
		"ID,SKILLTYPE,REUSELEVEL,PREFERREDLABEL,ALTLABELS",
		"s1,Knowledge,cross-sector,cooking,\"cookery\nculinary arts\"",
		"s2,wisdom,,thinking,",
		"s3,,,,",
	}, "\n"))

	stats, err := ParseFile(context.Background(), src, FileSpec[domain.SkillSpec]{
		Kind:      KindSkill,
		Required:  skillColumns,
		Transform: skillTransform,
		Commit:    c.Commit,
	}, testEnv(rep, 10))
	require.NoError(t, err)

	assert.Equal(t, domain.RowsProcessedStats{RowsProcessed: 3, RowsSuccess: 1, RowsFailed: 2}, stats)
	assert.Equal(t, []string{
		"Failed to import Skill from row:2 with importId:'s2'",
		"Failed to import Skill from row:3 with importId:'s3'",
	}, rep.warnings)
}

func TestParseFile_ReadErrorKeepsStats(t *testing.T) {
	t.Parallel()

	ids := NewIDTable()
	ids.Set("a", uuid.New())
	rep := &recordingReporter{}
	store := &okRelations[domain.SkillSkillRelationSpec]{}
	c := NewRelationCommitter(KindSkillToSkill, rep, store.create)

	boom := errors.New("connection dropped")
	src := io.MultiReader(
		strings.NewReader("REQUIRINGID,RELATIONTYPE,REQUIREDID\na,essential,a\n"),
		iotest.ErrReader(boom),
	)

	stats, err := ParseFile(context.Background(), src, FileSpec[domain.SkillSkillRelationSpec]{
		Kind:      KindSkillToSkill,
		Required:  skillToSkillCols,
		Transform: skillToSkillTransform(ids),
		Commit:    c.Commit,
	}, testEnv(rep, 10))

	require.ErrorIs(t, err, boom)
	assert.Equal(t, domain.RowsProcessedStats{RowsProcessed: 1, RowsSuccess: 1}, stats)
	assert.Len(t, store.batches, 1, "rows read before the failure are still committed")
}
