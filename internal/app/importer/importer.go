package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/taxonomy-loader/internal/app/batch"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
	"github.com/heartmarshall/taxonomy-loader/pkg/ctxutil"
)

// Entity and relation kinds as they appear in warnings and metrics.
const (
	KindOccupationGroup     = "OccupationGroup"
	KindOccupation          = "Occupation"
	KindSkillGroup          = "SkillGroup"
	KindSkill               = "Skill"
	KindOccupationHierarchy = "OccupationHierarchy"
	KindSkillHierarchy      = "SkillHierarchy"
	KindOccupationToSkill   = "OccupationToSkillRelation"
	KindSkillToSkill        = "SkillToSkillRelation"
)

// Input file names, in load order.
const (
	FileISCOGroups          = "ISCOGroups.csv"
	FileLocalGroups         = "LocalGroups.csv"
	FileSkillGroups         = "SkillGroups.csv"
	FileESCOOccupations     = "ESCOOccupations.csv"
	FileLocalOccupations    = "LocalOccupations.csv"
	FileSkills              = "Skills.csv"
	FileOccupationHierarchy = "OccupationHierarchy.csv"
	FileSkillHierarchy      = "SkillHierarchy.csv"
	FileOccupationToSkill   = "OccupationToSkillRelations.csv"
	FileSkillToSkill        = "SkillToSkillRelations.csv"
)

// Observer receives batch outcomes and per-file totals.
type Observer interface {
	batch.Observer
	ObserveStage(stage string, stats domain.RowsProcessedStats, elapsed time.Duration)
}

// Config holds importer settings.
type Config struct {
	BatchSize int
}

// RunInput is one import request.
type RunInput struct {
	ModelID uuid.UUID
	Sources fs.FS
}

// RunResult is the outcome of one import run.
type RunResult struct {
	ProcessID uuid.UUID
	Files     map[string]domain.RowsProcessedStats
	Errored   bool
	Warnings  bool
}

// runState is what the loaders share during one run.
type runState struct {
	modelID uuid.UUID
	ids     *IDTable
	report  Reporter
	env     Env
}

type loadFunc func(ctx context.Context, run *runState, src io.Reader) (domain.RowsProcessedStats, error)

type fileDef struct {
	name     string
	optional bool
	load     loadFunc
}

// Importer drives an import run through the input files in dependency
// order: groups, entities, hierarchies, relations.
type Importer struct {
	log       *slog.Logger
	repo      TaxonomyRepo
	processes ProcessRepo
	cfg       Config
	observer  Observer
	files     []fileDef
}

// NewImporter creates an Importer. observer may be nil.
func NewImporter(log *slog.Logger, repo TaxonomyRepo, processes ProcessRepo, cfg Config, observer Observer) *Importer {
	im := &Importer{
		log:       log,
		repo:      repo,
		processes: processes,
		cfg:       cfg,
		observer:  observer,
	}
	im.files = []fileDef{
		{name: FileISCOGroups, load: im.loadOccupationGroups(domain.ObjectTypeISCOGroup)},
		{name: FileLocalGroups, optional: true, load: im.loadOccupationGroups(domain.ObjectTypeLocalGroup)},
		{name: FileSkillGroups, load: im.loadSkillGroups},
		{name: FileESCOOccupations, load: im.loadOccupations(domain.ObjectTypeESCOOccupation)},
		{name: FileLocalOccupations, optional: true, load: im.loadOccupations(domain.ObjectTypeLocalOccupation)},
		{name: FileSkills, load: im.loadSkills},
		{name: FileOccupationHierarchy, load: im.loadOccupationHierarchy},
		{name: FileSkillHierarchy, load: im.loadSkillHierarchy},
		{name: FileOccupationToSkill, load: im.loadOccupationToSkill},
		{name: FileSkillToSkill, load: im.loadSkillToSkill},
	}
	return im
}

// Run imports every present file of in.Sources into model in.ModelID.
//
// A missing mandatory file or a file-level error marks the run errored and
// the run moves on to the next file. Rows that depend on ids from a failed
// file are then warned as unresolved. Run returns an error only when the
// process record cannot be created or the context is cancelled.
func (im *Importer) Run(ctx context.Context, in RunInput) (RunResult, error) {
	proc, err := im.processes.CreateImportProcess(ctx, in.ModelID)
	if err != nil {
		return RunResult{}, fmt.Errorf("create import process: %w", err)
	}

	ctx = ctxutil.WithRunID(ctx, proc.ID.String())
	log := im.log.With(slog.String("model_id", in.ModelID.String()))
	runLog := NewRunLog(log)

	if err := im.processes.UpdateImportProcess(ctx, proc.ID, domain.ProcessState{Status: domain.ProcessStatusRunning}); err != nil {
		return RunResult{}, fmt.Errorf("mark import process running: %w", err)
	}

	run := &runState{
		modelID: in.ModelID,
		ids:     NewIDTable(),
		report:  runLog,
		env: Env{
			Log:       log,
			Report:    runLog,
			BatchSize: im.cfg.BatchSize,
		},
	}
	if im.observer != nil {
		run.env.Observer = im.observer
	}

	result := RunResult{
		ProcessID: proc.ID,
		Files:     make(map[string]domain.RowsProcessedStats, len(im.files)),
	}

	log.InfoContext(ctx, "import started", slog.String("process_id", proc.ID.String()))
	for _, def := range im.files {
		if ctx.Err() != nil {
			break
		}
		if err := im.runFile(ctx, run, in.Sources, def, &result); err != nil {
			result.Errored = true
			runLog.Error(ctx, fmt.Sprintf("Failed to import %s", def.name), err)
		}
	}

	result.Errored = result.Errored || runLog.Errors() > 0
	result.Warnings = runLog.Warnings() > 0

	state := domain.ProcessState{
		Status:   domain.ProcessStatusCompleted,
		Errored:  result.Errored,
		Warnings: result.Warnings,
	}
	if err := im.processes.UpdateImportProcess(context.WithoutCancel(ctx), proc.ID, state); err != nil {
		log.ErrorContext(ctx, "failed to record import status", slog.Any("error", err))
	}

	log.InfoContext(ctx, "import finished",
		slog.Bool("errored", result.Errored),
		slog.Bool("warnings", result.Warnings),
		slog.Int("resolved_ids", run.ids.Len()),
	)
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (im *Importer) runFile(ctx context.Context, run *runState, sources fs.FS, def fileDef, result *RunResult) error {
	f, err := sources.Open(def.name)
	if errors.Is(err, fs.ErrNotExist) && def.optional {
		im.log.DebugContext(ctx, "optional file not present", slog.String("file", def.name))
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", def.name, err)
	}
	defer f.Close()

	start := time.Now()
	stats, err := def.load(ctx, run, f)
	result.Files[def.name] = stats
	if im.observer != nil {
		im.observer.ObserveStage(def.name, stats, time.Since(start))
	}
	return err
}

func (im *Importer) loadOccupationGroups(groupType domain.ObjectType) loadFunc {
	return func(ctx context.Context, run *runState, src io.Reader) (domain.RowsProcessedStats, error) {
		c := NewEntityCommitter(KindOccupationGroup, run.ids, run.report,
			func(ctx context.Context, specs []domain.OccupationGroupSpec) ([]domain.CreatedRef, error) {
				return im.repo.CreateOccupationGroups(ctx, run.modelID, specs)
			})
		return ParseFile(ctx, src, FileSpec[domain.OccupationGroupSpec]{
			Kind:      KindOccupationGroup,
			Required:  groupColumns,
			Transform: occupationGroupTransform(groupType),
			Commit:    c.Commit,
		}, run.env)
	}
}

func (im *Importer) loadOccupations(occupationType domain.ObjectType) loadFunc {
	return func(ctx context.Context, run *runState, src io.Reader) (domain.RowsProcessedStats, error) {
		c := NewEntityCommitter(KindOccupation, run.ids, run.report,
			func(ctx context.Context, specs []domain.OccupationSpec) ([]domain.CreatedRef, error) {
				return im.repo.CreateOccupations(ctx, run.modelID, specs)
			})
		return ParseFile(ctx, src, FileSpec[domain.OccupationSpec]{
			Kind:      KindOccupation,
			Required:  occupationColumns,
			Transform: occupationTransform(occupationType),
			Commit:    c.Commit,
		}, run.env)
	}
}

func (im *Importer) loadSkillGroups(ctx context.Context, run *runState, src io.Reader) (domain.RowsProcessedStats, error) {
	c := NewEntityCommitter(KindSkillGroup, run.ids, run.report,
		func(ctx context.Context, specs []domain.SkillGroupSpec) ([]domain.CreatedRef, error) {
			return im.repo.CreateSkillGroups(ctx, run.modelID, specs)
		})
	return ParseFile(ctx, src, FileSpec[domain.SkillGroupSpec]{
		Kind:      KindSkillGroup,
		Required:  groupColumns,
		Transform: skillGroupTransform,
		Commit:    c.Commit,
	}, run.env)
}

func (im *Importer) loadSkills(ctx context.Context, run *runState, src io.Reader) (domain.RowsProcessedStats, error) {
	c := NewEntityCommitter(KindSkill, run.ids, run.report,
		func(ctx context.Context, specs []domain.SkillSpec) ([]domain.CreatedRef, error) {
			return im.repo.CreateSkills(ctx, run.modelID, specs)
		})
	return ParseFile(ctx, src, FileSpec[domain.SkillSpec]{
		Kind:      KindSkill,
		Required:  skillColumns,
		Transform: skillTransform,
		Commit:    c.Commit,
	}, run.env)
}

func (im *Importer) loadOccupationHierarchy(ctx context.Context, run *runState, src io.Reader) (domain.RowsProcessedStats, error) {
	c := NewRelationCommitter(KindOccupationHierarchy, run.report,
		func(ctx context.Context, specs []domain.HierarchyPairSpec) ([]domain.PairKey, error) {
			return im.repo.CreateOccupationHierarchy(ctx, run.modelID, specs)
		})
	return ParseFile(ctx, src, FileSpec[domain.HierarchyPairSpec]{
		Kind:      KindOccupationHierarchy,
		Required:  hierarchyColumns,
		Transform: hierarchyTransform(run.ids, domain.ObjectType.IsOccupationHierarchyMember),
		Commit:    c.Commit,
	}, run.env)
}

func (im *Importer) loadSkillHierarchy(ctx context.Context, run *runState, src io.Reader) (domain.RowsProcessedStats, error) {
	c := NewRelationCommitter(KindSkillHierarchy, run.report,
		func(ctx context.Context, specs []domain.HierarchyPairSpec) ([]domain.PairKey, error) {
			return im.repo.CreateSkillHierarchy(ctx, run.modelID, specs)
		})
	return ParseFile(ctx, src, FileSpec[domain.HierarchyPairSpec]{
		Kind:      KindSkillHierarchy,
		Required:  hierarchyColumns,
		Transform: hierarchyTransform(run.ids, domain.ObjectType.IsSkillHierarchyMember),
		Commit:    c.Commit,
	}, run.env)
}

func (im *Importer) loadOccupationToSkill(ctx context.Context, run *runState, src io.Reader) (domain.RowsProcessedStats, error) {
	c := NewRelationCommitter(KindOccupationToSkill, run.report,
		func(ctx context.Context, specs []domain.OccupationSkillRelationSpec) ([]domain.PairKey, error) {
			return im.repo.CreateOccupationSkillRelations(ctx, run.modelID, specs)
		})
	return ParseFile(ctx, src, FileSpec[domain.OccupationSkillRelationSpec]{
		Kind:      KindOccupationToSkill,
		Required:  occToSkillColumns,
		Transform: occupationToSkillTransform(run.ids),
		Commit:    c.Commit,
	}, run.env)
}

func (im *Importer) loadSkillToSkill(ctx context.Context, run *runState, src io.Reader) (domain.RowsProcessedStats, error) {
	c := NewRelationCommitter(KindSkillToSkill, run.report,
		func(ctx context.Context, specs []domain.SkillSkillRelationSpec) ([]domain.PairKey, error) {
			return im.repo.CreateSkillSkillRelations(ctx, run.modelID, specs)
		})
	return ParseFile(ctx, src, FileSpec[domain.SkillSkillRelationSpec]{
		Kind:      KindSkillToSkill,
		Required:  skillToSkillCols,
		Transform: skillToSkillTransform(run.ids),
		Commit:    c.Commit,
	}, run.env)
}
