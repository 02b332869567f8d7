package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
	"github.com/heartmarshall/taxonomy-loader/pkg/ctxutil"
)

// Archive entry names.
const (
	EntryModelInfo           = "model_info.csv"
	EntryOccupationGroups    = "occupation_groups.csv"
	EntryOccupations         = "occupations.csv"
	EntrySkillGroups         = "skill_groups.csv"
	EntrySkills              = "skills.csv"
	EntryOccupationHierarchy = "occupation_hierarchy.csv"
	EntrySkillHierarchy      = "skill_hierarchy.csv"
	EntryOccupationToSkill   = "occupation_to_skill_relations.csv"
	EntrySkillToSkill        = "skill_to_skill_relations.csv"
)

// Observer receives the row count of every exported collection.
type Observer interface {
	ObserveStage(stage string, stats domain.RowsProcessedStats, elapsed time.Duration)
}

// RunResult is the outcome of one export run.
type RunResult struct {
	ProcessID   uuid.UUID
	Location    string
	Collections map[string]int
}

// Exporter writes every collection of a model into one archive and hands
// it to an Uploader.
type Exporter struct {
	log       *slog.Logger
	repo      TaxonomyRepo
	processes ProcessRepo
	uploader  Uploader
	observer  Observer
	now       func() time.Time
}

// NewExporter creates an Exporter. observer may be nil.
func NewExporter(log *slog.Logger, repo TaxonomyRepo, processes ProcessRepo, uploader Uploader, observer Observer) *Exporter {
	return &Exporter{
		log:       log,
		repo:      repo,
		processes: processes,
		uploader:  uploader,
		observer:  observer,
		now:       time.Now,
	}
}

// ArchiveName returns the destination name of an archive of modelID
// created at t.
func ArchiveName(modelID uuid.UUID, t time.Time) string {
	return fmt.Sprintf("%s/%s.zip", modelID, t.UTC().Format("20060102T150405Z"))
}

// Run exports model modelID. Building the archive and uploading it run
// concurrently; a failure on either side stops the other and closes every
// collection stream. The export process is marked completed in every case,
// with errored set on failure.
func (e *Exporter) Run(ctx context.Context, modelID uuid.UUID) (RunResult, error) {
	model, err := e.repo.GetModel(ctx, modelID)
	if err != nil {
		return RunResult{}, fmt.Errorf("get model: %w", err)
	}

	proc, err := e.processes.CreateExportProcess(ctx, modelID)
	if err != nil {
		return RunResult{}, fmt.Errorf("create export process: %w", err)
	}
	ctx = ctxutil.WithRunID(ctx, proc.ID.String())

	if err := e.processes.UpdateExportProcess(ctx, proc.ID, domain.ProcessState{Status: domain.ProcessStatusRunning}); err != nil {
		return RunResult{}, fmt.Errorf("mark export process running: %w", err)
	}

	start := e.now()
	name := ArchiveName(modelID, start)
	result := RunResult{ProcessID: proc.ID, Collections: make(map[string]int)}

	e.log.InfoContext(ctx, "export started", slog.String("model_id", modelID.String()), slog.String("archive", name))

	g, gctx := errgroup.WithContext(ctx)
	streams := e.streams(gctx, model)
	pr, pw := io.Pipe()

	g.Go(func() error {
		err := WriteArchive(gctx, pw, streams)
		_ = pw.CloseWithError(err)
		return err
	})
	g.Go(func() error {
		loc, err := e.uploader.Upload(gctx, name, pr)
		if err != nil {
			_ = pr.CloseWithError(err)
			return fmt.Errorf("upload %s: %w", name, err)
		}
		// Drain whatever the uploader left so the archive writer can finish.
		_, _ = io.Copy(io.Discard, pr)
		result.Location = loc
		return nil
	})
	runErr := g.Wait()

	elapsed := time.Since(start)
	for _, s := range streams {
		result.Collections[s.Name()] = s.Rows()
		if e.observer != nil {
			stats := domain.RowsProcessedStats{RowsProcessed: s.Rows(), RowsSuccess: s.Rows()}
			if s.Err() != nil {
				stats = domain.FailedStats(s.Rows())
			}
			e.observer.ObserveStage("export_"+s.Name(), stats, elapsed)
		}
	}

	state := domain.ProcessState{
		Status:      domain.ProcessStatusCompleted,
		Errored:     runErr != nil,
		DownloadURL: result.Location,
	}
	if err := e.processes.UpdateExportProcess(context.WithoutCancel(ctx), proc.ID, state); err != nil {
		e.log.ErrorContext(ctx, "failed to record export status", slog.Any("error", err))
	}

	if runErr != nil {
		e.log.ErrorContext(ctx, "export failed", slog.Any("error", runErr))
		return result, fmt.Errorf("export model %s: %w", modelID, runErr)
	}
	e.log.InfoContext(ctx, "export finished",
		slog.String("location", result.Location),
		slog.Duration("duration", elapsed),
	)
	return result, nil
}

func (e *Exporter) streams(ctx context.Context, model domain.Model) []*Stream {
	id := model.ID
	return []*Stream{
		NewStream(ctx, e.log, Collection[domain.Model]{
			Name:   EntryModelInfo,
			Header: modelInfoHeader,
			Open: func(context.Context) (domain.Cursor[domain.Model], error) {
				return newSliceCursor([]domain.Model{model}), nil
			},
			Record: modelInfoRecord,
		}),
		NewStream(ctx, e.log, Collection[domain.OccupationGroup]{
			Name:   EntryOccupationGroups,
			Header: occupationGroupHeader,
			Open: func(ctx context.Context) (domain.Cursor[domain.OccupationGroup], error) {
				return e.repo.StreamOccupationGroups(ctx, id)
			},
			Record: occupationGroupRecord,
		}),
		NewStream(ctx, e.log, Collection[domain.Occupation]{
			Name:   EntryOccupations,
			Header: occupationHeader,
			Open: func(ctx context.Context) (domain.Cursor[domain.Occupation], error) {
				return e.repo.StreamOccupations(ctx, id)
			},
			Record: occupationRecord,
		}),
		NewStream(ctx, e.log, Collection[domain.SkillGroup]{
			Name:   EntrySkillGroups,
			Header: skillGroupHeader,
			Open: func(ctx context.Context) (domain.Cursor[domain.SkillGroup], error) {
				return e.repo.StreamSkillGroups(ctx, id)
			},
			Record: skillGroupRecord,
		}),
		NewStream(ctx, e.log, Collection[domain.Skill]{
			Name:   EntrySkills,
			Header: skillHeader,
			Open: func(ctx context.Context) (domain.Cursor[domain.Skill], error) {
				return e.repo.StreamSkills(ctx, id)
			},
			Record: skillRecord,
		}),
		NewStream(ctx, e.log, Collection[domain.HierarchyPair]{
			Name:   EntryOccupationHierarchy,
			Header: hierarchyHeader,
			Open: func(ctx context.Context) (domain.Cursor[domain.HierarchyPair], error) {
				return e.repo.StreamOccupationHierarchy(ctx, id)
			},
			Record: hierarchyRecord(domain.ObjectType.IsOccupationHierarchyMember),
		}),
		NewStream(ctx, e.log, Collection[domain.HierarchyPair]{
			Name:   EntrySkillHierarchy,
			Header: hierarchyHeader,
			Open: func(ctx context.Context) (domain.Cursor[domain.HierarchyPair], error) {
				return e.repo.StreamSkillHierarchy(ctx, id)
			},
			Record: hierarchyRecord(domain.ObjectType.IsSkillHierarchyMember),
		}),
		NewStream(ctx, e.log, Collection[domain.OccupationSkillRelation]{
			Name:   EntryOccupationToSkill,
			Header: occToSkillHeader,
			Open: func(ctx context.Context) (domain.Cursor[domain.OccupationSkillRelation], error) {
				return e.repo.StreamOccupationSkillRelations(ctx, id)
			},
			Record: occupationSkillRecord,
		}),
		NewStream(ctx, e.log, Collection[domain.SkillSkillRelation]{
			Name:   EntrySkillToSkill,
			Header: skillToSkillHeader,
			Open: func(ctx context.Context) (domain.Cursor[domain.SkillSkillRelation], error) {
				return e.repo.StreamSkillSkillRelations(ctx, id)
			},
			Record: skillSkillRecord,
		}),
	}
}

// sliceCursor serves an in-memory slice through the Cursor interface.
type sliceCursor[T any] struct {
	items []T
	pos   int
}

func newSliceCursor[T any](items []T) *sliceCursor[T] {
	return &sliceCursor[T]{items: items, pos: -1}
}

func (c *sliceCursor[T]) Next() bool {
	if c.pos+1 >= len(c.items) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor[T]) Value() T   { return c.items[c.pos] }
func (c *sliceCursor[T]) Err() error { return nil }
func (c *sliceCursor[T]) Close()     {}
