package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/taxonomy-loader/internal/adapter/postgres"
	"github.com/heartmarshall/taxonomy-loader/internal/adapter/postgres/taxonomy"
	"github.com/heartmarshall/taxonomy-loader/internal/adapter/storage/gcs"
	"github.com/heartmarshall/taxonomy-loader/internal/adapter/storage/local"
	"github.com/heartmarshall/taxonomy-loader/internal/app/centrality"
	"github.com/heartmarshall/taxonomy-loader/internal/app/exporter"
	"github.com/heartmarshall/taxonomy-loader/internal/app/importer"
	"github.com/heartmarshall/taxonomy-loader/internal/config"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
	"github.com/heartmarshall/taxonomy-loader/internal/metrics"
)

// Compile-time interface assertions.
var (
	_ importer.TaxonomyRepo = (*taxonomy.Repo)(nil)
	_ importer.ProcessRepo  = (*taxonomy.Repo)(nil)
	_ centrality.Repo       = (*taxonomy.Repo)(nil)
	_ exporter.TaxonomyRepo = (*taxonomy.Repo)(nil)
	_ exporter.ProcessRepo  = (*taxonomy.Repo)(nil)
	_ exporter.Uploader     = (*gcs.Uploader)(nil)
	_ exporter.Uploader     = (*local.Uploader)(nil)
)

// App wires the store, metrics and pipelines of one CLI invocation.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	pool    *pgxpool.Pool
	repo    *taxonomy.Repo
	metrics *metrics.Collector
}

// New connects to the database and prepares the metrics collector.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	return &App{
		cfg:     cfg,
		log:     log,
		pool:    pool,
		repo:    taxonomy.New(pool),
		metrics: metrics.New(metrics.Config{PushURL: cfg.Metrics.PushURL, Job: cfg.Metrics.Job}),
	}, nil
}

// Close pushes the collected metrics and closes the pool.
func (a *App) Close(ctx context.Context) {
	if err := a.metrics.Push(ctx); err != nil {
		a.log.WarnContext(ctx, "push metrics", slog.Any("error", err))
	}
	a.pool.Close()
}

// Migrate applies the embedded schema migrations.
func (a *App) Migrate(ctx context.Context) error {
	return postgres.Migrate(ctx, a.pool, a.log)
}

// ImportParams describes the model to create and the directory to load it from.
type ImportParams struct {
	Dir         string
	Name        string
	Locale      string
	Description string
	Version     string
}

// Import creates a model and loads the CSV files of params.Dir into it.
func (a *App) Import(ctx context.Context, params ImportParams) (domain.Model, importer.RunResult, error) {
	info, err := os.Stat(params.Dir)
	if err != nil {
		return domain.Model{}, importer.RunResult{}, fmt.Errorf("import dir: %w", err)
	}
	if !info.IsDir() {
		return domain.Model{}, importer.RunResult{}, fmt.Errorf("import dir %s: not a directory", params.Dir)
	}

	model, err := a.repo.CreateModel(ctx, domain.ModelSpec{
		Name:        params.Name,
		Locale:      params.Locale,
		Description: params.Description,
		Version:     params.Version,
	})
	if err != nil {
		return domain.Model{}, importer.RunResult{}, fmt.Errorf("create model: %w", err)
	}
	a.log.InfoContext(ctx, "model created", slog.String("model_id", model.ID.String()), slog.String("name", model.Name))

	im := importer.NewImporter(a.log, a.repo, a.repo, importer.Config{BatchSize: a.cfg.Import.BatchSize}, a.metrics)
	result, err := im.Run(ctx, importer.RunInput{ModelID: model.ID, Sources: os.DirFS(params.Dir)})
	return model, result, err
}

// Centrality recomputes degree centrality of targets within a model.
func (a *App) Centrality(ctx context.Context, modelID uuid.UUID, targets []domain.CentralityTarget) (map[domain.CentralityTarget]domain.RowsProcessedStats, error) {
	if _, err := a.repo.GetModel(ctx, modelID); err != nil {
		return nil, err
	}

	svc := centrality.NewService(a.log, a.repo, centrality.Config{BatchSize: a.cfg.Centrality.BatchSize}, a.metrics)
	return svc.CalculateDegreeCentrality(ctx, modelID, targets...)
}

// Export writes a model to one archive through the configured backend.
func (a *App) Export(ctx context.Context, modelID uuid.UUID) (exporter.RunResult, error) {
	uploader, err := a.newUploader(ctx)
	if err != nil {
		return exporter.RunResult{}, err
	}
	defer func() {
		if err := uploader.Close(); err != nil {
			a.log.WarnContext(ctx, "close uploader", slog.Any("error", err))
		}
	}()

	ex := exporter.NewExporter(a.log, a.repo, a.repo, uploader, a.metrics)
	return ex.Run(ctx, modelID)
}

type uploadCloser interface {
	exporter.Uploader
	io.Closer
}

type nopCloser struct{ exporter.Uploader }

func (nopCloser) Close() error { return nil }

func (a *App) newUploader(ctx context.Context) (uploadCloser, error) {
	cfg := a.cfg.Export
	switch cfg.Backend {
	case config.BackendGCS:
		u, err := gcs.New(ctx, cfg.GCS, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return u, nil
	case config.BackendLocal:
		return nopCloser{local.New(cfg.LocalDir)}, nil
	default:
		return nil, errors.New("unknown export backend: " + cfg.Backend)
	}
}
