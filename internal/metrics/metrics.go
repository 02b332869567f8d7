// Package metrics collects row, batch and stage metrics of a load run and
// pushes them to a Prometheus Pushgateway.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/heartmarshall/taxonomy-loader/internal/app/batch"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

const namespace = "taxonomy"

// Config holds Pushgateway settings. An empty PushURL disables Push.
type Config struct {
	PushURL string
	Job     string
}

// Collector records metrics on its own registry. It implements
// batch.Observer and the stage observers of the importer and exporter.
type Collector struct {
	cfg Config
	reg *prometheus.Registry

	// rows counts rows per stage. Labels: stage, outcome (success, failed)
	rows *prometheus.CounterVec
	// batches counts commit attempts. Labels: stage, result (committed, dropped)
	batches *prometheus.CounterVec
	// batchDuration measures commit latency. Labels: stage
	batchDuration *prometheus.HistogramVec
	// stageDuration measures whole-stage latency. Labels: stage
	stageDuration *prometheus.HistogramVec
}

// New creates a Collector with a fresh registry.
func New(cfg Config) *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		cfg: cfg,
		reg: reg,
		rows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Rows processed per stage by outcome",
		}, []string{"stage", "outcome"}),
		batches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Batch commit attempts per stage by result",
		}, []string{"stage", "result"}),
		batchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Batch commit latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage"}),
		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Stage latency in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"stage"}),
	}
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// ObserveBatch implements batch.Observer.
func (c *Collector) ObserveBatch(stage string, out batch.Outcome, elapsed time.Duration) {
	result := "committed"
	if !out.Committed() {
		result = "dropped"
	}
	c.batches.WithLabelValues(stage, result).Inc()
	c.batchDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// ObserveStage records the final stats of a stage.
func (c *Collector) ObserveStage(stage string, stats domain.RowsProcessedStats, elapsed time.Duration) {
	c.rows.WithLabelValues(stage, "success").Add(float64(stats.RowsSuccess))
	c.rows.WithLabelValues(stage, "failed").Add(float64(stats.RowsFailed))
	c.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// Push sends every collected metric to the configured Pushgateway.
// It is a no-op when no Pushgateway is configured.
func (c *Collector) Push(ctx context.Context) error {
	if c.cfg.PushURL == "" {
		return nil
	}
	if err := push.New(c.cfg.PushURL, c.cfg.Job).Gatherer(c.reg).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
