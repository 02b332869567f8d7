package config

import (
	"fmt"
	"slices"
)

// MaxBatchSize bounds multi-row inserts below PostgreSQL's 65535 bind
// parameter limit (the widest row binds 14 parameters).
const MaxBatchSize = 4000

// MinPoolConns is the smallest usable pool. Centrality keeps the aggregate
// cursor's connection while each batch update acquires a second one.
const MinPoolConns = 2

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxConns < MinPoolConns {
		return fmt.Errorf("database.max_conns must be at least %d (got %d)", MinPoolConns, c.Database.MaxConns)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("log.level must be one of debug|info|warn|error (got %q)", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := validateBatchSize(c.Import.BatchSize); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := validateBatchSize(c.Centrality.BatchSize); err != nil {
		return fmt.Errorf("centrality: %w", err)
	}

	if err := c.Export.validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return nil
}

func validateBatchSize(n int) error {
	if n < 1 || n > MaxBatchSize {
		return fmt.Errorf("batch_size must be in [1, %d] (got %d)", MaxBatchSize, n)
	}
	return nil
}

func (e *ExportConfig) validate() error {
	switch e.Backend {
	case BackendLocal:
		if e.LocalDir == "" {
			return fmt.Errorf("local_dir is required for the local backend")
		}
	case BackendGCS:
		if e.GCS.Bucket == "" {
			return fmt.Errorf("gcs.bucket is required for the gcs backend")
		}
	default:
		return fmt.Errorf("backend must be %s or %s (got %q)", BackendLocal, BackendGCS, e.Backend)
	}
	return nil
}
