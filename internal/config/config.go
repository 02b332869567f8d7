package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Import     ImportConfig     `yaml:"import"`
	Centrality CentralityConfig `yaml:"centrality"`
	Export     ExportConfig     `yaml:"export"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ImportConfig holds import pipeline settings.
type ImportConfig struct {
	BatchSize int    `yaml:"batch_size" env:"IMPORT_BATCH_SIZE" env-default:"500"`
	DataDir   string `yaml:"data_dir"   env:"IMPORT_DATA_DIR"   env-default:"./data"`
}

// CentralityConfig holds degree aggregation settings.
type CentralityConfig struct {
	BatchSize int `yaml:"batch_size" env:"CENTRALITY_BATCH_SIZE" env-default:"1000"`
}

// ExportConfig holds export archive settings.
type ExportConfig struct {
	Backend  string    `yaml:"backend"   env:"EXPORT_BACKEND"   env-default:"local"`
	Prefix   string    `yaml:"prefix"    env:"EXPORT_PREFIX"    env-default:"exports"`
	LocalDir string    `yaml:"local_dir" env:"EXPORT_LOCAL_DIR" env-default:"./exports"`
	GCS      GCSConfig `yaml:"gcs"`
}

// GCSConfig holds Google Cloud Storage settings for the gcs export backend.
type GCSConfig struct {
	Bucket          string `yaml:"bucket"           env:"EXPORT_GCS_BUCKET"`
	CredentialsFile string `yaml:"credentials_file" env:"EXPORT_GCS_CREDENTIALS_FILE"`
}

// MetricsConfig holds Pushgateway settings. An empty URL disables pushing.
type MetricsConfig struct {
	PushURL string `yaml:"push_url" env:"METRICS_PUSH_URL"`
	Job     string `yaml:"job"      env:"METRICS_JOB"      env-default:"taxonomy_loader"`
}

// Export backends.
const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)
