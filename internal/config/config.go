// Package config provides centralized configuration for the seeder.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Supported CSV source kinds.
const (
	SourceDir = "dir"
	SourceS3  = "s3"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database DatabaseConfig
	Source   SourceConfig
	Metrics  MetricsConfig
	Schedule ScheduleConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds relational store settings.
type DatabaseConfig struct {
	// Driver selects the store backend: sqlite or postgres (default: sqlite)
	Driver string `env:"DATABASE_DRIVER" default:"sqlite"`

	// URL is the sqlite file path or the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" default:"./database.sqlite"`

	// MaxConns is the maximum number of pooled connections (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `env:"DB_MIN_CONNS" default:"1"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// AutoMigrate applies pending schema migrations before commands run (default: true)
	AutoMigrate bool `env:"DB_AUTO_MIGRATE" default:"true"`
}

// SourceConfig describes where the seed CSV files are read from.
type SourceConfig struct {
	// Kind is dir (local filesystem) or s3 (default: dir)
	Kind string `env:"SEED_SOURCE" default:"dir"`

	// BaseDir is the directory relative file paths are resolved against (default: .)
	BaseDir string `env:"SEED_BASE_DIR" default:"."`

	// Manifest is an optional YAML file overriding the default file locations
	Manifest string `env:"SEED_MANIFEST"`

	S3Bucket    string `env:"SEED_S3_BUCKET"`
	S3Prefix    string `env:"SEED_S3_PREFIX"`
	S3Region    string `env:"SEED_S3_REGION" default:"us-east-1"`
	S3Endpoint  string `env:"SEED_S3_ENDPOINT"`
	S3PathStyle bool   `env:"SEED_S3_PATH_STYLE" default:"false"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	// Textfile is a node_exporter textfile collector path; empty disables export
	Textfile string `env:"METRICS_TEXTFILE"`

	// Namespace prefixes every metric name (default: brews)
	Namespace string `env:"METRICS_NAMESPACE" default:"brews"`
}

// ScheduleConfig holds settings for the periodic reseed.
type ScheduleConfig struct {
	// Spec is a cron expression or descriptor (default: @daily)
	Spec string `env:"SEED_SCHEDULE" default:"@daily"`

	// RunOnStart runs one seed immediately when the scheduler starts (default: false)
	RunOnStart bool `env:"SEED_RUN_ON_START" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns a printable location for the configured database.
// Postgres URLs are reduced to host and database name.
func (c *DatabaseConfig) Addr() string {
	if c.Driver != DriverPostgres {
		return c.URL
	}
	return maskURL(c.URL)
}

// PoolSize returns the configured pool bounds as int32 for pgxpool.
func (c *DatabaseConfig) PoolSize() (maxConns, minConns int32) {
	return clampInt32(c.MaxConns), clampInt32(c.MinConns)
}

func clampInt32(i int) int32 {
	if i > 1<<31-1 {
		return 1<<31 - 1
	}
	if i < 0 {
		return 0
	}
	return int32(i)
}
