// Package config provides configuration management for traitstore.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > traitstore.yaml
// > defaults
//
// # Design Principles
//
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions
//   - Invalid options are rejected with gn.Warn() - config remains valid
//
// # Environment Variables
//
// Use TRAITSTORE_ prefix with underscores for nesting:
//
//	TRAITSTORE_DATABASE_PATH=/var/lib/traitstore/traits.db
//	TRAITSTORE_CACHE_TRAIT_TTL=1h
//	TRAITSTORE_LOG_LEVEL=info
package config

import (
	"runtime"
	"time"
)

// Config represents the complete traitstore configuration.
type Config struct {
	// Database contains SQLite store settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Cache contains TTL and capacity settings for the cache layer.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Import contains settings specific to the import command.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations such as importing independent feeds.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and data directories reside.
	// Set by the CLI during init; runtime-only.
	HomeDir string
}

// DatabaseConfig contains SQLite store parameters.
type DatabaseConfig struct {
	// Path is the SQLite database file location. An empty path resolves
	// to traits.db inside the data directory.
	Path string `mapstructure:"path" yaml:"path"`

	// MaxConns caps the connection pool used for concurrent reads.
	MaxConns int `mapstructure:"max_conns" yaml:"max_conns"`

	// BatchSize is the number of rows per bulk insert during import.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// CacheConfig contains cache-layer settings. Each namespace has an
// independent TTL; MaxEntries bounds every namespace independently of
// TTL, because TTL limits staleness but not memory.
type CacheConfig struct {
	// TraitTTL is the lifetime of cached trait bundles.
	TraitTTL time.Duration `mapstructure:"trait_ttl" yaml:"trait_ttl"`

	// SpeciesTTL is the lifetime of cached species lookups.
	SpeciesTTL time.Duration `mapstructure:"species_ttl" yaml:"species_ttl"`

	// StatsTTL is the lifetime of cached statistics.
	StatsTTL time.Duration `mapstructure:"stats_ttl" yaml:"stats_ttl"`

	// MaxEntries is the per-namespace capacity bound; least recently
	// used entries are evicted first.
	MaxEntries int `mapstructure:"max_entries" yaml:"max_entries"`
}

// ImportConfig contains settings specific to the import command.
type ImportConfig struct {
	// FeedsFile is the path to the feeds.yaml manifest describing the
	// spreadsheet-origin feeds to load. Empty means the default
	// location inside the config directory.
	FeedsFile string `mapstructure:"feeds_file" yaml:"feeds_file"`

	// Sources restricts the import to the named source tags. Empty
	// means import every feed from the manifest. Runtime-only.
	Sources []string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format" yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level" yaml:"level"`
	// Destination can be STDERR or STDOUT.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values. The returned
// config is always valid and ready to use. Defaults can be overridden
// using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Path:      "",
			MaxConns:  10,
			BatchSize: 5_000,
		},
		Cache: CacheConfig{
			TraitTTL:   time.Hour,
			SpeciesTTL: 10 * time.Minute,
			StatsTTL:   5 * time.Minute,
			MaxEntries: 4096,
		},
		Log: LogConfig{
			Format:      "text",
			Level:       "info",
			Destination: "stderr",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
