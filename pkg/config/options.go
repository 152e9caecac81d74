package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config. Options validate inputs
// and reject invalid values with warnings.
type Option func(*Config)

// OptDatabasePath sets the SQLite database file location.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseMaxConns caps the store's connection pool.
func OptDatabaseMaxConns(i int) Option {
	return func(c *Config) {
		if isValidInt("Database MaxConns", i) {
			c.Database.MaxConns = i
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per bulk insert.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptCacheTraitTTL sets the lifetime of cached trait bundles.
func OptCacheTraitTTL(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Cache TraitTTL", d) {
			c.Cache.TraitTTL = d
		}
	}
}

// OptCacheSpeciesTTL sets the lifetime of cached species lookups.
func OptCacheSpeciesTTL(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Cache SpeciesTTL", d) {
			c.Cache.SpeciesTTL = d
		}
	}
}

// OptCacheStatsTTL sets the lifetime of cached statistics.
func OptCacheStatsTTL(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Cache StatsTTL", d) {
			c.Cache.StatsTTL = d
		}
	}
}

// OptCacheMaxEntries sets the per-namespace capacity bound.
func OptCacheMaxEntries(i int) Option {
	return func(c *Config) {
		if isValidInt("Cache MaxEntries", i) {
			c.Cache.MaxEntries = i
		}
	}
}

// OptImportFeedsFile sets the path to the feeds.yaml manifest.
func OptImportFeedsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Feeds File", s) {
			c.Import.FeedsFile = s
		}
	}
}

// OptImportSources restricts the import to the named source tags.
// Runtime-only field.
func OptImportSources(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Import.Sources = ss
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel
// operations. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory used to derive config and data
// locations. Set once at startup; runtime-only.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
