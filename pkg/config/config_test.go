package config_test

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/razinkele/traitstore/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "traitstore"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "traitstore"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "traitstore", "traitstore.yaml"),
		},
		{
			msg: "feeds file",
			fn:  config.FeedsFilePath,
			res: filepath.Join(tempHome, ".config", "traitstore", "feeds.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "", cfg.Database.Path)
		assert.Equal(t, 10, cfg.Database.MaxConns)
		assert.Equal(t, 5_000, cfg.Database.BatchSize)

		// Cache defaults
		assert.Equal(t, time.Hour, cfg.Cache.TraitTTL)
		assert.Equal(t, 10*time.Minute, cfg.Cache.SpeciesTTL)
		assert.Equal(t, 5*time.Minute, cfg.Cache.StatsTTL)
		assert.Equal(t, 4096, cfg.Cache.MaxEntries)

		// Log defaults
		assert.Equal(t, "text", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "stderr", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestDatabasePath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/x")})
	assert.Equal(
		t,
		filepath.Join("/home/x", ".local", "share", "traitstore", "traits.db"),
		cfg.DatabasePath(),
		"empty path resolves inside data dir",
	)

	cfg.Update([]config.Option{config.OptDatabasePath("/tmp/t.db")})
	assert.Equal(t, "/tmp/t.db", cfg.DatabasePath(), "explicit path wins")
}

func TestOptionDatabasePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid path",
			input:    "/var/lib/traitstore/traits.db",
			expected: "/var/lib/traitstore/traits.db",
		},
		{
			name:     "trims whitespace",
			input:    "  /tmp/traits.db  ",
			expected: "/tmp/traits.db",
		},
		{
			name:     "rejects empty path",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabasePath(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Path)
		})
	}
}

func TestOptionIntValidation(t *testing.T) {
	tests := []struct {
		name     string
		opt      config.Option
		check    func(*config.Config) int
		expected int
	}{
		{
			name:     "sets valid max conns",
			opt:      config.OptDatabaseMaxConns(25),
			check:    func(c *config.Config) int { return c.Database.MaxConns },
			expected: 25,
		},
		{
			name:     "rejects zero max conns",
			opt:      config.OptDatabaseMaxConns(0),
			check:    func(c *config.Config) int { return c.Database.MaxConns },
			expected: 10,
		},
		{
			name:     "rejects negative batch size",
			opt:      config.OptDatabaseBatchSize(-100),
			check:    func(c *config.Config) int { return c.Database.BatchSize },
			expected: 5_000,
		},
		{
			name:     "sets valid cache capacity",
			opt:      config.OptCacheMaxEntries(128),
			check:    func(c *config.Config) int { return c.Cache.MaxEntries },
			expected: 128,
		},
		{
			name:     "rejects zero jobs number",
			opt:      config.OptJobsNumber(0),
			check:    func(c *config.Config) int { return c.JobsNumber },
			expected: runtime.NumCPU(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.expected, tt.check(cfg))
		})
	}
}

func TestOptionCacheTTL(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptCacheTraitTTL(30 * time.Minute),
		config.OptCacheSpeciesTTL(-time.Second),
		config.OptCacheStatsTTL(0),
	})

	assert.Equal(t, 30*time.Minute, cfg.Cache.TraitTTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.SpeciesTTL,
		"negative TTL keeps default")
	assert.Equal(t, 5*time.Minute, cfg.Cache.StatsTTL,
		"zero TTL keeps default")
}

func TestOptionLogEnums(t *testing.T) {
	tests := []struct {
		name     string
		opt      config.Option
		check    func(*config.Config) string
		expected string
	}{
		{
			name:     "sets valid level",
			opt:      config.OptLogLevel("debug"),
			check:    func(c *config.Config) string { return c.Log.Level },
			expected: "debug",
		},
		{
			name:     "normalizes case",
			opt:      config.OptLogLevel("WARN"),
			check:    func(c *config.Config) string { return c.Log.Level },
			expected: "warn",
		},
		{
			name:     "rejects unknown level",
			opt:      config.OptLogLevel("verbose"),
			check:    func(c *config.Config) string { return c.Log.Level },
			expected: "info",
		},
		{
			name:     "rejects unknown format",
			opt:      config.OptLogFormat("xml"),
			check:    func(c *config.Config) string { return c.Log.Format },
			expected: "text",
		},
		{
			name:     "sets valid destination",
			opt:      config.OptLogDestination("stdout"),
			check:    func(c *config.Config) string { return c.Log.Destination },
			expected: "stdout",
		},
		{
			name:     "rejects file destination",
			opt:      config.OptLogDestination("file"),
			check:    func(c *config.Config) string { return c.Log.Destination },
			expected: "stderr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.expected, tt.check(cfg))
		})
	}
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath("/tmp/t.db"),
		config.OptCacheTraitTTL(2 * time.Hour),
		config.OptLogFormat("json"),
		config.OptJobsNumber(3),
	})

	clone := config.New()
	clone.Update(cfg.ToOptions())

	assert.Equal(t, cfg.Database, clone.Database)
	assert.Equal(t, cfg.Cache, clone.Cache)
	assert.Equal(t, cfg.Log, clone.Log)
	assert.Equal(t, cfg.JobsNumber, clone.JobsNumber)
}
