// Package ioconfig provides I/O operations for loading configuration
// from files, environment variables and flags. This is an impure
// package; the pure configuration model lives in pkg/config.
package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/razinkele/traitstore/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about its
// source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // config file used, empty when running on defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration with the precedence
// flags > env vars > traitstore.yaml > defaults. Flags are applied
// later via BindFlags. An empty configPath falls back to the default
// location under ~/.config/traitstore.
func Load(configPath string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TRAITSTORE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults are set before reading so AutomaticEnv knows every key.
	defaults := config.New()
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("database.max_conns", defaults.Database.MaxConns)
	v.SetDefault("database.batch_size", defaults.Database.BatchSize)
	v.SetDefault("cache.trait_ttl", defaults.Cache.TraitTTL)
	v.SetDefault("cache.species_ttl", defaults.Cache.SpeciesTTL)
	v.SetDefault("cache.stats_ttl", defaults.Cache.StatsTTL)
	v.SetDefault("cache.max_entries", defaults.Cache.MaxEntries)
	v.SetDefault("import.feeds_file", defaults.Import.FeedsFile)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.destination", defaults.Log.Destination)
	v.SetDefault("jobs_number", defaults.JobsNumber)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultPath := config.ConfigFilePath(homeDir)
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			v.SetConfigFile(defaultPath)
		}
	}

	configFileRead := false
	usedConfigPath := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
		} else if configPath != "" || v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	var raw config.Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Route every loaded value through the option validators so a bad
	// file degrades to warnings plus defaults instead of a panic.
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath(raw.Database.Path),
		config.OptDatabaseMaxConns(raw.Database.MaxConns),
		config.OptDatabaseBatchSize(raw.Database.BatchSize),
		config.OptCacheTraitTTL(raw.Cache.TraitTTL),
		config.OptCacheSpeciesTTL(raw.Cache.SpeciesTTL),
		config.OptCacheStatsTTL(raw.Cache.StatsTTL),
		config.OptCacheMaxEntries(raw.Cache.MaxEntries),
		config.OptImportFeedsFile(raw.Import.FeedsFile),
		config.OptLogFormat(raw.Log.Format),
		config.OptLogLevel(raw.Log.Level),
		config.OptLogDestination(raw.Log.Destination),
		config.OptJobsNumber(raw.JobsNumber),
		config.OptHomeDir(homeDir),
	})

	source := "defaults"
	if configFileRead {
		source = "file"
	} else if hasEnvVars() {
		source = "defaults+env"
	}

	return &LoadResult{
		Config:     cfg,
		SourcePath: usedConfigPath,
		Source:     source,
	}, nil
}

// hasEnvVars checks if any TRAITSTORE_* environment variables are set.
func hasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "TRAITSTORE_") {
			return true
		}
	}
	return false
}

// BindFlags overrides config values with flags the user actually set.
func BindFlags(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	var opts []config.Option
	if cmd.Flags().Changed("database") {
		opts = append(opts, config.OptDatabasePath(v.GetString("database")))
	}
	if cmd.Flags().Changed("feeds") {
		opts = append(opts, config.OptImportFeedsFile(v.GetString("feeds")))
	}
	if cmd.Flags().Changed("sources") {
		opts = append(opts, config.OptImportSources(v.GetStringSlice("sources")))
	}
	if cmd.Flags().Changed("jobs") {
		opts = append(opts, config.OptJobsNumber(v.GetInt("jobs")))
	}
	if cmd.Flags().Changed("log-level") {
		opts = append(opts, config.OptLogLevel(v.GetString("log-level")))
	}
	cfg.Update(opts)
	return cfg, nil
}
