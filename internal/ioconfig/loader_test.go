package ioconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/razinkele/traitstore/pkg/config"
	"github.com/razinkele/traitstore/pkg/templates"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	res, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "defaults", res.Source)
	assert.Empty(t, res.SourcePath)
	assert.Equal(t, 10, res.Config.Database.MaxConns)
	assert.Equal(t, time.Hour, res.Config.Cache.TraitTTL)
	assert.Equal(t, tempHome, res.Config.HomeDir)
}

func TestLoadEnvOverride(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("TRAITSTORE_LOG_LEVEL", "debug")
	t.Setenv("TRAITSTORE_DATABASE_MAX_CONNS", "3")
	t.Setenv("TRAITSTORE_CACHE_TRAIT_TTL", "15m")

	res, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "defaults+env", res.Source)
	assert.Equal(t, "debug", res.Config.Log.Level)
	assert.Equal(t, 3, res.Config.Database.MaxConns)
	assert.Equal(t, 15*time.Minute, res.Config.Cache.TraitTTL)
}

func TestLoadConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "traitstore.yaml")
	yaml := `
database:
  path: /tmp/custom.db
  max_conns: 7
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	res, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file", res.Source)
	assert.Equal(t, path, res.SourcePath)
	assert.Equal(t, "/tmp/custom.db", res.Config.Database.Path)
	assert.Equal(t, 7, res.Config.Database.MaxConns)
	assert.Equal(t, "json", res.Config.Log.Format)
	assert.Equal(t, "info", res.Config.Log.Level, "unset keys keep defaults")
}

func TestLoadInvalidValuesDegradeToDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "traitstore.yaml")
	yaml := `
database:
  max_conns: -4
log:
  level: chatty
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	res, err := Load(path)
	require.NoError(t, err, "bad values warn instead of failing")
	assert.Equal(t, 10, res.Config.Database.MaxConns)
	assert.Equal(t, "info", res.Config.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	_, err := Load(filepath.Join(tempHome, "nope.yaml"))
	assert.Error(t, err)
}

func TestGenerateDefaultConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	t.Run("creates config and feeds files", func(t *testing.T) {
		configPath, err := GenerateDefaultConfig()
		require.NoError(t, err)

		content, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Equal(t, templates.ConfigYAML, string(content))

		feedsPath := filepath.Join(filepath.Dir(configPath), "feeds.yaml")
		content, err = os.ReadFile(feedsPath)
		require.NoError(t, err)
		assert.Equal(t, templates.FeedsYAML, string(content))
	})

	t.Run("does not overwrite existing files", func(t *testing.T) {
		configPath := filepath.Join(tempHome, ".config", "traitstore", "traitstore.yaml")
		existing := "existing config"
		require.NoError(t, os.WriteFile(configPath, []byte(existing), 0644))
		require.NoError(t, os.Remove(
			filepath.Join(tempHome, ".config", "traitstore", "feeds.yaml")))

		_, err := GenerateDefaultConfig()
		require.NoError(t, err)

		content, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Equal(t, existing, string(content))
	})

	t.Run("fails when both files exist", func(t *testing.T) {
		_, err := GenerateDefaultConfig()
		assert.Error(t, err)
	})
}

func TestBindFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("database", "", "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().StringSlice("sources", nil, "")
	require.NoError(t, cmd.Flags().Set("log-level", "debug"))
	require.NoError(t, cmd.Flags().Set("database", "/tmp/traits.db"))

	cfg, err := BindFlags(cmd, config.New())
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/traits.db", cfg.Database.Path)
	assert.Empty(t, cfg.Import.Sources, "unset flags leave config alone")
}
