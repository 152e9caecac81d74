package ioimport

import (
	"log/slog"
	"os"

	"github.com/razinkele/traitstore/pkg/config"
	"github.com/razinkele/traitstore/pkg/feeds"
	"gopkg.in/yaml.v3"
)

// feedsLoader implements feeds.Feeds over the file system.
type feedsLoader struct {
	cfg *config.Config
}

// NewFeeds creates a manifest loader for the configured feeds file.
func NewFeeds(cfg *config.Config) feeds.Feeds {
	return &feedsLoader{cfg: cfg}
}

func (l *feedsLoader) Load() (*feeds.FeedsConfig, error) {
	path := l.cfg.Import.FeedsFile
	if path == "" {
		path = config.FeedsFilePath(l.cfg.HomeDir)
	}
	feedsConfig, err := loadFeedsConfig(path)
	if err != nil {
		return nil, FeedsConfigError(path, err)
	}
	return feedsConfig, nil
}

// loadFeedsConfig reads and validates feeds.yaml from disk. Relative
// feed paths are resolved against the manifest's directory.
func loadFeedsConfig(path string) (*feeds.FeedsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg feeds.FeedsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ResolvePaths(path)

	for _, w := range cfg.Warnings {
		slog.Warn("Feed configuration warning",
			"feed", w.Feed,
			"field", w.Field,
			"message", w.Message,
			"suggestion", w.Suggestion)
	}

	return &cfg, nil
}
