package ioconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/razinkele/traitstore/pkg/config"
	"github.com/razinkele/traitstore/pkg/templates"
)

// GenerateDefaultConfig creates documented default traitstore.yaml and
// feeds.yaml files in the config directory. Existing files are never
// overwritten; both existing is an error.
func GenerateDefaultConfig() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configPath := config.ConfigFilePath(homeDir)
	feedsPath := config.FeedsFilePath(homeDir)

	configExists := fileExists(configPath)
	feedsExists := fileExists(feedsPath)
	if configExists && feedsExists {
		return "", fmt.Errorf(
			"config files already exist at %s", filepath.Dir(configPath))
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if !configExists {
		err := os.WriteFile(configPath, []byte(templates.ConfigYAML), 0644)
		if err != nil {
			return "", fmt.Errorf("failed to write config file: %w", err)
		}
	}
	if !feedsExists {
		err := os.WriteFile(feedsPath, []byte(templates.FeedsYAML), 0644)
		if err != nil {
			return "", fmt.Errorf("failed to write feeds file: %w", err)
		}
	}

	return configPath, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
