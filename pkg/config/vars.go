package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "traitstore"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/traitstore by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for the database file.
// Returns ~/.local/share/traitstore by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// ConfigFilePath returns the full path to the traitstore.yaml file.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "traitstore.yaml")
}

// FeedsFilePath returns the full path to the default feeds.yaml file.
func FeedsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "feeds.yaml")
}

// DatabasePath resolves the database file location: an explicit
// configured path wins, otherwise traits.db inside the data directory.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(DataDir(c.HomeDir), "traits.db")
}
