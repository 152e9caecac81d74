/*
Copyright © 2026 The traitstore authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package main

import (
	"fmt"
	"log/slog"

	"github.com/razinkele/traitstore/internal/ioconfig"
	pkgconfig "github.com/razinkele/traitstore/pkg/config"
	"github.com/razinkele/traitstore/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *pkgconfig.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "traitstore",
		Short: "traitstore manages a marine species trait database",
		Long: `traitstore is a CLI tool for managing a reference database of
biological traits for marine species. Species are keyed by their WoRMS
AphiaID; traits cover morphology, biovolume, carbon content, trophic
type and ecological characteristics over multiple size classes.

The tool provides these phases:
  - create: Create the SQLite trait schema
  - import: Load trait data feeds declared in feeds.yaml
  - traits: Show the trait bundle of one species
  - search: Find species by name or by trait predicate
  - stats:  Show database statistics

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (TRAITSTORE_*)
  3. Config file (traitstore.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.path → TRAITSTORE_DATABASE_PATH).

  Examples:
    TRAITSTORE_DATABASE_PATH        SQLite database file
    TRAITSTORE_CACHE_TRAIT_TTL      Trait bundle cache lifetime
    TRAITSTORE_LOG_LEVEL            Log level (debug/info/warn/error)

  See 'go doc github.com/razinkele/traitstore/pkg/config' for the
  complete list.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Generate config files on first run
			if cfgFile == "" {
				if generatedPath, err := ioconfig.GenerateDefaultConfig(); err == nil {
					fmt.Printf("Generated default config at: %s\n", generatedPath)
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			if _, err := ioconfig.BindFlags(cmd, cfg); err != nil {
				return err
			}

			slog.SetDefault(logger.New(&cfg.Log))

			switch result.Source {
			case "file":
				slog.Debug("Loaded configuration", "path", result.SourcePath)
			case "defaults+env":
				slog.Debug("Using defaults with environment overrides")
			default:
				slog.Debug("Using built-in defaults")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/traitstore/traitstore.yaml)")
	rootCmd.PersistentFlags().String("database", "",
		"path to the SQLite database file")
	rootCmd.PersistentFlags().String("log-level", "",
		"log level, one of debug, info, warn, error")

	// -V for version, consistent with related projects
	rootCmd.Flags().BoolP("version", "V", false, "version for traitstore")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getImportCmd())
	rootCmd.AddCommand(getTraitsCmd())
	rootCmd.AddCommand(getSearchCmd())
	rootCmd.AddCommand(getStatsCmd())

	return rootCmd
}

// getConfig returns the loaded configuration for subcommands.
func getConfig() *pkgconfig.Config {
	return cfg
}
