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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/razinkele/traitstore/internal/iodb"
	"github.com/razinkele/traitstore/internal/ioimport"
	"github.com/razinkele/traitstore/pkg/db"
	"github.com/razinkele/traitstore/pkg/traitstore"
	"github.com/spf13/cobra"
)

func getImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import trait data feeds",
		Long: `Import the trait data feeds declared in feeds.yaml.

Each feed runs in its own transaction. Rows previously contributed by
the feed's source tag are replaced, so re-running an import with
identical input leaves the database unchanged.

The standard trait ontology (categories and trait definitions) is
seeded before the first feed.

Examples:
  traitstore import
  traitstore import --sources bvol_nomp_version_2024
  traitstore import --feeds ./feeds.yaml`,
		RunE: runImport,
	}

	cmd.Flags().String("feeds", "",
		"path to the feeds.yaml manifest")
	cmd.Flags().StringSlice("sources", nil,
		"import only the named source tags")
	cmd.Flags().Int("jobs", 0,
		"number of concurrent workers")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt)
	defer stop()

	cfg := getConfig()

	var op db.Operator = iodb.NewSQLiteOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer op.Close()

	var imp traitstore.Importer = ioimport.New(cfg, op)
	summaries, err := imp.Import(ctx)
	if err != nil {
		return err
	}

	for _, s := range summaries {
		if s.Err != nil {
			fmt.Printf("✗ %s: %v\n", s.Source, s.Err)
			continue
		}
		fmt.Printf("✓ %s: %d species, %d trait values, %d size classes\n",
			s.Source, s.Species, s.TraitValues, s.SizeClasses)
	}
	return nil
}
