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
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func getStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Long: `Show entity counts, species per data source and traits per
category.

Examples:
  traitstore stats`,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	op, client, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	stats, err := client.Statistics(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Trait database statistics")
	fmt.Println()
	fmt.Printf("  species:      %s\n", humanize.Comma(int64(stats.Species)))
	fmt.Printf("  traits:       %s\n", humanize.Comma(int64(stats.Traits)))
	fmt.Printf("  trait values: %s\n", humanize.Comma(int64(stats.TraitValues)))
	fmt.Printf("  categories:   %s\n", humanize.Comma(int64(stats.Categories)))
	fmt.Printf("  size classes: %s\n", humanize.Comma(int64(stats.SizeClasses)))

	if len(stats.SpeciesBySource) > 0 {
		fmt.Println("\nSpecies by source:")
		for _, k := range sortedKeys(stats.SpeciesBySource) {
			fmt.Printf("  %-28s %s\n", k,
				humanize.Comma(int64(stats.SpeciesBySource[k])))
		}
	}
	if len(stats.TraitsByCategory) > 0 {
		fmt.Println("\nTraits by category:")
		for _, k := range sortedKeys(stats.TraitsByCategory) {
			fmt.Printf("  %-28s %s\n", k,
				humanize.Comma(int64(stats.TraitsByCategory[k])))
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
