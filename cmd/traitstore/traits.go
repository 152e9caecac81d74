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
	"strconv"

	"github.com/razinkele/traitstore/pkg/traits"
	"github.com/spf13/cobra"
)

var traitsCategory string

func getTraitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traits <AphiaID>",
		Short: "Show the trait bundle of one species",
		Long: `Show all known traits of one species, grouped by category.

The species is addressed by its WoRMS AphiaID. Traits measured per
size class are listed once per class with the class range.

Examples:
  traitstore traits 146564
  traitstore traits 146564 --category morphological`,
		Args: cobra.ExactArgs(1),
		RunE: runTraits,
	}

	cmd.Flags().StringVar(&traitsCategory, "category", "",
		"show only traits of this category")

	return cmd
}

func runTraits(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	aphiaID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || aphiaID <= 0 {
		return fmt.Errorf("invalid AphiaID %q", args[0])
	}

	op, client, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	sp, err := client.SpeciesByAphiaID(ctx, aphiaID)
	if err != nil {
		return err
	}
	if sp == nil {
		fmt.Printf("No species with AphiaID %d\n", aphiaID)
		return nil
	}

	fmt.Printf("%s (AphiaID %d)\n", sp.ScientificName, sp.AphiaID)
	if sp.CommonName != "" {
		fmt.Printf("  common name: %s\n", sp.CommonName)
	}
	fmt.Printf("  source: %s\n", sp.Source)

	var bundle traits.Bundle
	if traitsCategory != "" {
		bundle, err = client.TraitsForSpeciesByCategory(
			ctx, aphiaID, traitsCategory)
	} else {
		bundle, err = client.TraitsForSpecies(ctx, aphiaID)
	}
	if err != nil {
		return err
	}
	if len(bundle) == 0 {
		fmt.Println("\nNo trait data.")
		return nil
	}

	byCat := bundle.ByCategory()
	cats := make([]string, 0, len(byCat))
	for cat := range byCat {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	for _, cat := range cats {
		fmt.Printf("\n%s:\n", cat)
		for _, rec := range byCat[cat] {
			line := fmt.Sprintf("  %-24s %s",
				rec.TraitName, rec.Value.Format(rec.Unit))
			if rec.SizeClass != nil {
				line += fmt.Sprintf("  [class %d: %s]",
					rec.SizeClass.ClassNo, rec.SizeClass.Range)
			}
			fmt.Println(line)
		}
	}
	return nil
}
