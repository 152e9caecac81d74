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

	"github.com/razinkele/traitstore/pkg/traits"
	"github.com/spf13/cobra"
)

var (
	searchTrait string
	searchMin   float64
	searchMax   float64
	searchValue string
)

func getSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [name]",
		Short: "Find species by name or by trait predicate",
		Long: `Find species three ways:

  1. By name: a positional argument matches scientific and common
     names case-insensitively.
  2. By numeric trait range: --trait with --min and/or --max returns
     species having at least one value inside the inclusive range.
  3. By categorical trait value: --trait with --value returns species
     having at least one exactly matching value.

Examples:
  traitstore search Dinophysis
  traitstore search --trait biovolume --min 1 --max 10
  traitstore search --trait trophic_type --value AU`,
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchTrait, "trait", "", "trait name to query")
	cmd.Flags().Float64Var(&searchMin, "min", 0, "inclusive lower bound")
	cmd.Flags().Float64Var(&searchMax, "max", 0, "inclusive upper bound")
	cmd.Flags().StringVar(&searchValue, "value", "", "exact categorical value")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	op, client, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	switch {
	case searchTrait != "" && searchValue != "":
		matches, err := client.SpeciesByCategoricalTrait(
			ctx, searchTrait, searchValue)
		if err != nil {
			return err
		}
		printMatches(matches)

	case searchTrait != "":
		var min, max *float64
		if cmd.Flags().Changed("min") {
			min = &searchMin
		}
		if cmd.Flags().Changed("max") {
			max = &searchMax
		}
		matches, err := client.SpeciesByNumericTrait(
			ctx, searchTrait, min, max)
		if err != nil {
			return err
		}
		printMatches(matches)

	case len(args) == 1:
		species, err := client.SearchSpeciesByName(ctx, args[0])
		if err != nil {
			return err
		}
		if len(species) == 0 {
			fmt.Println("No species found.")
			return nil
		}
		for _, sp := range species {
			fmt.Printf("%-12d %s\n", sp.AphiaID, sp.ScientificName)
		}
		fmt.Printf("\n%d species\n", len(species))

	default:
		return fmt.Errorf("provide a name, or --trait with --min/--max or --value")
	}
	return nil
}

func printMatches(matches []traits.SpeciesMatch) {
	if len(matches) == 0 {
		fmt.Println("No species found.")
		return
	}
	for _, m := range matches {
		fmt.Printf("%-12d %-40s %s = %s\n",
			m.AphiaID, m.ScientificName, m.TraitName, m.Value)
	}
	fmt.Printf("\n%d species\n", len(matches))
}
