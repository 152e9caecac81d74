package ioimport

import (
	"context"
	"strconv"

	"github.com/cheggaaa/pb/v3"
)

// enrichedColumns maps trait names to the feed's column names. The
// columns come from a biology questionnaire export, hence the prefix.
var enrichedColumns = map[string]string{
	"male_size_range":          "biology_male_size_range",
	"female_size_range":        "biology_female_size_range",
	"male_size_at_maturity":    "biology_male_size_at_maturity",
	"female_size_at_maturity":  "biology_female_size_at_maturity",
	"growth_form":              "biology_growth_form",
	"body_flexibility":         "biology_body_flexibility",
	"typical_abundance":        "biology_typical_abundance",
	"growth_rate":              "biology_growth_rate",
	"mobility":                 "biology_mobility",
	"sociability":              "biology_sociability",
	"environmental_position":   "biology_environmental_position",
	"dependency":               "biology_dependency",
	"supports":                 "biology_supports",
	"feeding_method":           "biology_characteristic_feeding_method",
	"diet_food_source":         "biology_dietfood_source",
	"feeds_on":                 "biology_typically_feeds_on",
	"is_harmful":               "biology_is_the_species_harmful",
}

// importEnriched loads the enriched species feed: one row per species,
// trait values without size classes.
func importEnriched(
	ctx context.Context,
	ins *inserter,
	table *feedTable,
) error {
	bar := pb.Full.Start(len(table.rows))
	bar.Set("prefix", "Importing enriched species: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	seen := make(map[int64]bool)

	for _, row := range table.rows {
		bar.Increment()

		rawID := table.cell(row, "aphiaID", "AphiaID")
		if rawID == "" {
			continue
		}
		aphiaID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || aphiaID <= 0 {
			continue
		}
		if seen[aphiaID] {
			return DuplicateIDError(ins.source, aphiaID)
		}
		seen[aphiaID] = true

		speciesID, err := ins.insertSpecies(ctx, aphiaID,
			table.cell(row, "taxonomyName"),
			"",
			table.cell(row, "synonymCommonName"),
			table.cell(row, "taxonomyAuthority"),
		)
		if err != nil {
			return err
		}

		for trait, col := range enrichedColumns {
			v := table.cell(row, col)
			if v == "" {
				continue
			}
			if err := ins.insertValue(ctx, speciesID, trait, v, nil); err != nil {
				return err
			}
		}
	}
	return nil
}
