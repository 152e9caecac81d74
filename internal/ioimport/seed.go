package ioimport

import (
	"context"
	"database/sql"
)

// categorySeed is the standard category hierarchy. Children reference
// parents by name; the ids are assigned by the database.
type categorySeed struct {
	name, parent, description string
}

var categorySeeds = []categorySeed{
	{"morphological", "", "Physical form and structure"},
	{"ecological", "", "Ecological characteristics and behaviors"},
	{"trophic", "", "Feeding and nutritional characteristics"},
	{"behavioral", "", "Behavioral traits and patterns"},
	{"geographic", "", "Geographic distribution and habitat"},
	{"taxonomic", "", "Taxonomic classification"},
	{"physiological", "", "Physiological characteristics"},

	{"size", "morphological", "Size measurements"},
	{"shape", "morphological", "Geometric shape and form"},
	{"biomass", "morphological", "Biomass and carbon content"},

	{"abundance", "ecological", "Population abundance"},
	{"mobility", "ecological", "Movement and mobility patterns"},
	{"habitat", "ecological", "Habitat preferences and position"},

	{"feeding_mode", "trophic", "Feeding method and strategy"},
	{"diet", "trophic", "Diet and food sources"},
}

// traitSeed is one standard trait definition.
type traitSeed struct {
	name, category, dataType, unit, description string
}

var traitSeeds = []traitSeed{
	{"length_l1", "size", "numeric", "µm", "Primary length measurement"},
	{"length_l2", "size", "numeric", "µm", "Secondary length measurement"},
	{"width", "size", "numeric", "µm", "Width measurement"},
	{"height", "size", "numeric", "µm", "Height measurement"},
	{"diameter_d1", "size", "numeric", "µm", "Primary diameter"},
	{"diameter_d2", "size", "numeric", "µm", "Secondary diameter"},
	{"filament_length", "size", "numeric", "µm", "Filament length per cell"},

	{"geometric_shape", "shape", "categorical", "", "Geometric shape"},
	{"growth_form", "shape", "categorical", "", "Growth form"},
	{"body_flexibility", "morphological", "categorical", "", "Body flexibility"},

	{"biovolume", "biomass", "numeric", "µm³", "Calculated biovolume"},
	{"carbon_content", "biomass", "numeric", "pg", "Carbon content"},
	{"cells_per_unit", "biomass", "numeric", "count", "Number of cells per counting unit"},

	{"trophic_type", "trophic", "categorical", "", "Trophic type (AU, HE, etc.)"},
	{"feeding_method", "feeding_mode", "categorical", "", "Characteristic feeding method"},
	{"diet_food_source", "diet", "text", "", "Diet and food sources"},
	{"feeds_on", "diet", "text", "", "What species typically feeds on"},

	{"typical_abundance", "abundance", "categorical", "", "Typical abundance"},
	{"growth_rate", "ecological", "categorical", "", "Growth rate"},
	{"mobility", "mobility", "categorical", "", "Mobility level"},
	{"sociability", "behavioral", "categorical", "", "Social behavior"},
	{"environmental_position", "habitat", "categorical", "", "Environmental position"},
	{"dependency", "ecological", "categorical", "", "Dependency on other species"},
	{"supports", "ecological", "text", "", "What species supports"},

	{"male_size_range", "size", "text", "", "Male size range"},
	{"female_size_range", "size", "text", "", "Female size range"},
	{"male_size_at_maturity", "size", "text", "", "Male size at maturity"},
	{"female_size_at_maturity", "size", "text", "", "Female size at maturity"},

	{"is_harmful", "ecological", "categorical", "", "Is species harmful"},
}

// seedOntology inserts the standard categories and trait definitions.
// Inserts are INSERT OR IGNORE so re-imports leave existing rows
// untouched; parents are inserted before children by list order.
func seedOntology(ctx context.Context, tx *sql.Tx) error {
	for _, c := range categorySeeds {
		var parent any
		if c.parent != "" {
			parent = c.parent
		}
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO trait_categories
				(name, parent_id, description)
			VALUES (?,
				(SELECT id FROM trait_categories WHERE name = ?), ?)
		`, c.name, parent, c.description)
		if err != nil {
			return SeedError("trait_categories", err)
		}
	}

	for _, t := range traitSeeds {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO traits
				(name, category_id, data_type, unit, description)
			VALUES (?,
				(SELECT id FROM trait_categories WHERE name = ?),
				?, ?, ?)
		`, t.name, t.category, t.dataType, t.unit, t.description)
		if err != nil {
			return SeedError("traits", err)
		}
	}
	return nil
}

// traitDef is a cached trait definition used while inserting values.
type traitDef struct {
	id       int64
	dataType string
}

// loadTraitCatalog reads the trait definitions seeded above into a
// name-keyed map.
func loadTraitCatalog(
	ctx context.Context,
	tx *sql.Tx,
) (map[string]traitDef, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT id, name, data_type FROM traits")
	if err != nil {
		return nil, SeedError("traits", err)
	}
	defer rows.Close()

	res := make(map[string]traitDef)
	for rows.Next() {
		var (
			def  traitDef
			name string
		)
		if err := rows.Scan(&def.id, &name, &def.dataType); err != nil {
			return nil, SeedError("traits", err)
		}
		res[name] = def
	}
	return res, rows.Err()
}
