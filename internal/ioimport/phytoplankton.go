package ioimport

import (
	"context"
	"strconv"

	"github.com/cheggaaa/pb/v3"
)

// measurementColumns maps numeric size traits to their feed columns.
// Both micro sign encodings occur in the wild, so each trait lists the
// spellings it may appear under.
var measurementColumns = map[string][]string{
	"length_l1":       {"Length(l1)µm", "Length(l1)μm"},
	"length_l2":       {"Length(l2)µm", "Length(l2)μm"},
	"width":           {"Width(w)µm", "Width(w)μm"},
	"height":          {"Height(h)µm", "Height(h)μm"},
	"diameter_d1":     {"Diameter(d1)µm", "Diameter(d1)μm"},
	"diameter_d2":     {"Diameter(d2)µm", "Diameter(d2)μm"},
	"filament_length": {"Filament_length_of_cell(µm)", "Filament_length_of_cell(μm)"},
	"biovolume":       {"Calculated_volume_µm3/counting_unit", "Calculated_volume_μm3/counting_unit"},
	"carbon_content":  {"Carbon_pg/counting_unit"},
	"cells_per_unit":  {"No_of_cells/counting_unit"},
}

// importPhytoplankton loads the biovolume feed. Rows sharing an
// AphiaID are one species with several size classes; species-level
// fields come from the first row of the group.
func importPhytoplankton(
	ctx context.Context,
	ins *inserter,
	table *feedTable,
) error {
	bar := pb.Full.Start(len(table.rows))
	bar.Set("prefix", "Importing phytoplankton: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	// species surrogate id per AphiaID, assigned on first sight
	speciesIDs := make(map[int64]int64)
	// duplicate guard per (AphiaID, class number)
	seenClass := make(map[int64]map[int]bool)

	for _, row := range table.rows {
		bar.Increment()

		rawID := table.cell(row, "AphiaID")
		if rawID == "" {
			continue
		}
		aphiaID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || aphiaID <= 0 {
			continue
		}

		speciesID, known := speciesIDs[aphiaID]
		if !known {
			speciesID, err = insertPhytoSpecies(ctx, ins, table, row, aphiaID)
			if err != nil {
				return err
			}
			speciesIDs[aphiaID] = speciesID
			seenClass[aphiaID] = make(map[int]bool)
		}

		var sizeClassID *int64
		if rawNo := table.cell(row, "SizeClassNo"); rawNo != "" {
			classNo, err := strconv.Atoi(rawNo)
			if err != nil {
				return IntegrityError(ins.source, err)
			}
			if seenClass[aphiaID][classNo] {
				return DuplicateIDError(ins.source, aphiaID)
			}
			seenClass[aphiaID][classNo] = true

			id, err := ins.insertSizeClass(
				ctx, speciesID, classNo, table.cell(row, "SizeRange"))
			if err != nil {
				return err
			}
			sizeClassID = &id
		}

		if v := table.cell(row, "Trophy"); v != "" {
			if err := ins.insertValue(
				ctx, speciesID, "trophic_type", v, sizeClassID,
			); err != nil {
				return err
			}
		}
		if v := table.cell(row, "Geometric_shape"); v != "" {
			if err := ins.insertValue(
				ctx, speciesID, "geometric_shape", v, sizeClassID,
			); err != nil {
				return err
			}
		}
		for trait, cols := range measurementColumns {
			v := table.cell(row, cols...)
			if v == "" {
				continue
			}
			if err := ins.insertValue(
				ctx, speciesID, trait, v, sizeClassID,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// insertPhytoSpecies adds the species row plus its taxonomy and
// geography from the group's first row.
func insertPhytoSpecies(
	ctx context.Context,
	ins *inserter,
	table *feedTable,
	row []string,
	aphiaID int64,
) (int64, error) {
	speciesID, err := ins.insertSpecies(ctx, aphiaID,
		table.cell(row, "Species"),
		table.cell(row, "Genus"),
		"",
		table.cell(row, "Author"),
	)
	if err != nil {
		return 0, err
	}

	// Cyanobacteria are the one bacterial division in the feed, the
	// rest of the phytoplankton is chromist.
	division := table.cell(row, "Division")
	kingdom := "Chromista"
	if division == "CYANOBACTERIA" {
		kingdom = "Bacteria"
	}
	err = ins.insertTaxonomy(ctx, speciesID,
		kingdom,
		division,
		table.cell(row, "Class"),
		table.cell(row, "Order"),
		table.cell(row, "Genus"),
		table.cell(row, "Species"),
		table.cell(row, "WORMS Rank"),
	)
	if err != nil {
		return 0, err
	}

	if v := table.cell(row, "HELCOM area"); v != "" {
		if err := ins.insertGeography(ctx, speciesID, "HELCOM", v); err != nil {
			return 0, err
		}
	}
	if v := table.cell(row, "OSPAR area"); v != "" {
		if err := ins.insertGeography(ctx, speciesID, "OSPAR", v); err != nil {
			return 0, err
		}
	}
	return speciesID, nil
}
