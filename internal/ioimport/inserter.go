package ioimport

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/razinkele/traitstore/pkg/store"
	"github.com/razinkele/traitstore/pkg/traits"
)

// valueCols is the number of placeholders one trait value row adds to
// a bulk insert statement.
const valueCols = 9

// valueRow is one buffered trait value awaiting a bulk insert.
type valueRow struct {
	speciesID   int64
	traitID     int64
	numeric     any
	text        any
	categorical any
	boolean     any
	sizeClassID any
}

// valueBatch caps a configured batch size by the SQLite bound
// variable limit, valueCols placeholders per row.
func valueBatch(configured int) int {
	maxRows := store.MaxQueryParams / valueCols
	if configured < 1 {
		return 1
	}
	if configured > maxRows {
		return maxRows
	}
	return configured
}

// inserter carries the per-feed transaction state and row counters.
// All writes of one feed go through it. Trait values are buffered and
// written batchSize rows per statement; callers must flushValues
// before commit.
type inserter struct {
	tx        *sql.Tx
	source    string
	catalog   map[string]traitDef
	batchSize int
	pending   []valueRow

	speciesCount    int
	traitValueCount int
	sizeClassCount  int
}

// insertSpecies adds one species row and returns its surrogate id.
// An AphiaID already owned by another source is an overlap violation:
// the identifier is unique across sources by contract.
func (ins *inserter) insertSpecies(
	ctx context.Context,
	aphiaID int64,
	scientificName, genus, commonName, author string,
) (int64, error) {
	var existingSource string
	err := ins.tx.QueryRowContext(ctx,
		"SELECT data_source FROM species WHERE aphia_id = ?",
		aphiaID,
	).Scan(&existingSource)
	if err == nil {
		return 0, SourceOverlapError(aphiaID, existingSource, ins.source)
	}
	if err != sql.ErrNoRows {
		return 0, IntegrityError(ins.source, err)
	}

	res, err := ins.tx.ExecContext(ctx, `
		INSERT INTO species
			(aphia_id, scientific_name, genus, common_name,
			 author, data_source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, aphiaID, scientificName, genus, commonName, author,
		ins.source, time.Now())
	if err != nil {
		return 0, IntegrityError(ins.source, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, IntegrityError(ins.source, err)
	}
	ins.speciesCount++
	return id, nil
}

// insertSizeClass adds one size class for a species and returns its
// id. The verbatim range text is always kept; the parsed bounds are
// null for compound forms.
func (ins *inserter) insertSizeClass(
	ctx context.Context,
	speciesID int64,
	classNo int,
	sizeRange string,
) (int64, error) {
	rangeMin, rangeMax := parseSizeRange(sizeRange)
	res, err := ins.tx.ExecContext(ctx, `
		INSERT INTO size_classes
			(species_id, class_no, size_range, range_min, range_max)
		VALUES (?, ?, ?, ?, ?)
	`, speciesID, classNo, sizeRange,
		nullFloat(rangeMin), nullFloat(rangeMax))
	if err != nil {
		return 0, IntegrityError(ins.source, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, IntegrityError(ins.source, err)
	}
	ins.sizeClassCount++
	return id, nil
}

// insertValue adds one trait value, routed to the column the trait's
// declared type names. A value that cannot be coerced to that type is
// an integrity violation and rejects the feed.
func (ins *inserter) insertValue(
	ctx context.Context,
	speciesID int64,
	traitName, raw string,
	sizeClassID *int64,
) error {
	def, ok := ins.catalog[traitName]
	if !ok {
		return IntegrityError(ins.source,
			fmt.Errorf("unknown trait %q", traitName))
	}

	var num, text, cat, boolean any
	switch traits.DataType(def.dataType) {
	case traits.Numeric:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return IntegrityError(ins.source, fmt.Errorf(
				"trait %q expects a number, got %q", traitName, raw))
		}
		num = v
	case traits.Text:
		text = raw
	case traits.Categorical:
		cat = raw
	case traits.Boolean:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return IntegrityError(ins.source, fmt.Errorf(
				"trait %q expects a boolean, got %q", traitName, raw))
		}
		boolean = v
	}

	var scID any
	if sizeClassID != nil {
		scID = *sizeClassID
	}
	ins.pending = append(ins.pending, valueRow{
		speciesID:   speciesID,
		traitID:     def.id,
		numeric:     num,
		text:        text,
		categorical: cat,
		boolean:     boolean,
		sizeClassID: scID,
	})
	ins.traitValueCount++
	if len(ins.pending) >= ins.batchSize {
		return ins.flushValues(ctx)
	}
	return nil
}

// flushValues writes the buffered trait values as one multi-row
// insert. It is a no-op on an empty buffer.
func (ins *inserter) flushValues(ctx context.Context) error {
	if len(ins.pending) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(`
		INSERT INTO trait_values
			(species_id, trait_id, value_numeric, value_text,
			 value_categorical, value_boolean, size_class_id,
			 data_source, created_at)
		VALUES `)
	args := make([]any, 0, len(ins.pending)*valueCols)
	now := time.Now()
	for i, row := range ins.pending {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, row.speciesID, row.traitID, row.numeric,
			row.text, row.categorical, row.boolean, row.sizeClassID,
			ins.source, now)
	}
	ins.pending = ins.pending[:0]
	if _, err := ins.tx.ExecContext(ctx, b.String(), args...); err != nil {
		return IntegrityError(ins.source, err)
	}
	return nil
}

// insertTaxonomy adds the rank chain for a species.
func (ins *inserter) insertTaxonomy(
	ctx context.Context,
	speciesID int64,
	kingdom, division, class, orderName, genus, species, rank string,
) error {
	_, err := ins.tx.ExecContext(ctx, `
		INSERT INTO taxonomic_hierarchy
			(species_id, kingdom, division, class, order_name,
			 genus, species, rank)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, speciesID, kingdom, division, class, orderName,
		genus, species, rank)
	if err != nil {
		return IntegrityError(ins.source, err)
	}
	return nil
}

// insertGeography marks a species present in an area scheme.
func (ins *inserter) insertGeography(
	ctx context.Context,
	speciesID int64,
	areaType, areaValue string,
) error {
	_, err := ins.tx.ExecContext(ctx, `
		INSERT INTO geographic_distribution
			(species_id, area_type, area_value)
		VALUES (?, ?, ?)
	`, speciesID, areaType, areaValue)
	if err != nil {
		return IntegrityError(ins.source, err)
	}
	return nil
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
