// Package enrich merges trait bundles into externally supplied tabular
// datasets. The join is vectorized: one batch resolution for all unique
// identifiers in the table, then a single pass over the rows attaching
// derived columns. Rows with blank or unparseable identifiers keep
// empty trait columns instead of failing the whole merge.
package enrich

import (
	"context"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/razinkele/traitstore/pkg/errcode"
	"github.com/razinkele/traitstore/pkg/traits"
)

// Derived column names appended to enriched tables, in output order.
const (
	ColHasTraitData = "has_trait_data"
	ColTraitCount   = "trait_count"
	ColTrophicType  = "trophic_type"
	ColBiovolume    = "biovolume_um3"
	ColCarbon       = "carbon_pg"
)

// Trait names resolved into the derived columns.
const (
	traitTrophicType = "trophic_type"
	traitBiovolume   = "biovolume"
	traitCarbon      = "carbon_content"
)

// Resolver turns a set of identifiers into a complete id to bundle
// mapping. It is satisfied by batch.Engine and by the cache-fronted
// service facade.
type Resolver interface {
	BundlesForIDs(ctx context.Context, aphiaIDs []int64) (map[int64]traits.Bundle, error)
}

// Table is a column-ordered tabular dataset. Every row must have
// len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Merger attaches trait-derived columns to tables keyed by an AphiaID
// column.
type Merger struct {
	resolver Resolver
}

// NewMerger creates a merger backed by the given resolver.
func NewMerger(r Resolver) *Merger {
	return &Merger{resolver: r}
}

// Merge returns a copy of t with the derived trait columns appended.
// idColumn names the column holding external taxonomic identifiers.
// Identifiers are resolved once per unique value regardless of how many
// rows carry them.
func (m *Merger) Merge(ctx context.Context, t Table, idColumn string) (Table, error) {
	idIdx := -1
	for i, col := range t.Columns {
		if col == idColumn {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return Table{}, &gn.Error{
			Code: errcode.EnrichColumnError,
			Msg:  "Dataset has no column '%s'",
			Vars: []any{idColumn},
		}
	}

	rowIDs := make([]int64, len(t.Rows))
	var unique []int64
	seen := make(map[int64]bool)
	for i, row := range t.Rows {
		// short rows cannot carry an identifier
		if idIdx >= len(row) {
			rowIDs[i] = 0
			continue
		}
		id, ok := parseAphiaID(row[idIdx])
		if !ok {
			rowIDs[i] = 0
			continue
		}
		rowIDs[i] = id
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	bundles := map[int64]traits.Bundle{}
	if len(unique) > 0 {
		var err error
		bundles, err = m.resolver.BundlesForIDs(ctx, unique)
		if err != nil {
			return Table{}, err
		}
	}

	res := Table{
		Columns: append(append([]string{}, t.Columns...),
			ColHasTraitData, ColTraitCount, ColTrophicType,
			ColBiovolume, ColCarbon),
		Rows: make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		res.Rows[i] = append(append([]string{}, row...),
			derivedCells(bundles[rowIDs[i]], rowIDs[i] != 0)...)
	}
	return res, nil
}

// derivedCells renders one row's trait columns. Rows without a usable
// identifier get uniformly empty cells.
func derivedCells(bundle traits.Bundle, hasID bool) []string {
	if !hasID {
		return []string{"", "", "", "", ""}
	}

	hasData := "false"
	if len(bundle) > 0 {
		hasData = "true"
	}
	cells := []string{
		hasData,
		strconv.Itoa(len(bundle)),
		"", "", "",
	}
	if rec, ok := bundle.First(traitTrophicType); ok {
		if s, ok := rec.Value.Categorical(); ok {
			cells[2] = s
		}
	}
	if rec, ok := bundle.First(traitBiovolume); ok {
		if f, ok := rec.Value.Numeric(); ok {
			cells[3] = strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	if rec, ok := bundle.First(traitCarbon); ok {
		if f, ok := rec.Value.Numeric(); ok {
			cells[4] = strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return cells
}

// parseAphiaID parses a cell into a positive identifier. Blank cells,
// non-numeric text and non-positive numbers are all treated as missing.
func parseAphiaID(cell string) (int64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	// Spreadsheet exports often render integer ids as "146564.0".
	if dot := strings.Index(s, "."); dot >= 0 {
		if strings.Trim(s[dot+1:], "0") == "" {
			s = s[:dot]
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
