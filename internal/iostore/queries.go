package iostore

import (
	"context"
	"database/sql"

	"github.com/razinkele/traitstore/pkg/traits"
)

// SpeciesByNumericTrait returns the distinct species having at least
// one value of the named trait inside [min, max]. A species with
// several matching size classes appears once, carrying its smallest
// matching value.
func (s *iostore) SpeciesByNumericTrait(
	ctx context.Context,
	trait string,
	min, max *float64,
) ([]traits.SpeciesMatch, error) {
	if min != nil && max != nil && *min > *max {
		return nil, RangeError(trait, *min, *max)
	}

	query := `
		SELECT s.aphia_id, s.scientific_name, s.genus,
			s.common_name, s.author, s.data_source,
			MIN(tv.value_numeric)
		FROM trait_values tv
		JOIN species s ON s.id = tv.species_id
		JOIN traits t ON t.id = tv.trait_id
		WHERE t.name = ? AND tv.value_numeric IS NOT NULL
	`
	args := []any{trait}
	if min != nil {
		query += " AND tv.value_numeric >= ?"
		args = append(args, *min)
	}
	if max != nil {
		query += " AND tv.value_numeric <= ?"
		args = append(args, *max)
	}
	query += `
		GROUP BY s.id
		ORDER BY s.scientific_name
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, QueryError("numeric trait query", err)
	}
	defer rows.Close()

	var res []traits.SpeciesMatch
	for rows.Next() {
		var (
			m   traits.SpeciesMatch
			val float64
		)
		if err := rows.Scan(
			&m.AphiaID, &m.ScientificName, &m.Genus,
			&m.CommonName, &m.Author, &m.Source, &val,
		); err != nil {
			return nil, QueryError("numeric trait query", err)
		}
		m.TraitName = trait
		m.Value = traits.NewNumeric(val)
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError("numeric trait query", err)
	}
	return res, nil
}

// SpeciesByCategoricalTrait returns the distinct species having at
// least one value of the named trait exactly equal to value. SQLite
// compares TEXT case-sensitively by default, which is the contract.
func (s *iostore) SpeciesByCategoricalTrait(
	ctx context.Context,
	trait, value string,
) ([]traits.SpeciesMatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.aphia_id, s.scientific_name, s.genus,
			s.common_name, s.author, s.data_source
		FROM trait_values tv
		JOIN species s ON s.id = tv.species_id
		JOIN traits t ON t.id = tv.trait_id
		WHERE t.name = ? AND tv.value_categorical = ?
		GROUP BY s.id
		ORDER BY s.scientific_name
	`, trait, value)
	if err != nil {
		return nil, QueryError("categorical trait query", err)
	}
	defer rows.Close()

	var res []traits.SpeciesMatch
	for rows.Next() {
		var m traits.SpeciesMatch
		if err := rows.Scan(
			&m.AphiaID, &m.ScientificName, &m.Genus,
			&m.CommonName, &m.Author, &m.Source,
		); err != nil {
			return nil, QueryError("categorical trait query", err)
		}
		m.TraitName = trait
		m.Value = traits.NewCategorical(value)
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError("categorical trait query", err)
	}
	return res, nil
}

// Statistics returns counts by entity, species counts by data source
// and trait counts by category.
func (s *iostore) Statistics(ctx context.Context) (*traits.Statistics, error) {
	stats := &traits.Statistics{
		SpeciesBySource:  make(map[string]int),
		TraitsByCategory: make(map[string]int),
	}

	counts := []struct {
		query string
		dst   *int
	}{
		{"SELECT COUNT(*) FROM species", &stats.Species},
		{"SELECT COUNT(*) FROM traits", &stats.Traits},
		{"SELECT COUNT(*) FROM trait_values", &stats.TraitValues},
		{"SELECT COUNT(*) FROM trait_categories", &stats.Categories},
		{"SELECT COUNT(*) FROM size_classes", &stats.SizeClasses},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return nil, QueryError("statistics", err)
		}
	}

	if err := s.countBy(ctx, `
		SELECT data_source, COUNT(*) FROM species GROUP BY data_source
	`, stats.SpeciesBySource); err != nil {
		return nil, err
	}

	if err := s.countBy(ctx, `
		SELECT COALESCE(c.name, 'other'), COUNT(*)
		FROM traits t
		LEFT JOIN trait_categories c ON c.id = t.category_id
		GROUP BY c.name
	`, stats.TraitsByCategory); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *iostore) countBy(
	ctx context.Context,
	query string,
	dst map[string]int,
) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return QueryError("statistics", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key sql.NullString
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return QueryError("statistics", err)
		}
		name := key.String
		if name == "" {
			name = "other"
		}
		dst[name] = n
	}
	return rows.Err()
}
