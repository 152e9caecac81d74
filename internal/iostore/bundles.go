package iostore

import (
	"context"
	"database/sql"
	"strings"

	"github.com/razinkele/traitstore/pkg/store"
	"github.com/razinkele/traitstore/pkg/traits"
)

// bundleSelect is the shared join for trait bundle queries. Size class
// and category are optional per row, hence the LEFT JOINs.
const bundleSelect = `
	SELECT s.aphia_id, t.name, t.data_type, t.unit,
		COALESCE(c.name, ''),
		tv.value_numeric, tv.value_text, tv.value_categorical,
		tv.value_boolean, tv.confidence, tv.data_source,
		sc.class_no, sc.size_range, sc.range_min, sc.range_max
	FROM trait_values tv
	JOIN species s ON s.id = tv.species_id
	JOIN traits t ON t.id = tv.trait_id
	LEFT JOIN trait_categories c ON c.id = t.category_id
	LEFT JOIN size_classes sc ON sc.id = tv.size_class_id
`

// TraitsForSpecies returns the species' full bundle, one record per
// (trait, size class) combination.
func (s *iostore) TraitsForSpecies(
	ctx context.Context,
	aphiaID int64,
) (traits.Bundle, error) {
	query := bundleSelect + `
		WHERE s.aphia_id = ?
		ORDER BY t.name, sc.class_no
	`
	rows, err := s.db.QueryContext(ctx, query, aphiaID)
	if err != nil {
		return nil, QueryError("trait bundle", err)
	}
	defer rows.Close()

	bundles, err := scanBundles(rows)
	if err != nil {
		return nil, err
	}
	return bundles[aphiaID], nil
}

// TraitsForSpeciesByCategory narrows the bundle to one category. An
// unknown category yields an empty bundle.
func (s *iostore) TraitsForSpeciesByCategory(
	ctx context.Context,
	aphiaID int64,
	category string,
) (traits.Bundle, error) {
	query := bundleSelect + `
		WHERE s.aphia_id = ? AND c.name = ?
		ORDER BY t.name, sc.class_no
	`
	rows, err := s.db.QueryContext(ctx, query, aphiaID, category)
	if err != nil {
		return nil, QueryError("trait bundle by category", err)
	}
	defer rows.Close()

	bundles, err := scanBundles(rows)
	if err != nil {
		return nil, err
	}
	return bundles[aphiaID], nil
}

// TraitsForSpeciesBatch returns bundles for many species at once,
// chunking the identifier set to the placeholder ceiling. Every
// requested id is present in the result.
func (s *iostore) TraitsForSpeciesBatch(
	ctx context.Context,
	aphiaIDs []int64,
) (map[int64]traits.Bundle, error) {
	res := make(map[int64]traits.Bundle, len(aphiaIDs))
	for _, id := range aphiaIDs {
		if _, ok := res[id]; !ok {
			res[id] = traits.Bundle{}
		}
	}

	unique := make([]int64, 0, len(res))
	for id := range res {
		unique = append(unique, id)
	}

	for start := 0; start < len(unique); start += store.MaxQueryParams {
		end := min(start+store.MaxQueryParams, len(unique))
		chunk := unique[start:end]

		query := bundleSelect + `
			WHERE s.aphia_id IN (` + placeholders(len(chunk)) + `)
			ORDER BY s.aphia_id, t.name, sc.class_no
		`
		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, QueryError("trait bundle batch", err)
		}
		part, err := scanBundles(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}
		for id, bundle := range part {
			res[id] = bundle
		}
	}

	return res, nil
}

// scanBundles reads bundle rows grouped by AphiaID.
func scanBundles(rows *sql.Rows) (map[int64]traits.Bundle, error) {
	res := make(map[int64]traits.Bundle)
	for rows.Next() {
		var (
			aphiaID            int64
			traitName          string
			dataType           string
			unit               string
			category           string
			valNum, confidence sql.NullFloat64
			valText, valCat    sql.NullString
			valBool            sql.NullBool
			source             string
			classNo            sql.NullInt64
			sizeRange          sql.NullString
			rangeMin, rangeMax sql.NullFloat64
		)
		err := rows.Scan(
			&aphiaID, &traitName, &dataType, &unit, &category,
			&valNum, &valText, &valCat, &valBool, &confidence,
			&source, &classNo, &sizeRange, &rangeMin, &rangeMax,
		)
		if err != nil {
			return nil, QueryError("trait bundle scan", err)
		}

		rec := traits.Record{
			TraitName: traitName,
			Category:  category,
			Unit:      unit,
			Value:     decodeValue(dataType, valNum, valText, valCat, valBool),
			Source:    source,
		}
		if confidence.Valid {
			c := confidence.Float64
			rec.Confidence = &c
		}
		if classNo.Valid {
			ref := &traits.SizeClassRef{
				ClassNo: int(classNo.Int64),
				Range:   sizeRange.String,
			}
			if rangeMin.Valid {
				v := rangeMin.Float64
				ref.Min = &v
			}
			if rangeMax.Valid {
				v := rangeMax.Float64
				ref.Max = &v
			}
			rec.SizeClass = ref
		}
		res[aphiaID] = append(res[aphiaID], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError("trait bundle scan", err)
	}
	return res, nil
}

// decodeValue picks the value column named by the trait's declared
// type. Off-type columns are ignored even when populated.
func decodeValue(
	dataType string,
	num sql.NullFloat64,
	text, cat sql.NullString,
	boolean sql.NullBool,
) traits.Value {
	switch traits.DataType(dataType) {
	case traits.Numeric:
		if num.Valid {
			return traits.NewNumeric(num.Float64)
		}
	case traits.Text:
		if text.Valid {
			return traits.NewText(text.String)
		}
	case traits.Categorical:
		if cat.Valid {
			return traits.NewCategorical(cat.String)
		}
	case traits.Boolean:
		if boolean.Valid {
			return traits.NewBoolean(boolean.Bool)
		}
	}
	return traits.Value{}
}

// placeholders renders n comma-separated "?" marks.
func placeholders(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('?')
	}
	return b.String()
}
