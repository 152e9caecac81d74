// Package iostore implements the Store interface over the SQLite trait
// schema. This is an impure I/O package; all SQL for the read paths
// lives here.
package iostore

import (
	"context"
	"database/sql"

	"github.com/razinkele/traitstore/pkg/db"
	"github.com/razinkele/traitstore/pkg/store"
	"github.com/razinkele/traitstore/pkg/traits"
)

// iostore implements store.Store over a *sql.DB.
type iostore struct {
	db   *sql.DB
	cats *traits.CategoryIndex
}

// New builds a store over a connected operator. The category hierarchy
// is loaded and cycle-checked here, once, so every later traversal can
// trust it.
func New(ctx context.Context, op db.Operator) (store.Store, error) {
	sqlDB := op.DB()
	if sqlDB == nil {
		return nil, NotConnectedError()
	}

	cats, err := loadCategories(ctx, sqlDB)
	if err != nil {
		return nil, err
	}

	return &iostore{db: sqlDB, cats: cats}, nil
}

// loadCategories reads the trait_categories table into the in-memory
// index.
func loadCategories(
	ctx context.Context,
	sqlDB *sql.DB,
) (*traits.CategoryIndex, error) {
	rows, err := sqlDB.QueryContext(ctx, `
		SELECT id, name, parent_id, description
		FROM trait_categories
	`)
	if err != nil {
		return nil, CategoryLoadError(err)
	}
	defer rows.Close()

	var nodes []traits.CategoryNode
	for rows.Next() {
		var (
			node     traits.CategoryNode
			parentID sql.NullInt64
		)
		if err := rows.Scan(
			&node.ID, &node.Name, &parentID, &node.Description,
		); err != nil {
			return nil, CategoryLoadError(err)
		}
		node.ParentID = parentID.Int64
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, CategoryLoadError(err)
	}

	return traits.NewCategoryIndex(nodes)
}

// Categories returns the index loaded at construction.
func (s *iostore) Categories() *traits.CategoryIndex {
	return s.cats
}

// SpeciesByAphiaID returns the species record for an external
// identifier, or nil when the identifier is unknown.
func (s *iostore) SpeciesByAphiaID(
	ctx context.Context,
	aphiaID int64,
) (*traits.Species, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT aphia_id, scientific_name, genus, common_name,
			author, data_source
		FROM species
		WHERE aphia_id = ?
	`, aphiaID)

	var sp traits.Species
	err := row.Scan(
		&sp.AphiaID, &sp.ScientificName, &sp.Genus,
		&sp.CommonName, &sp.Author, &sp.Source,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("species lookup", err)
	}
	return &sp, nil
}

// SearchSpeciesByName finds species whose scientific or common name
// contains the query, case-insensitively.
func (s *iostore) SearchSpeciesByName(
	ctx context.Context,
	name string,
) ([]traits.Species, error) {
	pattern := "%" + name + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT aphia_id, scientific_name, genus, common_name,
			author, data_source
		FROM species
		WHERE scientific_name LIKE ? COLLATE NOCASE
			OR common_name LIKE ? COLLATE NOCASE
		ORDER BY scientific_name
	`, pattern, pattern)
	if err != nil {
		return nil, QueryError("species search", err)
	}
	defer rows.Close()

	var res []traits.Species
	for rows.Next() {
		var sp traits.Species
		if err := rows.Scan(
			&sp.AphiaID, &sp.ScientificName, &sp.Genus,
			&sp.CommonName, &sp.Author, &sp.Source,
		); err != nil {
			return nil, QueryError("species search", err)
		}
		res = append(res, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError("species search", err)
	}
	return res, nil
}
