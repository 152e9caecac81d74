// Package store defines the read surface of the trait reference store.
// Implementations live in internal/iostore.
package store

import (
	"context"

	"github.com/razinkele/traitstore/pkg/traits"
)

// MaxQueryParams is the store's parameter-count ceiling. SQLite rejects
// statements with more bound placeholders, so every IN(...) query is
// chunked to stay under it.
const MaxQueryParams = 999

// Store is the durable lookup surface over the trait schema.
//
// Absence of data is a value on every lookup path: unknown species,
// trait or category names yield nil or empty results, never errors.
// Errors signal contract violations (inverted ranges) or store
// failures.
type Store interface {
	// SpeciesByAphiaID returns the species with the given external
	// taxonomic identifier, or nil when it is unknown.
	SpeciesByAphiaID(ctx context.Context, aphiaID int64) (*traits.Species, error)

	// SearchSpeciesByName finds species whose scientific or common
	// name contains the query, case-insensitively, across all sources.
	SearchSpeciesByName(ctx context.Context, name string) ([]traits.Species, error)

	// TraitsForSpecies returns the full trait bundle for one species:
	// one record per (trait, size class) combination, ordered by trait
	// name and size class number.
	TraitsForSpecies(ctx context.Context, aphiaID int64) (traits.Bundle, error)

	// TraitsForSpeciesByCategory returns the subset of the bundle
	// whose traits belong to the named category. An unknown category
	// yields an empty bundle: category gaps are an accepted
	// import-time mapping limitation, not an error.
	TraitsForSpeciesByCategory(ctx context.Context, aphiaID int64, category string) (traits.Bundle, error)

	// TraitsForSpeciesBatch returns bundles for many species at once.
	// The identifier set is chunked to MaxQueryParams placeholders per
	// query rather than queried one id a time. Every requested id is
	// present in the result; ids without trait data map to an empty
	// bundle.
	TraitsForSpeciesBatch(ctx context.Context, aphiaIDs []int64) (map[int64]traits.Bundle, error)

	// SpeciesByNumericTrait returns the distinct species having at
	// least one value of the named trait inside [min, max], bounds
	// inclusive, nil meaning unbounded. min > max is a validation
	// error, not an empty result.
	SpeciesByNumericTrait(ctx context.Context, trait string, min, max *float64) ([]traits.SpeciesMatch, error)

	// SpeciesByCategoricalTrait returns the distinct species having at
	// least one value of the named trait exactly equal to value,
	// case-sensitive as stored.
	SpeciesByCategoricalTrait(ctx context.Context, trait, value string) ([]traits.SpeciesMatch, error)

	// Statistics returns counts by entity and by category.
	Statistics(ctx context.Context) (*traits.Statistics, error)

	// Categories returns the in-memory category hierarchy index built
	// when the store was constructed.
	Categories() *traits.CategoryIndex
}
