package traitstore

import (
	"context"
	"time"
)

// SchemaManager handles database schema lifecycle. Schema creation is
// idempotent and safe to run multiple times; existing tables are only
// dropped when the caller confirmed it via DropAllTables on the
// database operator.
type SchemaManager interface {
	// Create builds the trait schema using GORM AutoMigrate and
	// applies the supporting indexes.
	Create(ctx context.Context) error

	// Migrate updates an existing schema to the latest version.
	Migrate(ctx context.Context) error
}

// Importer loads trait data feeds into the store. Each feed is
// imported in its own transaction: rows previously contributed by the
// feed's source tag are deleted first, so re-running an import with
// identical input yields identical row counts.
type Importer interface {
	// Import processes the feeds selected by the configuration and
	// returns one summary per feed attempted. A feed failure does not
	// abort the remaining feeds; if every feed fails, Import returns
	// an error.
	Import(ctx context.Context) ([]ImportSummary, error)
}

// ImportSummary reports the outcome of one feed's import.
type ImportSummary struct {
	RunID       string        `json:"runId"`
	Source      string        `json:"source"`
	Species     int           `json:"species"`
	TraitValues int           `json:"traitValues"`
	SizeClasses int           `json:"sizeClasses"`
	Duration    time.Duration `json:"duration"`
	Err         error         `json:"-"`
}
