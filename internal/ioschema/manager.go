// Package ioschema implements the SchemaManager interface for trait
// schema management. This is an impure I/O package that wraps GORM
// AutoMigrate functionality over the shared SQLite connection.
package ioschema

import (
	"context"

	"github.com/razinkele/traitstore/pkg/db"
	"github.com/razinkele/traitstore/pkg/schema"
	"github.com/razinkele/traitstore/pkg/traitstore"
	sqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements traitstore.SchemaManager using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) traitstore.SchemaManager {
	return &manager{operator: op}
}

// Create builds the trait schema with GORM AutoMigrate and applies the
// supporting indexes AutoMigrate cannot express.
func (m *manager) Create(ctx context.Context) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	if err := m.createIndexes(ctx); err != nil {
		return err
	}
	return nil
}

// Migrate updates an existing schema to the latest version. GORM
// tracks column additions itself; index DDL is idempotent.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	if err := m.createIndexes(ctx); err != nil {
		return err
	}
	return nil
}

// gorm wraps the operator's *sql.DB in a GORM session. GORM's own
// logging is silenced, slog handles reporting.
func (m *manager) gorm() (*gorm.DB, error) {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return nil, NotConnectedError()
	}

	gormDB, err := gorm.Open(
		sqlite.Dialector{Conn: sqlDB},
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}

// createIndexes adds the query-path indexes. Partial indexes on the
// value columns keep the range and categorical scans from touching
// rows of the wrong type.
func (m *manager) createIndexes(ctx context.Context) error {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_trait_values_numeric
			ON trait_values (trait_id, value_numeric)
			WHERE value_numeric IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_trait_values_categorical
			ON trait_values (trait_id, value_categorical)
			WHERE value_categorical IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_species_name
			ON species (scientific_name COLLATE NOCASE)`,
	}

	for _, idx := range indexes {
		if _, err := sqlDB.ExecContext(ctx, idx); err != nil {
			return IndexError(err)
		}
	}
	return nil
}
