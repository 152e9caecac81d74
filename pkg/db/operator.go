// Package db defines the interface for basic database management
// operations over the embedded SQLite store.
//
// Design rationale:
//   - Keeps the interface minimal to avoid bloat with mixed semantics
//   - DB() exposes the shared *sql.DB so high-level components
//     (SchemaManager, Importer, Store) run their specialized SQL
//     internally over one pool
//   - Construction is explicit: a factory opens one handle at process
//     start and passes it to every consumer; there is no process-wide
//     singleton and no initialize-on-first-call side effect
package db

import (
	"context"
	"database/sql"

	"github.com/razinkele/traitstore/pkg/config"
)

// Operator provides connection lifecycle management for the SQLite
// store and exposes the *sql.DB for higher-level components.
type Operator interface {
	// Connect opens the database file and applies connection pragmas.
	Connect(ctx context.Context, cfg *config.Config) error

	// Close releases the connection pool.
	Close() error

	// DB returns the underlying *sql.DB. Components use it for
	// transactions, bulk inserts and custom queries.
	DB() *sql.DB

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any user tables. Used to
	// decide whether schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all user tables. Used during schema
	// initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}
