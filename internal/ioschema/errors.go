package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/razinkele/traitstore/pkg/errcode"
)

// NotConnectedError creates an error for schema operations attempted
// before the database was connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected, call Connect first",
		Err:  fmt.Errorf("schema operation attempted on disconnected database"),
	}
}

// GORMConnectionError creates an error for a failed GORM session over
// the existing connection.
func GORMConnectionError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  "Cannot initialize ORM over the database connection",
		Err:  fmt.Errorf("failed to open gorm session: %w", err),
	}
}

// CreateSchemaError creates an error for a failed schema build.
func CreateSchemaError(err error) error {
	msg := `Cannot create the trait schema

<em>Possible causes:</em>
  - Database file is read-only
  - Existing tables conflict with the current schema

<em>How to fix:</em>
  1. Re-run with a fresh database: <em>traitstore create --force</em>
  2. Check file permissions on the database directory`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for a failed schema migration.
func MigrateSchemaError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  "Cannot migrate the trait schema to the latest version",
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// IndexError creates an error for failed index DDL.
func IndexError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaIndexError,
		Msg:  "Cannot create query indexes",
		Err:  fmt.Errorf("failed to create index: %w", err),
	}
}
