package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/razinkele/traitstore/pkg/errcode"
)

// ConnectionError creates an error for when the database file cannot
// be opened.
func ConnectionError(path string, err error) error {
	msg := `Cannot open trait database

<em>Database file:</em> %s

<em>Possible causes:</em>
  - Directory is not writable
  - File is corrupted or not an SQLite database
  - Another process holds an exclusive lock

<em>How to fix:</em>
  1. Check the directory: <em>ls -ld %s</em>
  2. Verify the file: <em>file %s</em>
  3. Recreate the schema: <em>traitstore create</em>`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path, path, path},
		Err:  fmt.Errorf("failed to open database %s: %w", path, err),
	}
}

// NotConnectedError creates an error for operations attempted before
// Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected, call Connect first",
		Err:  fmt.Errorf("operation attempted on disconnected database"),
	}
}

// TableCheckError creates an error for failed sqlite_master queries.
func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Cannot inspect database tables",
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// DropTableError creates an error for a failed DROP TABLE.
func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table '%s'",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
