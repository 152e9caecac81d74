package ioimport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/razinkele/traitstore/pkg/errcode"
)

// NotConnectedError creates an error for imports attempted before the
// database was connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected, call Connect first",
		Err:  fmt.Errorf("import attempted on disconnected database"),
	}
}

// FeedsConfigError creates an error for when feeds.yaml cannot be
// loaded.
func FeedsConfigError(path string, err error) error {
	msg := `Cannot load feeds configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Unknown feed requested with --sources

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Delete the file; the next run regenerates a documented example`

	return &gn.Error{
		Code: errcode.ImportFeedsConfigError,
		Msg:  msg,
		Vars: []any{path, path},
		Err:  fmt.Errorf("failed to load feeds config: %w", err),
	}
}

// FeedReadError creates an error for an unreadable feed file.
func FeedReadError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ImportFeedReadError,
		Msg:  "Cannot read feed file '%s'",
		Vars: []any{path},
		Err:  fmt.Errorf("failed to read feed %s: %w", path, err),
	}
}

// DuplicateIDError creates an error for an AphiaID appearing twice in
// one feed.
func DuplicateIDError(source string, aphiaID int64) error {
	return &gn.Error{
		Code: errcode.ImportDuplicateIDError,
		Msg:  "Feed '%s' defines species %d more than once",
		Vars: []any{source, aphiaID},
		Err: fmt.Errorf("duplicate AphiaID %d in feed %s",
			aphiaID, source),
	}
}

// SourceOverlapError creates an error for an AphiaID already owned by
// another source.
func SourceOverlapError(aphiaID int64, existing, incoming string) error {
	return &gn.Error{
		Code: errcode.ImportSourceOverlapError,
		Msg:  "Species %d of feed '%s' is already defined by source '%s'",
		Vars: []any{aphiaID, incoming, existing},
		Err: fmt.Errorf("AphiaID %d overlaps sources %s and %s",
			aphiaID, existing, incoming),
	}
}

// IntegrityError creates an error for a feed that violates the data
// contract. The whole feed is rolled back.
func IntegrityError(source string, err error) error {
	return &gn.Error{
		Code: errcode.ImportIntegrityError,
		Msg:  "Feed '%s' violates data integrity, import rolled back",
		Vars: []any{source},
		Err:  fmt.Errorf("integrity violation in feed %s: %w", source, err),
	}
}

// SeedError creates an error for failed ontology seeding.
func SeedError(table string, err error) error {
	return &gn.Error{
		Code: errcode.ImportIntegrityError,
		Msg:  "Cannot seed the standard ontology into '%s'",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to seed %s: %w", table, err),
	}
}

// CancelledError creates an error for an interrupted import.
func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.ImportCancelledError,
		Msg:  "Import was cancelled",
		Err:  fmt.Errorf("import cancelled: %w", err),
	}
}

// AllFeedsFailedError creates an error for an import where no feed
// succeeded.
func AllFeedsFailedError(count int) error {
	return &gn.Error{
		Code: errcode.ImportAllFeedsFailedError,
		Msg:  "All %d feeds failed to import",
		Vars: []any{count},
		Err:  fmt.Errorf("all %d feeds failed", count),
	}
}
