// Package errcode enumerates error codes used across traitstore.
// Codes are attached to gn.Error values so that callers can react
// to a class of failures without string matching.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBQueryError
	DBTableCheckError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaIndexError

	// Validation errors
	ValidationRangeError
	ValidationChunkError
	ValidationDataTypeError

	// Category hierarchy errors
	CategoryCycleError
	CategoryLoadError

	// Cache errors
	CacheNamespaceError

	// Enrichment errors
	EnrichColumnError

	// Import errors
	ImportFeedsConfigError
	ImportFeedReadError
	ImportDuplicateIDError
	ImportSourceOverlapError
	ImportIntegrityError
	ImportCancelledError
	ImportAllFeedsFailedError
)
