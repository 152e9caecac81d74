package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/razinkele/traitstore/pkg/errcode"
)

// NotConnectedError creates an error for a store built over a
// disconnected operator.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected, call Connect first",
		Err:  fmt.Errorf("store construction on disconnected database"),
	}
}

// QueryError creates an error for a failed read query.
func QueryError(op string, err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Query failed: %s",
		Vars: []any{op},
		Err:  fmt.Errorf("%s: %w", op, err),
	}
}

// CategoryLoadError creates an error for a failed category hierarchy
// load.
func CategoryLoadError(err error) error {
	msg := `Cannot load the trait category hierarchy

<em>How to fix:</em>
  1. Verify the schema exists: <em>traitstore stats</em>
  2. Recreate it if needed: <em>traitstore create</em>`

	return &gn.Error{
		Code: errcode.CategoryLoadError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to load trait categories: %w", err),
	}
}

// RangeError creates an error for an inverted numeric range.
func RangeError(trait string, min, max float64) error {
	return &gn.Error{
		Code: errcode.ValidationRangeError,
		Msg:  "Invalid range for trait '%s': min %v is greater than max %v",
		Vars: []any{trait, min, max},
		Err:  fmt.Errorf("inverted range [%v, %v] for trait %s", min, max, trait),
	}
}
