// Package traits provides the domain types shared by the trait store,
// the batch query engine and the cache layer: species, trait records,
// tagged trait values and the category hierarchy.
package traits

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/razinkele/traitstore/pkg/errcode"
)

// DataType is the declared value type of a trait definition. It decides
// which value column of a trait_values row is authoritative.
type DataType string

const (
	Numeric     DataType = "numeric"
	Categorical DataType = "categorical"
	Text        DataType = "text"
	Boolean     DataType = "boolean"
)

// ParseDataType converts a stored data-type tag into a DataType.
// Unknown tags are a contract violation, not data.
func ParseDataType(s string) (DataType, error) {
	switch DataType(s) {
	case Numeric, Categorical, Text, Boolean:
		return DataType(s), nil
	default:
		return "", &gn.Error{
			Code: errcode.ValidationDataTypeError,
			Msg:  "Unknown trait data type '%s'",
			Vars: []any{s},
			Err:  fmt.Errorf("unknown data type %q", s),
		}
	}
}
