package traits

import (
	"fmt"
	"strconv"
)

// Value is a tagged variant holding exactly one trait value. The tag is
// the trait's declared DataType, never "whichever column is non-null".
type Value struct {
	kind    DataType
	num     float64
	str     string
	boolean bool
}

// NewNumeric returns a numeric Value.
func NewNumeric(f float64) Value {
	return Value{kind: Numeric, num: f}
}

// NewCategorical returns a categorical Value. Categorical values are
// compared exactly, case-sensitive as stored.
func NewCategorical(s string) Value {
	return Value{kind: Categorical, str: s}
}

// NewText returns a free-text Value.
func NewText(s string) Value {
	return Value{kind: Text, str: s}
}

// NewBoolean returns a boolean Value.
func NewBoolean(b bool) Value {
	return Value{kind: Boolean, boolean: b}
}

// Type returns the variant tag. The zero Value has an empty tag.
func (v Value) Type() DataType {
	return v.kind
}

// IsZero reports whether the Value carries no data.
func (v Value) IsZero() bool {
	return v.kind == ""
}

// Numeric returns the numeric payload. The second return is false when
// the Value is not numeric.
func (v Value) Numeric() (float64, bool) {
	return v.num, v.kind == Numeric
}

// Categorical returns the categorical payload.
func (v Value) Categorical() (string, bool) {
	return v.str, v.kind == Categorical
}

// Text returns the free-text payload.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == Text
}

// Boolean returns the boolean payload.
func (v Value) Boolean() (bool, bool) {
	return v.boolean, v.kind == Boolean
}

// String formats the value for display: numerics with two decimals,
// booleans as yes/no, everything else verbatim.
func (v Value) String() string {
	switch v.kind {
	case Numeric:
		return strconv.FormatFloat(v.num, 'f', 2, 64)
	case Boolean:
		if v.boolean {
			return "yes"
		}
		return "no"
	case Categorical, Text:
		return v.str
	default:
		return ""
	}
}

// Format renders the value with its unit, if any.
func (v Value) Format(unit string) string {
	s := v.String()
	if v.kind == Numeric && unit != "" {
		return fmt.Sprintf("%s %s", s, unit)
	}
	return s
}
