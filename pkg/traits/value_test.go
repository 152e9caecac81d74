package traits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueAccessors(t *testing.T) {
	v := NewNumeric(12.5)
	f, ok := v.Numeric()
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	_, ok = v.Categorical()
	assert.False(t, ok, "off-type accessor must report false")
	_, ok = v.Text()
	assert.False(t, ok)
	_, ok = v.Boolean()
	assert.False(t, ok)

	c := NewCategorical("AU")
	s, ok := c.Categorical()
	assert.True(t, ok)
	assert.Equal(t, "AU", s)

	b := NewBoolean(true)
	bv, ok := b.Boolean()
	assert.True(t, ok)
	assert.True(t, bv)
}

func TestValueZero(t *testing.T) {
	var v Value
	assert.True(t, v.IsZero())
	assert.Empty(t, v.String())

	_, ok := v.Numeric()
	assert.False(t, ok)

	assert.False(t, NewText("x").IsZero())
}

func TestValueString(t *testing.T) {
	tests := []struct {
		msg  string
		val  Value
		want string
	}{
		{"numeric two decimals", NewNumeric(12.5), "12.50"},
		{"numeric rounding", NewNumeric(0.456), "0.46"},
		{"categorical verbatim", NewCategorical("AU"), "AU"},
		{"text verbatim", NewText("grazes on diatoms"), "grazes on diatoms"},
		{"boolean yes", NewBoolean(true), "yes"},
		{"boolean no", NewBoolean(false), "no"},
	}
	for _, v := range tests {
		assert.Equal(t, v.want, v.val.String(), v.msg)
	}
}

func TestValueFormat(t *testing.T) {
	assert.Equal(t, "12.50 µm³", NewNumeric(12.5).Format("µm³"))
	assert.Equal(t, "12.50", NewNumeric(12.5).Format(""))
	assert.Equal(t, "AU", NewCategorical("AU").Format("µm³"),
		"units only apply to numerics")
}

func TestParseDataType(t *testing.T) {
	for _, s := range []string{"numeric", "categorical", "text", "boolean"} {
		dt, err := ParseDataType(s)
		assert.NoError(t, err)
		assert.Equal(t, DataType(s), dt)
	}

	_, err := ParseDataType("float")
	assert.Error(t, err)
}
