package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMultipleOf(t *testing.T) {
	assert.True(t, isMultipleOf(NewRat(0.0), NewRat(7.0)), "zero is a multiple of anything")
	assert.True(t, isMultipleOf(NewRat(9.0), NewRat(3.0)))
	assert.False(t, isMultipleOf(NewRat(10.0), NewRat(3.0)))
	assert.False(t, isMultipleOf(NewRat(1.0), NewRat(0.0)), "division by zero divisor is never a multiple")
}

func TestIsMultipleOfExactDecimal(t *testing.T) {
	// 0.3 is not exactly representable in float64; exact rational comparison
	// must still treat 0.3 as a multiple of 0.1 where naive math.Mod(0.3,
	// 0.1) drifts to a tiny non-zero remainder.
	assert.True(t, isMultipleOf(NewRat("0.3"), NewRat("0.1")))
}

func TestNewRatInvalidValue(t *testing.T) {
	assert.Nil(t, NewRat(map[string]any{}))
	assert.Nil(t, NewRat("not-a-number"))
}
