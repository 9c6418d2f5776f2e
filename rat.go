package jsonschema

import (
	"fmt"
	"math/big"
)

// Rat wraps a big.Rat so the multipleOf check is exact instead of prone to
// float64 drift, mirroring the teacher's rat.go. The minimum/maximum family
// compares float64 values directly and does not use Rat.
type Rat struct {
	*big.Rat
}

// NewRat builds a Rat from a decoded JSON numeric value. Returns nil if the
// value cannot be represented exactly.
func NewRat(value any) *Rat {
	r, err := toBigRat(value)
	if err != nil {
		return nil
	}
	return &Rat{r}
}

func toBigRat(value any) (*big.Rat, error) {
	var str string
	switch v := value.(type) {
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		str = fmt.Sprint(v)
	case string:
		str = v
	default:
		return nil, ErrRatConversion
	}

	r := new(big.Rat)
	if _, ok := r.SetString(str); !ok {
		return nil, ErrRatConversion
	}
	return r, nil
}

// isMultipleOf reports whether value is a multiple of divisor using exact
// rational arithmetic: value/divisor must reduce to an integer. Zero is
// always a multiple of anything, per spec.md §4.4 ("exact multiples at 0 are
// always allowed").
func isMultipleOf(value, divisor *Rat) bool {
	if value.Sign() == 0 {
		return true
	}
	if divisor.Sign() == 0 {
		return false
	}
	quotient := new(big.Rat).Quo(value.Rat, divisor.Rat)
	return quotient.IsInt()
}
