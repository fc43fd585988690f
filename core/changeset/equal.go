package changeset

import (
	"math"
	"reflect"
	"time"
)

// Equal compares two cell values. Two missing values (nil, NaN, zero time) are equal,
// integers compare exactly, an integer and a float compare by value, and times
// compare by instant.
func Equal(a, b any) bool {
	am, bm := isMissing(a), isMissing(b)
	if am || bm {
		return am && bm
	}

	if eq, ok := equalIntegers(a, b); ok {
		return eq
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}

	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Equal(bt)
		}
		return false
	}

	if ab, ok := a.([]byte); ok {
		a = string(ab)
	}
	if bb, ok := b.([]byte); ok {
		b = string(bb)
	}

	return reflect.DeepEqual(a, b)
}

func isMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	case time.Time:
		return x.IsZero()
	default:
		return false
	}
}

// equalIntegers compares a and b exactly when both are integer kinds.
// ok is false when either side is not an integer.
func equalIntegers(a, b any) (eq, ok bool) {
	as, au, aok := toInteger(a)
	bs, bu, bok := toInteger(b)
	if !aok || !bok {
		return false, false
	}
	switch {
	case !au && !bu:
		return as == bs, true
	case au && bu:
		return uint64(as) == uint64(bs), true
	case au:
		return bs >= 0 && uint64(as) == uint64(bs), true
	default:
		return as >= 0 && uint64(as) == uint64(bs), true
	}
}

// toInteger returns the bits of an integer value and whether it is unsigned.
func toInteger(v any) (n int64, unsigned, ok bool) {
	switch x := v.(type) {
	case int:
		return int64(x), false, true
	case int8:
		return int64(x), false, true
	case int16:
		return int64(x), false, true
	case int32:
		return int64(x), false, true
	case int64:
		return x, false, true
	case uint:
		return int64(x), true, true
	case uint8:
		return int64(x), true, true
	case uint16:
		return int64(x), true, true
	case uint32:
		return int64(x), true, true
	case uint64:
		return int64(x), true, true
	default:
		return 0, false, false
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
