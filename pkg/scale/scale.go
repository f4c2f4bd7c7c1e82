// Package scale maps data values onto pixel coordinates.
//
// Two scales are provided: [Band] for categorical axes, which splits its range
// into evenly sized bands, and [Linear] for numeric axes. Both are immutable
// after construction so they can be shared between derivation passes.
package scale

import (
	"encoding/json"
	"fmt"
	"math"
)

// Scale maps domain values to range coordinates.
type Scale interface {
	// Map returns the coordinate for v. The second result is false when v
	// is outside the scale's domain or cannot be interpreted.
	Map(v any) (float64, bool)

	// Domain returns the domain values in order.
	Domain() []any

	// Range returns the output extent as [start, stop].
	Range() [2]float64
}

// Banded is implemented by scales that allot a fixed band to each value.
type Banded interface {
	Scale
	Bandwidth() float64
}

// Bandwidth returns the band width of s, or 0 when s is not [Banded].
func Bandwidth(s Scale) (float64, bool) {
	if b, ok := s.(Banded); ok {
		return b.Bandwidth(), true
	}
	return 0, false
}

// ToFloat converts a numeric value of any built-in kind to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// key normalizes a categorical value for lookup.
func key(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
