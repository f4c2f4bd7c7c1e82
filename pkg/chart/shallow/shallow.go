// Package shallow implements one-level-deep equality over maps and slices.
//
// Nested values are compared with ==, never recursively. This is correct as
// long as producers allocate a new nested value whenever its contents change,
// which every chartgeom type assumes. The cost is proportional to the number
// of top-level entries.
package shallow

// Maps reports whether a and b hold the same key set with identical values.
// A nil map equals only another nil map: "absent" and "empty" differ.
func Maps[K, V comparable](a, b map[K]V) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || av != bv {
			return false
		}
	}
	return true
}

// Slices reports whether a and b hold identical elements in the same order.
// A nil slice equals only another nil slice.
func Slices[V comparable](a, b []V) bool {
	return SlicesFunc(a, b, func(x, y V) bool { return x == y })
}

// SlicesFunc is like [Slices] but compares elements with eq.
func SlicesFunc[V any](a, b []V, eq func(x, y V) bool) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Same reports whether a and b are the same slice: same length and same
// backing array. It is the slice analogue of reference equality.
func Same[T any](a, b []T) bool {
	if len(a) != len(b) || (a == nil) != (b == nil) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// Value reports whether a and b are equal primitives or identical pointers.
func Value[T comparable](a, b T) bool {
	return a == b
}
