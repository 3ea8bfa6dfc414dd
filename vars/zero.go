package vars

import "slices"

// FirstNonZero returns the first value that is not the zero T.
// Settings are merged with it in order of precedence: flag, config, env, default.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	i := slices.IndexFunc(values, func(v T) bool {
		return v != zero
	})
	if i < 0 {
		return zero
	}
	return values[i]
}

// DerefOrZero reads an optional value.
func DerefOrZero[T any](ptr *T) T {
	if ptr != nil {
		return *ptr
	}
	var zero T
	return zero
}
