package configs

import (
	"errors"
	"fmt"
	"iter"
)

// Configurable types are read from the config path named by ConfigExpr.
type Configurable interface {
	ConfigExpr() string
}

// First decodes the value at path from the first file that sets it.
// A missing value is the zero T. A value that does not decode panics.
func First[T any](loader Loader, path string) (ret T) {
	err := loader.AssignFirst(path, &ret)
	if errors.Is(err, ErrValueNotFound) {
		var zero T
		return zero
	}
	if err != nil {
		panic(fmt.Errorf("config %s: %w", path, err))
	}
	return
}

// FirstOf reads the first value at the path of T.
func FirstOf[T Configurable](loader Loader) T {
	var zero T
	return First[T](loader, zero.ConfigExpr())
}

// All yields the value at path from every file that sets it, in loading order.
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for value, err := range loader.IterCueValues(path) {
			if err != nil {
				panic(err)
			}
			var v T
			if err := value.Decode(&v); err != nil {
				panic(fmt.Errorf("config %s: %w", path, err))
			}
			if !yield(v) {
				return
			}
		}
	}
}

// AllOf yields every value at the path of T.
func AllOf[T Configurable](loader Loader) iter.Seq[T] {
	var zero T
	return All[T](loader, zero.ConfigExpr())
}
