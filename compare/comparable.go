// Package compare provides equality and three-way ordering primitives.
package compare

// Comparable is a generic interface for types that can compare themselves for equality.
// Types implementing this interface must provide their own Equals method that determines
// whether two values are equal according to the type's semantics.
type Comparable[T any] interface {
	Equals(other T) bool
}

// Equals compares two values using the Comparable interface.
// It delegates to the Equals method of the first argument.
func Equals[T any](a Comparable[T], b T) bool {
	return a.Equals(b)
}

// Three-way comparison results. Every comparator in this module normalizes
// its result to exactly one of these values.
const (
	Less    = -1
	Equal   = 0
	Greater = 1
)

// Sign normalizes an arbitrary three-way comparison result to Less, Equal
// or Greater. Use it whenever an order is derived from a primitive whose
// result is only guaranteed to be negative, zero or positive.
func Sign(result int) int {
	switch {
	case result < 0:
		return Less
	case result > 0:
		return Greater
	default:
		return Equal
	}
}

// Float64 reports the three-way order of two float64 operands. Both
// underlying comparisons are false for NaN operands, so NaN compares as
// Equal against everything; callers that need a total NaN order must
// handle it before calling.
func Float64(a, b float64) int {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}
