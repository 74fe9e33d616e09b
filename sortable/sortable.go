// Package sortable provides the Sortable interface and a Key type that
// lets encoded record keys participate in sorted data structures without
// being decoded.
//
// The Sortable interface extends [github.com/amp-labs/typekey/compare.Comparable]
// by adding a LessThan method, providing both equality comparison and
// ordering.
package sortable

import (
	"github.com/amp-labs/typekey/compare"
	"github.com/amp-labs/typekey/order"
)

type Sortable[T any] interface {
	compare.Comparable[T]

	LessThan(other T) bool
}

// Key is an encoded value used as a sort key. It orders through the
// streaming byte comparator, so keys are never decoded to sort. Build one
// from codec.Encode output.
//
// Equality and order follow the byte comparator's semantics, including its
// numeric-class merging: an integer-encoded 3 equals a float-encoded 3.0.
// The mapping limitation of the byte comparator applies too (see
// [github.com/amp-labs/typekey/order.ErrMappingBytesUnordered]).
type Key []byte

// Compile-time check that Key implements Sortable[Key].
var _ Sortable[Key] = (*Key)(nil)

// Equals returns true if this Key orders as equal to the other Key.
func (k Key) Equals(other Key) bool {
	return k.Compare(other) == compare.Equal
}

// LessThan returns true if this Key orders before the other Key.
func (k Key) LessThan(other Key) bool {
	return k.Compare(other) == compare.Less
}

// Compare returns the three-way order of the two keys, normalized to
// {-1, 0, 1}. It is the form expected by sort.Slice and slices.SortFunc.
func (k Key) Compare(other Key) int {
	return order.CompareEncoded(k, 0, len(k), other, 0, len(other))
}
