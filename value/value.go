// Package value models a bounded subset of dynamically-typed values —
// absence, integers, floats, text, fixed and variable sequences, and
// key/value mappings, arbitrarily nested — so they can be encoded as
// sortable record keys and values (see the codec and order packages).
//
// A Value is a closed tagged union. Construction goes through the
// constructors in this package (or [FromAny] for dynamic object graphs),
// which validate their inputs, so every reachable Value is well-formed by
// construction. Payloads are not exposed for direct mutation; the mutating
// operations on variable sequences and mappings re-validate their inputs.
package value

import (
	"fmt"
	"iter"
)

// Kind identifies a Value variant. The numeric codes double as the wire
// tag bytes and define the primary sort precedence, so they must not be
// renumbered.
type Kind byte

const (
	KindNone             Kind = 0
	KindInteger          Kind = 1
	KindFloat            Kind = 2
	KindText             Kind = 3
	KindFixedSequence    Kind = 4
	KindMapping          Kind = 5
	KindVariableSequence Kind = 6
)

// Valid reports whether k is one of the representable variants.
func (k Kind) Valid() bool {
	return k <= KindVariableSequence
}

// String returns the variant name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindFixedSequence:
		return "fixed-sequence"
	case KindMapping:
		return "mapping"
	case KindVariableSequence:
		return "variable-sequence"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

// Value is one node of a validated value tree. The zero Value is None.
type Value struct {
	kind  Kind
	num   int64
	fp    float64
	text  string
	seq   []*Value
	pairs []Pair
}

// Pair is one key/value entry of a mapping.
type Pair struct {
	Key   *Value
	Value *Value
}

// None returns the absence value.
func None() *Value {
	return &Value{kind: KindNone}
}

// Integer returns a 64-bit signed integer value.
func Integer(v int64) *Value {
	return &Value{kind: KindInteger, num: v}
}

// Float returns a 64-bit IEEE-754 value.
func Float(v float64) *Value {
	return &Value{kind: KindFloat, fp: v}
}

// Text returns a text value holding the given UTF-8 bytes.
func Text(s string) *Value {
	return &Value{kind: KindText, text: s}
}

// FixedSequence returns an immutable fixed-arity sequence of the given
// elements. Elements must be non-nil.
func FixedSequence(elems ...*Value) (*Value, error) {
	seq, err := copyElements(elems)
	if err != nil {
		return nil, err
	}

	return &Value{kind: KindFixedSequence, seq: seq}, nil
}

// VariableSequence returns a mutable variable-arity sequence of the given
// elements. Elements must be non-nil.
func VariableSequence(elems ...*Value) (*Value, error) {
	seq, err := copyElements(elems)
	if err != nil {
		return nil, err
	}

	return &Value{kind: KindVariableSequence, seq: seq}, nil
}

// Mapping returns a mapping holding the given entries. Keys and values must
// be non-nil. When the same key appears more than once, the last entry wins,
// so keys are unique in the result. Iteration order is insertion order, but
// callers must not rely on it surviving an encode/decode round trip.
func Mapping(pairs ...Pair) (*Value, error) {
	m := &Value{kind: KindMapping}

	for _, p := range pairs {
		if err := m.Set(p.Key, p.Value); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func copyElements(elems []*Value) ([]*Value, error) {
	if len(elems) == 0 {
		return nil, nil
	}

	seq := make([]*Value, len(elems))

	for i, e := range elems {
		if e == nil {
			return nil, fmt.Errorf("%w: element %d", ErrNilValue, i)
		}

		seq[i] = e
	}

	return seq, nil
}

// Kind returns the variant of v.
func (v *Value) Kind() Kind {
	return v.kind
}

// Int64 returns the integer payload. The second result is false unless v is
// an integer.
func (v *Value) Int64() (int64, bool) {
	return v.num, v.kind == KindInteger
}

// Float64 returns the float payload. The second result is false unless v is
// a float.
func (v *Value) Float64() (float64, bool) {
	return v.fp, v.kind == KindFloat
}

// Text returns the text payload. The second result is false unless v is
// text.
func (v *Value) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// Len returns the element count of a sequence, the entry count of a
// mapping, and zero for every other variant.
func (v *Value) Len() int {
	if v.kind == KindMapping {
		return len(v.pairs)
	}

	return len(v.seq)
}

// Index returns the i-th element of a sequence. The second result is false
// if v is not a sequence or i is out of range.
func (v *Value) Index(i int) (*Value, bool) {
	if !v.isSequence() || i < 0 || i >= len(v.seq) {
		return nil, false
	}

	return v.seq[i], true
}

// Items returns an iterator over the elements of a sequence, in order.
// It yields nothing for non-sequence variants. This method is compatible
// with Go 1.23+ range-over-func syntax.
func (v *Value) Items() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		for _, e := range v.seq {
			if !yield(e) {
				return
			}
		}
	}
}

// Entries returns an iterator over the entries of a mapping, in the
// mapping's iteration order. It yields nothing for non-mapping variants.
func (v *Value) Entries() iter.Seq2[*Value, *Value] {
	return func(yield func(*Value, *Value) bool) {
		for _, p := range v.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Get returns the value stored under the given key of a mapping. The second
// result is false if v is not a mapping or the key is absent. Key lookup
// uses structural equality.
func (v *Value) Get(key *Value) (*Value, bool) {
	if v.kind != KindMapping || key == nil {
		return nil, false
	}

	for _, p := range v.pairs {
		if p.Key.Equals(key) {
			return p.Value, true
		}
	}

	return nil, false
}

// Append appends elements to a variable sequence. It fails with
// ErrWrongKind on any other variant; fixed sequences stay immutable.
func (v *Value) Append(elems ...*Value) error {
	if v.kind != KindVariableSequence {
		return fmt.Errorf("%w: append on %s", ErrWrongKind, v.kind)
	}

	more, err := copyElements(elems)
	if err != nil {
		return err
	}

	v.seq = append(v.seq, more...)

	return nil
}

// SetIndex replaces the i-th element of a variable sequence.
func (v *Value) SetIndex(i int, elem *Value) error {
	if v.kind != KindVariableSequence {
		return fmt.Errorf("%w: set index on %s", ErrWrongKind, v.kind)
	}

	if elem == nil {
		return fmt.Errorf("%w: element %d", ErrNilValue, i)
	}

	if i < 0 || i >= len(v.seq) {
		return fmt.Errorf("%w: %d of %d", ErrIndexRange, i, len(v.seq))
	}

	v.seq[i] = elem

	return nil
}

// Set stores val under key in a mapping, replacing any existing entry with
// an equal key. Insertion order is preserved for new keys.
func (v *Value) Set(key, val *Value) error {
	if v.kind != KindMapping {
		return fmt.Errorf("%w: set on %s", ErrWrongKind, v.kind)
	}

	if key == nil || val == nil {
		return fmt.Errorf("%w: mapping entry", ErrNilValue)
	}

	for i, p := range v.pairs {
		if p.Key.Equals(key) {
			v.pairs[i].Value = val

			return nil
		}
	}

	v.pairs = append(v.pairs, Pair{Key: key, Value: val})

	return nil
}

// Delete removes the entry with an equal key from a mapping. Deleting an
// absent key is a no-op.
func (v *Value) Delete(key *Value) error {
	if v.kind != KindMapping {
		return fmt.Errorf("%w: delete on %s", ErrWrongKind, v.kind)
	}

	if key == nil {
		return fmt.Errorf("%w: mapping key", ErrNilValue)
	}

	for i, p := range v.pairs {
		if p.Key.Equals(key) {
			v.pairs = append(v.pairs[:i], v.pairs[i+1:]...)

			return nil
		}
	}

	return nil
}

func (v *Value) isSequence() bool {
	return v.kind == KindFixedSequence || v.kind == KindVariableSequence
}
