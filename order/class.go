// Package order defines one total order over the represented value space.
// The same order is computed two ways: Compare walks two decoded value
// trees, and CompareAt/CompareEncoded walk two encoded buffers directly,
// so an external sort can order serialized records without deserializing
// them. Both comparators share a single classification table, so they
// cannot drift apart.
package order

import "github.com/amp-labs/typekey/value"

// Class is the normalized bucket used for primary ordering. Integer and
// Float share the numeric class so the two compare against each other by
// magnitude; every other variant keeps a distinct class. Class order is
// the primary sort precedence:
//
//	none < numeric < text < fixed sequence < mapping < variable sequence
type Class byte

const (
	ClassNone             Class = 0
	ClassNumeric          Class = 1
	ClassText             Class = 3
	ClassFixedSequence    Class = 4
	ClassMapping          Class = 5
	ClassVariableSequence Class = 6
)

// classTable is the single classification table both comparators dispatch
// through.
var classTable = [...]Class{
	value.KindNone:             ClassNone,
	value.KindInteger:          ClassNumeric,
	value.KindFloat:            ClassNumeric,
	value.KindText:             ClassText,
	value.KindFixedSequence:    ClassFixedSequence,
	value.KindMapping:          ClassMapping,
	value.KindVariableSequence: ClassVariableSequence,
}

// ClassOf returns the comparison class of a variant. The second result is
// false for kinds outside the enumerated range.
func ClassOf(k value.Kind) (Class, bool) {
	if !k.Valid() {
		return 0, false
	}

	return classTable[k], true
}
