package value

import (
	"math"

	"github.com/amp-labs/typekey/compare"
)

// Compile-time check that Value implements Comparable[*Value].
var _ compare.Comparable[*Value] = (*Value)(nil)

// Equals reports structural equality. Variants never equal other variants:
// Integer(3) does not equal Float(3) even though the comparators order them
// as equal. Float equality is bitwise, so NaN equals NaN and negative zero
// does not equal zero; this keeps equality consistent with the structural
// hash. Mapping equality compares entry sets and is insensitive to
// iteration order.
func (v *Value) Equals(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}

	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNone:
		return true

	case KindInteger:
		return v.num == other.num

	case KindFloat:
		return math.Float64bits(v.fp) == math.Float64bits(other.fp)

	case KindText:
		return v.text == other.text

	case KindFixedSequence, KindVariableSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}

		for i, e := range v.seq {
			if !e.Equals(other.seq[i]) {
				return false
			}
		}

		return true

	case KindMapping:
		if len(v.pairs) != len(other.pairs) {
			return false
		}

		for _, p := range v.pairs {
			ov, found := other.Get(p.Key)
			if !found || !p.Value.Equals(ov) {
				return false
			}
		}

		return true

	default:
		return false
	}
}
