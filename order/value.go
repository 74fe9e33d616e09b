package order

import (
	"strings"

	"github.com/amp-labs/typekey/compare"
	"github.com/amp-labs/typekey/value"
)

// Compare returns the three-way order of two decoded values, normalized to
// {-1, 0, 1}. Values of different classes order by class. Within a class:
//
//   - none values are equal;
//   - numeric operands are widened to float64 and compared by magnitude,
//     so Integer(3) and Float(3.0) are equal;
//   - text compares lexicographically by bytes;
//   - sequences compare element by element, recursively; a strict prefix
//     orders before the longer sequence;
//   - mappings compare by the lexicographic order of their String()
//     renderings. This is an intentionally weak, format-dependent order,
//     not a semantic one.
func Compare(a, b *value.Value) int {
	ca, _ := ClassOf(a.Kind())
	cb, _ := ClassOf(b.Kind())

	if ca != cb {
		return compare.Sign(int(ca) - int(cb))
	}

	switch ca {
	case ClassNone:
		return compare.Equal

	case ClassNumeric:
		return compare.Float64(widen(a), widen(b))

	case ClassText:
		ta, _ := a.Text()
		tb, _ := b.Text()

		return compare.Sign(strings.Compare(ta, tb))

	case ClassFixedSequence, ClassVariableSequence:
		i := 0

		for ; i < a.Len(); i++ {
			if i == b.Len() {
				return compare.Greater
			}

			ea, _ := a.Index(i)
			eb, _ := b.Index(i)

			if c := Compare(ea, eb); c != compare.Equal {
				return c
			}
		}

		if i < b.Len() {
			return compare.Less
		}

		return compare.Equal

	case ClassMapping:
		return compare.Sign(strings.Compare(a.String(), b.String()))

	default:
		return compare.Equal
	}
}

// widen converts a numeric operand to float64. Integers whose magnitude
// exceeds the float64 exact-integer range (about 2^53) lose precision
// here, so two such integers may compare as equal when they differ. That
// is an accepted, documented limitation of the numeric class.
func widen(v *value.Value) float64 {
	if n, ok := v.Int64(); ok {
		return float64(n)
	}

	f, _ := v.Float64()

	return f
}
