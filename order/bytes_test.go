package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/typekey/codec"
	"github.com/amp-labs/typekey/compare"
	"github.com/amp-labs/typekey/value"
)

func encode(t *testing.T, v *value.Value) []byte {
	t.Helper()

	buf, err := codec.Encode(v)
	require.NoError(t, err)

	return buf
}

func TestCompareAt_CrossCheck(t *testing.T) {
	t.Parallel()

	// Every pair of non-mapping values must order identically through the
	// value comparator and the byte comparator.
	corpus := []*value.Value{
		value.None(),
		value.Integer(0),
		value.Integer(-1),
		value.Integer(130),
		value.Integer(-4711),
		value.Float(0),
		value.Float(2.5),
		value.Float(-2.5),
		value.Float(130),
		value.Text(""),
		value.Text("a"),
		value.Text("abc"),
		value.Text("abd"),
		fixed(t),
		fixed(t, value.Integer(1)),
		fixed(t, value.Integer(1), value.Integer(2)),
		fixed(t, value.Integer(1), value.Integer(2), value.Integer(3)),
		fixed(t, value.Text("x"), value.None()),
		variable(t),
		variable(t, value.Integer(1), value.Integer(2)),
		variable(t, value.Float(1), value.Integer(2)),
		variable(t, fixed(t, value.Integer(1))),
	}

	for _, a := range corpus {
		for _, b := range corpus {
			expected := Compare(a, b)

			ea := encode(t, a)
			eb := encode(t, b)

			cmp, an, bn, err := CompareAt(ea, 0, eb, 0)
			require.NoError(t, err, "%s vs %s", a, b)
			assert.Equal(t, expected, cmp, "%s vs %s", a, b)

			if cmp == compare.Equal {
				// Equal comparisons must consume each value exactly.
				assert.Equal(t, len(ea), an, "%s vs %s", a, b)
				assert.Equal(t, len(eb), bn, "%s vs %s", a, b)
			}

			assert.Equal(t, expected, CompareEncoded(ea, 0, len(ea), eb, 0, len(eb)))
		}
	}
}

func TestCompareAt_CursorDiscipline(t *testing.T) {
	t.Parallel()

	// Two records concatenated in one buffer; comparing the first against
	// the second must leave each cursor at the start of the record that
	// follows the one it compared.
	buf := encode(t, value.Integer(130))
	second := len(buf)
	buf = append(buf, encode(t, value.Integer(5))...)

	cmp, an, bn, err := CompareAt(buf, 0, buf, second)
	require.NoError(t, err)

	assert.Equal(t, compare.Greater, cmp)
	assert.Equal(t, Compare(value.Integer(130), value.Integer(5)), cmp)
	assert.Equal(t, second, an)
	assert.Equal(t, len(buf), second+bn)
}

func TestCompareAt_NumericMixedEncodings(t *testing.T) {
	t.Parallel()

	// An integer-tagged operand and a float-tagged operand have different
	// physical encodings but must compare by magnitude.
	intSide := encode(t, value.Integer(3))
	floatSide := encode(t, value.Float(3.0))

	cmp, an, bn, err := CompareAt(intSide, 0, floatSide, 0)
	require.NoError(t, err)

	assert.Equal(t, compare.Equal, cmp)
	assert.Equal(t, len(intSide), an)
	assert.Equal(t, len(floatSide), bn)

	cmp, _, _, err = CompareAt(encode(t, value.Float(2.5)), 0, encode(t, value.Integer(3)), 0)
	require.NoError(t, err)
	assert.Equal(t, compare.Less, cmp)
}

func TestCompareAt_Mapping(t *testing.T) {
	t.Parallel()

	a := encode(t, mapping(t, value.Pair{Key: value.Text("a"), Value: value.Integer(1)}))
	b := encode(t, mapping(t, value.Pair{Key: value.Text("b"), Value: value.Integer(2)}))

	// Mappings report equal without consuming their payloads; the flag
	// error marks the incomplete comparison.
	cmp, an, bn, err := CompareAt(a, 0, b, 0)
	require.ErrorIs(t, err, ErrMappingBytesUnordered)
	assert.Equal(t, compare.Equal, cmp)
	assert.Equal(t, 1, an)
	assert.Equal(t, 1, bn)

	// The sort entry point swallows the flag and reports equal, even
	// though the value comparator would not.
	assert.Equal(t, compare.Equal, CompareEncoded(a, 0, len(a), b, 0, len(b)))
	assert.NotEqual(t, compare.Equal, Compare(
		mapping(t, value.Pair{Key: value.Text("a"), Value: value.Integer(1)}),
		mapping(t, value.Pair{Key: value.Text("b"), Value: value.Integer(2)}),
	))
}

func TestCompareAt_NestedMappingStopsWalk(t *testing.T) {
	t.Parallel()

	a := encode(t, fixed(t, mapping(t), value.Integer(1)))
	b := encode(t, fixed(t, mapping(t), value.Integer(2)))

	// A mapping inside a sequence leaves the cursors inconsistent, so the
	// walk stops and propagates the flag instead of comparing garbage.
	_, _, _, err := CompareAt(a, 0, b, 0)
	assert.ErrorIs(t, err, ErrMappingBytesUnordered)
}

func TestCompareAt_Malformed(t *testing.T) {
	t.Parallel()

	valid := encode(t, value.Integer(1))

	_, _, _, err := CompareAt([]byte{0x07}, 0, valid, 0)
	assert.ErrorIs(t, err, codec.ErrBadTag)

	_, _, _, err = CompareAt(nil, 0, valid, 0)
	assert.ErrorIs(t, err, codec.ErrTruncated)

	_, _, _, err = CompareAt([]byte{0x01}, 0, valid, 0)
	assert.ErrorIs(t, err, codec.ErrTruncated)

	_, _, _, err = CompareAt([]byte{0x03, 0x05, 'a'}, 0, valid, 0)
	assert.ErrorIs(t, err, codec.ErrLength)
}

func TestCompareEncoded_PanicsOnMalformed(t *testing.T) {
	t.Parallel()

	valid := encode(t, value.Integer(1))

	assert.Panics(t, func() {
		CompareEncoded([]byte{0x07}, 0, 1, valid, 0, len(valid))
	})
}

func TestCompareAt_SequenceEarlyStop(t *testing.T) {
	t.Parallel()

	a := encode(t, variable(t, value.Integer(1), value.Integer(9), value.Integer(3)))
	b := encode(t, variable(t, value.Integer(1), value.Integer(2), value.Integer(3)))

	cmp, an, bn, err := CompareAt(a, 0, b, 0)
	require.NoError(t, err)

	assert.Equal(t, compare.Greater, cmp)

	// Only the first two elements were examined.
	assert.Less(t, an, len(a))
	assert.Less(t, bn, len(b))
}
