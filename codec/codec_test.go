package codec

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/typekey/value"
)

func mustEncode(t *testing.T, v *value.Value) []byte {
	t.Helper()

	buf, err := Encode(v)
	require.NoError(t, err)

	return buf
}

func fixed(t *testing.T, elems ...*value.Value) *value.Value {
	t.Helper()

	v, err := value.FixedSequence(elems...)
	require.NoError(t, err)

	return v
}

func variable(t *testing.T, elems ...*value.Value) *value.Value {
	t.Helper()

	v, err := value.VariableSequence(elems...)
	require.NoError(t, err)

	return v
}

func mapping(t *testing.T, pairs ...value.Pair) *value.Value {
	t.Helper()

	v, err := value.Mapping(pairs...)
	require.NoError(t, err)

	return v
}

func TestEncode_WireLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    *value.Value
		expected []byte
	}{
		{
			name:     "none is tag only",
			input:    value.None(),
			expected: []byte{0x00},
		},
		{
			name:     "small integer",
			input:    value.Integer(5),
			expected: []byte{0x01, 0x05},
		},
		{
			name:     "two byte integer",
			input:    value.Integer(130),
			expected: []byte{0x01, 0x8F, 0x82},
		},
		{
			name:     "float big endian",
			input:    value.Float(1.0),
			expected: []byte{0x02, 0x3F, 0xF0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "text length prefixed",
			input:    value.Text("abc"),
			expected: []byte{0x03, 0x03, 'a', 'b', 'c'},
		},
		{
			name:     "empty text",
			input:    value.Text(""),
			expected: []byte{0x03, 0x00},
		},
		{
			name:     "fixed sequence",
			input:    fixed(t, value.Integer(1), value.None()),
			expected: []byte{0x04, 0x02, 0x01, 0x01, 0x00},
		},
		{
			name:     "variable sequence",
			input:    variable(t, value.Integer(1)),
			expected: []byte{0x06, 0x01, 0x01, 0x01},
		},
		{
			name: "mapping",
			input: mapping(t,
				value.Pair{Key: value.Text("k"), Value: value.Integer(7)},
			),
			expected: []byte{0x05, 0x01, 0x03, 0x01, 'k', 0x01, 0x07},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, mustEncode(t, tt.input))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input *value.Value
	}{
		{name: "none", input: value.None()},
		{name: "integer zero", input: value.Integer(0)},
		{name: "integer negative", input: value.Integer(-4711)},
		{name: "integer max", input: value.Integer(math.MaxInt64)},
		{name: "integer min", input: value.Integer(math.MinInt64)},
		{name: "float", input: value.Float(-2.75)},
		{name: "float nan", input: value.Float(math.NaN())},
		{name: "float inf", input: value.Float(math.Inf(1))},
		{name: "text", input: value.Text("hello, world")},
		{name: "text non ascii", input: value.Text("héllo ☃")},
		{name: "empty fixed sequence", input: fixed(t)},
		{name: "empty variable sequence", input: variable(t)},
		{
			name: "nested",
			input: fixed(t,
				value.Integer(1),
				variable(t, value.Text("a"), value.None()),
				fixed(t, value.Float(0.5)),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := mustEncode(t, tt.input)

			decoded, err := Decode(buf)
			require.NoError(t, err)
			assert.True(t, tt.input.Equals(decoded), "got %s", decoded)
		})
	}
}

func TestRoundTrip_Mapping(t *testing.T) {
	t.Parallel()

	m := mapping(t,
		value.Pair{Key: value.Text("a"), Value: value.Integer(1)},
		value.Pair{Key: value.Integer(2), Value: variable(t, value.None())},
		value.Pair{Key: value.None(), Value: value.Text("x")},
	)

	decoded, err := Decode(mustEncode(t, m))
	require.NoError(t, err)

	// Entry set and pairing survive; iteration order is not guaranteed.
	require.Equal(t, m.Len(), decoded.Len())

	for k, v := range m.Entries() {
		got, found := decoded.Get(k)
		require.True(t, found, "missing key %s", k)
		assert.True(t, v.Equals(got))
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []byte
		expected error
	}{
		{
			name:     "empty input",
			input:    nil,
			expected: ErrTruncated,
		},
		{
			name:     "tag outside range",
			input:    []byte{0x07},
			expected: ErrBadTag,
		},
		{
			name:     "integer missing payload",
			input:    []byte{0x01},
			expected: ErrTruncated,
		},
		{
			name:     "float short payload",
			input:    []byte{0x02, 0x3F, 0xF0},
			expected: ErrTruncated,
		},
		{
			name:     "text length past end",
			input:    []byte{0x03, 0x05, 'a'},
			expected: ErrLength,
		},
		{
			name:     "negative text length",
			input:    []byte{0x03, 0xFF},
			expected: ErrLength,
		},
		{
			name:     "sequence count past end",
			input:    []byte{0x06, 0x7F},
			expected: ErrLength,
		},
		{
			name:     "bad tag inside sequence",
			input:    []byte{0x04, 0x01, 0x07},
			expected: ErrBadTag,
		},
		{
			name:     "trailing data",
			input:    []byte{0x00, 0x00},
			expected: ErrTrailingData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(tt.input)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestDecodeValue_Cursor(t *testing.T) {
	t.Parallel()

	// Two concatenated records in one buffer.
	buf := mustEncode(t, value.Integer(130))
	first := len(buf)
	buf = append(buf, mustEncode(t, value.Text("next"))...)

	v, n, err := DecodeValue(buf, 0)
	require.NoError(t, err)
	assert.True(t, value.Integer(130).Equals(v))
	assert.Equal(t, first, n)

	v, n, err = DecodeValue(buf, first)
	require.NoError(t, err)
	assert.True(t, value.Text("next").Equals(v))
	assert.Equal(t, len(buf), first+n)
}

func TestSkip(t *testing.T) {
	t.Parallel()

	values := []*value.Value{
		value.None(),
		value.Integer(-300),
		value.Float(2.5),
		value.Text("skip me"),
		fixed(t, value.Integer(1), value.Text("a")),
		mapping(t, value.Pair{Key: value.Text("k"), Value: variable(t, value.None())}),
	}

	var buf []byte

	lengths := make([]int, len(values))
	for i, v := range values {
		enc := mustEncode(t, v)
		lengths[i] = len(enc)
		buf = append(buf, enc...)
	}

	off := 0

	for i := range values {
		n, err := Skip(buf, off)
		require.NoError(t, err)
		assert.Equal(t, lengths[i], n)

		off += n
	}

	assert.Equal(t, len(buf), off)

	_, err := Skip(buf, off)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestEncodeTo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, EncodeTo(&buf, value.Integer(42)))
	assert.Equal(t, mustEncode(t, value.Integer(42)), buf.Bytes())

	err := EncodeTo(failWriter{}, value.Integer(42))
	assert.ErrorIs(t, err, errWriteFailed)
}

var errWriteFailed = errors.New("write failed")

type failWriter struct{}

func (failWriter) Write(_ []byte) (int, error) {
	return 0, errWriteFailed
}
