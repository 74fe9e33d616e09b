// Package codec implements the compact, self-describing binary encoding of
// value trees. Every node starts with one tag byte (the value.Kind code),
// followed by a variant-specific payload: nothing for none, a
// variable-length integer, 8 big-endian IEEE-754 bytes, a length-prefixed
// UTF-8 byte string, or a count-prefixed run of recursively encoded
// children. The layout is fixed; independent implementations must
// reproduce it bit-for-bit to interoperate.
package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/amp-labs/typekey/value"
)

// Encode returns the binary encoding of v.
func Encode(v *value.Value) ([]byte, error) {
	return AppendValue(nil, v)
}

// AppendValue appends the binary encoding of v to dst and returns the
// extended slice. Mapping entries are written in the mapping's iteration
// order; consumers must not rely on that order surviving a round trip.
func AppendValue(dst []byte, v *value.Value) ([]byte, error) {
	if v == nil {
		return nil, value.ErrNilValue
	}

	kind := v.Kind()
	dst = append(dst, byte(kind))

	switch kind {
	case value.KindNone:
		return dst, nil

	case value.KindInteger:
		n, _ := v.Int64()

		return AppendVarint(dst, n), nil

	case value.KindFloat:
		f, _ := v.Float64()

		return binary.BigEndian.AppendUint64(dst, math.Float64bits(f)), nil

	case value.KindText:
		s, _ := v.Text()
		dst = AppendVarint(dst, int64(len(s)))

		return append(dst, s...), nil

	case value.KindFixedSequence, value.KindVariableSequence:
		dst = AppendVarint(dst, int64(v.Len()))

		for e := range v.Items() {
			var err error

			dst, err = AppendValue(dst, e)
			if err != nil {
				return nil, err
			}
		}

		return dst, nil

	case value.KindMapping:
		dst = AppendVarint(dst, int64(v.Len()))

		for k, val := range v.Entries() {
			var err error

			dst, err = AppendValue(dst, k)
			if err != nil {
				return nil, err
			}

			dst, err = AppendValue(dst, val)
			if err != nil {
				return nil, err
			}
		}

		return dst, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrBadTag, byte(kind))
	}
}

// EncodeTo writes the binary encoding of v to w. A write failure surfaces
// as the writer's error; it is never swallowed.
func EncodeTo(w io.Writer, v *value.Value) error {
	buf, err := Encode(v)
	if err != nil {
		return err
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write encoded value: %w", err)
	}

	return nil
}
