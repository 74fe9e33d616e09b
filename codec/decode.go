package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/amp-labs/typekey/value"
)

// Decode decodes a buffer holding exactly one encoded value. It fails with
// ErrTrailingData if bytes remain; use DecodeValue for buffers holding
// concatenated values.
func Decode(buf []byte) (*value.Value, error) {
	v, n, err := DecodeValue(buf, 0)
	if err != nil {
		return nil, err
	}

	if n != len(buf) {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, len(buf)-n)
	}

	return v, nil
}

// DecodeValue decodes one value starting at off and returns the value and
// the number of bytes consumed. The result is an independent fresh tree;
// it shares no state with the buffer. Malformed input (a tag outside the
// enumerated range, or a declared length past the end of the buffer) fails
// with an error wrapping ErrBadTag, ErrTruncated or ErrLength.
func DecodeValue(buf []byte, off int) (*value.Value, int, error) {
	if off >= len(buf) || off < 0 {
		return nil, 0, fmt.Errorf("%w: tag at offset %d", ErrTruncated, off)
	}

	kind := value.Kind(buf[off])
	if !kind.Valid() {
		return nil, 0, fmt.Errorf("%w: %d at offset %d", ErrBadTag, buf[off], off)
	}

	pos := off + 1

	switch kind {
	case value.KindNone:
		return value.None(), 1, nil

	case value.KindInteger:
		n, size, err := Varint(buf, pos)
		if err != nil {
			return nil, 0, err
		}

		return value.Integer(n), 1 + size, nil

	case value.KindFloat:
		if pos+8 > len(buf) {
			return nil, 0, fmt.Errorf("%w: float needs 8 bytes, %d remain", ErrTruncated, len(buf)-pos)
		}

		bits := binary.BigEndian.Uint64(buf[pos:])

		return value.Float(math.Float64frombits(bits)), 9, nil

	case value.KindText:
		n, size, err := varintCount(buf, pos)
		if err != nil {
			return nil, 0, err
		}

		pos += size

		return value.Text(string(buf[pos : pos+n])), pos + n - off, nil

	case value.KindFixedSequence, value.KindVariableSequence:
		count, size, err := varintCount(buf, pos)
		if err != nil {
			return nil, 0, err
		}

		pos += size
		elems := make([]*value.Value, count)

		for i := range elems {
			e, n, err := DecodeValue(buf, pos)
			if err != nil {
				return nil, 0, err
			}

			elems[i] = e
			pos += n
		}

		var v *value.Value

		if kind == value.KindFixedSequence {
			v, err = value.FixedSequence(elems...)
		} else {
			v, err = value.VariableSequence(elems...)
		}

		if err != nil {
			return nil, 0, err
		}

		return v, pos - off, nil

	case value.KindMapping:
		count, size, err := varintCount(buf, pos)
		if err != nil {
			return nil, 0, err
		}

		pos += size
		pairs := make([]value.Pair, count)

		for i := range pairs {
			k, n, err := DecodeValue(buf, pos)
			if err != nil {
				return nil, 0, err
			}

			pos += n

			val, n, err := DecodeValue(buf, pos)
			if err != nil {
				return nil, 0, err
			}

			pos += n
			pairs[i] = value.Pair{Key: k, Value: val}
		}

		m, err := value.Mapping(pairs...)
		if err != nil {
			return nil, 0, err
		}

		return m, pos - off, nil

	default:
		return nil, 0, fmt.Errorf("%w: %d at offset %d", ErrBadTag, buf[off], off)
	}
}

// Skip advances past one encoded value starting at off without
// materializing it, returning the number of bytes it occupies.
func Skip(buf []byte, off int) (int, error) {
	if off >= len(buf) || off < 0 {
		return 0, fmt.Errorf("%w: tag at offset %d", ErrTruncated, off)
	}

	kind := value.Kind(buf[off])
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %d at offset %d", ErrBadTag, buf[off], off)
	}

	pos := off + 1

	switch kind {
	case value.KindNone:
		return 1, nil

	case value.KindInteger:
		_, size, err := Varint(buf, pos)
		if err != nil {
			return 0, err
		}

		return 1 + size, nil

	case value.KindFloat:
		if pos+8 > len(buf) {
			return 0, fmt.Errorf("%w: float needs 8 bytes, %d remain", ErrTruncated, len(buf)-pos)
		}

		return 9, nil

	case value.KindText:
		n, size, err := varintCount(buf, pos)
		if err != nil {
			return 0, err
		}

		return 1 + size + n, nil

	case value.KindFixedSequence, value.KindVariableSequence, value.KindMapping:
		count, size, err := varintCount(buf, pos)
		if err != nil {
			return 0, err
		}

		pos += size

		if kind == value.KindMapping {
			count *= 2
		}

		for i := 0; i < count; i++ {
			n, err := Skip(buf, pos)
			if err != nil {
				return 0, err
			}

			pos += n
		}

		return pos - off, nil

	default:
		return 0, fmt.Errorf("%w: %d at offset %d", ErrBadTag, buf[off], off)
	}
}
