package codec

import "fmt"

// The variable-length integer layout is the Hadoop WritableUtils one, kept
// bit-for-bit so independently produced buffers interoperate:
//
//   - values in [-112, 127] occupy a single byte holding the value itself;
//   - otherwise the first byte is a marker encoding sign and byte count
//     (-113..-120 positive, -121..-128 negative) followed by the magnitude's
//     big-endian bytes, negatives stored as the bitwise complement.
//
// Small magnitudes therefore occupy fewer bytes, and the first byte alone
// determines the total length.

// AppendVarint appends the variable-length encoding of v to dst and
// returns the extended slice.
func AppendVarint(dst []byte, v int64) []byte {
	if v >= -112 && v <= 127 {
		return append(dst, byte(v))
	}

	marker := -112
	mag := v

	if v < 0 {
		mag = ^v
		marker = -120
	}

	for tmp := mag; tmp != 0; tmp >>= 8 {
		marker--
	}

	dst = append(dst, byte(marker))

	n := -(marker + 112)
	if marker < -120 {
		n = -(marker + 120)
	}

	for i := n; i != 0; i-- {
		dst = append(dst, byte(mag>>uint((i-1)*8)))
	}

	return dst
}

// VarintLen returns the total encoded length implied by the first byte of
// a variable-length integer.
func VarintLen(first byte) int {
	b := int(int8(first))

	switch {
	case b >= -112:
		return 1
	case b < -120:
		return -119 - b
	default:
		return -111 - b
	}
}

// Varint decodes the variable-length integer starting at off and returns
// the value and the number of bytes consumed.
func Varint(buf []byte, off int) (int64, int, error) {
	if off >= len(buf) {
		return 0, 0, fmt.Errorf("%w: varint at offset %d", ErrTruncated, off)
	}

	first := buf[off]

	size := VarintLen(first)
	if size == 1 {
		return int64(int8(first)), 1, nil
	}

	if off+size > len(buf) {
		return 0, 0, fmt.Errorf("%w: varint needs %d bytes, %d remain", ErrTruncated, size, len(buf)-off)
	}

	var x int64
	for i := 1; i < size; i++ {
		x = x<<8 | int64(buf[off+i])
	}

	if negativeVarint(first) {
		x = ^x
	}

	return x, size, nil
}

// negativeVarint reports whether the first byte marks a negative value.
func negativeVarint(first byte) bool {
	b := int8(first)

	return b < -120 || (b >= -112 && b < 0)
}

// varintCount decodes a varint used as a length or element count and
// validates it against the bytes remaining after it. Every encoded value
// occupies at least one byte, so a count exceeding the remainder can never
// be satisfied.
func varintCount(buf []byte, off int) (int, int, error) {
	n, size, err := Varint(buf, off)
	if err != nil {
		return 0, 0, err
	}

	if n < 0 {
		return 0, 0, fmt.Errorf("%w: negative count %d", ErrLength, n)
	}

	if n > int64(len(buf)-off-size) {
		return 0, 0, fmt.Errorf("%w: count %d exceeds %d remaining bytes", ErrLength, n, len(buf)-off-size)
	}

	return int(n), size, nil
}
