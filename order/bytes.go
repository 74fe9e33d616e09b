package order

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/amp-labs/typekey/codec"
	"github.com/amp-labs/typekey/compare"
	"github.com/amp-labs/typekey/value"
)

// ErrMappingBytesUnordered flags the byte comparator's mapping case. The
// byte-level order of mappings is unspecified: CompareAt reports two
// mappings as equal without consuming their payloads, which disagrees with
// the value comparator's rendering-based order and leaves both cursors
// before the mapping payload. This is a documented limitation, not a
// runtime failure.
var ErrMappingBytesUnordered = errors.New("mapping byte order unspecified")

// CompareAt compares the encoded value starting at apos in a against the
// one starting at bpos in b, without constructing either value. It returns
// the three-way order and the number of bytes consumed from each buffer.
//
// When the result is zero for a non-mapping value, each consumed count is
// exactly the encoded length of the compared value, so cursors land at the
// start of whatever follows and calls compose over concatenated records.
// On a non-zero result for sequences, consumption may stop early and the
// counts only reflect the bytes actually examined.
//
// Two mappings yield (0, 1, 1, ErrMappingBytesUnordered): see the error's
// documentation. Any other error reports malformed input.
//
// CompareAt allocates nothing and keeps no state between calls; it is safe
// to invoke from any number of goroutines on caller-owned buffers.
func CompareAt(a []byte, apos int, b []byte, bpos int) (int, int, int, error) {
	ka, err := tagAt(a, apos)
	if err != nil {
		return 0, 0, 0, err
	}

	kb, err := tagAt(b, bpos)
	if err != nil {
		return 0, 0, 0, err
	}

	ca, _ := ClassOf(ka)
	cb, _ := ClassOf(kb)

	if ca != cb {
		return compare.Sign(int(ca) - int(cb)), 1, 1, nil
	}

	switch ca {
	case ClassNone:
		return compare.Equal, 1, 1, nil

	case ClassNumeric:
		// Each side decodes per its own tag, so an integer-tagged operand
		// compares correctly against a float-tagged one.
		fa, an, err := numericAt(a, apos, ka)
		if err != nil {
			return 0, 0, 0, err
		}

		fb, bn, err := numericAt(b, bpos, kb)
		if err != nil {
			return 0, 0, 0, err
		}

		return compare.Float64(fa, fb), an, bn, nil

	case ClassText:
		ta, an, err := textAt(a, apos)
		if err != nil {
			return 0, 0, 0, err
		}

		tb, bn, err := textAt(b, bpos)
		if err != nil {
			return 0, 0, 0, err
		}

		return compare.Sign(bytes.Compare(ta, tb)), an, bn, nil

	case ClassFixedSequence, ClassVariableSequence:
		na, an, err := countAt(a, apos)
		if err != nil {
			return 0, 0, 0, err
		}

		nb, bn, err := countAt(b, bpos)
		if err != nil {
			return 0, 0, 0, err
		}

		i := 0

		for ; i < na; i++ {
			if i == nb {
				return compare.Greater, an, bn, nil
			}

			cmp, ea, eb, err := CompareAt(a, apos+an, b, bpos+bn)
			an += ea
			bn += eb

			if err != nil {
				// Includes ErrMappingBytesUnordered from a nested mapping:
				// the cursors are inconsistent past this point, so the
				// element walk cannot continue.
				return cmp, an, bn, err
			}

			if cmp != compare.Equal {
				return cmp, an, bn, nil
			}
		}

		if i < nb {
			return compare.Less, an, bn, nil
		}

		return compare.Equal, an, bn, nil

	case ClassMapping:
		return compare.Equal, 1, 1, ErrMappingBytesUnordered

	default:
		return 0, 0, 0, fmt.Errorf("%w: class %d", codec.ErrBadTag, ca)
	}
}

// CompareEncoded is the external sort entry point: it orders the encoded
// value starting at aoff in a against the one starting at boff in b and
// returns -1, 0 or 1. The mapping limitation of CompareAt applies, so two
// top-level mappings report 0. Malformed input panics; a sort comparator
// has no error channel, and a corrupted record cannot be ordered
// meaningfully.
func CompareEncoded(a []byte, aoff, alen int, b []byte, boff, blen int) int {
	cmp, _, _, err := CompareAt(a[aoff:aoff+alen], 0, b[boff:boff+blen], 0)
	if err != nil && !errors.Is(err, ErrMappingBytesUnordered) {
		panic(fmt.Errorf("compare encoded values: %w", err))
	}

	return cmp
}

func tagAt(buf []byte, pos int) (value.Kind, error) {
	if pos < 0 || pos >= len(buf) {
		return 0, fmt.Errorf("%w: tag at offset %d", codec.ErrTruncated, pos)
	}

	k := value.Kind(buf[pos])
	if !k.Valid() {
		return 0, fmt.Errorf("%w: %d at offset %d", codec.ErrBadTag, buf[pos], pos)
	}

	return k, nil
}

// numericAt reads the numeric operand at pos per its tag and returns its
// magnitude as float64 plus the bytes consumed including the tag.
func numericAt(buf []byte, pos int, k value.Kind) (float64, int, error) {
	if k == value.KindInteger {
		n, size, err := codec.Varint(buf, pos+1)
		if err != nil {
			return 0, 0, err
		}

		return float64(n), 1 + size, nil
	}

	if pos+9 > len(buf) {
		return 0, 0, fmt.Errorf("%w: float needs 8 bytes, %d remain", codec.ErrTruncated, len(buf)-pos-1)
	}

	return math.Float64frombits(binary.BigEndian.Uint64(buf[pos+1:])), 9, nil
}

// textAt reads the length-prefixed text at pos and returns its bytes plus
// the bytes consumed including the tag.
func textAt(buf []byte, pos int) ([]byte, int, error) {
	n, size, err := codec.Varint(buf, pos+1)
	if err != nil {
		return nil, 0, err
	}

	rest := len(buf) - pos - 1 - size
	if n < 0 || n > int64(rest) {
		return nil, 0, fmt.Errorf("%w: text length %d, %d remain", codec.ErrLength, n, rest)
	}

	start := pos + 1 + size

	return buf[start : start+int(n)], 1 + size + int(n), nil
}

// countAt reads the element count at pos and returns it plus the bytes
// consumed including the tag.
func countAt(buf []byte, pos int) (int, int, error) {
	n, size, err := codec.Varint(buf, pos+1)
	if err != nil {
		return 0, 0, err
	}

	rest := len(buf) - pos - 1 - size
	if n < 0 || n > int64(rest) {
		return 0, 0, fmt.Errorf("%w: count %d, %d remain", codec.ErrLength, n, rest)
	}

	return int(n), 1 + size, nil
}
