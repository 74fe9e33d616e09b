package value

import (
	"encoding/binary"
	"hash"
	"math"

	"github.com/amp-labs/typekey/hashing"
)

// Compile-time check that Value implements hashing.Hashable.
var _ hashing.Hashable = (*Value)(nil)

// UpdateHash feeds a structural digest of the value tree into h. The
// digest is consistent with Equals: equal values always produce equal
// digests, and the mapping contribution is insensitive to iteration order.
// It is not guaranteed stable across versions of this module.
func (v *Value) UpdateHash(h hash.Hash) error {
	if v == nil {
		return ErrNilValue
	}

	var scratch [8]byte

	if _, err := h.Write([]byte{byte(v.kind)}); err != nil {
		return err
	}

	switch v.kind {
	case KindNone:
		return nil

	case KindInteger:
		binary.BigEndian.PutUint64(scratch[:], uint64(v.num))

		_, err := h.Write(scratch[:])

		return err

	case KindFloat:
		binary.BigEndian.PutUint64(scratch[:], math.Float64bits(v.fp))

		_, err := h.Write(scratch[:])

		return err

	case KindText:
		binary.BigEndian.PutUint64(scratch[:], uint64(len(v.text)))

		if _, err := h.Write(scratch[:]); err != nil {
			return err
		}

		_, err := h.Write([]byte(v.text))

		return err

	case KindFixedSequence, KindVariableSequence:
		binary.BigEndian.PutUint64(scratch[:], uint64(len(v.seq)))

		if _, err := h.Write(scratch[:]); err != nil {
			return err
		}

		for _, e := range v.seq {
			if err := e.UpdateHash(h); err != nil {
				return err
			}
		}

		return nil

	case KindMapping:
		binary.BigEndian.PutUint64(scratch[:], uint64(len(v.pairs)))

		if _, err := h.Write(scratch[:]); err != nil {
			return err
		}

		// Entry digests are combined with addition so the result does not
		// depend on iteration order, matching Equals.
		var acc uint64

		for _, p := range v.pairs {
			d, err := hashing.XXH64(pairHashable(p))
			if err != nil {
				return err
			}

			acc += d
		}

		binary.BigEndian.PutUint64(scratch[:], acc)

		_, err := h.Write(scratch[:])

		return err

	default:
		return ErrWrongKind
	}
}

// Hash returns the structural digest used by the host's partitioning step.
func (v *Value) Hash() (uint64, error) {
	return hashing.XXH3(v)
}

// pairHashable hashes one mapping entry as an independent sub-digest.
type pairHashable Pair

func (p pairHashable) UpdateHash(h hash.Hash) error {
	if err := p.Key.UpdateHash(h); err != nil {
		return err
	}

	return p.Value.UpdateHash(h)
}
