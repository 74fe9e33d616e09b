package codec

import "errors"

var (
	// ErrBadTag is returned when a tag byte falls outside the enumerated
	// variants. It signals malformed or corrupted input.
	ErrBadTag = errors.New("tag byte outside enumerated range")

	// ErrTruncated is returned when the input ends before a declared
	// payload is complete.
	ErrTruncated = errors.New("truncated input")

	// ErrLength is returned when a declared length or count cannot be
	// satisfied by the remaining input.
	ErrLength = errors.New("declared length exceeds remaining input")

	// ErrTrailingData is returned by Decode when bytes remain after the
	// value. Use DecodeValue to read one value out of a longer buffer.
	ErrTrailingData = errors.New("trailing data after value")
)
