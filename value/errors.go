package value

import "errors"

var (
	// ErrUnsupportedType is returned when construction encounters a value
	// outside the representable variants. The wrapping error names the
	// runtime type of the innermost offending value.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrIntegerRange is returned when an integer magnitude falls outside
	// the signed 64-bit range. Out-of-range inputs fail here instead of
	// being silently truncated.
	ErrIntegerRange = errors.New("integer magnitude outside signed 64-bit range")

	// ErrNilValue is returned when a nil *Value is supplied where a value
	// is required.
	ErrNilValue = errors.New("nil value")

	// ErrWrongKind is returned when an operation is invoked on a variant
	// that does not support it.
	ErrWrongKind = errors.New("wrong kind for operation")

	// ErrIndexRange is returned when a sequence index is out of range.
	ErrIndexRange = errors.New("index out of range")
)
