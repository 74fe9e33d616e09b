package value

import (
	"fmt"
	"math"
	"sort"
)

// FromAny reflects a dynamic Go object graph into a validated Value tree.
// It accepts nil, booleans, the signed and unsigned integer types, float32
// and float64, strings and byte slices, []any (variable sequence),
// map[string]any and []Pair (mapping), and already-constructed *Value
// nodes. Validation is recursive and fails immediately at the innermost
// value outside the representable set, naming its runtime type.
//
// Unsigned values above math.MaxInt64 fail with ErrIntegerRange rather
// than wrapping around.
//
// Fixed sequences have no dynamic Go counterpart; build them with
// [FixedSequence].
func FromAny(x any) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return None(), nil

	case *Value:
		if t == nil {
			return nil, ErrNilValue
		}

		return t, nil

	case bool:
		// Booleans reflect as integers, matching dynamic runtimes where
		// bool is an integer subtype.
		if t {
			return Integer(1), nil
		}

		return Integer(0), nil

	case int:
		return Integer(int64(t)), nil
	case int8:
		return Integer(int64(t)), nil
	case int16:
		return Integer(int64(t)), nil
	case int32:
		return Integer(int64(t)), nil
	case int64:
		return Integer(t), nil

	case uint8:
		return Integer(int64(t)), nil
	case uint16:
		return Integer(int64(t)), nil
	case uint32:
		return Integer(int64(t)), nil
	case uint:
		if uint64(t) > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d", ErrIntegerRange, t)
		}

		return Integer(int64(t)), nil
	case uint64:
		if t > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d", ErrIntegerRange, t)
		}

		return Integer(int64(t)), nil

	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil

	case string:
		return Text(t), nil
	case []byte:
		return Text(string(t)), nil

	case []any:
		elems := make([]*Value, len(t))

		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return nil, err
			}

			elems[i] = v
		}

		return VariableSequence(elems...)

	case map[string]any:
		return fromStringMap(t)

	case []Pair:
		return Mapping(t...)

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
	}
}

// fromStringMap reflects a map[string]any into a mapping. Go map iteration
// order is random, so keys are inserted in sorted order to keep the
// resulting iteration order deterministic; consumers still must not rely
// on any particular mapping order.
func fromStringMap(m map[string]any) (*Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := &Value{kind: KindMapping}

	for _, k := range keys {
		v, err := FromAny(m[k])
		if err != nil {
			return nil, err
		}

		if err := out.Set(Text(k), v); err != nil {
			return nil, err
		}
	}

	return out, nil
}
