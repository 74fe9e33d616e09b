package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// word gives the test a minimal Comparable implementation.
type word string

func (s word) Equals(other word) bool {
	return s == other
}

func TestEquals(t *testing.T) {
	t.Parallel()

	assert.True(t, Equals[word](word("hello"), "hello"))
	assert.False(t, Equals[word](word("hello"), "world"))
	assert.True(t, Equals[word](word(""), ""))
}

func TestSign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "large negative",
			input:    -4711,
			expected: Less,
		},
		{
			name:     "minus one",
			input:    -1,
			expected: Less,
		},
		{
			name:     "zero",
			input:    0,
			expected: Equal,
		},
		{
			name:     "one",
			input:    1,
			expected: Greater,
		},
		{
			name:     "large positive",
			input:    255,
			expected: Greater,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Sign(tt.input))
		})
	}
}

func TestFloat64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a        float64
		b        float64
		expected int
	}{
		{
			name:     "less",
			a:        1.5,
			b:        2.5,
			expected: Less,
		},
		{
			name:     "greater",
			a:        2.5,
			b:        1.5,
			expected: Greater,
		},
		{
			name:     "equal",
			a:        3.0,
			b:        3.0,
			expected: Equal,
		},
		{
			name:     "negative zero equals zero",
			a:        math.Copysign(0, -1),
			b:        0,
			expected: Equal,
		},
		{
			name:     "nan compares equal to everything",
			a:        math.NaN(),
			b:        42,
			expected: Equal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Float64(tt.a, tt.b))
		})
	}
}
