package hashing

import (
	"errors"
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("broken hashable")

// brokenHashable always fails to update the hash.
type brokenHashable struct{}

func (brokenHashable) UpdateHash(_ hash.Hash) error {
	return errBroken
}

func TestSha256(t *testing.T) {
	t.Parallel()

	digest, err := Sha256(HashableString("hello"))
	require.NoError(t, err)

	// Well-known SHA256 of "hello".
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", digest)
}

func TestXXH64(t *testing.T) {
	t.Parallel()

	a, err := XXH64(HashableString("hello"))
	require.NoError(t, err)

	b, err := XXH64(HashableString("hello"))
	require.NoError(t, err)

	c, err := XXH64(HashableString("world"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestXXH3(t *testing.T) {
	t.Parallel()

	a, err := XXH3(HashableBytes("hello"))
	require.NoError(t, err)

	b, err := XXH3(HashableString("hello"))
	require.NoError(t, err)

	c, err := XXH3(HashableBytes("world"))
	require.NoError(t, err)

	// Same bytes, same digest, regardless of the Hashable carrier.
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestHashable_Errors(t *testing.T) {
	t.Parallel()

	_, err := Sha256(brokenHashable{})
	assert.ErrorIs(t, err, errBroken)

	_, err = XXH64(brokenHashable{})
	assert.ErrorIs(t, err, errBroken)

	_, err = XXH3(brokenHashable{})
	assert.ErrorIs(t, err, errBroken)
}
