package hasher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/hasher"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := hasher.Hash("s3cr3t")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cr3t", hash)

	assert.True(t, hasher.Compare("s3cr3t", hash))
	assert.False(t, hasher.Compare("wrong", hash))
	assert.False(t, hasher.Compare("s3cr3t", "not-a-hash"))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := hasher.Hash("s3cr3t")
	require.NoError(t, err)
	h2, err := hasher.Hash("s3cr3t")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
