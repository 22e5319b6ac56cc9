package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret123", BcryptCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, ComparePassword(hash, "secret123"))
	assert.False(t, ComparePassword(hash, "secret124"))
	assert.False(t, ComparePassword("", "secret123"))
}

func TestHashPasswordRejectsTooShort(t *testing.T) {
	_, err := HashPassword("12345", BcryptCost)
	assert.Error(t, err)
}

func TestHashPasswordDefaultCost(t *testing.T) {
	hash, err := HashPassword("secret123", 0)
	require.NoError(t, err)
	assert.True(t, ComparePassword(hash, "secret123"))
}
