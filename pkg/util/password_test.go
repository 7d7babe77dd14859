package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1234")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1234", hash)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1234")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("secret1234", hash))
	assert.False(t, VerifyPassword("wrongpassword", hash))
	assert.False(t, VerifyPassword("secret1234", "not-a-hash"))
}
