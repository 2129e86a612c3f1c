package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
	assert.False(t, CheckPasswordHash("hunter22", "not-a-hash"))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("<script>alert(1)</script>hello"))
	assert.Equal(t, "plain text", SanitizeText("plain text"))
}
