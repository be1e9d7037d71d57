package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	assert.True(t, CheckPassword(hash, "rahasia123"))
	assert.False(t, CheckPassword(hash, "rahasia124"))
	assert.False(t, CheckPassword("not-a-hash", "rahasia123"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(7, "budi")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "budi", claims.Username)
	assert.Equal(t, "stockpilot", claims.Issuer)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(7, "budi")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[2] = strings.Repeat("x", len(parts[2]))

	_, err = ValidateToken(strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
