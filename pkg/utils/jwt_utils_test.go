package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "reception", "STAFF")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "reception", claims.Username)
	assert.Equal(t, "STAFF", claims.Role)
}

func TestRefreshTokenCarriesOnlyUserID(t *testing.T) {
	token, err := GenerateRefreshToken(42)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Empty(t, claims.Username)
	assert.Empty(t, claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)

	token, err := GenerateAccessToken(1, "admin", "ADMIN")
	require.NoError(t, err)
	_, err = ValidateToken(token + "tampered")
	assert.Error(t, err)
}
