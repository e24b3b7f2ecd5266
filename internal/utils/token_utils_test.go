package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Hour, "nexkeep-test")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "nexkeep-test", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", -time.Minute, "nexkeep-test")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
