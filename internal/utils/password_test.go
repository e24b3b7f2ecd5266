package utils

import (
	"testing"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("other", hash))
}

func TestValidateStrongPassword(t *testing.T) {
	assert.NoError(t, ValidateStrongPassword("Abcdef1!"))
	for _, weak := range []string{"Ab1!", "abcdefg1!", "ABCDEFG1!", "Abcdefgh!", "Abcdefgh1"} {
		assert.ErrorIs(t, ValidateStrongPassword(weak), apperrors.ErrValidation, weak)
	}
}
