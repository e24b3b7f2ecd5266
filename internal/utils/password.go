package utils

import (
	"fmt"
	"unicode"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to newly registered accounts.
const MinPasswordLength = 6

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateStrongPassword enforces the rules for password changes:
// at least 8 characters with an upper case letter, a lower case letter, a digit and a special character.
func ValidateStrongPassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrValidation)
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return fmt.Errorf("%w: password must contain an upper case letter, a lower case letter, a digit and a special character", apperrors.ErrValidation)
	}
	return nil
}
