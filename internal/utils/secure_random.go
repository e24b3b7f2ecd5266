package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// RandomHexToken reads n bytes from crypto/rand and returns them hex encoded (2n characters).
func RandomHexToken(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("token length must be positive")
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IsHexToken reports whether s has the shape of a RandomHexToken(n) result.
func IsHexToken(s string, n int) bool {
	if len(s) != 2*n {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
