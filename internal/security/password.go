package security

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hash password hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// helper that compares a bcrypt hash with a plaintext password.

func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// IsHashed reports whether the value is already a bcrypt output, so update
// paths that re-save an unchanged hash never hash it a second time.
func IsHashed(value string) bool {
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$")
}

// EnsureHashed hashes the value unless it already is a bcrypt hash.
func EnsureHashed(value string) (string, error) {
	if IsHashed(value) {
		return value, nil
	}

	return HashPassword(value)
}
