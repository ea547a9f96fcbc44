package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost the legacy records were hashed with, so old and
// new hashes verify through the same path.
const BcryptCost = 10

// HashPassword derives a salted bcrypt hash from a plaintext password.
// The random salt is embedded in the returned value, so verification only
// needs the stored hash.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a stored hash.
// A mismatch returns (false, nil); a malformed stored hash returns a non-nil
// error so corruption is never reported to the caller as bad credentials.
func CheckPassword(hashedPassword, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("error verifying password: %w", err)
}
