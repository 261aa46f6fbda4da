package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor applied to every stored password.
const PasswordHashCost = 10

// HashPassword derives a salted bcrypt digest from a plaintext password.
//
// The digest embeds the salt and the work factor, so no additional state
// is required for later verification.
//
// Parameters:
//
//	password - plaintext password to hash
//
// Returns:
//
//	string - bcrypt digest suitable for persistent storage
//	error  - non-nil if the password exceeds bcrypt's length limit or
//	         hashing fails
//
// Example usage:
//
//	digest, err := utils.HashPassword("password1")
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt digest.
//
// Parameters:
//
//	password - plaintext password supplied by the caller
//	digest   - bcrypt digest previously produced by HashPassword
//
// Returns:
//
//	bool - true if the password matches the digest
//
// Example usage:
//
//	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
//	    // reject credentials
//	}
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
