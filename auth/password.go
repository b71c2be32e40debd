// Package auth is responsible for authentication: password hashing, bearer
// token issuance and verification, user registration and login, and the HTTP
// middleware that resolves the current user on protected routes.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters used when creating new credentials. Verification honors
// whatever parameters are embedded in a stored credential, so these can be
// raised later without invalidating existing hashes.
const (
	pbkdf2Iterations = 100000
	pbkdf2SaltLength = 32
	pbkdf2KeyLength  = 32
)

// HashPassword derives a storable credential from a password using
// PBKDF2-HMAC-SHA256 with a fresh random salt. PBKDF2 places no limit on
// password length. The result has the form:
//
//	{iterations}${base64(salt)}${base64(derived key)}
func HashPassword(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)

	return fmt.Sprintf("%d$%s$%s",
		pbkdf2Iterations,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword checks a password against a stored credential string. It
// recomputes the derived key using the salt, iteration count, and key length
// parsed from the stored credential rather than the current defaults, then
// compares in constant time.
//
// Any parse failure (wrong field count, non-integer iteration count, invalid
// base64) yields false, never an error: a malformed stored credential behaves
// exactly like a wrong password.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 {
		return false
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	storedKey, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil || len(storedKey) == 0 {
		return false
	}

	computed := pbkdf2.Key([]byte(password), salt, iterations, len(storedKey), sha256.New)

	// subtle.ConstantTimeCompare examines every byte regardless of where the
	// first mismatch occurs, so response timing reveals nothing about partial
	// matches.
	return subtle.ConstantTimeCompare(storedKey, computed) == 1
}
