// Package auth holds credential primitives: password hashing, login sessions,
// signed session cookies and bearer token verification.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltBytes    = 16
)

// ErrMalformedHash reports a stored hash that is not in hash.salt form.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword returns hex(scrypt(password, salt)).salt with a fresh random salt.
func HashPassword(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	key, err := derive(password, salt)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + "." + salt, nil
}

// VerifyPassword reports whether password matches stored. Comparison is constant time.
func VerifyPassword(password, stored string) (bool, error) {
	hashHex, salt, ok := strings.Cut(stored, ".")
	if !ok || hashHex == "" || salt == "" {
		return false, ErrMalformedHash
	}
	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return false, ErrMalformedHash
	}

	got, err := derive(password, salt)
	if err != nil {
		return false, err
	}
	return len(want) == len(got) && subtle.ConstantTimeCompare(want, got) == 1, nil
}

// derive feeds the salt's hex text, not its decoded bytes, to scrypt.
func derive(password, salt string) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}
