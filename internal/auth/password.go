package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/config"
)

func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NewSessionToken returns a fresh opaque bearer token and its SHA-256
// fingerprint. Only the fingerprint is ever persisted.
func NewSessionToken() (token string, fingerprint []byte, err error) {
	raw := make([]byte, config.SessionTokenLen)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}
	token = hex.EncodeToString(raw)
	fp := sha256.Sum256([]byte(token))
	return token, fp[:], nil
}

// Fingerprint hashes a presented token for session lookup.
func Fingerprint(token string) []byte {
	fp := sha256.Sum256([]byte(token))
	return fp[:]
}

// FingerprintEqual compares fingerprints in constant time.
func FingerprintEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
