package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// Verification token generation and hashing.
//
// Raw tokens are 32 cryptographically random bytes, hex encoded (64 chars).
// Only the SHA-256 hash of the raw token is stored; the raw token is sent to
// the user once, in the verification link. The mapping is one-way: there is
// no lookup from hash back to raw token.

const (
	// VerificationTokenBytes is the raw entropy per token; hex encoding
	// doubles it to a 64-character string.
	VerificationTokenBytes = 32

	// VerificationTokenTTL is how long a freshly issued token stays valid.
	VerificationTokenTTL = 5 * time.Minute
)

// GenerateVerificationToken returns a new hex-encoded random raw token.
func GenerateVerificationToken() (string, error) {
	buf := make([]byte, VerificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashVerificationToken returns the hex-encoded SHA-256 digest of a raw
// token.
func HashVerificationToken(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("token cannot be empty")
	}
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:]), nil
}

// VerificationTokenExpiry returns the expiry timestamp for a token issued
// now.
func VerificationTokenExpiry() time.Time {
	return time.Now().Add(VerificationTokenTTL)
}
