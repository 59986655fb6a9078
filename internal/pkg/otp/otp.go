package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// Generate returns a 6-digit numeric code in [100000, 999999].
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", codeMin+n.Int64()), nil
}

// Hash returns the hex sha256 digest of a code. Codes are stored and
// compared only in this form, never in cleartext.
func Hash(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Matches compares a candidate code against a stored digest in constant time.
func Matches(code, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(Hash(code)), []byte(storedHash)) == 1
}

// ExpiresAt computes the unix-seconds expiry for a code issued at now.
func ExpiresAt(now time.Time, ttl time.Duration) int64 {
	return now.Add(ttl).Unix()
}
