// Package sha256 provides SHA-256 digests used for fallback natural keys.
package sha256

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestWidth is the number of hex characters kept by Short.
const DigestWidth = 16

// Hasher implements crawler.Hasher using SHA-256.
type Hasher struct{}

// New returns a SHA-256 hasher.
func New() *Hasher {
	return &Hasher{}
}

// Hash hashes the input and returns a hex digest.
func (h *Hasher) Hash(data []byte) (string, error) {
	return Sum(data), nil
}

// Sum returns the full hex digest of data.
func Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Short returns the first DigestWidth hex characters of the digest of s.
func Short(s string) string {
	return Sum([]byte(s))[:DigestWidth]
}
