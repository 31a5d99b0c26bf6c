package session

import (
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// TokenGenerator produces raw session token material.
// Implementations must be safe for concurrent use.
type TokenGenerator interface {
	// Generate returns exactly size random bytes.
	Generate(size int) []byte
}

// TokenEncoder maps raw token bytes to a cookie-safe session id.
// Encode must be deterministic and free of side effects.
type TokenEncoder interface {
	Encode(token []byte) string
}

// RandomGenerator draws token bytes from crypto/rand.
// A failing system CSPRNG crashes the process; there is no error to handle.
type RandomGenerator struct{}

// Generate returns size bytes read from the system CSPRNG.
func (RandomGenerator) Generate(size int) []byte {
	b := make([]byte, size)
	_, _ = rand.Read(b)
	return b
}

// Base58Encoder encodes tokens with the Bitcoin base58 alphabet.
// The output never contains characters that need escaping in a cookie value.
type Base58Encoder struct{}

// Encode returns the base58 representation of token.
func (Base58Encoder) Encode(token []byte) string {
	return base58.Encode(token)
}

// HashEncoder digests the token with BLAKE2b-256 before base58 encoding,
// keeping cookie values short regardless of the configured token size.
type HashEncoder struct{}

// Encode returns base58(BLAKE2b-256(token)).
func (HashEncoder) Encode(token []byte) string {
	sum := blake2b.Sum256(token)
	return base58.Encode(sum[:])
}
