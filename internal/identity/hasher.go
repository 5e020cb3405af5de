// Package identity provides the one-way id-hashing capability injected into
// the user directory. Hashes must be deterministic so that hashed ids and
// secondary tokens stay usable as storage lookup keys.
package identity

import (
	"crypto/sha256"
	"encoding/hex"

	"social-server/internal/interfaces"
)

// Compile-time check to ensure sha256Hasher implements IdentityHasher
var _ interfaces.IdentityHasher = (*sha256Hasher)(nil)

type sha256Hasher struct{}

// NewSHA256Hasher returns the default hex-encoded SHA-256 hasher.
func NewSHA256Hasher() interfaces.IdentityHasher {
	return &sha256Hasher{}
}

func (h *sha256Hasher) Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
