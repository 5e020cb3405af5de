package identity

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256Hasher(t *testing.T) {
	hasher := NewSHA256Hasher()

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, hasher.Hash("some-id"), hasher.Hash("some-id"))
	})

	t.Run("DistinctInputsDistinctHashes", func(t *testing.T) {
		assert.NotEqual(t, hasher.Hash("some-id"), hasher.Hash("other-id"))
	})

	t.Run("HexEncodedDigest", func(t *testing.T) {
		hash := hasher.Hash("some-id")
		assert.Len(t, hash, 64)
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]+$`), hash)
	})

	t.Run("KnownVector", func(t *testing.T) {
		// sha256 of the empty string
		assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hasher.Hash(""))
	})
}
