package hasher

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2KeyLength = 32
	// DefaultPBKDF2Iterations is used when the configured count is not positive
	DefaultPBKDF2Iterations = 100_000
)

// PBKDF2Hasher derives PIN digests with PBKDF2-SHA256. The salt is a pepper
// fixed per installation, so digests stay comparable across restarts.
type PBKDF2Hasher struct {
	pepper     []byte
	iterations int
}

// NewPBKDF2Hasher creates a PBKDF2 hasher
func NewPBKDF2Hasher(pepper string, iterations int) core.CredentialHasher {
	if iterations <= 0 {
		iterations = DefaultPBKDF2Iterations
	}
	return &PBKDF2Hasher{
		pepper:     []byte(pepper),
		iterations: iterations,
	}
}

// Digest returns the hex PBKDF2 key for pin
func (h *PBKDF2Hasher) Digest(pin string) string {
	key := pbkdf2.Key([]byte(pin), h.pepper, h.iterations, pbkdf2KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// Algorithm returns "pbkdf2"
func (h *PBKDF2Hasher) Algorithm() string {
	return AlgorithmPBKDF2
}
