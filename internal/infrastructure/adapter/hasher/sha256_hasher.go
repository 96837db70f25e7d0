package hasher

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
)

// SHA256Hasher produces unsalted hex SHA-256 digests. Stores created by
// earlier versions of the simulator hold digests in this form.
type SHA256Hasher struct{}

// NewSHA256Hasher creates the default hasher
func NewSHA256Hasher() core.CredentialHasher {
	return SHA256Hasher{}
}

// Digest returns the hex SHA-256 of pin
func (SHA256Hasher) Digest(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// Algorithm returns "sha256"
func (SHA256Hasher) Algorithm() string {
	return AlgorithmSHA256
}
