package hasher

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
)

const (
	AlgorithmSHA256 = "sha256"
	AlgorithmPBKDF2 = "pbkdf2"
)

// Options selects and tunes the credential hasher
type Options struct {
	Algorithm  string
	Pepper     string
	Iterations int
}

// New builds the hasher named by opts.Algorithm; an empty name selects sha256
func New(opts Options) (core.CredentialHasher, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Algorithm)) {
	case "", AlgorithmSHA256:
		return NewSHA256Hasher(), nil
	case AlgorithmPBKDF2:
		if opts.Pepper == "" {
			return nil, fmt.Errorf("pbkdf2 hasher requires a pepper")
		}
		return NewPBKDF2Hasher(opts.Pepper, opts.Iterations), nil
	default:
		return nil, fmt.Errorf("unsupported PIN hash algorithm: %s", opts.Algorithm)
	}
}
