package core

// CredentialHasher turns a plaintext PIN into a comparable one-way digest.
// Implementations must be deterministic: the same PIN always yields the same digest.
type CredentialHasher interface {
	// Digest returns the hex digest of pin
	Digest(pin string) string
	// Algorithm names the transform, e.g. "sha256"
	Algorithm() string
}
