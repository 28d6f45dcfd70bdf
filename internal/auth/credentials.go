package auth

import "crypto/subtle"

// CredentialVerifier decides whether a submitted password matches the value
// stored for the user.
type CredentialVerifier interface {
	Verify(stored, submitted string) bool
}

// PlaintextVerifier compares passwords stored verbatim. Swap it for a hashing
// verifier together with a migration of the stored values.
type PlaintextVerifier struct{}

// NewPlaintextVerifier creates a verifier for verbatim-stored passwords
func NewPlaintextVerifier() PlaintextVerifier {
	return PlaintextVerifier{}
}

// Verify reports whether submitted equals stored.
func (PlaintextVerifier) Verify(stored, submitted string) bool {
	return constantTimeCompare([]byte(stored), []byte(submitted))
}

func constantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
