package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NonceSize is the number of random bytes behind session tokens and
// password-reset nonces (256 bits of entropy, 64 hex characters).
const NonceSize = 32

// RandomHex returns size cryptographically secure random bytes encoded as a
// lowercase hex string.
func RandomHex(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("random size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// NewSessionToken mints an opaque session identifier of the form
// "{prefix}:{64-hex}". The prefix distinguishes deployment tiers and carries
// no security weight; the hex part is the credential.
func NewSessionToken(prefix string) (string, error) {
	random, err := RandomHex(NonceSize)
	if err != nil {
		return "", err
	}
	return prefix + ":" + random, nil
}
