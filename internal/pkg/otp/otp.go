package otp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	codeMin  = 100000
	codeSpan = 900000 // [100000, 999999]
)

// Code generates a uniformly distributed 6-digit verification code.
// The range excludes values below 100000, so the result never needs zero-padding.
func Code() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// TrackingID generates an unguessable identifier for the open-tracking pixel:
// 16 bytes of cryptographically strong randomness, hex-encoded. Collisions are
// negligible, so no uniqueness check is performed.
func TrackingID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate tracking id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
