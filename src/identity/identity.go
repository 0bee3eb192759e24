// Package identity derives the content identity of an input document: the
// hex-encoded SHA-256 of its bytes. Renaming a file never changes its
// identity.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// FromBytes computes the content identity of a document.
func FromBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
