package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short hex fingerprint of a public key encoding.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars). Safe
// for logs and display; never derived from private material.
func Fingerprint(pub []byte) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:10])
}
