// Package identity manages the long-term RSA identity: generation,
// sealed persistence, fingerprints and public-key export.
package identity
