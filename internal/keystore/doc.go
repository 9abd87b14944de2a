// Package keystore seals long-term private key material under a
// password-derived key for storage at rest.
//
// Seal and Unseal are the only operations. The KDF is intentionally
// expensive; callers should unseal once per operation, use the secret,
// and wipe it on every exit path.
package keystore
