// Package crypto exposes the primitives used by Crypt-Talk.
//
// Contents
//
//   - RSA-4096 identity keys: generation, OAEP key wrap/unwrap, PKIX/PEM
//     interchange encoding (GenerateRSA, WrapKey, UnwrapKey, ...)
//   - AES-256-GCM sealing with random nonces (SealAESGCM, OpenAESGCM)
//   - X25519 ratchet key generation, clamping and Diffie–Hellman
//     (GenerateX25519, DH)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Unwrap and open failures map onto the domain error taxonomy
// (ErrKeyUnwrapFailure, ErrAuthenticationFailure) so callers can
// distinguish a wrong recipient key from tampered ciphertext. Callers
// treat returned secrets as sensitive and wipe them with
// internal/util/memzero when done.
package crypto
