// Package bootstrap implements the hybrid cipher that opens a session:
// a fresh symmetric key encrypts the first payload with AES-256-GCM
// while the key itself travels RSA-OAEP wrapped under the recipient's
// long-term public key. The unwrapped key doubles as the Double Ratchet
// root seed.
//
// Hybrid encryption provides privacy, not sender authenticity; the
// ratchet layer's associated-data binding and the surrounding identity
// exchange carry that concern.
package bootstrap
