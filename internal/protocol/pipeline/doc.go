// Package pipeline is a reversible hardening wrapper applied over AEAD
// ciphertext before transmission: a keyed byte mask, a ChaCha20 stream
// pass, a keyed block permutation, and an HMAC-SHA256 trailer tag. Each
// layer is keyed from HKDF expansions of the message key under distinct
// labels, never the message key directly.
//
// The stack is defense-in-depth only; the forward-secrecy guarantees of
// the ratchet layer do not depend on it, and it can be disabled without
// changing the envelope shape.
package pipeline
