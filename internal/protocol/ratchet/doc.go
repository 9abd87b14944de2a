// Package ratchet implements the Double Ratchet session state machine:
// an X25519 Diffie–Hellman ratchet stepped whenever the conversation
// direction flips, and an HMAC-based symmetric ratchet advanced once per
// message so no message key is ever reused.
//
// State flows by value. Encrypt and Decrypt clone the input state,
// advance the clone, and return it alongside the output; callers commit
// the returned state only on success. A bounded skipped-key cache inside
// the state tolerates out-of-order and dropped deliveries.
package ratchet
