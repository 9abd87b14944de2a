// Package message orchestrates the two operations external collaborators
// consume: encrypt a plaintext for a peer into a wire envelope, and
// decrypt a received envelope. It owns session bootstrap, per-
// conversation serialization, and persistence with optimistic
// concurrency; the cryptography lives in internal/protocol.
package message
