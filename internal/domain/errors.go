package domain

import "errors"

// Every cryptographic failure is fatal to the single call: no partial
// plaintext is returned and no session state is committed. Callers own
// retry policy; the core never retries an authentication failure.
var (
	// ErrWrongPassword covers both a bad password and a corrupted sealed
	// blob. The two are deliberately indistinguishable to the caller.
	ErrWrongPassword = errors.New("wrong password or corrupted key blob")

	// ErrKeyUnwrapFailure means the asymmetric unwrap of a bootstrap key
	// failed: wrong recipient key or corrupted envelope.
	ErrKeyUnwrapFailure = errors.New("bootstrap key unwrap failed")

	// ErrAuthenticationFailure is an AEAD or integrity-tag mismatch on any
	// layer: the ciphertext was tampered with.
	ErrAuthenticationFailure = errors.New("message authentication failed")

	// ErrStaleOrDuplicateMessage means the message number was already
	// consumed and no cached key remains for it.
	ErrStaleOrDuplicateMessage = errors.New("message already consumed or stale")

	// ErrTooManySkippedMessages means an out-of-order gap exceeds the
	// skipped-key cap. It is a hard failure, never silently truncated.
	ErrTooManySkippedMessages = errors.New("out-of-order gap exceeds skipped-key cap")

	// ErrSessionNotFound means no ratchet state exists for the conversation.
	ErrSessionNotFound = errors.New("no session for conversation")

	// ErrSessionConflict means the persisted session advanced concurrently;
	// the caller must retry against the refreshed state or fail.
	ErrSessionConflict = errors.New("session state changed concurrently")

	// ErrMalformedEnvelope means required envelope fields are missing or
	// have the wrong shape.
	ErrMalformedEnvelope = errors.New("malformed envelope")
)
