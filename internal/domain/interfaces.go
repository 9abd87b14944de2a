package domain

// IdentityStore persists the long-term identity, sealed under a password.
type IdentityStore interface {
	SaveIdentity(password string, id Identity) error
	LoadIdentity(password string) (Identity, error)
}

// SessionStore persists per-conversation ratchet state as an opaque
// versioned record. SaveSession enforces optimistic concurrency: the
// record's Seq must match the stored one (or the record must be new),
// otherwise ErrSessionConflict is returned and the caller retries
// against a freshly loaded record.
type SessionStore interface {
	LoadSession(id ConversationID) (SessionRecord, bool, error)
	SaveSession(rec SessionRecord) (SessionRecord, error)
	DeleteSession(id ConversationID) error
}
