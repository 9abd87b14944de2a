package domain

import (
	"sort"
	"strings"
)

// X25519Public is a Curve25519 ratchet public key.
type X25519Public [32]byte

func (p X25519Public) Slice() []byte { return p[:] }

// X25519Private is a Curve25519 ratchet private key.
type X25519Private [32]byte

func (k X25519Private) Slice() []byte { return k[:] }

// ConversationID identifies the session between two users. It is
// deterministic: both sides derive the same ID regardless of who
// initiated.
type ConversationID string

// NewConversationID builds the canonical ID for a user pair.
func NewConversationID(a, b string) ConversationID {
	ids := []string{a, b}
	sort.Strings(ids)
	return ConversationID(strings.Join(ids, ":"))
}

func (c ConversationID) String() string { return string(c) }

// Identity holds a user's long-term RSA key pair in DER form.
// PrivateDER is present only while an operation needs it; at rest it
// lives inside a keystore sealed blob.
type Identity struct {
	UserID     string `json:"user_id"`
	PublicDER  []byte `json:"public_der"`
	PrivateDER []byte `json:"private_der"`
}

// RatchetPhase tags the session state machine.
type RatchetPhase int

const (
	PhaseUninitialized RatchetPhase = iota
	PhaseBootstrapped
	PhaseActive
)

func (p RatchetPhase) String() string {
	switch p {
	case PhaseBootstrapped:
		return "bootstrapped"
	case PhaseActive:
		return "active"
	default:
		return "uninitialized"
	}
}

// SkippedKey is a derived-but-unconsumed message key retained for an
// out-of-order arrival. Entries are insertion-ordered in
// RatchetState.Skipped so the eviction policy (drop oldest) is explicit.
type SkippedKey struct {
	RatchetPub X25519Public `json:"ratchet_pub"`
	N          uint32       `json:"n"`
	Key        []byte       `json:"key"`
}

// RatchetState is one side's Double Ratchet state. It is advanced by
// value: protocol functions clone, mutate the clone, and the caller
// commits the returned state only on success.
type RatchetState struct {
	Phase RatchetPhase `json:"phase"`

	RootKey []byte        `json:"root_key"`
	DHPriv  X25519Private `json:"dh_priv"`
	DHPub   X25519Public  `json:"dh_pub"`

	PeerDHPub  X25519Public `json:"peer_dh_pub"`
	HasPeerKey bool         `json:"has_peer_key"`

	// PendingRatchet is set when the peer's ratchet key advanced and our
	// sending chain has not been rotated against it yet. The next Encrypt
	// performs the DH step.
	PendingRatchet bool `json:"pending_ratchet"`

	SendCK []byte `json:"send_ck"`
	RecvCK []byte `json:"recv_ck"`

	SendN        uint32 `json:"send_n"`
	RecvN        uint32 `json:"recv_n"`
	PrevChainLen uint32 `json:"prev_chain_len"`

	Skipped []SkippedKey `json:"skipped,omitempty"`
}

// Clone deep-copies the state, including key slices, so callers can
// advance a scratch copy without touching the committed state.
func (s RatchetState) Clone() RatchetState {
	out := s
	out.RootKey = append([]byte(nil), s.RootKey...)
	out.SendCK = append([]byte(nil), s.SendCK...)
	out.RecvCK = append([]byte(nil), s.RecvCK...)
	out.Skipped = make([]SkippedKey, len(s.Skipped))
	for i, sk := range s.Skipped {
		out.Skipped[i] = SkippedKey{RatchetPub: sk.RatchetPub, N: sk.N, Key: append([]byte(nil), sk.Key...)}
	}
	return out
}

// Wipe zeroes all key material held by the state.
func (s *RatchetState) Wipe() {
	zero(s.RootKey)
	zero(s.SendCK)
	zero(s.RecvCK)
	zero(s.DHPriv[:])
	for i := range s.Skipped {
		zero(s.Skipped[i].Key)
	}
	s.Skipped = nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SessionRecord is what SessionStore persists: the ratchet state plus a
// schema number and an optimistic-concurrency sequence.
type SessionRecord struct {
	Schema int            `json:"schema"`
	ID     ConversationID `json:"id"`
	Seq    uint64         `json:"seq"`
	State  RatchetState   `json:"state"`
}

// SessionSchemaVersion is bumped on incompatible SessionRecord changes.
const SessionSchemaVersion = 1
