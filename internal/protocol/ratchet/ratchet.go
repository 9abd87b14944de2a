package ratchet

import (
	"encoding/binary"
	"errors"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/crypto"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/protocol/pipeline"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/util/memzero"
)

// DefaultMaxSkipped caps cached out-of-order message keys per session.
const DefaultMaxSkipped = 1000

var (
	// ErrUninitialized means the session has not been bootstrapped.
	ErrUninitialized = errors.New("ratchet session is uninitialized")

	errChainUninitialised = errors.New("ratchet chain key is uninitialised")
)

// Config tunes a session. The zero value is usable.
type Config struct {
	// MaxSkipped caps the skipped-key cache; <=0 means DefaultMaxSkipped.
	MaxSkipped int
	// Harden applies the layered cipher pipeline over AEAD ciphertext.
	Harden bool
}

func (c Config) maxSkipped() int {
	if c.MaxSkipped > 0 {
		return c.MaxSkipped
	}
	return DefaultMaxSkipped
}

// InitInitiator seeds a session from the bootstrap key on the sending
// side. priv/pub is the ratchet key pair already advertised in the
// bootstrap envelope. The sending chain starts on the seed; the first DH
// step happens once the peer's ratchet key arrives.
func InitInitiator(seed []byte, priv domain.X25519Private, pub domain.X25519Public) (domain.RatchetState, error) {
	rootKey, bootChain, err := seedChains(seed)
	if err != nil {
		return domain.RatchetState{}, err
	}
	return domain.RatchetState{
		Phase:   domain.PhaseBootstrapped,
		RootKey: rootKey,
		DHPriv:  priv,
		DHPub:   pub,
		SendCK:  bootChain,
	}, nil
}

// InitResponder seeds a session from the bootstrap key on the receiving
// side. The receiving chain starts on the seed; PendingRatchet forces a
// DH step before the responder's first send.
func InitResponder(seed []byte, senderRatchetPub domain.X25519Public) (domain.RatchetState, error) {
	rootKey, bootChain, err := seedChains(seed)
	if err != nil {
		return domain.RatchetState{}, err
	}
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return domain.RatchetState{}, err
	}
	return domain.RatchetState{
		Phase:          domain.PhaseBootstrapped,
		RootKey:        rootKey,
		DHPriv:         priv,
		DHPub:          pub,
		PeerDHPub:      senderRatchetPub,
		HasPeerKey:     true,
		PendingRatchet: true,
		RecvCK:         bootChain,
	}, nil
}

// Encrypt advances a scratch copy of st and produces the envelope for
// plaintext. The returned state is committed by the caller only after
// the envelope is accepted for delivery; st itself is never mutated.
func Encrypt(cfg Config, st domain.RatchetState, plaintext []byte) (domain.RatchetState, domain.Envelope, error) {
	if st.Phase == domain.PhaseUninitialized {
		return st, domain.Envelope{}, ErrUninitialized
	}
	next := st.Clone()

	// DH ratchet step when the peer advanced since our chain was built.
	// A fresh ephemeral pair every step; the old one is discarded.
	if next.PendingRatchet && next.HasPeerKey {
		priv, pub, err := crypto.GenerateX25519()
		if err != nil {
			return st, domain.Envelope{}, err
		}
		dh, err := dhSecret(priv, next.PeerDHPub)
		if err != nil {
			return st, domain.Envelope{}, err
		}
		newRoot, sendCK, err := kdfRoot(next.RootKey, dh)
		memzero.Zero(dh)
		if err != nil {
			return st, domain.Envelope{}, err
		}
		next.PrevChainLen = next.SendN
		next.SendN = 0
		next.DHPriv, next.DHPub = priv, pub
		memzero.Zero(next.RootKey)
		next.RootKey = newRoot
		memzero.Zero(next.SendCK)
		next.SendCK = sendCK
		next.PendingRatchet = false
	}
	if len(next.SendCK) == 0 {
		return st, domain.Envelope{}, errChainUninitialised
	}

	nextCK, mk := kdfChain(next.SendCK)
	memzero.Zero(next.SendCK)
	next.SendCK = nextCK

	env := domain.Envelope{
		Algorithm:           domain.AlgAESGCM,
		SenderRatchetKey:    next.DHPub.Slice(),
		MessageNumber:       next.SendN,
		PreviousChainLength: next.PrevChainLen,
	}
	nonce, ct, err := crypto.SealAESGCM(mk, plaintext, headerAD(env))
	if err != nil {
		memzero.Zero(mk)
		return st, domain.Envelope{}, err
	}
	if cfg.Harden {
		ct, err = pipeline.Wrap(mk, ct)
		if err != nil {
			memzero.Zero(mk)
			return st, domain.Envelope{}, err
		}
		env.Transform = pipeline.TransformID
	}
	// The message key is gone after this point; only the envelope can
	// carry the plaintext forward.
	memzero.Zero(mk)

	env.Nonce, env.Ciphertext = nonce, ct
	next.SendN++
	next.Phase = domain.PhaseActive
	return next, env, nil
}

// Decrypt consumes an envelope against a scratch copy of st. On any
// failure the scratch copy is wiped and st is returned unchanged, so a
// failed decryption never leaves the session half-advanced.
func Decrypt(cfg Config, st domain.RatchetState, env domain.Envelope) (domain.RatchetState, []byte, error) {
	if err := env.Validate(); err != nil {
		return st, nil, err
	}
	if env.IsBootstrap() {
		return st, nil, domain.ErrMalformedEnvelope
	}
	if st.Phase == domain.PhaseUninitialized {
		return st, nil, ErrUninitialized
	}

	var senderPub domain.X25519Public
	copy(senderPub[:], env.SenderRatchetKey)

	next := st.Clone()

	// Out-of-order arrival: a key cached earlier, possibly on a retired
	// chain. Consumed keys leave the cache immediately.
	if mk, ok := cacheTake(&next, senderPub, env.MessageNumber); ok {
		pt, err := openEnvelope(mk, env)
		memzero.Zero(mk)
		if err != nil {
			next.Wipe()
			return st, nil, err
		}
		next.Phase = domain.PhaseActive
		return next, pt, nil
	}

	// New remote ratchet key: finish the retiring chain up to the
	// advertised length, then step the DH ratchet.
	if !next.HasPeerKey || senderPub != next.PeerDHPub {
		if len(next.RecvCK) > 0 {
			if err := skipAhead(cfg, &next, env.PreviousChainLength); err != nil {
				next.Wipe()
				return st, nil, err
			}
		}
		dh, err := dhSecret(next.DHPriv, senderPub)
		if err != nil {
			next.Wipe()
			return st, nil, err
		}
		newRoot, recvCK, err := kdfRoot(next.RootKey, dh)
		memzero.Zero(dh)
		if err != nil {
			next.Wipe()
			return st, nil, err
		}
		memzero.Zero(next.RootKey)
		next.RootKey = newRoot
		memzero.Zero(next.RecvCK)
		next.RecvCK = recvCK
		next.PeerDHPub = senderPub
		next.HasPeerKey = true
		next.RecvN = 0
		// Our sending chain is now stale; the next Encrypt rotates it.
		next.PendingRatchet = true
	}

	if env.MessageNumber < next.RecvN {
		next.Wipe()
		return st, nil, domain.ErrStaleOrDuplicateMessage
	}
	if len(next.RecvCK) == 0 {
		next.Wipe()
		return st, nil, errChainUninitialised
	}
	if err := skipAhead(cfg, &next, env.MessageNumber); err != nil {
		next.Wipe()
		return st, nil, err
	}

	nextCK, mk := kdfChain(next.RecvCK)
	memzero.Zero(next.RecvCK)
	next.RecvCK = nextCK
	next.RecvN++

	pt, err := openEnvelope(mk, env)
	memzero.Zero(mk)
	if err != nil {
		next.Wipe()
		return st, nil, err
	}
	next.Phase = domain.PhaseActive
	return next, pt, nil
}

// skipAhead derives and caches message keys on the receiving chain up to
// (but not including) until. A gap beyond the cap is a hard failure.
func skipAhead(cfg Config, st *domain.RatchetState, until uint32) error {
	if until <= st.RecvN {
		return nil
	}
	if until-st.RecvN > uint32(cfg.maxSkipped()) {
		return domain.ErrTooManySkippedMessages
	}
	for st.RecvN < until {
		nextCK, mk := kdfChain(st.RecvCK)
		memzero.Zero(st.RecvCK)
		st.RecvCK = nextCK
		cachePut(st, cfg.maxSkipped(), st.PeerDHPub, st.RecvN, mk)
		st.RecvN++
	}
	return nil
}

// openEnvelope reverses the hardening pipeline if present, then opens
// the AEAD layer.
func openEnvelope(mk []byte, env domain.Envelope) ([]byte, error) {
	ct := env.Ciphertext
	switch env.Transform {
	case "":
	case pipeline.TransformID:
		var err error
		ct, err = pipeline.Unwrap(mk, ct)
		if err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrMalformedEnvelope
	}
	return crypto.OpenAESGCM(mk, env.Nonce, ct, headerAD(env))
}

// headerAD binds the ratchet header to the ciphertext as associated
// data: sender ratchet key, previous chain length, message number.
func headerAD(env domain.Envelope) []byte {
	out := make([]byte, 0, len(env.SenderRatchetKey)+8)
	out = append(out, env.SenderRatchetKey...)
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], env.PreviousChainLength)
	out = append(out, b[:]...)
	binary.BigEndian.PutUint32(b[:], env.MessageNumber)
	return append(out, b[:]...)
}
