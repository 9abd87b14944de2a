package message

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/crypto"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/protocol/bootstrap"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/protocol/ratchet"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/util/memzero"
)

// Service is the boundary the transport layer consumes: encrypt a
// plaintext into an envelope, decrypt an envelope into a plaintext.
//
// High-level flow:
//   - Encrypt: no session yet means hybrid bootstrap (requires the
//     recipient's public key), otherwise a Double Ratchet step.
//   - Decrypt: a bootstrap envelope establishes the responder session,
//     everything else advances the existing ratchet.
//
// Per-conversation mutexes serialize both directions: chain advancement
// is stateful and non-idempotent, and two decrypts must not race for the
// same skipped key. Persistence is read-modify-write under the session
// store's sequence check; a loser retries once against refreshed state.
type Service struct {
	ids      domain.IdentityStore
	sessions domain.SessionStore
	cfg      ratchet.Config

	mu    sync.Mutex
	locks map[domain.ConversationID]*sync.Mutex
}

// New constructs a message Service.
func New(ids domain.IdentityStore, sessions domain.SessionStore, cfg ratchet.Config) *Service {
	return &Service{
		ids:      ids,
		sessions: sessions,
		cfg:      cfg,
		locks:    make(map[domain.ConversationID]*sync.Mutex),
	}
}

// Encrypt produces the envelope for plaintext addressed to peerUser.
//
// The first message of a conversation needs peerPublicPEM (the
// recipient's exported public key) and goes through the hybrid
// bootstrap; afterwards the argument is ignored and may be nil. The
// advanced session state is persisted before the envelope is returned.
func (s *Service) Encrypt(localUser, peerUser string, peerPublicPEM, plaintext []byte) (domain.Envelope, error) {
	conv := domain.NewConversationID(localUser, peerUser)
	lock := s.convLock(conv)
	lock.Lock()
	defer lock.Unlock()

	opID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{
		"component":    "message_service",
		"operation":    opID,
		"conversation": conv.String(),
	})

	rec, ok, err := s.sessions.LoadSession(conv)
	if err != nil {
		return domain.Envelope{}, err
	}
	if !ok {
		env, err := s.bootstrapEncrypt(conv, peerPublicPEM, plaintext)
		if err != nil {
			return domain.Envelope{}, err
		}
		log.WithField("bootstrap", true).Info("session established, first envelope produced")
		return env, nil
	}

	next, env, err := ratchet.Encrypt(s.cfg, rec.State, plaintext)
	if err != nil {
		return domain.Envelope{}, err
	}
	rec.State = next
	if _, err := s.sessions.SaveSession(rec); err != nil {
		// A concurrent writer advanced the session; redo the step on the
		// refreshed state so the emitted envelope matches what persists.
		if !errors.Is(err, domain.ErrSessionConflict) {
			return domain.Envelope{}, err
		}
		rec, ok, err = s.sessions.LoadSession(conv)
		if err != nil {
			return domain.Envelope{}, err
		}
		if !ok {
			return domain.Envelope{}, domain.ErrSessionNotFound
		}
		next, env, err = ratchet.Encrypt(s.cfg, rec.State, plaintext)
		if err != nil {
			return domain.Envelope{}, err
		}
		rec.State = next
		if _, err := s.sessions.SaveSession(rec); err != nil {
			return domain.Envelope{}, err
		}
	}
	log.WithFields(logrus.Fields{
		"message_number": env.MessageNumber,
		"ratchet_key":    crypto.B64(env.SenderRatchetKey),
		"phase":          next.Phase.String(),
	}).Debug("envelope produced")
	return env, nil
}

func (s *Service) bootstrapEncrypt(conv domain.ConversationID, peerPublicPEM, plaintext []byte) (domain.Envelope, error) {
	if len(peerPublicPEM) == 0 {
		return domain.Envelope{}, fmt.Errorf("%w: recipient public key required for first message", domain.ErrSessionNotFound)
	}
	der, err := crypto.DecodePublicPEM(peerPublicPEM)
	if err != nil {
		return domain.Envelope{}, err
	}
	pub, err := crypto.ParsePublic(der)
	if err != nil {
		return domain.Envelope{}, err
	}

	priv, ratchetPub, err := crypto.GenerateX25519()
	if err != nil {
		return domain.Envelope{}, err
	}
	env, seed, err := bootstrap.Encrypt(plaintext, pub, ratchetPub)
	if err != nil {
		return domain.Envelope{}, err
	}
	st, err := ratchet.InitInitiator(seed, priv, ratchetPub)
	memzero.Zero(seed)
	if err != nil {
		return domain.Envelope{}, err
	}
	rec := domain.SessionRecord{ID: conv, State: st}
	if _, err := s.sessions.SaveSession(rec); err != nil {
		return domain.Envelope{}, err
	}
	return env, nil
}

// Decrypt opens env from peerUser. password unseals the identity when
// env is a bootstrap envelope; it is unused otherwise. No session state
// is committed unless decryption succeeds.
func (s *Service) Decrypt(password, localUser, peerUser string, env domain.Envelope) ([]byte, error) {
	conv := domain.NewConversationID(localUser, peerUser)
	lock := s.convLock(conv)
	lock.Lock()
	defer lock.Unlock()

	opID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{
		"component":    "message_service",
		"operation":    opID,
		"conversation": conv.String(),
	})

	if err := env.Validate(); err != nil {
		return nil, err
	}

	rec, ok, err := s.sessions.LoadSession(conv)
	if err != nil {
		return nil, err
	}

	if env.IsBootstrap() {
		if ok {
			// A session already exists; a second bootstrap envelope is a
			// replay, not a reset.
			return nil, domain.ErrStaleOrDuplicateMessage
		}
		pt, err := s.bootstrapDecrypt(conv, password, env)
		if err != nil {
			return nil, err
		}
		log.WithField("bootstrap", true).Info("session established from bootstrap envelope")
		return pt, nil
	}

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	next, pt, err := ratchet.Decrypt(s.cfg, rec.State, env)
	if err != nil {
		return nil, err
	}
	rec.State = next
	if _, err := s.sessions.SaveSession(rec); err != nil {
		if !errors.Is(err, domain.ErrSessionConflict) {
			return nil, err
		}
		rec, ok, err = s.sessions.LoadSession(conv)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSessionNotFound
		}
		next, pt, err = ratchet.Decrypt(s.cfg, rec.State, env)
		if err != nil {
			return nil, err
		}
		rec.State = next
		if _, err := s.sessions.SaveSession(rec); err != nil {
			return nil, err
		}
	}
	log.WithFields(logrus.Fields{
		"message_number": env.MessageNumber,
		"ratchet_key":    crypto.B64(env.SenderRatchetKey),
		"phase":          next.Phase.String(),
	}).Debug("envelope opened")
	return pt, nil
}

func (s *Service) bootstrapDecrypt(conv domain.ConversationID, password string, env domain.Envelope) ([]byte, error) {
	id, err := s.ids.LoadIdentity(password)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(id.PrivateDER)

	priv, err := crypto.ParsePrivate(id.PrivateDER)
	if err != nil {
		return nil, err
	}

	pt, seed, err := bootstrap.Decrypt(env, priv)
	if err != nil {
		return nil, err
	}

	var senderPub domain.X25519Public
	copy(senderPub[:], env.SenderRatchetKey)
	st, err := ratchet.InitResponder(seed, senderPub)
	memzero.Zero(seed)
	if err != nil {
		return nil, err
	}
	rec := domain.SessionRecord{ID: conv, State: st}
	if _, err := s.sessions.SaveSession(rec); err != nil {
		return nil, err
	}
	return pt, nil
}

// DeleteSession destroys the conversation's persisted ratchet state and
// wipes the loaded key material.
func (s *Service) DeleteSession(localUser, peerUser string) error {
	conv := domain.NewConversationID(localUser, peerUser)
	lock := s.convLock(conv)
	lock.Lock()
	defer lock.Unlock()

	rec, ok, err := s.sessions.LoadSession(conv)
	if err != nil {
		return err
	}
	if ok {
		rec.State.Wipe()
	}
	return s.sessions.DeleteSession(conv)
}

func (s *Service) convLock(id domain.ConversationID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	return m
}
