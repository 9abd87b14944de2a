package bootstrap

import (
	"crypto/rand"
	"crypto/rsa"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/crypto"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/util/memzero"
)

// SessionKeyBytes is the size of the random symmetric key that both
// encrypts the first payload and seeds the ratchet root.
const SessionKeyBytes = 32

// Encrypt produces the first envelope of a session. A random session key
// AEAD-encrypts the plaintext, and the key itself travels RSA-OAEP
// wrapped under the recipient's identity key. senderRatchetPub is the
// initiator's first Double Ratchet public key; it rides in the envelope
// and is bound to the ciphertext as associated data.
//
// The returned seed equals the session key. The caller feeds it to
// ratchet.InitInitiator and must wipe it afterwards.
func Encrypt(plaintext []byte, recipient *rsa.PublicKey, senderRatchetPub domain.X25519Public) (domain.Envelope, []byte, error) {
	seed := make([]byte, SessionKeyBytes)
	if _, err := rand.Read(seed); err != nil {
		return domain.Envelope{}, nil, err
	}

	nonce, ct, err := crypto.SealAESGCM(seed, plaintext, senderRatchetPub.Slice())
	if err != nil {
		memzero.Zero(seed)
		return domain.Envelope{}, nil, err
	}

	wrapped, err := crypto.WrapKey(recipient, seed)
	if err != nil {
		memzero.Zero(seed)
		return domain.Envelope{}, nil, err
	}

	env := domain.Envelope{
		Algorithm:        domain.AlgAESGCM,
		KeyAlgorithm:     domain.AlgRSAOAEP,
		Ciphertext:       ct,
		Nonce:            nonce,
		SenderRatchetKey: senderRatchetPub.Slice(),
		WrappedKey:       wrapped,
	}
	return env, seed, nil
}

// Decrypt opens a bootstrap envelope. The wrapped session key is
// unwrapped first (ErrKeyUnwrapFailure on mismatch: wrong or corrupted
// recipient key), then the payload is AEAD-opened
// (ErrAuthenticationFailure on tampering). The returned seed feeds
// ratchet.InitResponder; the caller wipes it afterwards.
func Decrypt(env domain.Envelope, recipient *rsa.PrivateKey) (plaintext, seed []byte, err error) {
	if err := env.Validate(); err != nil {
		return nil, nil, err
	}
	if !env.IsBootstrap() {
		return nil, nil, domain.ErrMalformedEnvelope
	}

	seed, err = crypto.UnwrapKey(recipient, env.WrappedKey)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err = crypto.OpenAESGCM(seed, env.Nonce, env.Ciphertext, env.SenderRatchetKey)
	if err != nil {
		memzero.Zero(seed)
		return nil, nil, err
	}
	return plaintext, seed, nil
}
