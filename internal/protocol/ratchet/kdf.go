package ratchet

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/crypto"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/util/memzero"
)

// KDF labels are wire constants carried over from the original
// Crypt-Talk deployment; changing them breaks existing sessions.
var (
	infoRootKey    = []byte("Crypt-Talk-RootKey")
	infoMessageKey = []byte("Crypt-Talk-MessageKey")
	infoChainKey   = []byte("Crypt-Talk-ChainKey")
	infoDHSecret   = []byte("ECDH-SharedSecret")
)

const keySize = 32

// dhSecret runs X25519 and normalizes the raw output through HKDF.
func dhSecret(priv domain.X25519Private, pub domain.X25519Public) ([]byte, error) {
	raw, err := crypto.DH(priv, pub)
	if err != nil {
		return nil, err
	}
	out := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, raw[:], nil, infoDHSecret), out); err != nil {
		return nil, err
	}
	memzero.Zero(raw[:])
	return out, nil
}

// kdfRoot advances the root key with a DH output, yielding the next root
// key and a fresh chain key.
func kdfRoot(rootKey, dhOut []byte) (newRoot, chainKey []byte, err error) {
	buf := make([]byte, 2*keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, dhOut, rootKey, infoRootKey), buf); err != nil {
		return nil, nil, err
	}
	return buf[:keySize:keySize], buf[keySize:], nil
}

// kdfChain is the symmetric one-way ratchet: one step yields the message
// key for the current position and the next chain key. The input chain
// key is not recoverable from either output.
func kdfChain(chainKey []byte) (nextChain, messageKey []byte) {
	return hmacSum(chainKey, 0x02, infoChainKey), hmacSum(chainKey, 0x01, infoMessageKey)
}

// seedChains derives the initial root key and bootstrap chain key from
// the hybrid-bootstrap session key. The initiator uses the chain for
// sending, the responder for receiving.
func seedChains(seed []byte) (rootKey, bootChain []byte, err error) {
	buf := make([]byte, 2*keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, seed, nil, infoRootKey), buf); err != nil {
		return nil, nil, err
	}
	return buf[:keySize:keySize], buf[keySize:], nil
}

func hmacSum(key []byte, prefix byte, info []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte{prefix})
	h.Write(info)
	return h.Sum(nil)
}
