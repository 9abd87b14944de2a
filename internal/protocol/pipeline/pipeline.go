package pipeline

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/util/memzero"
)

// TransformID names the layer stack and its order. It travels in the
// envelope so the receiver applies the exact inverse.
const TransformID = "mask+chacha20+permute+hmac/v1"

const tagSize = sha256.Size

// Domain-separation labels for the per-layer keys. Every layer is keyed
// from material derived from the message key, never the message key
// itself.
var (
	infoMask    = []byte("Crypt-Talk-Layer-Mask")
	infoStream  = []byte("Crypt-Talk-Layer-Stream")
	infoPermute = []byte("Crypt-Talk-Layer-Permute")
	infoTag     = []byte("Crypt-Talk-Layer-Tag")
)

type layerKeys struct {
	mask        [32]byte
	streamKey   [32]byte
	streamNonce [chacha20.NonceSize]byte
	permute     [32]byte
	tag         [32]byte
}

func (k *layerKeys) wipe() {
	memzero.Zero(k.mask[:])
	memzero.Zero(k.streamKey[:])
	memzero.Zero(k.streamNonce[:])
	memzero.Zero(k.permute[:])
	memzero.Zero(k.tag[:])
}

func deriveKeys(messageKey []byte) (*layerKeys, error) {
	var k layerKeys
	if err := expand(messageKey, infoMask, k.mask[:]); err != nil {
		return nil, err
	}
	buf := make([]byte, len(k.streamKey)+len(k.streamNonce))
	if err := expand(messageKey, infoStream, buf); err != nil {
		return nil, err
	}
	copy(k.streamKey[:], buf)
	copy(k.streamNonce[:], buf[len(k.streamKey):])
	memzero.Zero(buf)
	if err := expand(messageKey, infoPermute, k.permute[:]); err != nil {
		return nil, err
	}
	if err := expand(messageKey, infoTag, k.tag[:]); err != nil {
		return nil, err
	}
	return &k, nil
}

func expand(secret, info, out []byte) error {
	_, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, info), out)
	return err
}

// Wrap applies the layer stack over an AEAD ciphertext: keyed byte mask,
// ChaCha20 stream pass, keyed block permutation, then an HMAC-SHA256
// trailer over the result. The stream nonce is derived from the message
// key, which is unique per message, so it never repeats under one key.
func Wrap(messageKey, ciphertext []byte) ([]byte, error) {
	keys, err := deriveKeys(messageKey)
	if err != nil {
		return nil, err
	}
	defer keys.wipe()

	out := append([]byte(nil), ciphertext...)
	maskXOR(keys.mask[:], out)
	if err := streamXOR(keys, out); err != nil {
		return nil, err
	}
	out = applyPermutation(keys.permute[:], out)

	mac := hmac.New(sha256.New, keys.tag[:])
	mac.Write(out)
	return mac.Sum(out), nil
}

// Unwrap verifies the trailer tag and reverses the layers. Any mismatch,
// including a truncated input, is ErrAuthenticationFailure.
func Unwrap(messageKey, data []byte) ([]byte, error) {
	if len(data) < tagSize {
		return nil, domain.ErrAuthenticationFailure
	}
	keys, err := deriveKeys(messageKey)
	if err != nil {
		return nil, err
	}
	defer keys.wipe()

	body, tag := data[:len(data)-tagSize], data[len(data)-tagSize:]
	mac := hmac.New(sha256.New, keys.tag[:])
	mac.Write(body)
	if !hmac.Equal(tag, mac.Sum(nil)) {
		return nil, domain.ErrAuthenticationFailure
	}

	out := invertPermutation(keys.permute[:], body)
	if err := streamXOR(keys, out); err != nil {
		return nil, err
	}
	maskXOR(keys.mask[:], out)
	return out, nil
}

// maskXOR flattens byte patterns with a SHA-256 counter keystream.
func maskXOR(key, buf []byte) {
	var block [8]byte
	var counter uint64
	for off := 0; off < len(buf); off += sha256.Size {
		for i := 0; i < 8; i++ {
			block[i] = byte(counter >> (8 * i))
		}
		h := sha256.New()
		h.Write(key)
		h.Write(block[:])
		ks := h.Sum(nil)
		for i := 0; i < sha256.Size && off+i < len(buf); i++ {
			buf[off+i] ^= ks[i]
		}
		counter++
	}
}

func streamXOR(keys *layerKeys, buf []byte) error {
	c, err := chacha20.NewUnauthenticatedCipher(keys.streamKey[:], keys.streamNonce[:])
	if err != nil {
		return err
	}
	c.XORKeyStream(buf, buf)
	return nil
}
