package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
)

// SealAESGCM encrypts plaintext under a 32-byte key with AES-256-GCM and
// a fresh random nonce. ad is authenticated but not encrypted.
func SealAESGCM(key, plaintext, ad []byte) (nonce, ciphertext []byte, err error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, domain.GCMNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return nonce, aead.Seal(nil, nonce, plaintext, ad), nil
}

// OpenAESGCM decrypts SealAESGCM output. A tag mismatch surfaces as
// ErrAuthenticationFailure.
func OpenAESGCM(key, nonce, ciphertext, ad []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, nonce, ciphertext, ad)
	if err != nil {
		return nil, domain.ErrAuthenticationFailure
	}
	return pt, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
