package keystore

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/util/memzero"
)

const (
	// The current supported version of the sealed blob format.
	blobFormatVersion = 1

	saltSize = 16
	keySize  = chacha20poly1305.KeySize

	// DefaultIterations is the PBKDF2-SHA256 work factor. Deliberately
	// slow to resist offline brute force; raise it via Seal's iter
	// parameter, never lower it below this floor.
	DefaultIterations = 100_000
)

// SealedBlob holds an encrypted secret together with the KDF parameters
// needed to open it. Salt and nonce are freshly random on every Seal, so
// a nonce is never reused under the same derived key.
type SealedBlob struct {
	V          int    `json:"v"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Iterations int    `json:"iterations"`
	Ciphertext []byte `json:"ciphertext"`
}

// Seal derives a key from password with PBKDF2-SHA256 and encrypts
// secret with ChaCha20-Poly1305. iter values below DefaultIterations are
// raised to the floor.
func Seal(secret []byte, password string, iter int) (SealedBlob, error) {
	if iter < DefaultIterations {
		iter = DefaultIterations
	}
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return SealedBlob{}, err
	}
	key := pbkdf2.Key([]byte(password), salt, iter, keySize, sha256.New)
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return SealedBlob{}, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return SealedBlob{}, err
	}
	return SealedBlob{
		V:          blobFormatVersion,
		Salt:       salt,
		Nonce:      nonce,
		Iterations: iter,
		Ciphertext: aead.Seal(nil, nonce, secret, salt),
	}, nil
}

// Unseal re-derives the key and opens the blob. A wrong password and a
// corrupted blob both return ErrWrongPassword; the caller's log context
// is the only place the two are told apart.
func Unseal(blob SealedBlob, password string) ([]byte, error) {
	if blob.V > blobFormatVersion {
		return nil, fmt.Errorf("unsupported sealed blob version %d", blob.V)
	}
	if len(blob.Nonce) != chacha20poly1305.NonceSize {
		return nil, domain.ErrWrongPassword
	}
	key := pbkdf2.Key([]byte(password), blob.Salt, blob.Iterations, keySize, sha256.New)
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	secret, err := aead.Open(nil, blob.Nonce, blob.Ciphertext, blob.Salt)
	if err != nil {
		return nil, domain.ErrWrongPassword
	}
	return secret, nil
}
