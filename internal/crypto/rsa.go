package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
)

// RSAKeyBits is the identity key size. Identity keys only bootstrap
// sessions, so the slow 4096-bit operations are off the per-message path.
const RSAKeyBits = 4096

const publicPEMType = "PUBLIC KEY"

// GenerateRSA returns a fresh encryption-capable identity key pair.
func GenerateRSA() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, RSAKeyBits)
}

// WrapKey encrypts a symmetric key under pub using RSA-OAEP with SHA-256.
func WrapKey(pub *rsa.PublicKey, key []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, key, nil)
}

// UnwrapKey reverses WrapKey. Any mismatch (wrong recipient key,
// corrupted ciphertext) surfaces as ErrKeyUnwrapFailure.
func UnwrapKey(priv *rsa.PrivateKey, wrapped []byte) ([]byte, error) {
	key, err := rsa.DecryptOAEP(sha256.New(), nil, priv, wrapped, nil)
	if err != nil {
		return nil, domain.ErrKeyUnwrapFailure
	}
	return key, nil
}

// MarshalPublic encodes pub as PKIX DER.
func MarshalPublic(pub *rsa.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(pub)
}

// ParsePublic decodes a PKIX DER public key.
func ParsePublic(der []byte) (*rsa.PublicKey, error) {
	k, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	pub, ok := k.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return pub, nil
}

// MarshalPrivate encodes priv as PKCS#8 DER. The result is sensitive and
// must be wiped once sealed.
func MarshalPrivate(priv *rsa.PrivateKey) ([]byte, error) {
	return x509.MarshalPKCS8PrivateKey(priv)
}

// ParsePrivate decodes a PKCS#8 DER private key.
func ParsePrivate(der []byte) (*rsa.PrivateKey, error) {
	k, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	priv, ok := k.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return priv, nil
}

// EncodePublicPEM renders a PKIX DER public key as PEM for interchange.
func EncodePublicPEM(der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: publicPEMType, Bytes: der})
}

// DecodePublicPEM parses a PEM public key back to PKIX DER.
func DecodePublicPEM(data []byte) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != publicPEMType {
		return nil, errors.New("no PEM public key found")
	}
	return block.Bytes, nil
}
