package domain

import (
	"encoding/json"
	"fmt"
)

// Algorithm tags carried in every envelope so future migrations remain
// decodable.
const (
	AlgAESGCM  = "AES-256-GCM"
	AlgRSAOAEP = "RSA-OAEP-SHA256"
)

// GCMNonceSize is the AES-GCM nonce length used throughout.
const GCMNonceSize = 12

// Envelope is the wire message handed to the transport layer. Binary
// fields serialize as base64 via encoding/json. WrappedKey is present
// only on the first message of a session.
type Envelope struct {
	Algorithm    string `json:"algorithm"`
	KeyAlgorithm string `json:"key_algorithm,omitempty"`

	Ciphertext []byte `json:"ciphertext"`
	Nonce      []byte `json:"nonce"`

	SenderRatchetKey    []byte `json:"sender_ratchet_key"`
	MessageNumber       uint32 `json:"message_number"`
	PreviousChainLength uint32 `json:"previous_chain_length"`

	WrappedKey []byte `json:"wrapped_key,omitempty"`

	// Transform names the reversible hardening pipeline applied over the
	// AEAD ciphertext, empty when none was.
	Transform string `json:"transform,omitempty"`
}

// IsBootstrap reports whether this is the first message of a session.
func (e Envelope) IsBootstrap() bool { return len(e.WrappedKey) > 0 }

// Validate checks field presence and shapes.
func (e Envelope) Validate() error {
	if e.Algorithm != AlgAESGCM {
		return fmt.Errorf("%w: unknown algorithm %q", ErrMalformedEnvelope, e.Algorithm)
	}
	if len(e.Ciphertext) == 0 {
		return fmt.Errorf("%w: empty ciphertext", ErrMalformedEnvelope)
	}
	if len(e.Nonce) != GCMNonceSize {
		return fmt.Errorf("%w: nonce must be %d bytes", ErrMalformedEnvelope, GCMNonceSize)
	}
	if len(e.SenderRatchetKey) != 32 {
		return fmt.Errorf("%w: sender ratchet key must be 32 bytes", ErrMalformedEnvelope)
	}
	if e.IsBootstrap() && e.KeyAlgorithm != AlgRSAOAEP {
		return fmt.Errorf("%w: unknown key algorithm %q", ErrMalformedEnvelope, e.KeyAlgorithm)
	}
	return nil
}

// Encode serializes the envelope for the transport layer.
func (e Envelope) Encode() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(e)
}

// DecodeEnvelope parses and validates a wire envelope.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if err := e.Validate(); err != nil {
		return Envelope{}, err
	}
	return e, nil
}
