package identity

import (
	"github.com/sirupsen/logrus"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/crypto"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/util/memzero"
)

// Service creates and serves the long-term identity.
type Service struct {
	ids domain.IdentityStore
}

// New constructs an identity Service backed by ids.
func New(ids domain.IdentityStore) *Service {
	return &Service{ids: ids}
}

// Generate creates a fresh RSA-4096 identity for userID, seals it under
// password and returns the public-key fingerprint. The plaintext private
// key is wiped before returning.
func (s *Service) Generate(userID, password string) (string, error) {
	priv, err := crypto.GenerateRSA()
	if err != nil {
		return "", err
	}
	pubDER, err := crypto.MarshalPublic(&priv.PublicKey)
	if err != nil {
		return "", err
	}
	privDER, err := crypto.MarshalPrivate(priv)
	if err != nil {
		return "", err
	}
	id := domain.Identity{UserID: userID, PublicDER: pubDER, PrivateDER: privDER}
	err = s.ids.SaveIdentity(password, id)
	memzero.Zero(privDER)
	if err != nil {
		return "", err
	}
	fp := crypto.Fingerprint(pubDER)
	logrus.WithFields(logrus.Fields{
		"component":   "identity_service",
		"user_id":     userID,
		"fingerprint": fp,
	}).Info("identity generated")
	return fp, nil
}

// Fingerprint returns the stored identity's public-key fingerprint.
func (s *Service) Fingerprint(password string) (string, error) {
	id, err := s.load(password)
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint(id.PublicDER), nil
}

// ExportPublicPEM returns the public key in PEM interchange form so
// peers can import it over any transport.
func (s *Service) ExportPublicPEM(password string) ([]byte, error) {
	id, err := s.load(password)
	if err != nil {
		return nil, err
	}
	return crypto.EncodePublicPEM(id.PublicDER), nil
}

// load unseals the identity and immediately discards the private half;
// only callers that need it go through the store directly.
func (s *Service) load(password string) (domain.Identity, error) {
	id, err := s.ids.LoadIdentity(password)
	if err != nil {
		return domain.Identity{}, err
	}
	memzero.Zero(id.PrivateDER)
	id.PrivateDER = nil
	return id, nil
}
