package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/keystore"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/util/memzero"
)

const identityFile = "identity.enc"

// IdentityFileStore persists the long-term identity as a keystore sealed
// blob on disk. The plaintext private key never touches the filesystem.
type IdentityFileStore struct {
	dir  string
	iter int
	mu   sync.Mutex
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
// iter tunes the sealing KDF; 0 means the keystore default.
func NewIdentityFileStore(dir string, iter int) *IdentityFileStore {
	return &IdentityFileStore{dir: dir, iter: iter}
}

// SaveIdentity seals id under password and writes it to disk.
func (s *IdentityFileStore) SaveIdentity(password string, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	blob, err := keystore.Seal(raw, password, s.iter)
	memzero.Zero(raw)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, identityFile)
	if err := writeJSON(path, blob, 0o600); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"component": "identity_store",
		"user_id":   id.UserID,
	}).Debug("identity sealed to disk")
	return nil
}

// LoadIdentity reads and unseals the identity. The caller owns the
// returned private key material and must wipe it when done.
func (s *IdentityFileStore) LoadIdentity(password string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, identityFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("read identity: %w", err)
	}
	var blob keystore.SealedBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return domain.Identity{}, fmt.Errorf("decode identity blob: %w", err)
	}
	raw, err := keystore.Unseal(blob, password)
	if err != nil {
		// Wrong password and corruption look the same to the caller;
		// the log is the only place that records which path failed.
		logrus.WithField("component", "identity_store").Warn("identity unseal failed")
		return domain.Identity{}, err
	}
	var id domain.Identity
	err = json.Unmarshal(raw, &id)
	memzero.Zero(raw)
	if err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
