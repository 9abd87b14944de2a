package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
)

const sessionsFile = "sessions.json"

// SessionFileStore persists per-conversation ratchet state to disk.
//
// Records are guarded by optimistic concurrency: SaveSession only
// accepts a record whose Seq matches the stored one, then bumps it. Two
// racing read-modify-write cycles cannot both win; the loser sees
// ErrSessionConflict and retries against a fresh load.
type SessionFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{dir: dir}
}

// LoadSession retrieves the record for id.
func (s *SessionFileStore) LoadSession(id domain.ConversationID) (domain.SessionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.readAll()
	if err != nil {
		return domain.SessionRecord{}, false, err
	}
	rec, ok := m[id]
	return rec, ok, nil
}

// SaveSession writes rec if its Seq matches the stored record (or the
// record is new), returning the persisted record with Seq advanced.
func (s *SessionFileStore) SaveSession(rec domain.SessionRecord) (domain.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.readAll()
	if err != nil {
		return domain.SessionRecord{}, err
	}
	if cur, ok := m[rec.ID]; ok && cur.Seq != rec.Seq {
		logrus.WithFields(logrus.Fields{
			"component":    "session_store",
			"conversation": rec.ID.String(),
			"have_seq":     rec.Seq,
			"stored_seq":   cur.Seq,
		}).Warn("stale session save rejected")
		return domain.SessionRecord{}, domain.ErrSessionConflict
	}
	rec.Schema = domain.SessionSchemaVersion
	rec.Seq++
	m[rec.ID] = rec
	if err := s.writeAll(m); err != nil {
		return domain.SessionRecord{}, err
	}
	return rec, nil
}

// DeleteSession removes the record for id. Deleting an absent session is
// not an error.
func (s *SessionFileStore) DeleteSession(id domain.ConversationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.readAll()
	if err != nil {
		return err
	}
	if _, ok := m[id]; !ok {
		return nil
	}
	delete(m, id)
	if err := s.writeAll(m); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"component":    "session_store",
		"conversation": id.String(),
	}).Info("session deleted")
	return nil
}

func (s *SessionFileStore) readAll() (map[domain.ConversationID]domain.SessionRecord, error) {
	m := map[domain.ConversationID]domain.SessionRecord{}
	path := filepath.Join(s.dir, sessionsFile)
	if err := readJSON(path, &m); err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	for id, rec := range m {
		if rec.Schema > domain.SessionSchemaVersion {
			return nil, fmt.Errorf("session %s: unsupported schema %d", id, rec.Schema)
		}
	}
	return m, nil
}

func (s *SessionFileStore) writeAll(m map[domain.ConversationID]domain.SessionRecord) error {
	return writeJSON(filepath.Join(s.dir, sessionsFile), m, 0o600)
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
