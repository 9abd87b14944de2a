package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/store"
)

func testRecord(id domain.ConversationID) domain.SessionRecord {
	return domain.SessionRecord{
		ID: id,
		State: domain.RatchetState{
			Phase:   domain.PhaseActive,
			RootKey: []byte("root"),
			SendCK:  []byte("send"),
			SendN:   3,
		},
	}
}

func TestSessionStore_SaveLoadRoundTrip(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())
	id := domain.NewConversationID("alice", "bob")

	_, ok, err := s.LoadSession(id)
	require.NoError(t, err)
	assert.False(t, ok)

	saved, err := s.SaveSession(testRecord(id))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), saved.Seq)
	assert.Equal(t, domain.SessionSchemaVersion, saved.Schema)

	got, ok, err := s.LoadSession(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved.Seq, got.Seq)
	assert.Equal(t, uint32(3), got.State.SendN)
	assert.Equal(t, []byte("root"), got.State.RootKey)
}

func TestSessionStore_SeqConflict(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())
	id := domain.NewConversationID("alice", "bob")

	saved, err := s.SaveSession(testRecord(id))
	require.NoError(t, err)

	// Two readers pick up the same record; the second save is stale.
	first := saved
	second := saved

	first.State.SendN = 4
	_, err = s.SaveSession(first)
	require.NoError(t, err)

	second.State.SendN = 99
	_, err = s.SaveSession(second)
	assert.ErrorIs(t, err, domain.ErrSessionConflict)

	// The loser retries against a fresh load and wins.
	cur, ok, err := s.LoadSession(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(4), cur.State.SendN)
	cur.State.SendN = 99
	_, err = s.SaveSession(cur)
	require.NoError(t, err)
}

func TestSessionStore_Delete(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())
	id := domain.NewConversationID("alice", "bob")

	_, err := s.SaveSession(testRecord(id))
	require.NoError(t, err)

	require.NoError(t, s.DeleteSession(id))
	_, ok, err := s.LoadSession(id)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is a no-op.
	require.NoError(t, s.DeleteSession(id))
}

func TestSessionStore_IsolatesConversations(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())
	ab := domain.NewConversationID("alice", "bob")
	ac := domain.NewConversationID("alice", "carol")

	_, err := s.SaveSession(testRecord(ab))
	require.NoError(t, err)
	_, err = s.SaveSession(testRecord(ac))
	require.NoError(t, err)

	require.NoError(t, s.DeleteSession(ab))
	_, ok, err := s.LoadSession(ac)
	require.NoError(t, err)
	assert.True(t, ok)
}
