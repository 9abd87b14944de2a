package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/store"
)

func TestIdentityStore_RoundTrip(t *testing.T) {
	s := store.NewIdentityFileStore(t.TempDir(), 0)
	id := domain.Identity{
		UserID:     "alice",
		PublicDER:  []byte("public-der"),
		PrivateDER: []byte("private-der"),
	}

	require.NoError(t, s.SaveIdentity("hunter2", id))

	got, err := s.LoadIdentity("hunter2")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestIdentityStore_WrongPassword(t *testing.T) {
	s := store.NewIdentityFileStore(t.TempDir(), 0)
	id := domain.Identity{UserID: "alice", PublicDER: []byte("p"), PrivateDER: []byte("s")}
	require.NoError(t, s.SaveIdentity("correct", id))

	_, err := s.LoadIdentity("incorrect")
	assert.ErrorIs(t, err, domain.ErrWrongPassword)
}

func TestIdentityStore_MissingFile(t *testing.T) {
	s := store.NewIdentityFileStore(t.TempDir(), 0)
	_, err := s.LoadIdentity("any")
	assert.Error(t, err)
}
