package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/protocol/ratchet"
	identitysvc "github.com/sethia-shubhamm/Crypt-Talk/internal/services/identity"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/services/message"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/store"
)

const bobPassword = "bobs-passphrase"

type party struct {
	msgs *message.Service
	ids  *identitysvc.Service
}

// newParty builds one user's full stack on a throwaway directory.
func newParty(t *testing.T) party {
	t.Helper()
	dir := t.TempDir()
	ids := store.NewIdentityFileStore(dir, 0)
	sessions := store.NewSessionFileStore(dir)
	return party{
		msgs: message.New(ids, sessions, ratchet.Config{}),
		ids:  identitysvc.New(ids),
	}
}

// overWire exercises the transport boundary: every envelope is encoded
// to JSON and decoded again before delivery.
func overWire(t *testing.T, env domain.Envelope) domain.Envelope {
	t.Helper()
	data, err := env.Encode()
	require.NoError(t, err)
	decoded, err := domain.DecodeEnvelope(data)
	require.NoError(t, err)
	return decoded
}

func TestConversation_EndToEnd(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)

	_, err := bob.ids.Generate("bob", bobPassword)
	require.NoError(t, err)
	bobPEM, err := bob.ids.ExportPublicPEM(bobPassword)
	require.NoError(t, err)

	// First contact goes through the hybrid bootstrap.
	env1, err := alice.msgs.Encrypt("alice", "bob", bobPEM, []byte("hello bob"))
	require.NoError(t, err)
	assert.True(t, env1.IsBootstrap())

	pt, err := bob.msgs.Decrypt(bobPassword, "bob", "alice", overWire(t, env1))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello bob"), pt)

	// Follow-ups ride the ratchet; no public key needed.
	env2, err := alice.msgs.Encrypt("alice", "bob", nil, []byte("still there?"))
	require.NoError(t, err)
	assert.False(t, env2.IsBootstrap())

	pt, err = bob.msgs.Decrypt("", "bob", "alice", overWire(t, env2))
	require.NoError(t, err)
	assert.Equal(t, []byte("still there?"), pt)

	// And the reply direction works without bob ever seeing alice's key.
	env3, err := bob.msgs.Encrypt("bob", "alice", nil, []byte("hi alice"))
	require.NoError(t, err)
	pt, err = alice.msgs.Decrypt("", "alice", "bob", overWire(t, env3))
	require.NoError(t, err)
	assert.Equal(t, []byte("hi alice"), pt)

	env4, err := alice.msgs.Encrypt("alice", "bob", nil, []byte("good"))
	require.NoError(t, err)
	pt, err = bob.msgs.Decrypt("", "bob", "alice", overWire(t, env4))
	require.NoError(t, err)
	assert.Equal(t, []byte("good"), pt)
}

func TestConversation_BootstrapReplayRejected(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)

	_, err := bob.ids.Generate("bob", bobPassword)
	require.NoError(t, err)
	bobPEM, err := bob.ids.ExportPublicPEM(bobPassword)
	require.NoError(t, err)

	env1, err := alice.msgs.Encrypt("alice", "bob", bobPEM, []byte("hello"))
	require.NoError(t, err)

	_, err = bob.msgs.Decrypt(bobPassword, "bob", "alice", env1)
	require.NoError(t, err)

	// A second bootstrap envelope must not reset the session.
	_, err = bob.msgs.Decrypt(bobPassword, "bob", "alice", env1)
	assert.ErrorIs(t, err, domain.ErrStaleOrDuplicateMessage)
}

func TestEncrypt_FirstMessageNeedsRecipientKey(t *testing.T) {
	alice := newParty(t)
	_, err := alice.msgs.Encrypt("alice", "bob", nil, []byte("hello"))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestDecrypt_NoSession(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)
	carol := newParty(t)

	_, err := bob.ids.Generate("bob", bobPassword)
	require.NoError(t, err)
	bobPEM, err := bob.ids.ExportPublicPEM(bobPassword)
	require.NoError(t, err)

	_, err = alice.msgs.Encrypt("alice", "bob", bobPEM, []byte("hello"))
	require.NoError(t, err)
	env2, err := alice.msgs.Encrypt("alice", "bob", nil, []byte("again"))
	require.NoError(t, err)

	// A non-bootstrap envelope with no session behind it is undecryptable.
	_, err = carol.msgs.Decrypt("", "carol", "alice", env2)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestDeleteSession_DestroysState(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)

	_, err := bob.ids.Generate("bob", bobPassword)
	require.NoError(t, err)
	bobPEM, err := bob.ids.ExportPublicPEM(bobPassword)
	require.NoError(t, err)

	env1, err := alice.msgs.Encrypt("alice", "bob", bobPEM, []byte("hello"))
	require.NoError(t, err)
	_, err = bob.msgs.Decrypt(bobPassword, "bob", "alice", env1)
	require.NoError(t, err)

	require.NoError(t, bob.msgs.DeleteSession("bob", "alice"))

	env2, err := alice.msgs.Encrypt("alice", "bob", nil, []byte("anyone home?"))
	require.NoError(t, err)
	_, err = bob.msgs.Decrypt("", "bob", "alice", env2)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Deleting twice is harmless.
	require.NoError(t, bob.msgs.DeleteSession("bob", "alice"))
}

func TestDecrypt_WrongIdentityPassword(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)

	_, err := bob.ids.Generate("bob", bobPassword)
	require.NoError(t, err)
	bobPEM, err := bob.ids.ExportPublicPEM(bobPassword)
	require.NoError(t, err)

	env1, err := alice.msgs.Encrypt("alice", "bob", bobPEM, []byte("hello"))
	require.NoError(t, err)

	_, err = bob.msgs.Decrypt("not-the-password", "bob", "alice", env1)
	assert.ErrorIs(t, err, domain.ErrWrongPassword)
}
