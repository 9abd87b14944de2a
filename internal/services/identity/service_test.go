package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/crypto"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/services/identity"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/store"
)

func TestGenerate_FingerprintStableAndExportable(t *testing.T) {
	svc := identity.New(store.NewIdentityFileStore(t.TempDir(), 0))

	fp, err := svc.Generate("alice", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, fp)

	got, err := svc.Fingerprint("pw")
	require.NoError(t, err)
	assert.Equal(t, fp, got)

	pemBytes, err := svc.ExportPublicPEM("pw")
	require.NoError(t, err)
	der, err := crypto.DecodePublicPEM(pemBytes)
	require.NoError(t, err)
	pub, err := crypto.ParsePublic(der)
	require.NoError(t, err)
	assert.Equal(t, crypto.RSAKeyBits, pub.N.BitLen())
}

func TestFingerprint_WrongPassword(t *testing.T) {
	svc := identity.New(store.NewIdentityFileStore(t.TempDir(), 0))
	_, err := svc.Generate("alice", "pw")
	require.NoError(t, err)

	_, err = svc.Fingerprint("wrong")
	assert.ErrorIs(t, err, domain.ErrWrongPassword)
}
