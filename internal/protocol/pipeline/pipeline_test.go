package pipeline_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/protocol/pipeline"
)

func randBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	key := randBytes(t, 32)
	for _, n := range []int{0, 1, 31, 32, 33, 4096} {
		ct := randBytes(t, n)
		wrapped, err := pipeline.Wrap(key, ct)
		require.NoError(t, err)
		got, err := pipeline.Unwrap(key, wrapped)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(ct, got), "length %d", n)
	}
}

func TestWrap_ChangesEveryLayerInput(t *testing.T) {
	key := randBytes(t, 32)
	ct := randBytes(t, 256)
	wrapped, err := pipeline.Wrap(key, ct)
	require.NoError(t, err)
	assert.NotEqual(t, ct, wrapped[:len(ct)])
}

func TestWrap_KeyDependent(t *testing.T) {
	ct := randBytes(t, 64)
	w1, err := pipeline.Wrap(randBytes(t, 32), ct)
	require.NoError(t, err)
	w2, err := pipeline.Wrap(randBytes(t, 32), ct)
	require.NoError(t, err)
	assert.NotEqual(t, w1, w2)
}

func TestUnwrap_Tampered(t *testing.T) {
	key := randBytes(t, 32)
	wrapped, err := pipeline.Wrap(key, randBytes(t, 128))
	require.NoError(t, err)

	for _, idx := range []int{0, len(wrapped) / 2, len(wrapped) - 1} {
		bad := append([]byte(nil), wrapped...)
		bad[idx] ^= 0x01
		_, err := pipeline.Unwrap(key, bad)
		assert.ErrorIs(t, err, domain.ErrAuthenticationFailure, "flip at %d", idx)
	}
}

func TestUnwrap_Truncated(t *testing.T) {
	key := randBytes(t, 32)
	wrapped, err := pipeline.Wrap(key, randBytes(t, 64))
	require.NoError(t, err)

	_, err = pipeline.Unwrap(key, wrapped[:len(wrapped)-1])
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailure)
	_, err = pipeline.Unwrap(key, wrapped[:10])
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailure)
}

func TestUnwrap_WrongKey(t *testing.T) {
	wrapped, err := pipeline.Wrap(randBytes(t, 32), randBytes(t, 64))
	require.NoError(t, err)
	_, err = pipeline.Unwrap(randBytes(t, 32), wrapped)
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailure)
}
