package ratchet

import (
	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
	"github.com/sethia-shubhamm/Crypt-Talk/internal/util/memzero"
)

// The skipped-key cache lives inside RatchetState.Skipped as an
// insertion-ordered slice so the bound and the eviction policy (drop
// oldest) stay explicit and serialize with the session.

// cachePut stores a derived-but-unconsumed message key. Beyond limit
// the oldest entry is evicted and its key wiped.
func cachePut(st *domain.RatchetState, limit int, pub domain.X25519Public, n uint32, key []byte) {
	st.Skipped = append(st.Skipped, domain.SkippedKey{RatchetPub: pub, N: n, Key: key})
	for len(st.Skipped) > limit {
		memzero.Zero(st.Skipped[0].Key)
		st.Skipped = st.Skipped[1:]
	}
}

// cacheTake removes and returns the key for (pub, n). A consumed key
// never remains in the cache.
func cacheTake(st *domain.RatchetState, pub domain.X25519Public, n uint32) ([]byte, bool) {
	for i, sk := range st.Skipped {
		if sk.N == n && sk.RatchetPub == pub {
			key := sk.Key
			st.Skipped = append(st.Skipped[:i], st.Skipped[i+1:]...)
			return key, true
		}
	}
	return nil, false
}
