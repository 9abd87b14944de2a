package pipeline

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// permutation builds a keyed Fisher-Yates shuffle of [0, n). Both sides
// regenerate the same permutation from the layer key, so the transform
// is reversible without carrying indices on the wire.
func permutation(key []byte, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	if n < 2 {
		return perm
	}
	rng := newKeyedRand(key)
	for i := n - 1; i > 0; i-- {
		j := int(rng.uint32() % uint32(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func applyPermutation(key, src []byte) []byte {
	perm := permutation(key, len(src))
	dst := make([]byte, len(src))
	for i, p := range perm {
		dst[i] = src[p]
	}
	return dst
}

func invertPermutation(key, src []byte) []byte {
	perm := permutation(key, len(src))
	dst := make([]byte, len(src))
	for i, p := range perm {
		dst[p] = src[i]
	}
	return dst
}

// keyedRand draws uint32s from a ChaCha20 keystream. Not a general PRNG;
// it only has to be deterministic per key.
type keyedRand struct {
	c   *chacha20.Cipher
	buf [4]byte
}

func newKeyedRand(key []byte) *keyedRand {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce[:])
	if err != nil {
		// key is always 32 bytes here
		panic(err)
	}
	return &keyedRand{c: c}
}

func (r *keyedRand) uint32() uint32 {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.c.XORKeyStream(r.buf[:], r.buf[:])
	return binary.LittleEndian.Uint32(r.buf[:])
}
