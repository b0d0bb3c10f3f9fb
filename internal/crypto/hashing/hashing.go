// Package hashing selects the digest used by the encryption tag, the
// signature scheme and the KDF. SM3 is the primary algorithm; SHA-256 is
// the documented fallback for environments that must avoid the SM suite.
package hashing

import (
	"crypto/sha256"
	"hash"

	"github.com/emmansun/gmsm/sm3"
)

// Algorithm identifies one of the supported digests. Both produce 32-byte
// output, so ciphertext and signature layouts do not depend on the choice.
type Algorithm int

const (
	// SM3 is the GB/T 32905 hash, the primary algorithm.
	SM3 Algorithm = iota
	// SHA256 is the fallback.
	SHA256
)

// DigestSize is the output length shared by both algorithms.
const DigestSize = 32

// New returns a fresh hash state.
func (a Algorithm) New() hash.Hash {
	if a == SHA256 {
		return sha256.New()
	}
	return sm3.New()
}

// Size returns the digest length in bytes.
func (a Algorithm) Size() int {
	return DigestSize
}

// Sum hashes the concatenation of parts.
func (a Algorithm) Sum(parts ...[]byte) []byte {
	h := a.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

func (a Algorithm) String() string {
	if a == SHA256 {
		return "SHA-256"
	}
	return "SM3"
}
