// Package kdf implements the counter-mode key derivation function of
// GB/T 32918.4: the seed is hashed together with an incrementing 32-bit
// big-endian counter until enough keystream has been produced.
package kdf

import (
	"encoding/binary"
	"errors"

	"github.com/smallyu/go-sm2/internal/crypto/hashing"
)

// ErrZeroDerivedKey is returned when the entire derived output is zero.
// XOR-masking with such a key would leak the plaintext, so the standard
// requires the enclosing operation to abort.
var ErrZeroDerivedKey = errors.New("kdf: derived key is all zero")

// Derive stretches seed into exactly length bytes of keystream. A zero
// length yields an empty key; the all-zero check applies only to non-empty
// output.
func Derive(alg hashing.Algorithm, seed []byte, length int) ([]byte, error) {
	if length < 0 {
		return nil, errors.New("kdf: negative output length")
	}
	if length == 0 {
		return []byte{}, nil
	}

	derived := make([]byte, 0, length+alg.Size())
	var counter [4]byte
	for ct := uint32(1); len(derived) < length; ct++ {
		binary.BigEndian.PutUint32(counter[:], ct)
		derived = append(derived, alg.Sum(seed, counter[:])...)
	}
	derived = derived[:length]

	zero := true
	for _, b := range derived {
		if b != 0 {
			zero = false
			break
		}
	}
	if zero {
		return nil, ErrZeroDerivedKey
	}
	return derived, nil
}
