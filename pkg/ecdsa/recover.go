package ecdsa

import (
	"errors"
	"math/big"

	"github.com/smallyu/go-sm2/internal/crypto/schnorr"
)

// ErrNotRecoverable is returned when the transcripts happen to make the
// recovery denominator vanish.
var ErrNotRecoverable = errors.New("ecdsa: transcripts do not determine the private key")

// RecoverFromSharedSchnorrNonce derives the private key d from an ECDSA
// signature and a Schnorr proof that were produced with the same (d, k).
// With s1 = k^-1*(e1 + d*r) and s2 = k + e2*d, eliminating k gives
//
//	d = (s2*s1 - e1) * (r + e2*s1)^-1 mod n
//
// where e1 is the ECDSA digest and e2 the Schnorr challenge, both public.
// Reusing a nonce across schemes is exactly as fatal as reusing it within
// one.
func (s *Scheme) RecoverFromSharedSchnorrNonce(sig *Signature, eECDSA *big.Int, proof *schnorr.Proof, eSchnorr *big.Int) (*big.Int, error) {
	n := s.curve.Params().N

	num := new(big.Int).Mul(proof.S, sig.S)
	num.Sub(num, eECDSA)
	num.Mod(num, n)

	den := new(big.Int).Mul(eSchnorr, sig.S)
	den.Add(den, sig.R)
	den.Mod(den, n)

	inv := new(big.Int).ModInverse(den, n)
	if inv == nil {
		return nil, ErrNotRecoverable
	}

	d := num.Mul(num, inv)
	d.Mod(d, n)
	return d, nil
}
