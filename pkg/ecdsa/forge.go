package ecdsa

import (
	"math/big"

	"github.com/smallyu/go-sm2/internal/crypto/ec"
)

// Forge produces a digest and signature pair that VerifyDigest accepts
// for the public key q, without knowledge of the private key:
//
//	R = u*G + v*Q, r = x(R) mod n, s = r * v^-1, e = u * r * v^-1
//
// The construction only works because the digest is chosen after the
// signature; any verifier that hashes a concrete message itself is
// immune. It fails with ErrRetriesExhausted if no usable (u, v) pair is
// found within the retry cap.
func (s *Scheme) Forge(q ec.Point) (*big.Int, *Signature, error) {
	n := s.curve.Params().N

	for attempt := 0; attempt < maxRetries; attempt++ {
		u, err := s.curve.RandomScalar(s.random)
		if err != nil {
			return nil, nil, err
		}
		v, err := s.curve.RandomScalar(s.random)
		if err != nil {
			return nil, nil, err
		}

		p1 := s.curve.ScalarBaseMult(u)
		p2 := s.curve.ScalarMult(v, q)
		rPoint, err := s.curve.Add(p1, p2)
		if err != nil || rPoint.IsInfinity() {
			continue
		}

		r := new(big.Int).Mod(rPoint.X, n)
		if r.Sign() == 0 {
			continue
		}

		vInv := new(big.Int).ModInverse(v, n)
		if vInv == nil {
			continue
		}
		sig := new(big.Int).Mul(r, vInv)
		sig.Mod(sig, n)
		if sig.Sign() == 0 {
			continue
		}

		e := new(big.Int).Mul(u, r)
		e.Mul(e, vInv)
		e.Mod(e, n)

		return e, &Signature{R: r, S: sig}, nil
	}
	return nil, nil, ErrRetriesExhausted
}
