// Package schnorr implements a Schnorr proof of knowledge of a discrete
// logarithm over the generic curve engine: R = k*G, e = H(X || R),
// s = k + e*x mod n.
package schnorr

import (
	"errors"
	"io"
	"math/big"

	"github.com/smallyu/go-sm2/internal/crypto/ec"
	"github.com/smallyu/go-sm2/internal/crypto/hashing"
)

// Proof proves knowledge of x such that X = x*G.
type Proof struct {
	R ec.Point // commitment R = k*G
	S *big.Int // response s = k + e*x mod n
}

// Prove generates a proof for the secret x with a fresh random nonce.
func Prove(curve *ec.Curve, alg hashing.Algorithm, x *big.Int, random io.Reader) (*Proof, error) {
	k, err := curve.RandomScalar(random)
	if err != nil {
		return nil, err
	}
	return ProveWithNonce(curve, alg, x, k)
}

// ProveWithNonce generates a proof with a caller-chosen nonce. Like the
// signature schemes, the proof leaks x to anyone who learns k; exposing
// the nonce parameter keeps that failure mode reproducible.
func ProveWithNonce(curve *ec.Curve, alg hashing.Algorithm, x, k *big.Int) (*Proof, error) {
	if x == nil || k == nil {
		return nil, errors.New("schnorr: secret and nonce must be non-nil")
	}
	n := curve.Params().N

	bigX := curve.ScalarBaseMult(x)
	r := curve.ScalarBaseMult(k)
	if bigX.IsInfinity() || r.IsInfinity() {
		return nil, errors.New("schnorr: secret and nonce must be nonzero mod n")
	}
	e := Challenge(curve, alg, bigX, r)

	s := new(big.Int).Mul(e, x)
	s.Add(s, k)
	s.Mod(s, n)

	return &Proof{R: r, S: s}, nil
}

// Verify checks the proof against the public key X: s*G must equal
// R + e*X.
func (p *Proof) Verify(curve *ec.Curve, alg hashing.Algorithm, bigX ec.Point) bool {
	if p == nil || p.S == nil {
		return false
	}
	n := curve.Params().N
	if p.S.Sign() < 0 || p.S.Cmp(n) >= 0 {
		return false
	}
	if p.R.IsInfinity() || bigX.IsInfinity() {
		return false
	}
	if !curve.IsOnCurve(p.R) || !curve.IsOnCurve(bigX) {
		return false
	}

	e := Challenge(curve, alg, bigX, p.R)

	lhs := curve.ScalarBaseMult(p.S)
	eX := curve.ScalarMult(e, bigX)
	rhs, err := curve.Add(p.R, eX)
	if err != nil {
		return false
	}
	return lhs.Equal(rhs)
}

// Challenge computes e = H(encode(X) || encode(R)) mod n. It is exported
// because the cross-scheme recovery arithmetic needs the same value the
// verifier computes.
func Challenge(curve *ec.Curve, alg hashing.Algorithm, bigX, r ec.Point) *big.Int {
	xBytes, _ := curve.EncodePoint(bigX)
	rBytes, _ := curve.EncodePoint(r)
	e := new(big.Int).SetBytes(alg.Sum(xBytes, rBytes))
	e.Mod(e, curve.Params().N)
	return e
}
