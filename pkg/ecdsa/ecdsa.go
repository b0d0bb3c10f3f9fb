// Package ecdsa implements ECDSA over the generic curve engine, together
// with two demonstrations of how the scheme degrades when misused: a
// universal forgery against verifiers that accept bare digests, and
// private-key recovery when a nonce is shared with a Schnorr proof.
package ecdsa

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"math/big"

	"github.com/smallyu/go-sm2/internal/crypto/ec"
)

// maxRetries bounds the nonce retry loops in Sign and Forge.
const maxRetries = 10

// ErrRetriesExhausted is returned when no usable nonce was found within
// the retry cap.
var ErrRetriesExhausted = errors.New("ecdsa: retries exhausted")

// ErrUnusableNonce marks a nonce draw that produced r = 0 or s = 0.
var ErrUnusableNonce = errors.New("ecdsa: nonce produces a degenerate signature")

// Signature is the pair (r, s), both in [1, n-1].
type Signature struct {
	R, S *big.Int
}

// Scheme binds the signature algorithm to one curve engine and one
// randomness source.
type Scheme struct {
	curve  *ec.Curve
	random io.Reader
}

// NewScheme builds a Scheme. A nil random falls back to the system source.
func NewScheme(curve *ec.Curve, random io.Reader) *Scheme {
	if random == nil {
		random = rand.Reader
	}
	return &Scheme{curve: curve, random: random}
}

// Curve exposes the underlying curve engine.
func (s *Scheme) Curve() *ec.Curve {
	return s.curve
}

// GenerateKey draws d uniformly from [1, n-1] and returns (d, d*G).
func (s *Scheme) GenerateKey() (*big.Int, ec.Point, error) {
	d, err := s.curve.RandomScalar(s.random)
	if err != nil {
		return nil, ec.Infinity, err
	}
	return d, s.curve.ScalarBaseMult(d), nil
}

// Digest maps a message to a scalar: SHA-256 reduced mod n.
func (s *Scheme) Digest(message []byte) *big.Int {
	sum := sha256.Sum256(message)
	e := new(big.Int).SetBytes(sum[:])
	return e.Mod(e, s.curve.Params().N)
}

// Sign produces an ECDSA signature, retrying degenerate nonces up to
// maxRetries times: r = x(k*G) mod n, s = k^-1 * (e + d*r) mod n.
func (s *Scheme) Sign(d *big.Int, message []byte) (*Signature, error) {
	e := s.Digest(message)
	for attempt := 0; attempt < maxRetries; attempt++ {
		k, err := s.curve.RandomScalar(s.random)
		if err != nil {
			return nil, err
		}
		sig, err := s.signDigest(d, e, k)
		if errors.Is(err, ErrUnusableNonce) {
			continue
		}
		return sig, err
	}
	return nil, ErrRetriesExhausted
}

// SignWithNonce signs with a caller-chosen nonce, for reproducing the
// misuse scenarios.
func (s *Scheme) SignWithNonce(d *big.Int, message []byte, k *big.Int) (*Signature, error) {
	return s.signDigest(d, s.Digest(message), k)
}

func (s *Scheme) signDigest(d, e, k *big.Int) (*Signature, error) {
	n := s.curve.Params().N

	kg := s.curve.ScalarBaseMult(k)
	if kg.IsInfinity() {
		return nil, ErrUnusableNonce
	}
	r := new(big.Int).Mod(kg.X, n)
	if r.Sign() == 0 {
		return nil, ErrUnusableNonce
	}

	kInv := new(big.Int).ModInverse(k, n)
	if kInv == nil {
		return nil, ErrUnusableNonce
	}

	sig := new(big.Int).Mul(d, r)
	sig.Add(sig, e)
	sig.Mul(sig, kInv)
	sig.Mod(sig, n)
	if sig.Sign() == 0 {
		return nil, ErrUnusableNonce
	}

	return &Signature{R: r, S: sig}, nil
}

// Verify reports whether sig is valid over message for the public key q.
func (s *Scheme) Verify(q ec.Point, message []byte, sig *Signature) bool {
	return s.VerifyDigest(q, s.Digest(message), sig)
}

// VerifyDigest checks a signature against a caller-supplied digest scalar.
// This is the verifier shape the forgery in Forge defeats: nothing ties
// the digest to an actual message.
func (s *Scheme) VerifyDigest(q ec.Point, e *big.Int, sig *Signature) bool {
	if sig == nil || sig.R == nil || sig.S == nil {
		return false
	}
	n := s.curve.Params().N
	if !inScalarRange(sig.R, n) || !inScalarRange(sig.S, n) {
		return false
	}

	w := new(big.Int).ModInverse(sig.S, n)
	if w == nil {
		return false
	}
	u1 := new(big.Int).Mul(e, w)
	u1.Mod(u1, n)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, n)

	p1 := s.curve.ScalarBaseMult(u1)
	p2 := s.curve.ScalarMult(u2, q)
	sum, err := s.curve.Add(p1, p2)
	if err != nil || sum.IsInfinity() {
		return false
	}

	x := new(big.Int).Mod(sum.X, n)
	return x.Cmp(sig.R) == 0
}

func inScalarRange(v, n *big.Int) bool {
	return v.Sign() > 0 && v.Cmp(n) < 0
}
