package sm2

import (
	"errors"
	"fmt"
	"math/big"
)

// Signature is the pair (r, s), both in [1, n-1]. The wire format is left
// to the embedding protocol.
type Signature struct {
	R, S *big.Int
}

// Sign produces a signature over message. Each attempt draws a fresh
// nonce; degenerate draws (r = 0, r + k = n, s = 0) are retried up to
// maxRetries times before the operation fails.
//
// The nonce contract is the caller-facing invariant of the whole scheme:
// a nonce must be drawn fresh for every signature and never revealed or
// shared with another signing algorithm under the same key. The engine
// only guarantees correct arithmetic for whatever nonce is used; see the
// Recover functions for what a violation costs.
func (e *Engine) Sign(priv *PrivateKey, message []byte) (*Signature, error) {
	digest := new(big.Int).SetBytes(e.alg.Sum(message))
	for attempt := 0; attempt < maxRetries; attempt++ {
		k, err := e.curve.RandomScalar(e.random)
		if err != nil {
			return nil, fmt.Errorf("sm2: drawing nonce: %w", err)
		}
		sig, err := e.signDigest(priv, digest, k)
		if errors.Is(err, ErrUnusableNonce) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return sig, nil
	}
	return nil, ErrRetriesExhausted
}

// SignWithNonce signs with a caller-chosen nonce. It exists so that the
// consequences of nonce misuse can be demonstrated deterministically;
// production callers use Sign.
func (e *Engine) SignWithNonce(priv *PrivateKey, message []byte, k *big.Int) (*Signature, error) {
	digest := new(big.Int).SetBytes(e.alg.Sum(message))
	return e.signDigest(priv, digest, k)
}

// signDigest evaluates the signature equations for one nonce:
// r = (e + x(kG)) mod n, s = (1+d)^-1 * (k - r*d) mod n.
func (e *Engine) signDigest(priv *PrivateKey, digest, k *big.Int) (*Signature, error) {
	n := e.curve.Params().N

	kg := e.curve.ScalarBaseMult(k)
	if kg.IsInfinity() {
		return nil, ErrUnusableNonce
	}

	r := new(big.Int).Add(digest, kg.X)
	r.Mod(r, n)
	if r.Sign() == 0 {
		return nil, ErrUnusableNonce
	}
	rk := new(big.Int).Add(r, k)
	if rk.Cmp(n) == 0 {
		return nil, ErrUnusableNonce
	}

	onePlusD := new(big.Int).Add(big.NewInt(1), priv.D)
	inv := new(big.Int).ModInverse(onePlusD, n)
	if inv == nil {
		return nil, errors.New("sm2: private key has no usable inverse")
	}

	s := new(big.Int).Mul(r, priv.D)
	s.Sub(k, s)
	s.Mul(s, inv)
	s.Mod(s, n)
	if s.Sign() == 0 {
		return nil, ErrUnusableNonce
	}

	return &Signature{R: r, S: s}, nil
}

// Verify reports whether sig is a valid signature over message for pub.
// A failed verification is an ordinary false result, never an error.
func (e *Engine) Verify(pub *PublicKey, message []byte, sig *Signature) bool {
	if sig == nil || sig.R == nil || sig.S == nil {
		return false
	}
	n := e.curve.Params().N
	if !inScalarRange(sig.R, n) || !inScalarRange(sig.S, n) {
		return false
	}

	t := new(big.Int).Add(sig.R, sig.S)
	t.Mod(t, n)
	if t.Sign() == 0 {
		return false
	}

	sg := e.curve.ScalarBaseMult(sig.S)
	tq := e.curve.ScalarMult(t, pub.Point)
	sum, err := e.curve.Add(sg, tq)
	if err != nil || sum.IsInfinity() {
		return false
	}

	digest := new(big.Int).SetBytes(e.alg.Sum(message))
	r := new(big.Int).Add(digest, sum.X)
	r.Mod(r, n)
	return r.Cmp(sig.R) == 0
}

func inScalarRange(v, n *big.Int) bool {
	return v.Sign() > 0 && v.Cmp(n) < 0
}
