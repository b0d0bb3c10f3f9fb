package sm2

import (
	"errors"
	"math/big"
)

// Closed-form private-key recovery from nonce misuse. These are properties
// of the signature equations, not bugs in them: s = (1+d)^-1 * (k - r*d)
// is linear in both d and k, so one leaked nonce, or one nonce shared
// between two transcripts, pins d exactly. They exist here so the cost of
// breaking the nonce contract stays demonstrable.

// ErrNotRecoverable is returned when the transcript happens to make the
// recovery denominator vanish.
var ErrNotRecoverable = errors.New("sm2: transcript does not determine the private key")

// RecoverFromLeakedNonce derives the private key from a single signature
// whose nonce k became known: d = (k - s) * (s + r)^-1 mod n.
//
// The same arithmetic covers the cross-user case: when two signers use
// the same nonce, either one can run this against the other's signature.
func RecoverFromLeakedNonce(e *Engine, k *big.Int, sig *Signature) (*big.Int, error) {
	n := e.curve.Params().N

	den := new(big.Int).Add(sig.S, sig.R)
	den.Mod(den, n)
	inv := new(big.Int).ModInverse(den, n)
	if inv == nil {
		return nil, ErrNotRecoverable
	}

	d := new(big.Int).Sub(k, sig.S)
	d.Mul(d, inv)
	d.Mod(d, n)
	return d, nil
}

// RecoverFromRepeatedNonce derives the private key from two signatures
// made with the same nonce under the same key:
//
//	d = (s1 - s2) * ((r2 + s2) - (r1 + s1))^-1 mod n
//
// which follows from k = s_i + d*(s_i + r_i) holding for both transcripts.
func RecoverFromRepeatedNonce(e *Engine, sig1, sig2 *Signature) (*big.Int, error) {
	n := e.curve.Params().N

	num := new(big.Int).Sub(sig1.S, sig2.S)
	num.Mod(num, n)

	den := new(big.Int).Add(sig2.R, sig2.S)
	den.Sub(den, sig1.R)
	den.Sub(den, sig1.S)
	den.Mod(den, n)

	inv := new(big.Int).ModInverse(den, n)
	if inv == nil {
		return nil, ErrNotRecoverable
	}

	d := num.Mul(num, inv)
	d.Mod(d, n)
	return d, nil
}
