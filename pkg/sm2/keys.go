// Package sm2 implements the SM2 public-key encryption and signature
// schemes (GB/T 32918) on top of the generic curve engine. An Engine is
// immutable after construction and safe for concurrent use.
package sm2

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/smallyu/go-sm2/internal/crypto/ec"
	"github.com/smallyu/go-sm2/internal/crypto/hashing"
)

// PublicKey is a point Q = d*G on the engine's curve.
type PublicKey struct {
	Point ec.Point
}

// PrivateKey is a scalar d in [1, n-1] together with its public key.
// Its secrecy is the sole security boundary of every operation.
type PrivateKey struct {
	PublicKey
	D *big.Int
}

// maxRetries caps the bounded retry loops in key generation and signing.
// Running out of attempts means the randomness source is misbehaving.
const maxRetries = 10

// Engine binds curve parameters, a hash algorithm and a randomness source.
// Every dependency is injected at construction; there is no ambient state.
type Engine struct {
	curve  *ec.Curve
	alg    hashing.Algorithm
	random io.Reader
}

// NewEngine returns an engine for the SM2 recommended curve with SM3 and
// the system randomness source.
func NewEngine() *Engine {
	return NewEngineWith(ec.SM2P256V1(), hashing.SM3, rand.Reader)
}

// NewEngineWith builds an engine from explicit dependencies. The curve
// engine (and its precomputed table) becomes owned by this Engine.
func NewEngineWith(curve *ec.Curve, alg hashing.Algorithm, random io.Reader) *Engine {
	return &Engine{curve: curve, alg: alg, random: random}
}

// Curve exposes the underlying curve engine, mainly for tests and demos.
func (e *Engine) Curve() *ec.Curve {
	return e.curve
}

// GenerateKey draws d uniformly from [1, n-1] and computes Q = d*G via the
// fixed-base path. It fails only when the randomness source does; there is
// no fallback to a weaker source.
func (e *Engine) GenerateKey() (*PrivateKey, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		d, err := e.curve.RandomScalar(e.random)
		if err != nil {
			return nil, fmt.Errorf("sm2: generating private key: %w", err)
		}
		q := e.curve.ScalarBaseMult(d)
		if q.IsInfinity() {
			continue
		}
		return &PrivateKey{PublicKey: PublicKey{Point: q}, D: d}, nil
	}
	return nil, ErrRetriesExhausted
}
