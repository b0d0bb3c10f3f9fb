package ec

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// CurveParams describes a short Weierstrass curve y^2 = x^3 + a*x + b over
// the prime field GF(P). N is the order of the cyclic subgroup generated by
// the base point (Gx, Gy). The struct is treated as immutable once built.
type CurveParams struct {
	Name    string
	P       *big.Int // field prime
	A       *big.Int // curve coefficient a
	B       *big.Int // curve coefficient b
	N       *big.Int // order of the base point
	Gx, Gy  *big.Int // base point
	BitSize int      // bit length of P
}

// Curve is an engine bound to one parameter set. Construction precomputes
// the fixed-base window table, which the engine owns exclusively; after
// that every operation is read-only and safe for concurrent use.
type Curve struct {
	params     *CurveParams
	windowSize uint
	table      []jacobianPoint // odd multiples 1G, 3G, ... of the base point
}

// defaultWindowSize balances table size (2^(w-1) entries) against the
// number of point additions saved per fixed-base multiplication.
const defaultWindowSize = 4

// NewCurve validates the parameter set and builds an engine for it.
// The base point must satisfy the curve equation.
func NewCurve(params *CurveParams) (*Curve, error) {
	if params.P.Sign() <= 0 || params.N.Sign() <= 0 {
		return nil, errors.New("ec: curve modulus and order must be positive")
	}
	c := &Curve{params: params, windowSize: defaultWindowSize}
	if !c.IsOnCurve(Point{X: params.Gx, Y: params.Gy}) {
		return nil, fmt.Errorf("ec: base point of %s is not on the curve", params.Name)
	}
	c.table = c.precomputeBase()
	return c, nil
}

func mustNewCurve(params *CurveParams) *Curve {
	c, err := NewCurve(params)
	if err != nil {
		panic(err)
	}
	return c
}

// Params returns the engine's parameter set. Callers must not mutate it.
func (c *Curve) Params() *CurveParams {
	return c.params
}

// fieldByteSize is the fixed width of one encoded coordinate.
func (c *Curve) fieldByteSize() int {
	return (c.params.BitSize + 7) / 8
}

// IsOnCurve reports whether p satisfies y^2 = x^3 + a*x + b mod P.
// The point at infinity is considered on the curve.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.IsInfinity() {
		return true
	}
	P := c.params.P
	if p.X.Sign() < 0 || p.X.Cmp(P) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(P) >= 0 {
		return false
	}
	// left = y^2, right = x^3 + a*x + b
	left := new(big.Int).Mul(p.Y, p.Y)
	left.Mod(left, P)

	right := new(big.Int).Mul(p.X, p.X)
	right.Mul(right, p.X)
	ax := new(big.Int).Mul(c.params.A, p.X)
	right.Add(right, ax)
	right.Add(right, c.params.B)
	right.Mod(right, P)

	return left.Cmp(right) == 0
}

// RandomScalar draws a uniform scalar from [1, n-1] using the provided
// randomness source.
func (c *Curve) RandomScalar(random io.Reader) (*big.Int, error) {
	nMinusOne := new(big.Int).Sub(c.params.N, big.NewInt(1))
	k, err := rand.Int(random, nMinusOne)
	if err != nil {
		return nil, fmt.Errorf("ec: drawing random scalar: %w", err)
	}
	return k.Add(k, big.NewInt(1)), nil
}

// modInverse returns a^-1 mod m. It is an error to invert zero.
func modInverse(a, m *big.Int) (*big.Int, error) {
	reduced := new(big.Int).Mod(a, m)
	if reduced.Sign() == 0 {
		return nil, errors.New("ec: no inverse for zero")
	}
	inv := new(big.Int).ModInverse(reduced, m)
	if inv == nil {
		return nil, errors.New("ec: element is not invertible")
	}
	return inv, nil
}

// SM2P256V1 builds an engine for the SM2 recommended curve
// (GB/T 32918.1-2016). Each call returns an independent engine with its
// own precomputed table.
func SM2P256V1() *Curve {
	return mustNewCurve(&CurveParams{
		Name:    "sm2p256v1",
		P:       hexInt("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFF"),
		A:       hexInt("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFC"),
		B:       hexInt("28E9FA9E9D9F5E344D5A9E4BCF6509A7F39789F515AB8F92DDBCBD414D940E93"),
		N:       hexInt("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFF7203DF6B21C6052B53BBF40939D54123"),
		Gx:      hexInt("32C4AE2C1F1981195F9904466A39C9948FE30BBFF2660BE1715A4589334C74C7"),
		Gy:      hexInt("BC3736A2F4F6779C59BDCEE36B692153D0A9877CC62A474002DF32E52139F0A0"),
		BitSize: 256,
	})
}

// Secp256k1 builds an engine for the secp256k1 curve used by the ECDSA
// scheme and the cross-check tests.
func Secp256k1() *Curve {
	return mustNewCurve(&CurveParams{
		Name:    "secp256k1",
		P:       hexInt("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
		A:       big.NewInt(0),
		B:       big.NewInt(7),
		N:       hexInt("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
		Gx:      hexInt("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		Gy:      hexInt("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
		BitSize: 256,
	})
}

func hexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("ec: invalid curve constant " + s)
	}
	return v
}
