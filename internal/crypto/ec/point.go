package ec

import (
	"errors"
	"math/big"
)

// Point is an affine curve point. The zero value is the point at infinity
// (the group identity). Points are immutable values: arithmetic always
// allocates a new result.
type Point struct {
	X, Y *big.Int
}

// Infinity is the group identity.
var Infinity = Point{}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.X == nil || p.Y == nil
}

// Equal reports whether two points are the same group element.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// NewPoint builds an affine point and checks it lies on the curve.
func (c *Curve) NewPoint(x, y *big.Int) (Point, error) {
	p := Point{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}
	if !c.IsOnCurve(p) {
		return Infinity, errors.New("ec: point is not on the curve")
	}
	return p, nil
}

// Base returns the engine's base point G.
func (c *Curve) Base() Point {
	return Point{X: c.params.Gx, Y: c.params.Gy}
}

// Negate returns -p, the reflection of p across the x axis.
func (c *Curve) Negate(p Point) Point {
	if p.IsInfinity() {
		return Infinity
	}
	negY := new(big.Int).Neg(p.Y)
	negY.Mod(negY, c.params.P)
	return Point{X: new(big.Int).Set(p.X), Y: negY}
}

// Add computes p + q in affine coordinates. This is the reference path:
// it pays one field inversion per addition, so the multiplication
// strategies use the Jacobian formulas instead.
func (c *Curve) Add(p, q Point) (Point, error) {
	if p.IsInfinity() {
		return q, nil
	}
	if q.IsInfinity() {
		return p, nil
	}

	P := c.params.P

	// Mutual inverses sum to the identity.
	if p.X.Cmp(q.X) == 0 {
		ySum := new(big.Int).Add(p.Y, q.Y)
		ySum.Mod(ySum, P)
		if ySum.Sign() == 0 {
			return Infinity, nil
		}
		return c.Double(p)
	}

	// slope = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(q.Y, p.Y)
	den := new(big.Int).Sub(q.X, p.X)
	return c.chord(p, q, num, den)
}

// Double computes 2p in affine coordinates.
func (c *Curve) Double(p Point) (Point, error) {
	if p.IsInfinity() || p.Y.Sign() == 0 {
		return Infinity, nil
	}

	// slope = (3*x^2 + a) / (2*y)
	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, big.NewInt(3))
	num.Add(num, c.params.A)
	den := new(big.Int).Lsh(p.Y, 1)
	return c.chord(p, p, num, den)
}

// chord finishes an affine add/double given the slope numerator and
// denominator: x3 = s^2 - x1 - x2, y3 = s*(x1 - x3) - y1.
func (c *Curve) chord(p, q Point, num, den *big.Int) (Point, error) {
	P := c.params.P
	denInv, err := modInverse(den, P)
	if err != nil {
		return Infinity, err
	}
	slope := new(big.Int).Mul(num, denInv)
	slope.Mod(slope, P)

	x3 := new(big.Int).Mul(slope, slope)
	x3.Sub(x3, p.X)
	x3.Sub(x3, q.X)
	x3.Mod(x3, P)

	y3 := new(big.Int).Sub(p.X, x3)
	y3.Mul(y3, slope)
	y3.Sub(y3, p.Y)
	y3.Mod(y3, P)

	return Point{X: x3, Y: y3}, nil
}

// EncodedPointSize returns the length of an uncompressed point encoding:
// one tag byte plus two fixed-width coordinates.
func (c *Curve) EncodedPointSize() int {
	return 1 + 2*c.fieldByteSize()
}

// EncodePoint serializes p in the uncompressed format: a 0x04 tag byte
// followed by the x and y coordinates as fixed-width big-endian integers.
// The point at infinity has no encoding.
func (c *Curve) EncodePoint(p Point) ([]byte, error) {
	if p.IsInfinity() {
		return nil, errors.New("ec: the point at infinity cannot be encoded")
	}
	size := c.fieldByteSize()
	out := make([]byte, 1+2*size)
	out[0] = 0x04
	p.X.FillBytes(out[1 : 1+size])
	p.Y.FillBytes(out[1+size:])
	return out, nil
}

// DecodePoint parses an uncompressed point encoding, rejecting inputs with
// a wrong tag byte, a wrong length, or coordinates off the curve.
func (c *Curve) DecodePoint(data []byte) (Point, error) {
	size := c.fieldByteSize()
	if len(data) != 1+2*size {
		return Infinity, errors.New("ec: wrong encoded point length")
	}
	if data[0] != 0x04 {
		return Infinity, errors.New("ec: unsupported point encoding tag")
	}
	x := new(big.Int).SetBytes(data[1 : 1+size])
	y := new(big.Int).SetBytes(data[1+size:])
	return c.NewPoint(x, y)
}
