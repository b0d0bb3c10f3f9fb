package ec

import "math/big"

// jacobianPoint is the projective representation (X, Y, Z) with
// x = X/Z^2 and y = Y/Z^3. Z = 0 marks the point at infinity. The type
// never crosses the package boundary: every exported operation converts
// back to affine form first.
type jacobianPoint struct {
	x, y, z *big.Int
}

func jacobianInfinity() jacobianPoint {
	return jacobianPoint{x: big.NewInt(0), y: big.NewInt(1), z: big.NewInt(0)}
}

func (j jacobianPoint) isInfinity() bool {
	return j.z.Sign() == 0
}

// jacobianFromAffine lifts an affine point to Z = 1.
func (c *Curve) jacobianFromAffine(p Point) jacobianPoint {
	if p.IsInfinity() {
		return jacobianInfinity()
	}
	return jacobianPoint{
		x: new(big.Int).Set(p.X),
		y: new(big.Int).Set(p.Y),
		z: big.NewInt(1),
	}
}

// jacobianToAffine normalizes back to affine coordinates. This is the one
// place a batch of projective operations pays a field inversion.
func (c *Curve) jacobianToAffine(j jacobianPoint) Point {
	if j.isInfinity() {
		return Infinity
	}
	P := c.params.P
	zInv, err := modInverse(j.z, P)
	if err != nil {
		// z != 0 and P prime, so z is always invertible.
		panic("ec: non-invertible z coordinate")
	}
	zInv2 := new(big.Int).Mul(zInv, zInv)
	zInv2.Mod(zInv2, P)

	x := new(big.Int).Mul(j.x, zInv2)
	x.Mod(x, P)

	y := new(big.Int).Mul(j.y, zInv2)
	y.Mul(y, zInv)
	y.Mod(y, P)

	return Point{X: x, Y: y}
}

// jacobianAdd computes p + q using the general addition formulas
// (no field inversion). Handles identity operands, equal operands
// (dispatches to doubling) and mutual inverses.
func (c *Curve) jacobianAdd(p, q jacobianPoint) jacobianPoint {
	if p.isInfinity() {
		return q
	}
	if q.isInfinity() {
		return p
	}

	P := c.params.P

	z1z1 := new(big.Int).Mul(p.z, p.z)
	z1z1.Mod(z1z1, P)
	z2z2 := new(big.Int).Mul(q.z, q.z)
	z2z2.Mod(z2z2, P)

	u1 := new(big.Int).Mul(p.x, z2z2)
	u1.Mod(u1, P)
	u2 := new(big.Int).Mul(q.x, z1z1)
	u2.Mod(u2, P)

	s1 := new(big.Int).Mul(p.y, q.z)
	s1.Mul(s1, z2z2)
	s1.Mod(s1, P)
	s2 := new(big.Int).Mul(q.y, p.z)
	s2.Mul(s2, z1z1)
	s2.Mod(s2, P)

	h := new(big.Int).Sub(u2, u1)
	h.Mod(h, P)
	r := new(big.Int).Sub(s2, s1)
	r.Mod(r, P)

	if h.Sign() == 0 {
		if r.Sign() == 0 {
			// Same point in both representations.
			return c.jacobianDouble(p)
		}
		// Mutual inverses.
		return jacobianInfinity()
	}

	hh := new(big.Int).Mul(h, h)
	hh.Mod(hh, P)
	hhh := new(big.Int).Mul(h, hh)
	hhh.Mod(hhh, P)
	v := new(big.Int).Mul(u1, hh)
	v.Mod(v, P)

	// x3 = r^2 - h^3 - 2*v
	x3 := new(big.Int).Mul(r, r)
	x3.Sub(x3, hhh)
	x3.Sub(x3, v)
	x3.Sub(x3, v)
	x3.Mod(x3, P)

	// y3 = r*(v - x3) - s1*h^3
	y3 := new(big.Int).Sub(v, x3)
	y3.Mul(y3, r)
	s1hhh := new(big.Int).Mul(s1, hhh)
	y3.Sub(y3, s1hhh)
	y3.Mod(y3, P)

	// z3 = h*z1*z2
	z3 := new(big.Int).Mul(h, p.z)
	z3.Mul(z3, q.z)
	z3.Mod(z3, P)

	return jacobianPoint{x: x3, y: y3, z: z3}
}

// jacobianDouble computes 2p without a field inversion. Doubling a point
// with Y = 0 or Z = 0 yields the identity.
func (c *Curve) jacobianDouble(p jacobianPoint) jacobianPoint {
	if p.z.Sign() == 0 || p.y.Sign() == 0 {
		return jacobianInfinity()
	}

	P := c.params.P

	yy := new(big.Int).Mul(p.y, p.y)
	yy.Mod(yy, P)

	// s = 4*x*y^2
	s := new(big.Int).Mul(p.x, yy)
	s.Lsh(s, 2)
	s.Mod(s, P)

	// m = 3*x^2 + a*(z^2)^2
	zz := new(big.Int).Mul(p.z, p.z)
	zz.Mod(zz, P)
	m := new(big.Int).Mul(p.x, p.x)
	m.Mul(m, big.NewInt(3))
	azz2 := new(big.Int).Mul(zz, zz)
	azz2.Mul(azz2, c.params.A)
	m.Add(m, azz2)
	m.Mod(m, P)

	// x3 = m^2 - 2*s
	x3 := new(big.Int).Mul(m, m)
	x3.Sub(x3, s)
	x3.Sub(x3, s)
	x3.Mod(x3, P)

	// y3 = m*(s - x3) - 8*y^4
	y3 := new(big.Int).Sub(s, x3)
	y3.Mul(y3, m)
	yyyy := new(big.Int).Mul(yy, yy)
	yyyy.Mod(yyyy, P)
	yyyy.Lsh(yyyy, 3)
	y3.Sub(y3, yyyy)
	y3.Mod(y3, P)

	// z3 = 2*y*z
	z3 := new(big.Int).Mul(p.y, p.z)
	z3.Lsh(z3, 1)
	z3.Mod(z3, P)

	return jacobianPoint{x: x3, y: y3, z: z3}
}
