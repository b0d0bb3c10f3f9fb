package ec

import "math/big"

// Strategy selects a scalar-multiplication algorithm. The choice is an
// explicit tag rather than virtual dispatch so the timing behavior of each
// call site stays auditable.
type Strategy int

const (
	// StrategyDoubleAndAdd is the plain left-to-right binary method. It
	// branches on scalar bits and serves as the reference implementation
	// and the precomputation workhorse.
	StrategyDoubleAndAdd Strategy = iota

	// StrategyWindowed consumes the engine's precomputed odd-multiple
	// table. Only valid for the base point.
	StrategyWindowed

	// StrategyLadder is the Montgomery ladder. Its operation sequence does
	// not depend on the scalar's bit pattern, so it is the required
	// strategy for every point other than the public base point.
	StrategyLadder
)

// ScalarMult computes k*p, dispatching on the point: the engine's base
// point takes the windowed fixed-base path, everything else the ladder.
// k must be non-negative; k = 0 yields the identity.
func (c *Curve) ScalarMult(k *big.Int, p Point) Point {
	if p.Equal(c.Base()) {
		return c.ScalarMultStrategy(StrategyWindowed, k, p)
	}
	return c.ScalarMultStrategy(StrategyLadder, k, p)
}

// ScalarBaseMult computes k*G via the fixed-base windowed strategy.
func (c *Curve) ScalarBaseMult(k *big.Int) Point {
	return c.jacobianToAffine(c.windowedBaseMult(k))
}

// ScalarMultStrategy computes k*p with an explicitly chosen strategy.
// StrategyWindowed silently assumes p is the base point.
func (c *Curve) ScalarMultStrategy(strategy Strategy, k *big.Int, p Point) Point {
	switch strategy {
	case StrategyWindowed:
		return c.jacobianToAffine(c.windowedBaseMult(k))
	case StrategyLadder:
		return c.jacobianToAffine(c.ladderMult(k, p))
	default:
		return c.jacobianToAffine(c.doubleAndAdd(k, c.jacobianFromAffine(p)))
	}
}

// doubleAndAdd is the left-to-right binary method over Jacobian
// coordinates: double every bit, add when the bit is set.
func (c *Curve) doubleAndAdd(k *big.Int, p jacobianPoint) jacobianPoint {
	r := jacobianInfinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = c.jacobianDouble(r)
		if k.Bit(i) == 1 {
			r = c.jacobianAdd(r, p)
		}
	}
	return r
}

// precomputeBase builds the odd multiples 1G, 3G, ..., (2^w - 1)G of the
// base point, indexed by (multiple-1)/2.
func (c *Curve) precomputeBase() []jacobianPoint {
	base := c.jacobianFromAffine(c.Base())
	table := make([]jacobianPoint, 0, 1<<(c.windowSize-1))
	for i := int64(1); i < 1<<c.windowSize; i += 2 {
		table = append(table, c.doubleAndAdd(big.NewInt(i), base))
	}
	return table
}

// windowedBaseMult scans the bits of k from the most significant end. A
// zero bit costs one doubling; on a one bit it grabs the longest window
// (at most windowSize bits) that still ends in a one, doubles once per
// window bit, then adds the matching precomputed odd multiple. Additions
// are amortized across the repeated use of the same fixed point.
func (c *Curve) windowedBaseMult(k *big.Int) jacobianPoint {
	r := jacobianInfinity()
	bits := k.BitLen()
	for i := 0; i < bits; {
		if k.Bit(bits-1-i) == 0 {
			r = c.jacobianDouble(r)
			i++
			continue
		}

		width := int(c.windowSize)
		if remaining := bits - i; remaining < width {
			width = remaining
		}
		value := uint(0)
		for t := 0; t < width; t++ {
			value = value<<1 | k.Bit(bits-1-i-t)
		}
		// Shrink until the window ends in a one bit.
		for width > 1 && value&1 == 0 {
			width--
			value >>= 1
		}

		for t := 0; t < width; t++ {
			r = c.jacobianDouble(r)
		}
		r = c.jacobianAdd(r, c.table[(value-1)/2])
		i += width
	}
	return r
}

// ladderMult is the Montgomery ladder: both accumulators are updated at
// every bit with the same pair of operations, so the sequence of point
// additions and doublings is independent of the scalar.
func (c *Curve) ladderMult(k *big.Int, p Point) jacobianPoint {
	r0 := jacobianInfinity()
	r1 := c.jacobianFromAffine(p)
	for i := k.BitLen() - 1; i >= 0; i-- {
		if k.Bit(i) == 0 {
			r1 = c.jacobianAdd(r0, r1)
			r0 = c.jacobianDouble(r0)
		} else {
			r0 = c.jacobianAdd(r0, r1)
			r1 = c.jacobianDouble(r1)
		}
	}
	return r0
}
