package creal

import (
	"context"
	"math/big"
	"sync"
)

// msdSideCache memoizes an operand's msd once learned. A node's msd, once
// known, never changes, so a plain guarded int suffices (no precision
// bookkeeping needed, unlike the value cache).
type msdSideCache struct {
	mu    sync.Mutex
	known bool
	msd   int
}

func (c *msdSideCache) get() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msd, c.known
}

func (c *msdSideCache) set(m int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.known {
		c.known = true
		c.msd = m
	}
}

// multiplyNode represents a*b, value-caching plus a small side-cache
// of known MSDs for each operand.
type multiplyNode struct {
	a, b     Node
	c        cache
	msdA     msdSideCache
	msdB     msdSideCache
	selfSqr  bool // a and b are the same handle: only one evaluation needed
}

// NewMultiply returns a Node for a*b. 0·x and x·0 fold to Zero at
// construction time.
func NewMultiply(a, b Node) Node {
	if isZeroLiteral(a) || isZeroLiteral(b) {
		return Zero
	}
	return &multiplyNode{a: a, b: b, selfSqr: a == b}
}

func isZeroLiteral(n Node) bool {
	if n == Zero {
		return true
	}
	i, ok := n.(*integerNode)
	return ok && i.k.Sign() == 0
}

func (z *multiplyNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if err := verifyPrecision(p); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

func (z *multiplyNode) operandMsd(ctx context.Context, s *Settings, side *msdSideCache, op Node, p int) (int, error) {
	if m, ok := side.get(); ok {
		return m, nil
	}
	m, err := op.Msd(ctx, s, p)
	if err != nil {
		return 0, err
	}
	if m != UnknownMsd {
		side.set(m)
	}
	return m, nil
}

// kernel computes the product. |a| ∈ (2**(n'-1), 2**(n'+1)), |b| ∈
// (2**(m'-1), 2**(m'+1)); the product's scaled magnitude at precision p is
// bounded by 2**(n'+m'+2-p). n' is discovered by probing one operand's Msd
// at half-precision; if that side is UnknownMsd, the other operand's Msd
// (at the same bound) is tried. Once one side's msd is known, the other
// operand is evaluated at a precision budgeted from it, which both supplies
// the product term and (from the evaluated value's own bit length) the
// other side's msd for the final rescale.
func (z *multiplyNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	halfPrec := (p >> 1) - 1

	nMsd, err := z.operandMsd(ctx, s, &z.msdA, z.a, halfPrec)
	if err != nil {
		return nil, 0, err
	}
	aKnown := nMsd != UnknownMsd
	var mMsd int
	if !aKnown {
		mMsd, err = z.operandMsd(ctx, s, &z.msdB, z.b, halfPrec)
		if err != nil {
			return nil, 0, err
		}
		if mMsd == UnknownMsd {
			// Neither operand shown to exceed half precision: the product
			// rounds to zero at the requested precision.
			return bigZero, p, nil
		}
	}

	var knownNode, otherNode Node
	var knownMsd int
	var knownIsA bool
	if aKnown {
		knownNode, otherNode, knownMsd, knownIsA = z.a, z.b, nMsd, true
	} else {
		knownNode, otherNode, knownMsd, knownIsA = z.b, z.a, mMsd, false
	}

	otherPrec := p - knownMsd - 4
	var otherVal *big.Int
	if !z.selfSqr {
		otherVal, err = otherNode.Evaluate(ctx, s, otherPrec)
		if err != nil {
			return nil, 0, err
		}
		if otherVal.Sign() == 0 {
			return bigZero, p, nil
		}
	}

	var otherMsd int
	if z.selfSqr {
		otherMsd = knownMsd
	} else {
		otherMsd = msdFromValue(otherVal, otherPrec)
		if knownIsA {
			z.msdB.set(otherMsd)
		} else {
			z.msdA.set(otherMsd)
		}
	}

	if knownMsd+otherMsd-p < -4 {
		return bigZero, p, nil
	}

	knownPrec := p - otherMsd - 4
	knownVal, err := knownNode.Evaluate(ctx, s, knownPrec)
	if err != nil {
		return nil, 0, err
	}
	if z.selfSqr {
		otherVal, otherPrec = knownVal, knownPrec
	}

	prod := new(big.Int).Mul(knownVal, otherVal)
	return shiftRounded(prod, knownPrec+otherPrec-p), p, nil
}

func (z *multiplyNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if m, ok := z.c.knownMsd(); ok {
		return m, nil
	}
	return genericMsdSearch(ctx, s, z, p)
}
