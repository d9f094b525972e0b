package creal

import (
	"context"
	"math"
	"math/big"
)

// lnNode represents ln(a). Reduction narrows the operand into a
// range where the Newton kernel converges briskly, delegating to a
// subordinate node built at most once.
type lnNode struct {
	a   Node
	red lazyReduction
}

// NewLn returns a Node for ln(a). a <= 0 surfaces as an arithmetic error once
// evaluation probes its sign.
func NewLn(a Node) Node {
	return &lnNode{a: a}
}

// reduce runs the reduction ladder: a sign probe at precision -5
// rejects non-positive operands; the same probe (value·2**-5 approximating
// a) against 4096 and 4/32 decides whether to recurse on √a (doubling the
// result) or on 1/a (negating it) before falling through to the direct
// Newton kernel.
func (z *lnNode) reduce(ctx context.Context, s *Settings) (Node, error) {
	return z.red.get(func() (Node, error) {
		probe, err := z.a.Evaluate(ctx, s, -5)
		if err != nil {
			return nil, err
		}
		if probe.Sign() <= 0 {
			return nil, ErrArithmetic("ln", "logarithm of non-positive operand")
		}
		switch {
		case probe.Cmp(big.NewInt(4096*32)) > 0: // a > 4096
			return NewMultiply(NewIntegerInt64(2), NewLn(NewSqrt(z.a))), nil
		case probe.Cmp(big.NewInt(4)) < 0: // a < 4/32
			return NewNegate(NewLn(NewInverse(z.a))), nil
		default:
			return &lnKernelNode{x: z.a}, nil
		}
	})
}

func (z *lnNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	n, err := z.reduce(ctx, s)
	if err != nil {
		return nil, err
	}
	return n.Evaluate(ctx, s, p)
}

func (z *lnNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	n, err := z.reduce(ctx, s)
	if err != nil {
		return 0, err
	}
	return n.Msd(ctx, s, p)
}

// lnResultBound is a loose bit-length bound on |ln(a)| once a has been
// reduced into [4/32, 4096] by lnNode.reduce: ln(4096) < 16, so 5 bits of
// integer part is ample headroom.
const lnResultBound = 5

// lnKernelNode is the Newton kernel for f(z) = exp(z) - a, valid once a has
// been reduced into a range where a double-precision seed and a handful of
// doublings suffice.
type lnKernelNode struct {
	x Node
	c cache
}

func (z *lnKernelNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

// kernel runs Newton's iteration z_{k+1} = z_k - 1 + a·exp(-z_k), which
// doubles the number of correct bits each step, using the already-reduced
// exp kernel to evaluate exp(-z_k) at each working precision.
func (z *lnKernelNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	targetBits := lnResultBound - p + 32
	if targetBits < 31 {
		targetBits = 31
	}

	seedPrec := -60
	aSeed, err := z.x.Evaluate(ctx, s, seedPrec)
	if err != nil {
		return nil, 0, err
	}
	if aSeed.Sign() <= 0 {
		return nil, 0, ErrArithmetic("ln", "logarithm of non-positive operand")
	}
	aSeedF, _ := new(big.Float).SetInt(aSeed).Float64()
	aReal := aSeedF * math.Pow(2, float64(seedPrec))
	seedLn := math.Log(aReal)

	bits := 30
	zScale := lnResultBound - bits
	zVal := big.NewInt(int64(math.Round(seedLn * math.Pow(2, float64(-zScale)))))

	iter := 0
	for bits < targetBits {
		iter++
		if iter%16 == 0 {
			if err := checkCancel(ctx); err != nil {
				return nil, 0, err
			}
		}
		nextBits := bits * 2
		if nextBits > targetBits {
			nextBits = targetBits
		}
		nextScale := lnResultBound - nextBits

		wp := lnResultBound - nextBits - 8

		aAtWork, err := z.x.Evaluate(ctx, s, wp)
		if err != nil {
			return nil, 0, err
		}

		negZConst := NewShift(NewInteger(new(big.Int).Neg(zVal)), zScale)
		expNegZ, err := NewExp(negZConst).Evaluate(ctx, s, wp)
		if err != nil {
			return nil, 0, err
		}

		term1 := new(big.Int).Mul(aAtWork, expNegZ) // scale 2*wp, ~= a·exp(-z_k)
		term1Aligned := shiftNoRound(term1, 2*wp-nextScale)

		oneAligned := shiftNoRound(bigOne, -nextScale)
		zAligned := shiftNoRound(zVal, zScale-nextScale)

		newZ := new(big.Int).Sub(term1Aligned, oneAligned)
		newZ.Add(newZ, zAligned)

		zVal, zScale = newZ, nextScale
		bits = nextBits
	}

	return zVal, zScale, nil
}

func (z *lnKernelNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if m, ok := z.c.knownMsd(); ok {
		return m, nil
	}
	return genericMsdSearch(ctx, s, z, p)
}
