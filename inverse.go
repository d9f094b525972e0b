package creal

import (
	"context"
	"math"
	"math/big"
)

// inverseNode represents 1/a via Newton's method, value-caching.
type inverseNode struct {
	a Node
	c cache
}

// NewInverse returns a Node for 1/a. Inverse(Inverse(x)) folds to x at
// construction time.
func NewInverse(a Node) Node {
	if inv, ok := a.(*inverseNode); ok {
		return inv.a
	}
	return &inverseNode{a: a}
}

func (z *inverseNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if err := verifyPrecision(p); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

// valueAtScale returns the exact integer representing 2**exp2 at the given
// scale, i.e. the value v such that v·2**scale == 2**exp2.
func valueAtScale(exp2, scale int) *big.Int {
	return shiftNoRound(bigOne, exp2-scale)
}

// kernel discovers the operand's msd against the division
// limit (failing DivideByZero if it cannot be shown non-zero there), seed a
// ~30-bit double-precision estimate of 1/a, then run Newton's iteration for
// f(z) = 1/z - a, i.e. z_{k+1} = z_k·(2 - a·z_k), doubling the number of
// correct bits each step until the target precision is reached.
func (z *inverseNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	opmsd, err := z.a.Msd(ctx, s, s.DivisionLimit)
	if err != nil {
		return nil, 0, err
	}
	if opmsd == UnknownMsd {
		return nil, 0, ErrDivideByZero
	}

	absMsd := opmsd
	if absMsd < 0 {
		absMsd = -absMsd
	}
	targetBits := absMsd - p + 32
	if targetBits < 31 {
		targetBits = 31
	}

	seedPrec := opmsd - 50
	aSeed, err := z.a.Evaluate(ctx, s, seedPrec)
	if err != nil {
		return nil, 0, err
	}
	if aSeed.Sign() == 0 {
		return nil, 0, ErrDivideByZero
	}
	aSeedF := new(big.Float).SetInt(aSeed)
	aSeedF64, _ := aSeedF.Float64()
	seedF := (math.Ldexp(1, 49) / aSeedF64) * math.Ldexp(1, 30)
	zVal := big.NewInt(int64(math.Round(seedF)))
	bits := 30
	scale := -opmsd + 1 - bits

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
		nextScale := -opmsd + 1 - nextBits

		aPrec := opmsd - nextBits - 4
		aVal, err := z.a.Evaluate(ctx, s, aPrec)
		if err != nil {
			return nil, 0, err
		}

		prodScale := aPrec + scale
		rawProd := new(big.Int).Mul(aVal, zVal)
		two := valueAtScale(1, prodScale)
		diff := new(big.Int).Sub(two, rawProd) // 2 - a·z_k at prodScale

		unrounded := new(big.Int).Mul(zVal, diff) // at scale prodScale+scale
		zVal = shiftRounded(unrounded, prodScale+scale-nextScale)
		scale = nextScale
		bits = nextBits
	}

	return zVal, scale, nil
}

func (z *inverseNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if m, ok := z.c.knownMsd(); ok {
		return m, nil
	}
	opmsd, err := z.a.Msd(ctx, s, s.DivisionLimit)
	if err != nil {
		return 0, err
	}
	if opmsd == UnknownMsd {
		return 0, ErrDivideByZero
	}
	return -opmsd, nil
}
