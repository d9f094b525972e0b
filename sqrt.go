package creal

import (
	"context"
	"math"
	"math/big"
)

// sqrtNode represents √a via Newton's method, value-caching.
type sqrtNode struct {
	a Node
	c cache
}

// NewSqrt returns a Node for √a.
func NewSqrt(a Node) Node {
	return &sqrtNode{a: a}
}

func (z *sqrtNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if err := verifyPrecision(p); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

// kernel discovers the operand's msd at 2p-8 (if unknown, or
// implausibly small, the root rounds to zero at p); seed a ~40-bit estimate
// via a double-precision sqrt of the operand evaluated at an even scale;
// then run Newton's iteration for f(z) = z² - a, i.e.
// z_{k+1} = (z_k² + a) / (2 z_k), doubling correct bits each step.
func (z *sqrtNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	opmsd, err := z.a.Msd(ctx, s, 2*p-8)
	if err != nil {
		return nil, 0, err
	}
	if opmsd == UnknownMsd || opmsd < 2*p-8 {
		return bigZero, p, nil
	}

	resultMsd := floorDiv(opmsd, 2)

	evalPrec := opmsd - 80
	if evalPrec%2 != 0 {
		evalPrec--
	}
	aVal, err := z.a.Evaluate(ctx, s, evalPrec)
	if err != nil {
		return nil, 0, err
	}
	if aVal.Sign() < 0 {
		return nil, 0, ErrArithmetic("sqrt", "square root of negative operand")
	}
	if aVal.Sign() == 0 {
		return bigZero, p, nil
	}

	// aVal carries ~80 bits, so its root carries ~40 and fits an int64.
	aValF := new(big.Float).SetInt(aVal)
	aValF64, _ := aValF.Float64()
	seedF := math.Sqrt(aValF64)
	zVal := big.NewInt(int64(math.Round(seedF)))
	zScale := evalPrec / 2
	bits := resultMsd - zScale

	targetBits := resultMsd - p + 32
	if targetBits < 31 {
		targetBits = 31
	}

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
		nextScale := resultMsd - nextBits

		aPrec := opmsd - nextBits - 4
		aAtWork, err := z.a.Evaluate(ctx, s, aPrec)
		if err != nil {
			return nil, 0, err
		}

		commonScale := minInt(2*zScale, aPrec)
		zSq := new(big.Int).Mul(zVal, zVal)
		zSqAligned := shiftNoRound(zSq, 2*zScale-commonScale)
		aAligned := shiftNoRound(aAtWork, aPrec-commonScale)
		sum := new(big.Int).Add(zSqAligned, aAligned)

		denom := new(big.Int).Lsh(zVal, 1) // 2·z_k, scale zScale

		shiftAmt := maxInt(commonScale-zScale-nextScale, 0)
		numerator := shiftNoRound(sum, shiftAmt)
		zVal = divRounded(numerator, denom)
		zScale = nextScale
		bits = nextBits
	}

	return zVal, zScale, nil
}

func (z *sqrtNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if m, ok := z.c.knownMsd(); ok {
		return m, nil
	}
	opmsd, err := z.a.Msd(ctx, s, 2*p)
	if err != nil {
		return 0, err
	}
	if opmsd == UnknownMsd {
		return UnknownMsd, nil
	}
	return floorDiv(opmsd, 2), nil
}
