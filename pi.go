package creal

import (
	"context"
	"math/big"
)

// piNode is the shared singleton computable real for π, computed via the
// Brent-Salamin (Gauss-Legendre AGM) algorithm, value-caching.
//
// Unlike the Newton kernels in sqrt.go/inverse.go/ln.go, the AGM's auxiliary
// variables A, B, T, X never leave this function and never need the
// Approximation cache's own precision bookkeeping, so they are carried
// directly in math/big.Float instead of hand-rolled big.Int Newton steps;
// only the final A²/T is converted back to an Approximation.
type piNode struct {
	c cache
}

func newPiNode() Node { return &piNode{} }

func (z *piNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if err := verifyPrecision(p); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

// kernel runs the AGM with A=1, B=sqrt(1/2), T=1/4, X=1, all at a working
// precision twice the (non-positive) target plus guard bits; iterate
// Y=A; A=(A+B)/2; B=sqrt(B·Y); T=T-X·(A-Y)²; X=2X until |A-B| is below the
// convergence threshold 2**(q-8), q = min(p, 0); result = A²/T.
func (z *piNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	q := p
	if q > 0 {
		q = 0
	}
	workBits := uint(-2*q) + 64

	half := new(big.Float).SetPrec(workBits).SetInt64(1)
	half.Quo(half, new(big.Float).SetPrec(workBits).SetInt64(2))

	a := new(big.Float).SetPrec(workBits).SetInt64(1)
	b := new(big.Float).SetPrec(workBits).Copy(half)
	b.Sqrt(b)
	t := new(big.Float).SetPrec(workBits).Copy(half)
	t.Mul(t, half)
	x := new(big.Float).SetPrec(workBits).SetInt64(1)

	thresh := new(big.Float).SetPrec(workBits).SetMantExp(big.NewFloat(1), q-8)

	iter := 0
	for {
		iter++
		if iter%16 == 0 {
			if err := checkCancel(ctx); err != nil {
				return nil, 0, err
			}
		}

		y := new(big.Float).SetPrec(workBits).Copy(a)
		a = new(big.Float).SetPrec(workBits).Add(a, b)
		a.Mul(a, half)
		by := new(big.Float).SetPrec(workBits).Mul(b, y)
		b = new(big.Float).SetPrec(workBits).Sqrt(by)

		diff := new(big.Float).SetPrec(workBits).Sub(a, y)
		diff.Mul(diff, diff)
		diff.Mul(diff, x)
		t.Sub(t, diff)
		x.Mul(x, big.NewFloat(2))

		ab := new(big.Float).SetPrec(workBits).Sub(a, b)
		ab.Abs(ab)
		if ab.Cmp(thresh) < 0 {
			break
		}
	}

	asq := new(big.Float).SetPrec(workBits).Mul(a, a)
	piF := new(big.Float).SetPrec(workBits).Quo(asq, t)

	return floatToApprox(piF, q), q, nil
}

// Msd returns 1 unconditionally: π is a constant in (2**0, 2**2), so its MSD
// never changes and is never UNKNOWN.
func (z *piNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if err := checkCancel(ctx); err != nil {
		return 0, err
	}
	return 1, nil
}
