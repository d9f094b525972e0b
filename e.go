package creal

import (
	"context"
	"math/big"
)

// eNode is the shared singleton computable real for e = Σ 1/k!, computed by
// the same term-by-term series accumulation as expKernelNode, value-caching.
type eNode struct {
	c cache
}

func newENode() Node { return &eNode{} }

func (z *eNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if err := verifyPrecision(p); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

// kernel accumulates e = Σ 1/k! at working precision min(-64, 2p): u_k =
// u_{k-1}/k, e += u_k, stopping once a term rounds to zero.
func (z *eNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	q := minInt(-64, 2*p)
	u := shiftNoRound(bigOne, -q)
	e := new(big.Int).Set(u)

	for k := 1; ; k++ {
		if k%16 == 0 {
			if err := checkCancel(ctx); err != nil {
				return nil, 0, err
			}
		}
		u = new(big.Int).Quo(u, big.NewInt(int64(k)))
		if u.Sign() == 0 {
			break
		}
		e.Add(e, u)
	}

	return shiftRounded(e, q-p), p, nil
}

// Msd returns the MSD implied by a cached non-zero value when there is one,
// and 1 otherwise: e is a constant in (2**0, 2**2), so 1 is always valid.
func (z *eNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if m, ok := z.c.knownMsd(); ok {
		return m, nil
	}
	if err := checkCancel(ctx); err != nil {
		return 0, err
	}
	return 1, nil
}
