package creal

import (
	"context"
	"math/big"
)

// expNode represents exp(a). It stores a one-shot reduction to a
// subordinate node that performs the actual Taylor-series kernel.
type expNode struct {
	a   Node
	red lazyReduction
}

// NewExp returns a Node for exp(a).
func NewExp(a Node) Node {
	return &expNode{a: a}
}

func (z *expNode) reduce(ctx context.Context, s *Settings) (Node, error) {
	return z.red.get(func() (Node, error) {
		probe, err := z.a.Evaluate(ctx, s, -10)
		if err != nil {
			return nil, err
		}
		// probe·2**-10 approximates a.
		switch {
		case probe.Sign() < 0:
			return NewInverse(NewExp(NewNegate(z.a))), nil
		case probe.Cmp(big.NewInt(1<<11)) > 0: // a > 2
			half := NewExp(NewShift(z.a, -1))
			return NewMultiply(half, half), nil
		case probe.Cmp(big.NewInt(1<<10)) < 0: // a < 1
			return NewMultiply(&expKernelNode{x: NewAdd(z.a, NewIntegerInt64(1))}, s.factory.InvE()), nil
		default:
			return &expKernelNode{x: z.a}, nil
		}
	})
}

func (z *expNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	n, err := z.reduce(ctx, s)
	if err != nil {
		return nil, err
	}
	return n.Evaluate(ctx, s, p)
}

func (z *expNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	n, err := z.reduce(ctx, s)
	if err != nil {
		return 0, err
	}
	return n.Msd(ctx, s, p)
}

// expKernelNode is the direct Taylor-series kernel exp(x) = Σ x**k/k!,
// valid once x has been reduced into a safe convergence range.
type expKernelNode struct {
	x Node
	c cache
}

func (z *expKernelNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

func (z *expKernelNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	q := minInt(-32, p-64)
	x, err := z.x.Evaluate(ctx, s, q)
	if err != nil {
		return nil, 0, err
	}

	u := shiftNoRound(bigOne, -q) // u_0 = 1·2**-q
	e := new(big.Int).Set(u)      // e_0 = 1·2**-q

	for k := 1; ; k++ {
		if k%16 == 0 {
			if err := checkCancel(ctx); err != nil {
				return nil, 0, err
			}
		}
		prod := new(big.Int).Mul(u, x)
		scaled := shiftNoRound(prod, q)
		u = new(big.Int).Quo(scaled, big.NewInt(int64(k)))
		if u.Sign() == 0 {
			break
		}
		e.Add(e, u)
	}

	return shiftRounded(e, q-p), p, nil
}

func (z *expKernelNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if m, ok := z.c.knownMsd(); ok {
		return m, nil
	}
	return genericMsdSearch(ctx, s, z, p)
}
