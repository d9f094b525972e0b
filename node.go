package creal

import (
	"context"
	"math/big"
)

// Node is a computable-real expression: a procedure that, given a requested
// binary precision p, yields an integer approximation of some real x with
// |x - value·2**p| < 2**p, and a most-significant-digit search.
//
// Implementations must be safe for concurrent use: the only mutable state a
// Node may hold is a cache guarded by its own mutex (see cache.go).
type Node interface {
	// Evaluate returns value such that |x - value·2**p| < 2**p.
	Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error)

	// Msd returns n such that 2**(n-1) < |x| < 2**(n+1), or UnknownMsd if n
	// cannot be shown to exceed p.
	Msd(ctx context.Context, s *Settings, p int) (int, error)
}

// evalBoth evaluates a and b: concurrently, awaited together, when
// s.UseMultithreading is set; otherwise sequentially in deterministic
// post-order.
func evalBoth(ctx context.Context, s *Settings, a, b Node, pa, pb int) (*big.Int, *big.Int, error) {
	if !s.UseMultithreading {
		va, err := a.Evaluate(ctx, s, pa)
		if err != nil {
			return nil, nil, err
		}
		vb, err := b.Evaluate(ctx, s, pb)
		if err != nil {
			return nil, nil, err
		}
		return va, vb, nil
	}
	return evalBothParallel(ctx, s, a, b, pa, pb)
}
