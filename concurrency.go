package creal

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"
)

// evalBothParallel fans the two operand evaluations out with errgroup: spawn
// a goroutine per operand under an errgroup-derived context so that a
// failure (including cancellation) in one cancels the other's context too.
func evalBothParallel(ctx context.Context, s *Settings, a, b Node, pa, pb int) (*big.Int, *big.Int, error) {
	g, gctx := errgroup.WithContext(ctx)
	var va, vb *big.Int
	g.Go(func() error {
		v, err := a.Evaluate(gctx, s, pa)
		if err != nil {
			return err
		}
		va = v
		return nil
	})
	g.Go(func() error {
		v, err := b.Evaluate(gctx, s, pb)
		if err != nil {
			return err
		}
		vb = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return va, vb, nil
}
