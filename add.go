package creal

import (
	"context"
	"math/big"
)

// addNode represents a+b, value-caching.
type addNode struct {
	a, b Node
	c    cache
}

// NewAdd returns a Node for a+b. x + (-x) folds to Zero at construction time
// when the negation is structurally visible.
func NewAdd(a, b Node) Node {
	if isNegationOf(b, a) || isNegationOf(a, b) {
		return Zero
	}
	return &addNode{a: a, b: b}
}

// isNegationOf reports whether neg is structurally Negate(of).
func isNegationOf(neg, of Node) bool {
	n, ok := neg.(*negateNode)
	return ok && n.op == of
}

func (z *addNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if err := verifyPrecision(p); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

// kernel evaluates both operands at p-2 (two guard bits absorb each
// operand's <=1-ulp error), sums them, and rounds back to p.
func (z *addNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	va, vb, err := evalBoth(ctx, s, z.a, z.b, p-2, p-2)
	if err != nil {
		return nil, 0, err
	}
	sum := new(big.Int).Add(va, vb)
	return shiftRounded(sum, -2), p, nil
}

func (z *addNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if m, ok := z.c.knownMsd(); ok {
		return m, nil
	}
	return genericMsdSearch(ctx, s, z, p)
}
