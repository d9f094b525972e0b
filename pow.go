package creal

import (
	"context"
	"math/big"
)

// powNode represents x**y for a non-integer exponent y, lowered to
// exp(y·ln(x)). No special case for integer exponents at this
// layer; those are expected to go through NewIntegerPower instead.
type powNode struct {
	x, y Node
	red  lazyReduction
}

// NewPow returns a Node for x**y via exp(y·ln(x)).
func NewPow(x, y Node) Node {
	return &powNode{x: x, y: y}
}

func (z *powNode) build() Node {
	n, _ := z.red.get(func() (Node, error) {
		return NewExp(NewMultiply(z.y, NewLn(z.x))), nil
	})
	return n
}

func (z *powNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	return z.build().Evaluate(ctx, s, p)
}

func (z *powNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	return z.build().Msd(ctx, s, p)
}
