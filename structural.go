package creal

import (
	"context"
	"math/big"
)

// shiftNode represents op·2**n. Shift counts compose under addition
// and a shift by zero is elided; NewShift performs both simplifications at
// construction time so the graph never carries a redundant Shift node.
type shiftNode struct {
	op Node
	n  int
}

// NewShift returns a Node for op shifted by n bits. Shift(Shift(x,a),b) is
// folded to Shift(x,a+b); a shift by zero returns op unchanged.
func NewShift(op Node, n int) Node {
	if s, ok := op.(*shiftNode); ok {
		return NewShift(s.op, s.n+n)
	}
	if n == 0 {
		return op
	}
	return &shiftNode{op: op, n: n}
}

func (z *shiftNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := verifyPrecision(p); err != nil {
		return nil, err
	}
	return z.op.Evaluate(ctx, s, p-z.n)
}

func (z *shiftNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	m, err := z.op.Msd(ctx, s, p-z.n)
	if err != nil {
		return 0, err
	}
	if m == UnknownMsd {
		return UnknownMsd, nil
	}
	return m + z.n, nil
}

// negateNode represents -op.
type negateNode struct {
	op Node
}

// NewNegate returns a Node for -op. Negate(Integer(k)) folds to Integer(-k);
// Negate(Negate(x)) folds to x.
func NewNegate(op Node) Node {
	if i, ok := op.(*integerNode); ok {
		return NewInteger(new(big.Int).Neg(i.k))
	}
	if ng, ok := op.(*negateNode); ok {
		return ng.op
	}
	return &negateNode{op: op}
}

func (z *negateNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	v, err := z.op.Evaluate(ctx, s, p)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Neg(v), nil
}

func (z *negateNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	return z.op.Msd(ctx, s, p)
}

// absNode represents |op|.
type absNode struct {
	op Node
}

// NewAbs returns a Node for |op|.
func NewAbs(op Node) Node {
	return &absNode{op: op}
}

func (z *absNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	v, err := z.op.Evaluate(ctx, s, p)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Abs(v), nil
}

func (z *absNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	return z.op.Msd(ctx, s, p)
}
