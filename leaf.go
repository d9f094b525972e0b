package creal

import (
	"context"
	"math/big"
)

// zeroNode is the terminal node for the real 0. Its MSD is always
// UnknownMsd (no evidence of non-zero magnitude, because it has none) and it
// evaluates to zero at any precision.
type zeroNode struct{}

// Zero is the shared computable real 0.
var Zero Node = zeroNode{}

func (zeroNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if err := verifyPrecision(p); err != nil {
		return nil, err
	}
	return big.NewInt(0), nil
}

func (zeroNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if err := checkCancel(ctx); err != nil {
		return 0, err
	}
	return UnknownMsd, nil
}

// integerNode is the terminal node for an exact integer literal. Its MSD is
// computed once from the integer's bit length (it never changes, so no
// mutex-guarded cache is needed: a plain field suffices).
type integerNode struct {
	k   *big.Int
	msd int // precomputed; UnknownMsd if k == 0
}

// NewInteger returns a Node for the exact integer k.
func NewInteger(k *big.Int) Node {
	kk := new(big.Int).Set(k)
	return &integerNode{k: kk, msd: msdFromValue(kk, 0)}
}

// NewIntegerInt64 returns a Node for the exact integer k.
func NewIntegerInt64(k int64) Node {
	return NewInteger(big.NewInt(k))
}

func (n *integerNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if err := verifyPrecision(p); err != nil {
		return nil, err
	}
	return shiftRounded(n.k, -p), nil
}

func (n *integerNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if err := checkCancel(ctx); err != nil {
		return 0, err
	}
	return n.msd, nil
}
