package creal

import (
	"context"
	"math"
	"math/big"
)

// sinNode represents sin(a). Reduction brings the argument into a
// range where the Taylor kernel converges in a handful of terms: first
// modulo-π reduction (using an exact big.Int division of the 8·a and 8·π
// probes rather than a double estimate, so it stays correct even for huge
// arguments), then, if the remainder is still not small, the triple-angle
// identity sin(3y) = 3sin(y) - 4sin(y)³ applied repeatedly.
type sinNode struct {
	a   Node
	red lazyReduction
}

// NewSin returns a Node for sin(a).
func NewSin(a Node) Node {
	return &sinNode{a: a}
}

func (z *sinNode) reduce(ctx context.Context, s *Settings) (Node, error) {
	return z.red.get(func() (Node, error) {
		n, sign, err := reduceSinArg(ctx, s, z.a, 0)
		if err != nil {
			return nil, err
		}
		if sign {
			return NewNegate(n), nil
		}
		return n, nil
	})
}

// reduceSinArg returns a Node n and a sign flag such that
// sin(a) == (sign ? -1 : 1) · Evaluate(n). depth bounds the triple-angle
// recursion as a safety valve; in practice it terminates in O(log|a|) steps
// since each triple-angle step divides the argument by 3.
func reduceSinArg(ctx context.Context, s *Settings, a Node, depth int) (Node, bool, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, false, err
	}
	if depth > 64 {
		return &sinKernelNode{x: a}, false, nil
	}

	probe, err := a.Evaluate(ctx, s, -3) // ~ 8a
	if err != nil {
		return nil, false, err
	}

	arg := a
	sign := false
	if probe.Sign() != 0 {
		piProbe, err := s.Pi().Evaluate(ctx, s, -3) // ~ 8π
		if err != nil {
			return nil, false, err
		}
		n := divRounded(probe, piProbe)
		if n.Sign() != 0 {
			arg = NewAdd(a, NewNegate(NewMultiply(NewInteger(n), s.Pi())))
			sign = n.Bit(0) == 1
			probe, err = arg.Evaluate(ctx, s, -3)
			if err != nil {
				return nil, false, err
			}
		}
	}

	if probe.CmpAbs(big.NewInt(4)) < 0 { // |arg| < 0.5
		return &sinKernelNode{x: arg}, sign, nil
	}

	third := NewMultiply(arg, NewInverse(NewIntegerInt64(3)))
	s3, s3Sign, err := reduceSinArg(ctx, s, third, depth+1)
	if err != nil {
		return nil, false, err
	}
	var s3Node Node = s3
	if s3Sign {
		s3Node = NewNegate(s3Node)
	}
	s3sq := NewMultiply(s3Node, s3Node)
	factor := NewAdd(NewIntegerInt64(3), NewNegate(NewMultiply(NewIntegerInt64(4), s3sq)))
	return NewMultiply(s3Node, factor), sign, nil
}

func (z *sinNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	n, err := z.reduce(ctx, s)
	if err != nil {
		return nil, err
	}
	return n.Evaluate(ctx, s, p)
}

func (z *sinNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	n, err := z.reduce(ctx, s)
	if err != nil {
		return 0, err
	}
	return n.Msd(ctx, s, p)
}

// sinKernelNode is the direct Taylor kernel Σ (-1)**k x**(2k+1)/(2k+1)!,
// valid once x has been reduced to |x| < 0.5.
type sinKernelNode struct {
	x Node
	c cache
}

func (z *sinKernelNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

func (z *sinKernelNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	q := minInt(-64, 2*p)
	x, err := z.x.Evaluate(ctx, s, q)
	if err != nil {
		return nil, 0, err
	}
	xsq := shiftNoRound(new(big.Int).Mul(x, x), q)

	u := new(big.Int).Set(x)
	sum := new(big.Int).Set(x)
	for k := 1; ; k++ {
		if k%16 == 0 {
			if err := checkCancel(ctx); err != nil {
				return nil, 0, err
			}
		}
		prod := shiftNoRound(new(big.Int).Mul(u, xsq), q)
		u = new(big.Int).Neg(prod)
		u = new(big.Int).Quo(u, big.NewInt(int64(2*k)))
		u = new(big.Int).Quo(u, big.NewInt(int64(2*k+1)))
		if u.Sign() == 0 {
			break
		}
		sum.Add(sum, u)
	}
	return shiftRounded(sum, q-p), p, nil
}

func (z *sinKernelNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if m, ok := z.c.knownMsd(); ok {
		return m, nil
	}
	return genericMsdSearch(ctx, s, z, p)
}

// atanNode represents atan(a).
type atanNode struct {
	a   Node
	red lazyReduction
}

// NewAtan returns a Node for atan(a).
func NewAtan(a Node) Node {
	return &atanNode{a: a}
}

// reduce shrinks the argument: while |a|'s MSD is >= -1 (roughly |a| >= 0.5),
// atan(x) = 2·atan(x / (1 + sqrt(1+x²))) shrinks the argument; the Taylor
// kernel runs directly once it no longer does.
func (z *atanNode) reduce(ctx context.Context, s *Settings) (Node, error) {
	return z.red.get(func() (Node, error) {
		m, err := z.a.Msd(ctx, s, -1)
		if err != nil {
			return nil, err
		}
		if m != UnknownMsd && m >= -1 {
			xsq := NewMultiply(z.a, z.a)
			denom := NewAdd(NewIntegerInt64(1), NewSqrt(NewAdd(NewIntegerInt64(1), xsq)))
			reducedArg := NewMultiply(z.a, NewInverse(denom))
			return NewMultiply(NewIntegerInt64(2), NewAtan(reducedArg)), nil
		}
		return &atanKernelNode{x: z.a}, nil
	})
}

func (z *atanNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	n, err := z.reduce(ctx, s)
	if err != nil {
		return nil, err
	}
	return n.Evaluate(ctx, s, p)
}

func (z *atanNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	n, err := z.reduce(ctx, s)
	if err != nil {
		return 0, err
	}
	return n.Msd(ctx, s, p)
}

// atanKernelNode is the Taylor kernel Σ (-1)**k x**(2k+1)/(2k+1), valid once
// x has been reduced to |x| < 0.5.
type atanKernelNode struct {
	x Node
	c cache
}

func (z *atanKernelNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

func (z *atanKernelNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	q := minInt(-16, p-16)
	x, err := z.x.Evaluate(ctx, s, q)
	if err != nil {
		return nil, 0, err
	}
	xsq := shiftNoRound(new(big.Int).Mul(x, x), q)

	u := new(big.Int).Set(x)
	sum := new(big.Int).Set(x)
	for k := 1; ; k++ {
		if k%16 == 0 {
			if err := checkCancel(ctx); err != nil {
				return nil, 0, err
			}
		}
		prod := shiftNoRound(new(big.Int).Mul(u, xsq), q)
		u = new(big.Int).Neg(prod)
		u.Mul(u, big.NewInt(int64(2*k-1)))
		u = new(big.Int).Quo(u, big.NewInt(int64(2*k+1)))
		if u.Sign() == 0 {
			break
		}
		sum.Add(sum, u)
	}
	return shiftRounded(sum, q-p), p, nil
}

func (z *atanKernelNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if m, ok := z.c.knownMsd(); ok {
		return m, nil
	}
	return genericMsdSearch(ctx, s, z, p)
}

// cosNode represents cos(a) ≡ sin(π/2 - a), lazily built once.
type cosNode struct {
	a   Node
	red lazyReduction
}

// NewCos returns a Node for cos(a).
func NewCos(a Node) Node {
	return &cosNode{a: a}
}

func (z *cosNode) build(s *Settings) Node {
	n, _ := z.red.get(func() (Node, error) {
		halfPi := NewShift(s.Pi(), -1)
		return NewSin(NewAdd(halfPi, NewNegate(z.a))), nil
	})
	return n
}

func (z *cosNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	return z.build(s).Evaluate(ctx, s, p)
}

func (z *cosNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	return z.build(s).Msd(ctx, s, p)
}

// tanNode represents tan(a) ≡ sin(a) / sqrt(1 - sin(a)²), lazily built once.
type tanNode struct {
	a   Node
	red lazyReduction
}

// NewTan returns a Node for tan(a).
func NewTan(a Node) Node {
	return &tanNode{a: a}
}

func (z *tanNode) build() Node {
	n, _ := z.red.get(func() (Node, error) {
		sn := NewSin(z.a)
		return NewMultiply(sn, NewInverse(NewSqrt(NewAdd(NewIntegerInt64(1), NewNegate(NewMultiply(sn, sn)))))), nil
	})
	return n
}

func (z *tanNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	return z.build().Evaluate(ctx, s, p)
}

func (z *tanNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	return z.build().Msd(ctx, s, p)
}

// asinNode represents asin(a).
type asinNode struct {
	a   Node
	red lazyReduction
}

// NewAsin returns a Node for asin(a). |a| > 1 surfaces as Overflow once
// evaluation probes the operand.
func NewAsin(a Node) Node {
	return &asinNode{a: a}
}

// reduce first probes at precision -5 to reject |a| > 1; then, while
// the operand's MSD is above -1 (roughly |a| >= 0.5),
// asin(x) = 2·asin(x / sqrt(2 + 2·sqrt(1-x²))) shrinks the argument.
func (z *asinNode) reduce(ctx context.Context, s *Settings) (Node, error) {
	return z.red.get(func() (Node, error) {
		probe, err := z.a.Evaluate(ctx, s, -5) // ~ 32a
		if err != nil {
			return nil, err
		}
		if probe.CmpAbs(big.NewInt(32)) > 0 {
			return nil, ErrOverflow("asin")
		}
		m, err := z.a.Msd(ctx, s, -1)
		if err != nil {
			return nil, err
		}
		if m != UnknownMsd && m > -1 {
			xsq := NewMultiply(z.a, z.a)
			inner := NewSqrt(NewAdd(NewIntegerInt64(1), NewNegate(xsq)))
			denomInner := NewAdd(NewIntegerInt64(2), NewMultiply(NewIntegerInt64(2), inner))
			reducedArg := NewMultiply(z.a, NewInverse(NewSqrt(denomInner)))
			return NewMultiply(NewIntegerInt64(2), NewAsin(reducedArg)), nil
		}
		return &asinKernelNode{x: z.a}, nil
	})
}

func (z *asinNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	n, err := z.reduce(ctx, s)
	if err != nil {
		return nil, err
	}
	return n.Evaluate(ctx, s, p)
}

func (z *asinNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	n, err := z.reduce(ctx, s)
	if err != nil {
		return 0, err
	}
	return n.Msd(ctx, s, p)
}

// asinResultBound loosely bounds |asin(x)| for the reduced-range operand
// this kernel receives (always < π/2 < 2): 1 bit of integer part suffices.
const asinResultBound = 1

// asinKernelNode is the Newton kernel for f(z) = sin(z) - a, f'(z) = cos(z),
// valid once a has been reduced by asinNode.reduce. Each step's
// division by cos(z) uses divRounded (exact big.Rat division) rather than a
// second Newton-reciprocal iteration inline.
type asinKernelNode struct {
	x Node
	c cache
}

func (z *asinKernelNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	return z.c.evaluate(ctx, s, p, z.kernel)
}

func (z *asinKernelNode) kernel(ctx context.Context, s *Settings, p int) (*big.Int, int, error) {
	targetBits := asinResultBound - p + 32
	if targetBits < 31 {
		targetBits = 31
	}

	seedPrec := -60
	aSeed, err := z.x.Evaluate(ctx, s, seedPrec)
	if err != nil {
		return nil, 0, err
	}
	aSeedF, _ := new(big.Float).SetInt(aSeed).Float64()
	aReal := aSeedF * math.Pow(2, float64(seedPrec))
	if aReal > 1 {
		aReal = 1
	} else if aReal < -1 {
		aReal = -1
	}
	seedAsin := math.Asin(aReal)

	bits := 30
	zScale := asinResultBound - bits
	zVal := big.NewInt(int64(math.Round(seedAsin * math.Pow(2, float64(-zScale)))))

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
		nextScale := asinResultBound - nextBits

		wp := asinResultBound - nextBits - 8

		aAtWork, err := z.x.Evaluate(ctx, s, wp)
		if err != nil {
			return nil, 0, err
		}

		zConst := NewShift(NewInteger(zVal), zScale)
		sinZ, err := NewSin(zConst).Evaluate(ctx, s, wp)
		if err != nil {
			return nil, 0, err
		}
		cosZ, err := NewCos(zConst).Evaluate(ctx, s, wp)
		if err != nil {
			return nil, 0, err
		}
		if cosZ.Sign() == 0 {
			return nil, 0, ErrArithmetic("asin", "derivative vanished during Newton iteration")
		}

		diff := new(big.Int).Sub(sinZ, aAtWork) // sin(z)-a, scale wp

		numScaled := shiftNoRound(diff, -nextScale)
		q := divRounded(numScaled, cosZ)

		newZ := shiftNoRound(zVal, zScale-nextScale)
		newZ.Sub(newZ, q)

		zVal, zScale = newZ, nextScale
		bits = nextBits
	}

	return zVal, zScale, nil
}

func (z *asinKernelNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	if m, ok := z.c.knownMsd(); ok {
		return m, nil
	}
	return genericMsdSearch(ctx, s, z, p)
}

// acosNode represents acos(a) ≡ π/2 - asin(a), lazily built once.
type acosNode struct {
	a   Node
	red lazyReduction
}

// NewAcos returns a Node for acos(a).
func NewAcos(a Node) Node {
	return &acosNode{a: a}
}

func (z *acosNode) build(s *Settings) Node {
	n, _ := z.red.get(func() (Node, error) {
		halfPi := NewShift(s.Pi(), -1)
		return NewAdd(halfPi, NewNegate(NewAsin(z.a))), nil
	})
	return n
}

func (z *acosNode) Evaluate(ctx context.Context, s *Settings, p int) (*big.Int, error) {
	return z.build(s).Evaluate(ctx, s, p)
}

func (z *acosNode) Msd(ctx context.Context, s *Settings, p int) (int, error) {
	return z.build(s).Msd(ctx, s, p)
}
