package creal

import "math/big"

// Precision bounds chosen so that 8·p cannot overflow an int on any platform
// this package targets.
const (
	MaxPrecision = 1 << 28
	MinPrecision = -(1 << 28)
)

// UnknownMsd is the sentinel returned by Msd when a node's magnitude cannot
// be shown to exceed the requested precision.
const UnknownMsd = int(^uint(0) >> 1) // math.MaxInt, without importing math here

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
)

// verifyPrecision rejects precisions outside the safe range.
func verifyPrecision(p int) error {
	if p < MinPrecision || p > MaxPrecision {
		return ErrPrecisionOverflow
	}
	return nil
}

// shiftNoRound returns k shifted by n bits: left if n >= 0, right (arithmetic,
// i.e. floor-dividing) if n < 0.
func shiftNoRound(k *big.Int, n int) *big.Int {
	z := new(big.Int)
	if n >= 0 {
		return z.Lsh(k, uint(n))
	}
	return z.Rsh(k, uint(-n))
}

// shiftRounded returns k shifted by n bits, rounding to nearest with ties
// toward +infinity when shifting right. n >= 0 behaves like a plain left
// shift; n == -1 computes (k+1)>>1; n < -1 computes ((k >> -(n+1)) + 1) >> 1.
// Rsh floors for negative k as well, so the same bias rounds both signs.
func shiftRounded(k *big.Int, n int) *big.Int {
	if n >= 0 {
		return new(big.Int).Lsh(k, uint(n))
	}
	if n == -1 {
		t := new(big.Int).Add(k, bigOne)
		return t.Rsh(t, 1)
	}
	t := new(big.Int).Rsh(k, uint(-(n+1)))
	t.Add(t, bigOne)
	return t.Rsh(t, 1)
}

// isPowerOfTwo reports whether x (which must be > 0) is an exact power of
// two.
func isPowerOfTwo(x *big.Int) bool {
	t := new(big.Int).Sub(x, bigOne)
	t.And(t, x)
	return t.Sign() == 0
}

// twosComplementBitLen mirrors java.math.BigInteger.bitLength: for x == 0 it
// is 0; for x > 0 it is the ordinary bit length; for x < 0 it is the bit
// length of -x, minus one when -x is an exact power of two (a negative
// power-of-two magnitude needs one fewer bit in two's-complement than its
// positive counterpart).
func twosComplementBitLen(x *big.Int) int {
	switch x.Sign() {
	case 0:
		return 0
	case 1:
		return x.BitLen()
	default:
		abs := new(big.Int).Neg(x)
		n := abs.BitLen()
		if isPowerOfTwo(abs) {
			n--
		}
		return n
	}
}

// msdFromValue derives the most-significant-digit position of an
// Approximation (value, prec): value·2**prec approximates some real x with
// 2**(n-1) < |x| < 2**(n+1). Returns UnknownMsd when value is zero (no
// evidence x is non-zero at this precision).
func msdFromValue(value *big.Int, prec int) int {
	if value.Sign() == 0 {
		return UnknownMsd
	}
	return prec + twosComplementBitLen(value) - 1
}
