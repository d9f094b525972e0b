package creal

import (
	"context"
	"math/big"
	"strings"
)

// ToString renders x to d fractional digits in base 10 (or
// base 16 when hex is true) by building a node equal to x·B**d (B=16 via a
// left shift by 4d, B=10 via multiplication by 10**d), evaluating it at
// precision 0 to obtain a plain integer, and inserting the radix point d
// digits from the right.
func ToString(ctx context.Context, s *Settings, x Node, d int, hex bool) (string, error) {
	if d < 0 {
		return "", ErrArithmetic("toString", "negative digit count")
	}

	var scaled Node
	base := 10
	if hex {
		scaled = NewShift(x, 4*d)
		base = 16
	} else {
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d)), nil)
		scaled = NewMultiply(x, NewInteger(pow))
	}

	v, err := scaled.Evaluate(ctx, s, 0)
	if err != nil {
		return "", err
	}

	neg := v.Sign() < 0
	abs := new(big.Int).Abs(v)
	digits := abs.Text(base)
	if abs.Sign() == 0 {
		digits = "0"
	} else {
		digits = strings.TrimLeft(digits, "0")
		if digits == "" {
			digits = "0"
		}
	}

	var body string
	switch {
	case len(digits) <= d:
		body = "0." + strings.Repeat("0", d-len(digits)) + digits
	case d == 0:
		body = digits
	default:
		cut := len(digits) - d
		body = digits[:cut] + "." + digits[cut:]
	}

	if neg {
		return "-" + body, nil
	}
	return body, nil
}
