package creal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	creal "github.com/creal-go/creal"
)

// TestConcreteScenarios checks a table of known expression renderings.
func TestConcreteScenarios(t *testing.T) {
	cases := []struct {
		name   string
		expr   string
		digits int
		want   string
	}{
		{
			name:   "pi",
			expr:   "pi",
			digits: 64,
			want:   "3.1415926535897932384626433832795028841971693993751058209749445923",
		},
		{
			name:   "sin of half pi",
			expr:   "sin(0.5*pi)",
			digits: 64,
			want:   "1.0000000000000000000000000000000000000000000000000000000000000000",
		},
		{
			name:   "atan sin tiny",
			expr:   "atan(sin(1E-100))",
			digits: 64,
			want:   "0.0000000000000000000000000000000000000000000000000000000000000000",
		},
		{
			name:   "one over a million",
			expr:   "1 / 1000000",
			digits: 6,
			want:   "0.000001",
		},
		{
			name:   "sqrt 2",
			expr:   "sqrt(2)",
			digits: 10,
			want:   "1.4142135624",
		},
		{
			name:   "exp 100",
			expr:   "exp(100)",
			digits: 10,
			want:   "26881171418161354484126255515800135873611118.7737419224",
		},
		{
			name:   "ln exp 1000 at zero digits",
			expr:   "ln(exp(1000))",
			digits: 0,
			want:   "1000",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := creal.NewSettings()
			got := render(t, s, c.expr, c.digits)
			require.Equal(t, c.want, got)
		})
	}
}

// TestDivideByZero checks that dividing by 1.0E-10000 under the default
// division limit fails: the operand can't be shown to exceed
// DefaultDivisionLimit, so Inverse refuses to guess.
func TestDivideByZero(t *testing.T) {
	s := creal.NewSettings()
	node := mustParse(t, s, "1/1.0E-10000")
	_, err := creal.ToString(context.Background(), s, node, 10, false)
	require.Error(t, err)
	require.True(t, errors.Is(err, creal.ErrDivideByZero))
}

// TestParserStructuralEquivalence checks that these three spellings of -1/2
// all render identically at any precision >= 1.
func TestParserStructuralEquivalence(t *testing.T) {
	s := creal.NewSettings()
	exprs := []string{"-(1/2)", "1/(-2)", "-((-1)/(-2))"}
	for _, digits := range []int{1, 5, 20} {
		var want string
		for i, expr := range exprs {
			got := render(t, s, expr, digits)
			if i == 0 {
				want = got
			} else {
				require.Equal(t, want, got, "expr %q at %d digits", expr, digits)
			}
		}
		require.Equal(t, "-0.5"+repeat("0", digits-1), want)
	}
}

func repeat(s string, n int) string {
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s[0])
	}
	return string(out)
}
