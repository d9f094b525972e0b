package creal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	creal "github.com/creal-go/creal"
)

// render parses expr and renders it to digits fractional digits, failing
// the test on any error.
func render(t *testing.T, s *creal.Settings, expr string, digits int) string {
	t.Helper()
	node, err := creal.Parse(s, expr)
	require.NoError(t, err)
	str, err := creal.ToString(context.Background(), s, node, digits, false)
	require.NoError(t, err)
	return str
}

func mustParse(t *testing.T, s *creal.Settings, expr string) creal.Node {
	t.Helper()
	node, err := creal.Parse(s, expr)
	require.NoError(t, err)
	return node
}

// TestRoundingConsistency checks that rendering at a finer precision and
// then rounding that decimal to a coarser digit count agrees with rendering
// directly at the coarser count. Plain truncation would not agree: exp(3)
// is 20.08553692318766774092|85..., which rounds up at 20 digits.
func TestRoundingConsistency(t *testing.T) {
	s := creal.NewSettings()
	for _, expr := range []string{"pi", "sqrt(2)", "exp(3)", "1/7", "sin(1)"} {
		coarse := render(t, s, expr, 20)
		fine := render(t, s, expr, 40)
		require.Len(t, fine, len(coarse)+20, "expr %q", expr)
		require.Equal(t, coarse, render(t, s, fine, 20), "expr %q", expr)
	}
}

func TestSqrtSquaredIsOperand(t *testing.T) {
	s := creal.NewSettings()
	got := render(t, s, "sqrt(2)^2", 15)
	require.Equal(t, "2.000000000000000", got)
}

func TestSinSquaredPlusCosSquared(t *testing.T) {
	s := creal.NewSettings()
	for _, expr := range []string{
		"sin(1)^2 + cos(1)^2",
		"sin(0.3)^2 + cos(0.3)^2",
		"sin(2)^2 + cos(2)^2",
	} {
		got := render(t, s, expr, 20)
		require.Equal(t, "1.00000000000000000000", got, "expr %q", expr)
	}
}

func TestLnExpRoundTrip(t *testing.T) {
	s := creal.NewSettings()
	got := render(t, s, "ln(exp(5))", 20)
	require.Equal(t, "5.00000000000000000000", got)
}

func TestExpLnRoundTrip(t *testing.T) {
	s := creal.NewSettings()
	got := render(t, s, "exp(ln(5))", 20)
	require.Equal(t, "5.00000000000000000000", got)
}

func TestSinAsinRoundTrip(t *testing.T) {
	s := creal.NewSettings()
	for _, c := range []struct{ expr, want string }{
		{"sin(asin(0.5))", "0.50000000000000000000"},
		{"sin(asin(0.25))", "0.25000000000000000000"},
		{"sin(asin(-(0.5)))", "-0.50000000000000000000"},
	} {
		require.Equal(t, c.want, render(t, s, c.expr, 20), "expr %q", c.expr)
	}
}

func TestAtanTanRoundTrip(t *testing.T) {
	s := creal.NewSettings()
	for _, c := range []struct{ expr, want string }{
		{"atan(tan(0.5))", "0.50000000000000000000"},
		{"atan(tan(1))", "1.00000000000000000000"},
	} {
		require.Equal(t, c.want, render(t, s, c.expr, 20), "expr %q", c.expr)
	}
}

func TestAsinOutOfRange(t *testing.T) {
	s := creal.NewSettings()
	node := mustParse(t, s, "asin(2)")
	_, err := creal.ToString(context.Background(), s, node, 5, false)
	require.Error(t, err)
	var ae *creal.ArithError
	require.ErrorAs(t, err, &ae)
}

func TestNegateNegateIsIdentity(t *testing.T) {
	s := creal.NewSettings()
	x := mustParse(t, s, "sqrt(2)")
	twice := creal.NewNegate(creal.NewNegate(x))
	ctx := context.Background()
	want, err := creal.ToString(ctx, s, x, 20, false)
	require.NoError(t, err)
	got, err := creal.ToString(ctx, s, twice, 20, false)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestInverseInverseIsIdentity(t *testing.T) {
	s := creal.NewSettings()
	x := mustParse(t, s, "sqrt(2)")
	twice := creal.NewInverse(creal.NewInverse(x))
	ctx := context.Background()
	want, err := creal.ToString(ctx, s, x, 20, false)
	require.NoError(t, err)
	got, err := creal.ToString(ctx, s, twice, 20, false)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestShiftComposition(t *testing.T) {
	s := creal.NewSettings()
	x := mustParse(t, s, "pi")
	composed := creal.NewShift(creal.NewShift(x, 3), -5)
	direct := creal.NewShift(x, -2)
	ctx := context.Background()
	want, err := creal.ToString(ctx, s, direct, 20, false)
	require.NoError(t, err)
	got, err := creal.ToString(ctx, s, composed, 20, false)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestMsdMonotonicity(t *testing.T) {
	s := creal.NewSettings()
	x := mustParse(t, s, "exp(10)")
	ctx := context.Background()
	m, err := x.Msd(ctx, s, 0)
	require.NoError(t, err)
	require.NotEqual(t, creal.UnknownMsd, m)
	for _, q := range []int{m, m - 10, m - 1000} {
		got, err := x.Msd(ctx, s, q)
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
}
