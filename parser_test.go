package creal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	creal "github.com/creal-go/creal"
)

func TestParseCaseInsensitiveIdentifiers(t *testing.T) {
	s := creal.NewSettings()
	for _, expr := range []string{"SQRT(4)", "Sqrt(4)", "sqrt(4)", "SqRt(4)"} {
		got := render(t, s, expr, 5)
		require.Equal(t, "2.00000", got, expr)
	}
}

func TestParseUnicodeSqrtGlyph(t *testing.T) {
	s := creal.NewSettings()
	require.Equal(t, "2.00000", render(t, s, "√(4)", 5))
}

func TestParseUnknownIdentifier(t *testing.T) {
	s := creal.NewSettings()
	_, err := creal.Parse(s, "bogus(1)")
	require.Error(t, err)
	require.True(t, errors.Is(err, creal.ErrSyntax))
}

func TestParseArityMismatch(t *testing.T) {
	s := creal.NewSettings()
	_, err := creal.Parse(s, "sqrt(1, 2)")
	require.Error(t, err)
	require.True(t, errors.Is(err, creal.ErrSyntax))
}

func TestParseUnbalancedParens(t *testing.T) {
	s := creal.NewSettings()
	_, err := creal.Parse(s, "(1 + 2")
	require.Error(t, err)
	require.True(t, errors.Is(err, creal.ErrSyntax))
}

func TestParseFloatLiteralWithExponent(t *testing.T) {
	s := creal.NewSettings()
	require.Equal(t, "123.450000", render(t, s, "1.2345E2", 6))
}

func TestParsePowOperatorIntegerExponent(t *testing.T) {
	s := creal.NewSettings()
	require.Equal(t, "8.00000", render(t, s, "2^3", 5))
}

func TestParsePowFunctionNonIntegerExponent(t *testing.T) {
	s := creal.NewSettings()
	node := mustParse(t, s, "pow(2, 0.5)")
	sqrt2 := mustParse(t, s, "sqrt(2)")
	ctx := context.Background()
	got, err := creal.ToString(ctx, s, node, 15, false)
	require.NoError(t, err)
	want, err := creal.ToString(ctx, s, sqrt2, 15, false)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestParseOperatorPrecedence(t *testing.T) {
	s := creal.NewSettings()
	require.Equal(t, "7.0000", render(t, s, "1+2*3", 4))
	require.Equal(t, "9.0000", render(t, s, "(1+2)*3", 4))
}

// TestParseCaretExponentRequiresParensForSign documents a grammar-literal
// consequence of factor := atom ['^' factor], where unary +/- is only a
// production of expression, not atom. A negative exponent must therefore be
// parenthesized; a bare sign directly after '^' is a syntax error.
func TestParseCaretExponentRequiresParensForSign(t *testing.T) {
	s := creal.NewSettings()
	_, err := creal.Parse(s, "2^-3")
	require.Error(t, err)
	require.True(t, errors.Is(err, creal.ErrSyntax))

	got := render(t, s, "2^(-3)", 6)
	want := render(t, s, "1/8", 6)
	require.Equal(t, want, got)
}
