package creal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	creal "github.com/creal-go/creal"
)

func TestToStringHex(t *testing.T) {
	s := creal.NewSettings()
	ctx := context.Background()
	cases := []struct {
		expr   string
		digits int
		want   string
	}{
		{"1/16", 2, "0.10"},
		{"1/2", 1, "0.8"},
		{"255", 0, "ff"},
		{"-(1/2)", 2, "-0.80"},
		{"10", 1, "a.0"},
	}
	for _, c := range cases {
		node := mustParse(t, s, c.expr)
		got, err := creal.ToString(ctx, s, node, c.digits, true)
		require.NoError(t, err)
		require.Equal(t, c.want, got, "expr %q", c.expr)
	}
}

func TestToStringZeroPadding(t *testing.T) {
	s := creal.NewSettings()
	require.Equal(t, "0.000000", render(t, s, "0", 6))
	require.Equal(t, "3", render(t, s, "pi", 0))
}

func BenchmarkSqrt(b *testing.B) {
	s := creal.NewSettings()
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		x := creal.NewSqrt(creal.NewIntegerInt64(2))
		if _, err := x.Evaluate(ctx, s, -1000); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPi(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		s := creal.NewSettings()
		if _, err := s.Pi().Evaluate(ctx, s, -1000); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExp(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		s := creal.NewSettings()
		x := creal.NewExp(creal.NewIntegerInt64(1))
		if _, err := x.Evaluate(ctx, s, -1000); err != nil {
			b.Fatal(err)
		}
	}
}
