package creal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	creal "github.com/creal-go/creal"
)

// TestCancellation checks that a deliberately
// expensive expression with a short timeout must surface a cancellation
// failure, and the engine (and the Settings it was evaluated against) must
// remain usable for subsequent, cheaper evaluations afterwards.
func TestCancellation(t *testing.T) {
	s := creal.NewSettings()
	node := mustParse(t, s, "exp(100000)")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := creal.ToString(ctx, s, node, 10000, false)
	require.Error(t, err)
	require.True(t, creal.IsCancelled(err))

	got := render(t, s, "1+1", 5)
	require.Equal(t, "2.00000", got)
}
