package creal

import "context"

// genericMsdSearch tries evaluations at a decreasing
// schedule of precisions until a non-zero value is observed (from which the
// MSD follows directly) or the requested bound p is reached. The schedule
// first halves down from a generous initial guess to 64, then restarts at 0
// and descends by the multiplicative step probe -> 1.3·probe - 16, which
// drives the probed precision further negative at an accelerating rate,
// clamped at p. Cancellation is polled every iteration.
func genericMsdSearch(ctx context.Context, s *Settings, n Node, p int) (int, error) {
	probe := 1024
	for probe > 64 {
		if err := checkCancel(ctx); err != nil {
			return 0, err
		}
		v, err := n.Evaluate(ctx, s, probe)
		if err != nil {
			return 0, err
		}
		if v.Sign() != 0 {
			return msdFromValue(v, probe), nil
		}
		probe /= 2
	}

	probe = 0
	for {
		if err := checkCancel(ctx); err != nil {
			return 0, err
		}
		if probe < p {
			probe = p
		}
		v, err := n.Evaluate(ctx, s, probe)
		if err != nil {
			return 0, err
		}
		if v.Sign() != 0 {
			return msdFromValue(v, probe), nil
		}
		if probe <= p {
			return UnknownMsd, nil
		}
		probe = int(1.3*float64(probe)) - 16
	}
}
