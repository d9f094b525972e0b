package creal

import (
	"context"
	"math/big"
	"sync"
)

// kernelFunc computes a fresh approximation for a node's kernel: given a
// requested precision p, it returns a (value, prec) pair with prec <= p
// (the kernel is free to work at a finer internal precision than asked) such
// that |x - value·2**prec| < 2**prec.
type kernelFunc func(ctx context.Context, s *Settings, p int) (*big.Int, int, error)

// cache is the approximation-cache mixin: it wraps a
// kernelFunc so repeated Evaluate calls at non-increasing precision are
// served from a memoized result via shiftRounded instead of recomputing, and
// an already-known non-zero value answers Msd immediately.
//
// An entry only ever moves to a smaller (more fractional) precision; it is
// never coarsened. Cache accesses are serialized with mu.
type cache struct {
	mu   sync.Mutex
	has  bool
	val  *big.Int
	prec int
}

// evaluate consults the cache: if
// a usable entry exists return shiftRounded(cached, q-p); otherwise run the
// kernel and store the fresh result iff it improves on what's cached.
func (c *cache) evaluate(ctx context.Context, s *Settings, p int, kernel kernelFunc) (*big.Int, error) {
	if v, ok := c.fastPath(p); ok {
		return v, nil
	}
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	val, prec, err := kernel(ctx, s, p)
	if err != nil {
		// A cancelled or failed kernel run leaves the cache untouched.
		return nil, err
	}
	return c.store(val, prec, p), nil
}

func (c *cache) fastPath(p int) (*big.Int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.has && c.prec <= p {
		return shiftRounded(c.val, c.prec-p), true
	}
	return nil, false
}

func (c *cache) store(val *big.Int, prec, p int) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Two concurrent Evaluate calls at the same precision may both compute;
	// only the better (smaller prec) result is retained.
	if !c.has || prec < c.prec {
		c.val, c.prec, c.has = val, prec, true
	}
	return shiftRounded(c.val, c.prec-p)
}

// knownMsd returns the Msd implied by a cached non-zero value, if any. MSD
// discovery on a caching node is idempotent and the first learned MSD wins
// simply because the cache itself never coarsens.
func (c *cache) knownMsd() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.has && c.val.Sign() != 0 {
		return msdFromValue(c.val, c.prec), true
	}
	return 0, false
}
