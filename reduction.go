package creal

import "sync"

// lazyReduction is the "argument reduction, built once under a mutex"
// pattern shared by Exp, Ln, Sin, Atan and Asin: the public node
// stores one of these and forwards Evaluate/Msd to whatever subordinate
// node its build function produces. The build runs at most once
// successfully; a build that fails (in particular, one that observes
// cancellation while probing the argument) is not cached, so a later call
// can retry it.
type lazyReduction struct {
	mu   sync.Mutex
	done bool
	node Node
}

func (r *lazyReduction) get(build func() (Node, error)) (Node, error) {
	r.mu.Lock()
	if r.done {
		n := r.node
		r.mu.Unlock()
		return n, nil
	}
	r.mu.Unlock()

	n, err := build()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if !r.done {
		r.node, r.done = n, true
	}
	n = r.node
	r.mu.Unlock()
	return n, nil
}
