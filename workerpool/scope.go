// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime/debug"
	"sync/atomic"
)

// Scope is the handle a running task uses to fork work. It is only valid
// inside the function it was passed to.
type Scope struct {
	pool *Pool
	inv  *invocation
}

// invocation is the state shared by every task of one Invoke call.
type invocation struct {
	failure atomic.Pointer[PanicError]
}

// run executes fn, recording instead of propagating a panic. Every task body
// goes through run so that a failing half never skips the join of its
// sibling: the tree always runs to completion before Invoke returns.
func (s *Scope) run(fn func(*Scope)) {
	defer func() {
		if r := recover(); r != nil {
			s.pool.stats.panics.n.Add(1)
			s.inv.failure.CompareAndSwap(nil, &PanicError{Value: r, Stack: debug.Stack()})
		}
	}()
	fn(s)
}

// Invoke runs root on the calling goroutine, which occupies one worker slot,
// and blocks until root and every task forked from it have completed.
//
// All writes made by the task tree happen before Invoke returns. If any
// task panicked the returned error wraps ErrTaskPanicked, and results the
// tree was producing must be treated as invalid. There is no cancellation:
// once started, the whole tree runs.
//
// On a closed pool the tree runs entirely on the caller.
func (p *Pool) Invoke(root func(*Scope)) error {
	s := &Scope{pool: p, inv: &invocation{}}
	if p.acquire() {
		s.run(root)
		p.release()
	} else {
		s.run(root)
	}
	p.stats.invocations.n.Add(1)
	if perr := s.inv.failure.Load(); perr != nil {
		return perr
	}
	return nil
}

// Join runs left and right and returns once both have completed.
//
// right is handed to an idle worker when one is available; left always runs
// on the current worker. If no worker is free both run here, left first.
// While waiting for a forked right half the current worker lends its slot
// to the pool.
func (s *Scope) Join(left, right func(*Scope)) {
	p := s.pool
	done := make(chan struct{})
	forked := p.startIfAvailable(func() {
		defer close(done)
		child := &Scope{pool: p, inv: s.inv}
		child.run(right)
	})
	if !forked {
		p.stats.inlined.n.Add(1)
		s.run(left)
		s.run(right)
		return
	}
	p.stats.forked.n.Add(1)
	s.run(left)

	select {
	case <-done:
		return
	default:
	}
	p.stats.waits.n.Add(1)
	p.workerIsAsleep()
	<-done
	p.workerRestarted()
}
