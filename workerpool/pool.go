// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a bounded fork-join pool for recursive,
// divide-and-conquer computation.
//
// A Pool allows at most NumWorkers tasks to be actively running at any
// moment. A task splits work with Scope.Join: the second half is handed to a
// new worker if a slot is free, otherwise both halves run inline on the
// current worker. A worker blocked at a join lends its slot to the pool
// until the child it waits on finishes, so a deep task tree never starves
// itself. Goroutines that were started are multiplexed by the Go runtime,
// whose scheduler steals runnable goroutines between processors.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.Invoke(func(s *workerpool.Scope) {
//	    var walk func(s *workerpool.Scope, lo, hi int)
//	    walk = func(s *workerpool.Scope, lo, hi int) {
//	        if hi-lo <= grain {
//	            process(lo, hi)
//	            return
//	        }
//	        mid := (lo + hi) / 2
//	        s.Join(
//	            func(s *workerpool.Scope) { walk(s, lo, mid) },
//	            func(s *workerpool.Scope) { walk(s, mid, hi) },
//	        )
//	    }
//	    walk(s, 0, n)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Pool is a bounded fork-join pool that can be reused across many Invoke
// calls, including concurrent ones.
type Pool struct {
	numWorkers int

	mu         sync.Mutex
	cond       sync.Cond
	numRunning int
	closed     bool
	closeOnce  sync.Once

	// asleep counts workers blocked at a join. Each one temporarily
	// raises the running limit by one.
	asleep atomic.Int32

	stats counters
}

// paddedCounter keeps hot counters on separate cache lines so workers on
// different cores do not false-share while updating them.
type paddedCounter struct {
	n atomic.Int64
	_ cpu.CacheLinePad
}

type counters struct {
	invocations paddedCounter
	forked      paddedCounter
	inlined     paddedCounter
	waits       paddedCounter
	panics      paddedCounter
}

// Stats is a snapshot of cumulative pool activity.
type Stats struct {
	// Invocations is the number of completed Invoke calls.
	Invocations int64
	// Forked counts Join halves that ran on a different worker than the
	// one that forked them (work taken by an idle worker).
	Forked int64
	// Inlined counts Join calls that found no free slot and ran both
	// halves on the current worker.
	Inlined int64
	// Waits counts joins that had to block because the forked half was
	// still running when the inline half finished.
	Waits int64
	// Panics counts recovered task panics.
	Panics int64
}

// Sub returns the activity between an earlier snapshot and s.
func (s Stats) Sub(earlier Stats) Stats {
	return Stats{
		Invocations: s.Invocations - earlier.Invocations,
		Forked:      s.Forked - earlier.Forked,
		Inlined:     s.Inlined - earlier.Inlined,
		Waits:       s.Waits - earlier.Waits,
		Panics:      s.Panics - earlier.Panics,
	}
}

// New creates a pool that runs at most numWorkers tasks at once.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{numWorkers: numWorkers}
	p.cond = sync.Cond{L: &p.mu}
	return p
}

// NumWorkers returns the maximum number of concurrently running tasks.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Stats returns a snapshot of the cumulative counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Invocations: p.stats.invocations.n.Load(),
		Forked:      p.stats.forked.n.Load(),
		Inlined:     p.stats.inlined.n.Load(),
		Waits:       p.stats.waits.n.Load(),
		Panics:      p.stats.panics.n.Load(),
	}
}

// Close waits for every running worker to finish and shuts the pool down.
// Work submitted after Close runs inline on the caller. Calling Close
// multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		for p.numRunning > 0 {
			p.cond.Wait()
		}
		p.mu.Unlock()
	})
}

// lockedIsFull returns whether all worker slots are taken (must hold lock).
func (p *Pool) lockedIsFull() bool {
	return p.numRunning >= p.numWorkers+int(p.asleep.Load())
}

// lockedRelease frees a worker slot (must hold lock).
func (p *Pool) lockedRelease() {
	p.numRunning--
	p.cond.Broadcast()
}

// startIfAvailable runs task on a new worker if a slot is free.
// Returns false, without running task, if the pool is full or closed.
func (p *Pool) startIfAvailable(task func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.lockedIsFull() {
		return false
	}
	p.numRunning++
	go func() {
		task()
		p.mu.Lock()
		p.lockedRelease()
		p.mu.Unlock()
	}()
	return true
}

// acquire blocks until a slot is free and takes it for the calling
// goroutine. Returns false if the pool is closed.
func (p *Pool) acquire() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for !p.closed && p.lockedIsFull() {
		p.cond.Wait()
	}
	if p.closed {
		return false
	}
	p.numRunning++
	return true
}

// release returns a slot taken by acquire.
func (p *Pool) release() {
	p.mu.Lock()
	p.lockedRelease()
	p.mu.Unlock()
}

// workerIsAsleep marks the calling worker as blocked at a join, which lets
// one more task start. Call workerRestarted once the join completes.
func (p *Pool) workerIsAsleep() {
	p.mu.Lock()
	p.asleep.Add(1)
	p.cond.Broadcast()
	p.mu.Unlock()
}

// workerRestarted undoes workerIsAsleep. The running count may briefly
// exceed the limit until a task finishes; no new task starts meanwhile.
func (p *Pool) workerRestarted() {
	p.asleep.Add(-1)
}
