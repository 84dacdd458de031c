// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"errors"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, tc := range []struct{ n, want int }{
		{4, 4},
		{1, 1},
		{0, runtime.GOMAXPROCS(0)},
		{-3, runtime.GOMAXPROCS(0)},
	} {
		pool := New(tc.n)
		assert.Equal(t, tc.want, pool.NumWorkers(), "New(%d)", tc.n)
		pool.Close()
	}
}

func TestSlotAccounting(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	require.True(t, pool.acquire())
	require.True(t, pool.acquire())
	assert.False(t, pool.startIfAvailable(func() {}), "both slots are taken")

	// A worker blocked at a join lends its slot.
	pool.workerIsAsleep()
	done := make(chan struct{})
	require.True(t, pool.startIfAvailable(func() { close(done) }))
	<-done
	pool.workerRestarted()

	assert.Eventually(t, func() bool {
		pool.mu.Lock()
		defer pool.mu.Unlock()
		return pool.numRunning == 2
	}, time.Second, time.Millisecond)
	assert.False(t, pool.startIfAvailable(func() {}))

	pool.release()
	pool.release()
	require.True(t, pool.acquire())
	pool.release()
}

func TestLentSlotWakesAcquirerBehindClose(t *testing.T) {
	pool := New(1)
	require.True(t, pool.acquire())

	acquired := make(chan bool, 1)
	go func() { acquired <- pool.acquire() }()
	time.Sleep(10 * time.Millisecond)

	closed := make(chan struct{})
	go func() {
		pool.Close()
		close(closed)
	}()
	require.Eventually(t, func() bool {
		pool.mu.Lock()
		defer pool.mu.Unlock()
		return pool.closed
	}, time.Second, time.Millisecond)

	// Lending a slot wakes the acquirer even with Close waiting on the same
	// condition. The pool is closed, so the acquirer gives up.
	pool.workerIsAsleep()
	select {
	case ok := <-acquired:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("acquire still blocked after a slot was lent")
	}
	pool.workerRestarted()

	pool.release()
	<-closed
}

// sumTree recursively sums [lo, hi) with Join, splitting down to single items.
func sumTree(s *Scope, values []int64, lo, hi int, total *atomic.Int64) {
	if hi-lo <= 1 {
		if hi > lo {
			total.Add(values[lo])
		}
		return
	}
	mid := (lo + hi) / 2
	s.Join(
		func(s *Scope) { sumTree(s, values, lo, mid, total) },
		func(s *Scope) { sumTree(s, values, mid, hi, total) },
	)
}

func TestInvokeRunsWholeTree(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 16} {
		pool := New(workers)

		n := 10_000
		values := make([]int64, n)
		var want int64
		for i := range values {
			values[i] = int64(i)
			want += int64(i)
		}

		var total atomic.Int64
		err := pool.Invoke(func(s *Scope) { sumTree(s, values, 0, n, &total) })
		require.NoError(t, err)
		assert.Equal(t, want, total.Load(), "workers=%d", workers)

		pool.Close()
	}
}

func TestJoinWaitsForBothHalves(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var leftDone, rightDone atomic.Bool
	err := pool.Invoke(func(s *Scope) {
		s.Join(
			func(*Scope) { leftDone.Store(true) },
			func(*Scope) {
				time.Sleep(20 * time.Millisecond)
				rightDone.Store(true)
			},
		)
		// Both halves are complete once Join returns.
		assert.True(t, leftDone.Load())
		assert.True(t, rightDone.Load())
	})
	require.NoError(t, err)
}

func TestSingleWorkerNeverForks(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	var active, peak atomic.Int32
	var leaf func(s *Scope, depth int)
	leaf = func(s *Scope, depth int) {
		if depth == 0 {
			cur := active.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			active.Add(-1)
			return
		}
		s.Join(
			func(s *Scope) { leaf(s, depth-1) },
			func(s *Scope) { leaf(s, depth-1) },
		)
	}
	require.NoError(t, pool.Invoke(func(s *Scope) { leaf(s, 4) }))

	assert.Equal(t, int32(1), peak.Load())
	stats := pool.Stats()
	assert.Zero(t, stats.Forked)
	assert.Equal(t, int64(15), stats.Inlined)
}

func TestInvokePropagatesPanic(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var siblingDone atomic.Bool
	err := pool.Invoke(func(s *Scope) {
		s.Join(
			func(*Scope) { panic("boom") },
			func(*Scope) {
				time.Sleep(10 * time.Millisecond)
				siblingDone.Store(true)
			},
		)
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTaskPanicked))

	var perr *PanicError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "boom", perr.Value)

	// No cancellation: the sibling still ran to completion before Invoke returned.
	assert.True(t, siblingDone.Load())
	assert.Equal(t, int64(1), pool.Stats().Panics)

	// The pool stays usable after a failed invocation.
	require.NoError(t, pool.Invoke(func(*Scope) {}))
}

func TestInvokePanicInForkedHalf(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	err := pool.Invoke(func(s *Scope) {
		s.Join(
			func(*Scope) { time.Sleep(5 * time.Millisecond) },
			func(*Scope) { panic(errors.New("forked failure")) },
		)
	})
	require.ErrorIs(t, err, ErrTaskPanicked)
	assert.Contains(t, err.Error(), "forked failure")
}

func TestConcurrentInvokes(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	const callers = 8
	n := 2_000
	values := make([]int64, n)
	for i := range values {
		values[i] = 1
	}

	var wg sync.WaitGroup
	results := make([]int64, callers)
	for c := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var total atomic.Int64
			if err := pool.Invoke(func(s *Scope) { sumTree(s, values, 0, n, &total) }); err != nil {
				t.Error(err)
			}
			results[c] = total.Load()
		}()
	}
	wg.Wait()

	for c, got := range results {
		assert.Equal(t, int64(n), got, "caller %d", c)
	}
	assert.Equal(t, int64(callers), pool.Stats().Invocations)
}

func TestClosedPoolRunsInline(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // idempotent

	var total atomic.Int64
	values := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, pool.Invoke(func(s *Scope) { sumTree(s, values, 0, len(values), &total) }))
	assert.Equal(t, int64(36), total.Load())
	assert.Zero(t, pool.Stats().Forked)
}

func TestCloseWaitsForRunningWork(t *testing.T) {
	pool := New(2)

	started := make(chan struct{})
	var finished atomic.Bool
	go func() {
		_ = pool.Invoke(func(*Scope) {
			close(started)
			time.Sleep(20 * time.Millisecond)
			finished.Store(true)
		})
	}()
	<-started
	pool.Close()
	assert.True(t, finished.Load(), "Close returned before the running task finished")
}

func TestStatsSub(t *testing.T) {
	a := Stats{Invocations: 5, Forked: 10, Inlined: 3, Waits: 2, Panics: 1}
	b := Stats{Invocations: 7, Forked: 15, Inlined: 4, Waits: 2, Panics: 1}
	assert.Equal(t, Stats{Invocations: 2, Forked: 5, Inlined: 1}, b.Sub(a))
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	err := pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForChunksPartitionRange(t *testing.T) {
	for _, tc := range []struct{ workers, n int }{{1, 10}, {4, 1}, {4, 7}, {3, 100}, {8, 1000}} {
		pool := New(tc.workers)

		var mu sync.Mutex
		var chunks [][2]int
		err := pool.ParallelFor(tc.n, func(start, end int) {
			mu.Lock()
			chunks = append(chunks, [2]int{start, end})
			mu.Unlock()
		})
		require.NoError(t, err)

		sort.Slice(chunks, func(i, j int) bool { return chunks[i][0] < chunks[j][0] })
		next := 0
		for _, c := range chunks {
			assert.Equal(t, next, c[0], "gap or overlap at %v (workers=%d n=%d)", c, tc.workers, tc.n)
			assert.Less(t, c[0], c[1])
			next = c[1]
		}
		assert.Equal(t, tc.n, next)

		pool.Close()
	}
}

func TestParallelForEmpty(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	called := false
	require.NoError(t, pool.ParallelFor(0, func(int, int) { called = true }))
	assert.False(t, called)
}

func BenchmarkJoinTree(b *testing.B) {
	pool := New(runtime.GOMAXPROCS(0))
	defer pool.Close()

	n := 1 << 14
	values := make([]int64, n)
	for b.Loop() {
		var total atomic.Int64
		_ = pool.Invoke(func(s *Scope) { sumTree(s, values, 0, n, &total) })
	}
}
