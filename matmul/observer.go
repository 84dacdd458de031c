// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Observer receives task-tree events of a multiply. Methods are called
// concurrently from worker goroutines and must be safe for that.
//
// A multiply that fails its dimension check emits no events.
type Observer interface {
	// OnSplit is called when a task over [start, end) splits at mid.
	OnSplit(start, mid, end int)
	// OnLeaf is called before the kernel runs over [start, end).
	OnLeaf(start, end int)
}

type nopObserver struct{}

func (nopObserver) OnSplit(int, int, int) {}
func (nopObserver) OnLeaf(int, int)       {}

// TaskCounts summarizes the task tree of one or more multiplies.
type TaskCounts struct {
	Splits int64 // internal tasks
	Leaves int64 // tasks that ran the kernel
	Rows   int64 // rows covered by leaves
}

// Tasks is the total number of tasks created, Splits + Leaves.
func (c TaskCounts) Tasks() int64 { return c.Splits + c.Leaves }

// CountingObserver counts task-tree events. The zero value is ready to use.
type CountingObserver struct {
	splits, leaves, rows atomic.Int64
}

var _ Observer = (*CountingObserver)(nil)

func (o *CountingObserver) OnSplit(int, int, int) { o.splits.Add(1) }

func (o *CountingObserver) OnLeaf(start, end int) {
	o.leaves.Add(1)
	o.rows.Add(int64(end - start))
}

// Counts returns the events seen so far.
func (o *CountingObserver) Counts() TaskCounts {
	return TaskCounts{Splits: o.splits.Load(), Leaves: o.leaves.Load(), Rows: o.rows.Load()}
}

// Reset zeroes the counters.
func (o *CountingObserver) Reset() {
	o.splits.Store(0)
	o.leaves.Store(0)
	o.rows.Store(0)
}

// LogObserver traces the task tree at debug level.
type LogObserver struct {
	Log logrus.FieldLogger
}

var _ Observer = LogObserver{}

func (o LogObserver) OnSplit(start, mid, end int) {
	o.Log.WithFields(logrus.Fields{"start": start, "mid": mid, "end": end}).Debug("split")
}

func (o LogObserver) OnLeaf(start, end int) {
	o.Log.WithFields(logrus.Fields{"start": start, "end": end}).Debug("leaf")
}

// multiObserver fans events out to several observers.
type multiObserver []Observer

func (m multiObserver) OnSplit(start, mid, end int) {
	for _, o := range m {
		o.OnSplit(start, mid, end)
	}
}

func (m multiObserver) OnLeaf(start, end int) {
	for _, o := range m {
		o.OnLeaf(start, end)
	}
}
