// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Wan2729/ConcurretAssignment/internal/cpuinfo"
	"github.com/Wan2729/ConcurretAssignment/matmul"
	"github.com/Wan2729/ConcurretAssignment/matrix"
)

type multiplyFunc func(e *matmul.Engine, a, b *matrix.Dense, opts ...matmul.Option) (*matrix.Dense, error)

func strategyFunc(s Strategy) multiplyFunc {
	if s == StrategyStrips {
		return (*matmul.Engine).MultiplyStrips
	}
	return (*matmul.Engine).Multiply
}

// Runner executes benchmark sweeps described by a Config.
type Runner struct {
	cfg      Config
	log      logrus.FieldLogger
	multiply multiplyFunc
}

// NewRunner normalizes and validates cfg. A nil log discards output.
func NewRunner(cfg Config, log logrus.FieldLogger) (*Runner, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Runner{cfg: cfg, log: log, multiply: strategyFunc(cfg.Strategy)}, nil
}

// Config returns the normalized configuration.
func (r *Runner) Config() Config { return r.cfg }

// Run sweeps every size over every thread count. On error the report holds
// the results completed so far.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{Host: cpuinfo.Detect(), Config: r.cfg}
	r.log.WithFields(logrus.Fields{
		"sizes":    r.cfg.Sizes,
		"threads":  r.cfg.Threads,
		"strategy": r.cfg.Strategy,
	}).Info("starting benchmark")

	for _, size := range r.cfg.Sizes {
		results, err := r.runSize(ctx, size)
		report.Results = append(report.Results, results...)
		if err != nil {
			return report, fmt.Errorf("size %d: %w", size, err)
		}
	}
	return report, nil
}

func (r *Runner) runSize(ctx context.Context, size int) ([]Result, error) {
	log := r.log.WithField("size", size)
	a, b, err := GenerateInputs(ctx, size, r.cfg.Seed)
	if err != nil {
		return nil, err
	}
	want, err := r.reference(a, b)
	if err != nil {
		return nil, err
	}
	operand := b
	if r.cfg.Transposed {
		operand = b.Transpose()
	}
	params := r.cfg.Params().Sanitize(size)

	var baseline time.Duration
	if r.cfg.Threads[0] != 1 {
		log.Debug("measuring single-worker baseline")
		m, err := r.measure(ctx, a, operand, 1, params, nil, r.cfg.Transposed)
		if err != nil {
			return nil, err
		}
		baseline = m.mean
	}

	var results []Result
	for _, threads := range r.cfg.Threads {
		m, err := r.measure(ctx, a, operand, threads, params, want, r.cfg.Transposed)
		if err != nil {
			return results, fmt.Errorf("threads %d: %w", threads, err)
		}
		if threads == 1 {
			baseline = m.mean
		}
		res := r.result(size, threads, params, m, baseline)
		log.WithFields(logrus.Fields{
			"threads":    threads,
			"mean":       res.Mean,
			"speedup":    fmt.Sprintf("%.2f", res.Speedup),
			"efficiency": fmt.Sprintf("%.1f%%", res.Efficiency),
			"forked":     res.Forked,
			"tasks":      res.Tasks,
			"cpu":        fmt.Sprintf("%.0f%%", res.CPUPct),
		}).Info("run complete")
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) reference(a, b *matrix.Dense) (*matrix.Dense, error) {
	switch r.cfg.Reference {
	case ReferenceNaive:
		return a.MultiplyNaive(b)
	case ReferenceBLAS:
		return a.MultiplyBLAS(b)
	default:
		return nil, nil
	}
}

// measurement aggregates the timed repeats of one configuration.
type measurement struct {
	mean, best time.Duration
	stats      matmul.TaskCounts
	forked     int64
	waits      int64
	allocBytes uint64
	cpuPct     float64
	maxRelErr  float64
	verified   bool
}

// measure runs warm-up and timed repeats of a×b on a fresh engine with
// threads workers. b is already transposed when transposed is set. want,
// when non-nil, is checked against the last product.
func (r *Runner) measure(ctx context.Context, a, b *matrix.Dense, threads int, params matmul.Params, want *matrix.Dense, transposed bool) (measurement, error) {
	log := r.log.WithFields(logrus.Fields{"size": a.Rows(), "threads": threads})
	counter := &matmul.CountingObserver{}
	opts := []matmul.Option{matmul.WithParams(params), matmul.WithObserver(counter)}
	if transposed {
		opts = append(opts, matmul.WithTransposedB())
	}
	if r.cfg.TraceTasks {
		opts = append(opts, matmul.WithObserver(matmul.LogObserver{Log: log}))
	}

	eng := matmul.NewEngine(threads, opts...)
	aborted := false
	defer func() {
		if aborted {
			// The abandoned multiply still holds the pool; let it drain.
			go eng.Close()
			return
		}
		eng.Close()
	}()

	once := func() (*matrix.Dense, error) {
		c, err := WithTimeout(ctx, r.cfg.Timeout, func() (*matrix.Dense, error) {
			return r.multiply(eng, a, b)
		})
		if errors.Is(err, ErrAborted) {
			aborted = true
		}
		return c, err
	}

	for i := range r.cfg.Warmup {
		log.WithField("iteration", i).Debug("warm-up")
		if _, err := once(); err != nil {
			return measurement{}, err
		}
	}

	counter.Reset()
	before := eng.Stats()
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	allocStart := ms.TotalAlloc
	cpuStart := processCPUTime()

	var m measurement
	var total time.Duration
	var last *matrix.Dense
	for range r.cfg.Repeats {
		start := time.Now()
		c, err := once()
		elapsed := time.Since(start)
		if err != nil {
			return measurement{}, err
		}
		total += elapsed
		if m.best == 0 || elapsed < m.best {
			m.best = elapsed
		}
		last = c
	}

	cpu := processCPUTime() - cpuStart
	runtime.ReadMemStats(&ms)
	repeats := r.cfg.Repeats
	if total > 0 {
		m.cpuPct = cpu.Seconds() / total.Seconds() * 100
	}
	m.mean = total / time.Duration(repeats)
	m.allocBytes = (ms.TotalAlloc - allocStart) / uint64(repeats)
	delta := eng.Stats().Sub(before)
	m.forked = delta.Forked / int64(repeats)
	m.waits = delta.Waits / int64(repeats)
	counts := counter.Counts()
	m.stats = matmul.TaskCounts{
		Splits: counts.Splits / int64(repeats),
		Leaves: counts.Leaves / int64(repeats),
		Rows:   counts.Rows / int64(repeats),
	}

	if want != nil {
		rel, err := matrix.MaxRelDiff(last, want)
		if err != nil {
			return measurement{}, err
		}
		m.maxRelErr = rel
		if rel > r.cfg.Tolerance {
			return m, fmt.Errorf("%w: max relative error %.3g > %.3g", ErrVerification, rel, r.cfg.Tolerance)
		}
		m.verified = true
	}
	return m, nil
}

func (r *Runner) result(size, threads int, params matmul.Params, m measurement, baseline time.Duration) Result {
	res := Result{
		Size:       size,
		Threads:    threads,
		Strategy:   r.cfg.Strategy,
		Transposed: r.cfg.Transposed,
		Threshold:  params.Threshold,
		BlockSize:  params.BlockSize,
		Mean:       m.mean,
		Best:       m.best,
		GFLOPS:     gflops(size, m.mean),
		Forked:     m.forked,
		Waits:      m.waits,
		Tasks:      m.stats.Tasks(),
		Leaves:     m.stats.Leaves,
		AllocBytes: m.allocBytes,
		CPUPct:     m.cpuPct,
		MaxRelErr:  m.maxRelErr,
		Verified:   m.verified,
	}
	if m.mean > 0 && baseline > 0 {
		res.Speedup = baseline.Seconds() / m.mean.Seconds()
		res.Efficiency = res.Speedup / float64(threads) * 100
	}
	return res
}

// Tune times one size×size product for every threshold and block size
// pair on threads workers. Products are verified like in Run.
func (r *Runner) Tune(ctx context.Context, size, threads int, thresholds, blockSizes []int) ([]TuneResult, error) {
	a, b, err := GenerateInputs(ctx, size, r.cfg.Seed)
	if err != nil {
		return nil, err
	}
	want, err := r.reference(a, b)
	if err != nil {
		return nil, err
	}
	if r.cfg.Transposed {
		b = b.Transpose()
	}

	var out []TuneResult
	for _, threshold := range thresholds {
		for _, block := range blockSizes {
			params := matmul.Params{Threshold: threshold, BlockSize: block}.Sanitize(size)
			m, err := r.measure(ctx, a, b, threads, params, want, r.cfg.Transposed)
			if err != nil {
				return out, fmt.Errorf("%v: %w", params, err)
			}
			tr := TuneResult{
				Size:      size,
				Threads:   threads,
				Threshold: params.Threshold,
				BlockSize: params.BlockSize,
				Mean:      m.mean,
				Best:      m.best,
				GFLOPS:    gflops(size, m.mean),
				Tasks:     m.stats.Tasks(),
			}
			r.log.WithFields(logrus.Fields{
				"threshold": tr.Threshold,
				"block":     tr.BlockSize,
				"mean":      tr.Mean,
			}).Info("tuning point")
			out = append(out, tr)
		}
	}
	return out, nil
}

// CompareLayouts times the standard and the transposed kernel on the same
// inputs for every size and block size, on threads workers. An empty
// blockSizes uses the tuning policy. Both products are verified like in Run.
func (r *Runner) CompareLayouts(ctx context.Context, threads int, sizes, blockSizes []int) ([]LayoutResult, error) {
	if len(blockSizes) == 0 {
		blockSizes = []int{0}
	}
	var out []LayoutResult
	for _, size := range sizes {
		a, b, err := GenerateInputs(ctx, size, r.cfg.Seed)
		if err != nil {
			return out, err
		}
		want, err := r.reference(a, b)
		if err != nil {
			return out, err
		}
		bt := b.Transpose()

		for _, block := range blockSizes {
			params := r.cfg.Params()
			params.BlockSize = block
			params = params.Sanitize(size)

			std, err := r.measure(ctx, a, b, threads, params, want, false)
			if err != nil {
				return out, fmt.Errorf("size %d, %v, standard: %w", size, params, err)
			}
			tr, err := r.measure(ctx, a, bt, threads, params, want, true)
			if err != nil {
				return out, fmt.Errorf("size %d, %v, transposed: %w", size, params, err)
			}
			lr := LayoutResult{
				Size:       size,
				Threads:    threads,
				Threshold:  params.Threshold,
				BlockSize:  params.BlockSize,
				Standard:   std.mean,
				Transposed: tr.mean,
				Verified:   std.verified && tr.verified,
			}
			lr.ImprovementPct = improvement(lr.Standard, lr.Transposed)
			r.log.WithFields(logrus.Fields{
				"size":        size,
				"block":       lr.BlockSize,
				"standard":    lr.Standard,
				"transposed":  lr.Transposed,
				"improvement": fmt.Sprintf("%.1f%%", lr.ImprovementPct),
			}).Info("layouts compared")
			out = append(out, lr)
		}
	}
	return out, nil
}

// improvement is the relative time saved by transposed over std, in percent.
func improvement(std, transposed time.Duration) float64 {
	if std <= 0 {
		return 0
	}
	return float64(std-transposed) / float64(std) * 100
}

func gflops(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return 2 * float64(n) * float64(n) * float64(n) / d.Seconds() / 1e9
}
