// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/Wan2729/ConcurretAssignment/internal/cpuinfo"
)

// Result is one size × thread-count measurement.
type Result struct {
	Size       int           `yaml:"size"`
	Threads    int           `yaml:"threads"`
	Strategy   Strategy      `yaml:"strategy"`
	Transposed bool          `yaml:"transposed"`
	Threshold  int           `yaml:"threshold"`
	BlockSize  int           `yaml:"block_size"`
	Mean       time.Duration `yaml:"mean"`
	Best       time.Duration `yaml:"best"`
	Speedup    float64       `yaml:"speedup"`
	Efficiency float64       `yaml:"efficiency_pct"`
	GFLOPS     float64       `yaml:"gflops"`
	// Forked is the per-run number of subtasks picked up by a worker other
	// than the one that created them.
	Forked     int64  `yaml:"forked"`
	Waits      int64  `yaml:"waits"`
	Tasks      int64  `yaml:"tasks"`
	Leaves     int64  `yaml:"leaves"`
	AllocBytes uint64 `yaml:"alloc_bytes"`
	// CPUPct is process CPU time over wall time during the timed runs.
	// It exceeds 100 when more than one core is busy.
	CPUPct    float64 `yaml:"cpu_util_pct"`
	MaxRelErr float64 `yaml:"max_rel_err"`
	Verified  bool    `yaml:"verified"`
}

// TuneResult is one threshold × block size measurement.
type TuneResult struct {
	Size      int           `yaml:"size"`
	Threads   int           `yaml:"threads"`
	Threshold int           `yaml:"threshold"`
	BlockSize int           `yaml:"block_size"`
	Mean      time.Duration `yaml:"mean"`
	Best      time.Duration `yaml:"best"`
	GFLOPS    float64       `yaml:"gflops"`
	Tasks     int64         `yaml:"tasks"`
}

// LayoutResult compares the standard and transposed kernels at one size
// and block size.
type LayoutResult struct {
	Size       int           `yaml:"size"`
	Threads    int           `yaml:"threads"`
	Threshold  int           `yaml:"threshold"`
	BlockSize  int           `yaml:"block_size"`
	Standard   time.Duration `yaml:"standard"`
	Transposed time.Duration `yaml:"transposed"`
	// ImprovementPct is (standard - transposed) / standard * 100.
	ImprovementPct float64 `yaml:"improvement_pct"`
	Verified       bool    `yaml:"verified"`
}

// Report is the output of a sweep.
type Report struct {
	Host    cpuinfo.Info   `yaml:"host"`
	Config  Config         `yaml:"config"`
	Results []Result       `yaml:"results,omitempty"`
	Tuning  []TuneResult   `yaml:"tuning,omitempty"`
	Layouts []LayoutResult `yaml:"layouts,omitempty"`
}

// WriteYAML encodes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("bench: encode report: %w", err)
	}
	return enc.Close()
}

// WriteTable prints the results as aligned columns, formatting numbers for
// the given language.
func (r *Report) WriteTable(w io.Writer, tag language.Tag) error {
	p := message.NewPrinter(tag)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	p.Fprintf(tw, "host: %s/%s  cpus: %d  gomaxprocs: %d  simd: %s\n",
		r.Host.GOOS, r.Host.GOARCH, r.Host.NumCPU, r.Host.GOMAXPROCS, r.Host.Level)
	if len(r.Results) > 0 {
		fmt.Fprintln(tw, "size\tthreads\tmean(ms)\tbest(ms)\tspeedup\teff(%)\tcpu(%)\tGFLOP/s\tforked\ttasks\talloc(KB)\tverified\t")
		for _, res := range r.Results {
			p.Fprintf(tw, "%d\t%d\t%.2f\t%.2f\t%.2f\t%.1f\t%.0f\t%.2f\t%d\t%d\t%d\t%t\t\n",
				res.Size, res.Threads, millis(res.Mean), millis(res.Best), res.Speedup,
				res.Efficiency, res.CPUPct, res.GFLOPS, res.Forked, res.Tasks, res.AllocBytes/1024, res.Verified)
		}
	}
	if len(r.Tuning) > 0 {
		fmt.Fprintln(tw, "size\tthreshold\tblock\tmean(ms)\tbest(ms)\tGFLOP/s\ttasks\t")
		for _, tr := range r.Tuning {
			p.Fprintf(tw, "%d\t%d\t%d\t%.2f\t%.2f\t%.2f\t%d\t\n",
				tr.Size, tr.Threshold, tr.BlockSize, millis(tr.Mean), millis(tr.Best), tr.GFLOPS, tr.Tasks)
		}
	}
	if len(r.Layouts) > 0 {
		fmt.Fprintln(tw, "size\tthreads\tblock\tstandard(ms)\ttransposed(ms)\timprovement(%)\tverified\t")
		for _, lr := range r.Layouts {
			p.Fprintf(tw, "%d\t%d\t%d\t%.2f\t%.2f\t%.1f\t%t\t\n",
				lr.Size, lr.Threads, lr.BlockSize, millis(lr.Standard), millis(lr.Transposed),
				lr.ImprovementPct, lr.Verified)
		}
	}
	return tw.Flush()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
