// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Wan2729/ConcurretAssignment/bench"
)

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type yamlReport struct {
	Results []struct {
		Size     int  `yaml:"size"`
		Threads  int  `yaml:"threads"`
		Verified bool `yaml:"verified"`
	} `yaml:"results"`
	Tuning []struct {
		Threshold int `yaml:"threshold"`
		BlockSize int `yaml:"block_size"`
	} `yaml:"tuning"`
	Layouts []struct {
		Size           int     `yaml:"size"`
		BlockSize      int     `yaml:"block_size"`
		ImprovementPct float64 `yaml:"improvement_pct"`
		Verified       bool    `yaml:"verified"`
	} `yaml:"layouts"`
}

func decodeReport(t *testing.T, out string) yamlReport {
	t.Helper()
	var r yamlReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &r), out)
	return r
}

func TestCPUInfoCommand(t *testing.T) {
	out, err := execute(t, "cpuinfo")
	require.NoError(t, err)
	assert.Contains(t, out, "GOMAXPROCS:")
	assert.Contains(t, out, "SIMD level:")

	out, err = execute(t, "cpuinfo", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "goarch:")
	assert.Contains(t, out, "cache_line_size:")
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run",
		"--sizes", "16,24", "--threads", "1,2",
		"--warmup", "0", "--repeats", "1", "--reference", "naive",
		"--format", "yaml", "--log-level", "error")
	require.NoError(t, err)

	r := decodeReport(t, out)
	require.Len(t, r.Results, 4)
	for _, res := range r.Results {
		assert.True(t, res.Verified)
	}
	assert.Equal(t, 24, r.Results[3].Size)
	assert.Equal(t, 2, r.Results[3].Threads)
}

func TestRunCommandTable(t *testing.T) {
	out, err := execute(t, "run", "--sizes", "12", "--threads", "1",
		"--warmup", "0", "--repeats", "1", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "speedup")
	assert.Contains(t, out, "cpu(%)")
	assert.Contains(t, out, "true")
}

func TestRunCommandConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	cfg := []byte("sizes: [20]\nthreads: [1]\nwarmup: 0\nrepeats: 1\nreference: none\nformat: yaml\nlog_level: error\n")
	require.NoError(t, os.WriteFile(path, cfg, 0o644))

	out, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	r := decodeReport(t, out)
	require.Len(t, r.Results, 1)
	assert.Equal(t, 20, r.Results[0].Size)
	assert.False(t, r.Results[0].Verified, "reference none skips verification")
}

func TestRunCommandEnv(t *testing.T) {
	t.Setenv("MATBENCH_SIZES", "14")
	t.Setenv("MATBENCH_THREADS", "2")
	t.Setenv("MATBENCH_REPEATS", "1")
	t.Setenv("MATBENCH_WARMUP", "0")
	t.Setenv("MATBENCH_FORMAT", "yaml")
	t.Setenv("MATBENCH_LOG_LEVEL", "error")

	out, err := execute(t, "run")
	require.NoError(t, err)
	r := decodeReport(t, out)
	require.Len(t, r.Results, 1)
	assert.Equal(t, 14, r.Results[0].Size)
	assert.Equal(t, 2, r.Results[0].Threads)
}

func TestRunCommandInvalid(t *testing.T) {
	_, err := execute(t, "run", "--sizes", "8", "--strategy", "magic", "--log-level", "error")
	assert.ErrorIs(t, err, bench.ErrInvalidConfig)

	_, err = execute(t, "run", "--sizes", "8", "--threads", "1", "--repeats", "1",
		"--format", "xml", "--log-level", "error")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "cpuinfo", "--log-level", "loud")
	assert.Error(t, err)
}

func TestTuneCommand(t *testing.T) {
	out, err := execute(t, "tune",
		"--size", "24", "--workers", "2",
		"--thresholds", "4,24", "--block-sizes", "8",
		"--warmup", "0", "--repeats", "1",
		"--format", "yaml", "--log-level", "error")
	require.NoError(t, err)

	r := decodeReport(t, out)
	require.Len(t, r.Tuning, 2)
	assert.Equal(t, 4, r.Tuning[0].Threshold)
	assert.Equal(t, 24, r.Tuning[1].Threshold)
	assert.Equal(t, 8, r.Tuning[1].BlockSize)
}

func TestLayoutsCommand(t *testing.T) {
	out, err := execute(t, "layouts",
		"--sizes", "16,24", "--workers", "2", "--block-sizes", "8,16",
		"--warmup", "0", "--repeats", "1", "--reference", "naive",
		"--format", "yaml", "--log-level", "error")
	require.NoError(t, err)

	r := decodeReport(t, out)
	require.Len(t, r.Layouts, 4)
	assert.Equal(t, 16, r.Layouts[0].Size)
	assert.Equal(t, 8, r.Layouts[0].BlockSize)
	assert.Equal(t, 24, r.Layouts[3].Size)
	assert.Equal(t, 16, r.Layouts[3].BlockSize)
	for _, lr := range r.Layouts {
		assert.True(t, lr.Verified)
	}

	out, err = execute(t, "layouts", "--sizes", "12", "--workers", "1",
		"--warmup", "0", "--repeats", "1", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "improvement(%)")
	assert.Contains(t, out, "transposed(ms)")
}

func TestMultiplyCommand(t *testing.T) {
	for _, mode := range [][]string{nil, {"--transposed"}, {"--strips"}} {
		args := append([]string{"multiply", "--m", "30", "--k", "20", "--n", "10", "--threads", "2", "--log-level", "error"}, mode...)
		out, err := execute(t, args...)
		require.NoError(t, err, "%v", mode)
		assert.Contains(t, out, "30x10 result")
	}
}
