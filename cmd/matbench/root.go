// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/Wan2729/ConcurretAssignment/bench"
)

const envPrefix = "MATBENCH"

// app carries the state shared by all subcommands.
type app struct {
	v   *viper.Viper
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}

	root := &cobra.Command{
		Use:   "matbench",
		Short: "Benchmark the fork-join blocked matrix multiplication engine",
		Long: `matbench multiplies dense float64 matrices with a recursive fork-join
engine, sweeping sizes and worker counts to report speedup and efficiency,
and sweeping split thresholds and block sizes for tuning.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("format", "table", "output format: table or yaml")
	pf.String("lang", "en", "language tag for number formatting in tables")
	for _, name := range []string{"log-level", "format", "lang"} {
		_ = a.v.BindPFlag(strings.ReplaceAll(name, "-", "_"), pf.Lookup(name))
	}

	root.AddCommand(
		newRunCmd(a),
		newMultiplyCmd(a),
		newTuneCmd(a),
		newLayoutsCmd(a),
		newCPUInfoCmd(a),
	)
	return root
}

// setup loads the config file and environment and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	level, err := logrus.ParseLevel(a.v.GetString("log_level"))
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	if path := a.v.ConfigFileUsed(); path != "" {
		a.log.WithField("file", path).Debug("loaded config")
	}
	return nil
}

// bindFlags maps each flag to the viper key of the same name with
// underscores, so --block-size, block_size: and MATBENCH_BLOCK_SIZE agree.
func (a *app) bindFlags(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		_ = a.v.BindPFlag(strings.ReplaceAll(name, "-", "_"), cmd.Flags().Lookup(name))
	}
}

// benchConfig decodes the bench.Config seen through flags, file and env.
func (a *app) benchConfig() (bench.Config, error) {
	def := bench.DefaultConfig()
	cfg := def
	// Slices are decoded into fresh storage, never merged with the defaults.
	cfg.Sizes, cfg.Threads = nil, nil
	if err := a.v.Unmarshal(&cfg); err != nil {
		return bench.Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = def.Sizes
	}
	if len(cfg.Threads) == 0 {
		cfg.Threads = def.Threads
	}
	return cfg, nil
}

// emit writes report in the configured format.
func (a *app) emit(w io.Writer, report *bench.Report) error {
	switch format := a.v.GetString("format"); format {
	case "yaml":
		return report.WriteYAML(w)
	case "table":
		return report.WriteTable(w, a.lang())
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (a *app) lang() language.Tag {
	tag, err := language.Parse(a.v.GetString("lang"))
	if err != nil {
		a.log.WithError(err).Warn("bad language tag, using English")
		return language.English
	}
	return tag
}
