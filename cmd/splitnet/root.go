// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/splitnet/config"
	"github.com/katalvlaran/splitnet/splitio"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:   "splitnet",
		Short: "Bootstrap support and dimension filtering for split systems",
		Long: `splitnet estimates bootstrap confidence values and simultaneous confidence
intervals for the splits of a split system, and filters split systems so the
induced network avoids high-dimensional boxes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.writeMetrics()
		},
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "config file (YAML)")
	pf.String("log-level", "", "log level: debug|info|warn|error")
	pf.String("log-format", "", "log format: text|json")
	pf.String("metrics-file", "", "write Prometheus metrics to this textfile on exit")
	_ = a.v.BindPFlag("config", pf.Lookup("config"))
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("metrics.file", pf.Lookup("metrics-file"))

	root.AddCommand(newBootstrapCmd(a), newFilterCmd(a), newCompatCmd(a))

	return root
}

// init reads the config file, validates the merged configuration and builds the logger.
func (a *app) init(stderr io.Writer) error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(stderr, cfg.Log)

	return nil
}

func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(lc.Level))
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func (a *app) writeMetrics() error {
	if a.cfg == nil || a.cfg.Metrics.File == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.Metrics.File, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}

	return nil
}

// readInput reads the document named by the --input flag.
func readInput(cmd *cobra.Command) (*splitio.Document, error) {
	path, _ := cmd.Flags().GetString("input")
	if path == "" {
		return nil, fmt.Errorf("--input is required")
	}

	return splitio.ReadFile(path)
}

// writeOutput writes doc to --output, or to stdout when it is empty.
func writeOutput(cmd *cobra.Command, doc *splitio.Document) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return splitio.Write(cmd.OutOrStdout(), doc)
	}

	return splitio.WriteFile(path, doc)
}

func addIOFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "input document (YAML)")
	cmd.Flags().StringP("output", "o", "", "output document (default stdout)")
}
