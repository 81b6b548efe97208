// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/splitnet/analysis"
	"github.com/katalvlaran/splitnet/bootstrap"
	"github.com/katalvlaran/splitnet/characters"
	"github.com/katalvlaran/splitnet/splitio"
	"github.com/katalvlaran/splitnet/splits"
)

func newBootstrapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Estimate split confidences by bootstrap resampling",
		Long: `bootstrap resamples the character matrix of the input document, recomputes a
split system per replicate and reports, for every original split, its confidence
and simultaneous confidence interval. When the document has no splits section the
original splits are recomputed from the characters. With --parametric, replicates
are simulated under Jukes-Cantor on the document's tree instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBootstrap(cmd)
		},
	}
	addIOFlags(cmd)

	f := cmd.Flags()
	f.Int("runs", 0, "number of replicates")
	f.Int("length", 0, "resample length, -1 for the original length")
	f.Int64("seed", 0, "random seed, 0 for a fresh one")
	f.Int("workers", 0, "replicates computed concurrently")
	f.Float64("level", 0, "simultaneous confidence level in (0,1)")
	f.Bool("percentages", false, "report confidences as percentages")
	f.String("kind", "", "recompute routine: binary|compatible")
	f.Bool("parametric", false, "simulate replicates on the document tree")
	f.String("network", "", "also write the confidence network to this file")
	f.String("weight-method", "", "confidence network weights: frequency|lower|estimated|midpoint|upper")
	f.Float64("cutoff", 0, "confidence network cutoff for splits absent from the estimate")
	for key, name := range map[string]string{
		"bootstrap.runs":        "runs",
		"bootstrap.length":      "length",
		"bootstrap.seed":        "seed",
		"bootstrap.workers":     "workers",
		"bootstrap.level":       "level",
		"bootstrap.percentages": "percentages",
		"bootstrap.kind":        "kind",
		"network.weight_method": "weight-method",
		"network.cutoff":        "cutoff",
	} {
		_ = a.v.BindPFlag(key, f.Lookup(name))
	}

	return cmd
}

func (a *app) runBootstrap(cmd *cobra.Command) error {
	ctx := cmd.Context()
	doc, err := readInput(cmd)
	if err != nil {
		return err
	}
	data, err := doc.CharacterMatrix()
	if err != nil {
		return err
	}
	kind, err := a.cfg.RecomputeKind()
	if err != nil {
		return err
	}
	fn, err := kind.Func()
	if err != nil {
		return err
	}
	rc := bootstrap.RecomputeFunc(func(_ context.Context, c *characters.Characters) (*splits.SplitSystem, error) {
		return fn(c)
	})

	original, err := doc.SplitSystem()
	if err != nil {
		return err
	}
	if original.Nsplits() == 0 {
		if original, err = fn(data); err != nil {
			return fmt.Errorf("recompute original splits: %w", err)
		}
	}

	opts := append(a.cfg.BootstrapOptions(), bootstrap.WithLogger(a.logger))
	var res *bootstrap.Result
	if parametric, _ := cmd.Flags().GetBool("parametric"); parametric {
		tr, terr := doc.ReferenceTree()
		if terr != nil {
			return terr
		}
		sim, terr := characters.NewJukesCantor(tr, data.Ntax())
		if terr != nil {
			return terr
		}
		res, err = bootstrap.RunParametric(ctx, sim, data.Nchar(), original, rc, opts...)
	} else {
		res, err = bootstrap.Run(ctx, data, original, rc, opts...)
	}
	if err != nil {
		return err
	}
	if res.Notice != "" {
		a.logger.Warn(res.Notice, "run_id", res.RunID, "stop", res.Stop.String())
	}

	out := *doc
	if res.Display != nil {
		out.SetSplits(res.Display)
	} else {
		out.SetSplits(res.Splits)
	}
	if err = writeOutput(cmd, &out); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("network"); path != "" {
		return a.writeNetwork(path, doc, res)
	}

	return nil
}

// writeNetwork writes the confidence network of res next to the main output.
func (a *app) writeNetwork(path string, doc *splitio.Document, res *bootstrap.Result) error {
	method, err := a.cfg.WeightMethod()
	if err != nil {
		return err
	}
	net, agg, err := analysis.ConfidenceNetwork(res.Matrix, a.cfg.Bootstrap.Level, a.cfg.Network.Cutoff, method)
	if err != nil {
		return fmt.Errorf("confidence network: %w", err)
	}
	if agg.Count > 0 {
		a.logger.Info("confidence network bundled low-support splits",
			"count", agg.Count, "weight", agg.Weight, "max_confidence", agg.MaxConfidence,
			"occurrences", agg.Occurrences)
	}
	out := splitio.Document{Ntax: doc.Ntax, Taxa: doc.Taxa}
	out.SetSplits(net)

	return splitio.WriteFile(path, &out)
}
