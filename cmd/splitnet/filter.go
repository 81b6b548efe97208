// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/splitnet/dfilter"
	"github.com/katalvlaran/splitnet/splitio"
)

func newFilterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Remove splits that produce high-dimensional boxes",
		Long: `filter removes splits from the input document until no max-dimension+1 of them
are pairwise incompatible. With --circular it instead removes every split crossed
more than max-crossing times by the document's circular ordering.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runFilter(cmd)
		},
	}
	addIOFlags(cmd)

	f := cmd.Flags()
	f.Int("max-dimension", 0, "largest allowed box dimension")
	f.Int("max-crossing", 0, "largest allowed crossing count (with --circular)")
	f.Bool("circular", false, "filter by crossings of the document ordering")
	_ = a.v.BindPFlag("filter.max_dimension", f.Lookup("max-dimension"))
	_ = a.v.BindPFlag("filter.max_crossing", f.Lookup("max-crossing"))

	return cmd
}

func (a *app) runFilter(cmd *cobra.Command) error {
	doc, err := readInput(cmd)
	if err != nil {
		return err
	}
	ss, err := doc.SplitSystem()
	if err != nil {
		return err
	}

	opts := []dfilter.Option{dfilter.WithLogger(a.logger)}
	var res *dfilter.Result
	if circular, _ := cmd.Flags().GetBool("circular"); circular {
		if len(doc.Ordering) == 0 {
			return fmt.Errorf("%w: ordering", splitio.ErrSectionMissing)
		}
		res, err = dfilter.CircularFilter(cmd.Context(), ss, doc.Ordering, a.cfg.Filter.MaxCrossing, opts...)
	} else {
		res, err = dfilter.Filter(cmd.Context(), ss, a.cfg.Filter.MaxDimension, opts...)
	}
	if err != nil {
		return err
	}
	a.logger.Info("filter finished", "removed", len(res.Removed), "kept", res.Kept, "cancelled", res.Cancelled)

	out := *doc
	out.SetSplits(ss)

	return writeOutput(cmd, &out)
}
