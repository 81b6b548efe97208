// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/splitnet/incompat"
)

func newCompatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Report compatibility properties of a split system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readInput(cmd)
			if err != nil {
				return err
			}
			ss, err := doc.SplitSystem()
			if err != nil {
				return err
			}
			g := incompat.Build(ss)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "splits: %d\n", ss.Nsplits())
			fmt.Fprintf(w, "compatible: %t\n", ss.IsCompatible())
			fmt.Fprintf(w, "weakly compatible: %t\n", ss.IsWeaklyCompatible())
			fmt.Fprintf(w, "incompatible pairs: %d\n", g.EdgeCount())
			fmt.Fprintf(w, "dimension: %d\n", g.MaxClique())
			a.logger.Debug("compat finished", "splits", ss.Nsplits())

			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "input document (YAML)")

	return cmd
}
