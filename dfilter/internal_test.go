// SPDX-License-Identifier: MIT

package dfilter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitnet/incompat"
	"github.com/katalvlaran/splitnet/splits"
)

func buildGraph(t *testing.T, ntax int, sides [][]int) *incompat.Graph {
	t.Helper()
	ss := splits.NewSplitSystem(ntax)
	for _, side := range sides {
		s, err := splits.NewSplit(ntax, side, 1)
		require.NoError(t, err)
		_, err = ss.Add(s)
		require.NoError(t, err)
	}

	return incompat.Build(ss)
}

// Eight splits whose incompatibility graph is K8 minus the matching 1-3, 2-7, 4-6, 5-8:
// every degree is 6 but the largest clique has 4 nodes.
var cocktailSides = [][]int{
	{3, 5, 6}, {5, 7, 8}, {2, 3, 4, 5, 6, 7}, {2, 3, 4, 5, 8},
	{3, 6, 8}, {2, 5, 8}, {3, 5, 7, 8}, {3, 4, 6, 8},
}

func TestRelax_NeighborhoodRule(t *testing.T) {
	g := buildGraph(t, 8, cocktailSides)
	for v := 1; v <= 8; v++ {
		require.Equal(t, 6, g.Degree(v), "node %d", v)
	}
	require.Equal(t, 4, g.MaxClique())

	kept := relax(g, 6, g.NodeSet())
	require.Zero(t, kept.Count(), "no neighborhood holds a 6-clique")

	kept = relax(g, 7, g.NodeSet())
	require.Zero(t, kept.Count(), "degree below 7")
}

func TestRelax_KeepsSevenClique(t *testing.T) {
	var sides [][]int
	for j := 3; j <= 9; j++ {
		sides = append(sides, []int{2, j})
	}
	g := buildGraph(t, 9, sides)

	kept := relax(g, 6, g.NodeSet())
	require.Equal(t, uint(7), kept.Count())
}

func TestCliqueSubgraph_DropsPendant(t *testing.T) {
	g := buildGraph(t, 6, [][]int{{2, 3}, {2, 4}, {2, 5}, {3, 6}})

	in := cliqueSubgraph(g, 3, g.NodeSet())
	require.True(t, in.Test(1) && in.Test(2) && in.Test(3))
	require.False(t, in.Test(4))
}
