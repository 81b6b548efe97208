// SPDX-License-Identifier: MIT

package incompat_test

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitnet/incompat"
	"github.com/katalvlaran/splitnet/splits"
)

// boxSystem returns four splits over six taxa whose incompatibility graph is the
// 4-cycle 1-2-3-4-1, i.e. one 2-dimensional box.
func boxSystem(t *testing.T) *splits.SplitSystem {
	t.Helper()
	ss := splits.NewSplitSystem(6)
	for _, side := range [][]int{{2, 3}, {3, 4}, {4, 5}, {2, 5, 6}} {
		s, err := splits.NewSplit(6, side, 1)
		require.NoError(t, err)
		_, err = ss.Add(s)
		require.NoError(t, err)
	}

	return ss
}

func TestBuild_Box(t *testing.T) {
	g := incompat.Build(boxSystem(t))

	require.Equal(t, 4, g.OriginalCount())
	require.Equal(t, 4, g.NodeCount())
	require.Equal(t, 4, g.EdgeCount())
	require.Equal(t, []int{2, 4}, g.Neighbors(1))
	require.True(t, g.Adjacent(2, 3))
	require.False(t, g.Adjacent(1, 3), "disjoint sides are compatible")
	require.Equal(t, int64(incompat.ScoreScale), g.Score(1))
	require.Equal(t, int64(-incompat.ScoreScale), g.CompatibilityScore(1))
	require.Equal(t, 2, g.MaxClique())
}

func TestRemoveNode(t *testing.T) {
	g := incompat.Build(boxSystem(t))

	require.NoError(t, g.RemoveNode(1))
	require.False(t, g.HasNode(1))
	require.Equal(t, []int{2, 3, 4}, g.Nodes())
	require.Equal(t, 2, g.EdgeCount())
	require.Equal(t, 1, g.Degree(2))
	require.Equal(t, int64(0), g.CompatibilityScore(2))
	require.Nil(t, g.Neighbors(1))
	require.ErrorIs(t, g.RemoveNode(1), incompat.ErrNodeNotFound)
	require.ErrorIs(t, g.RemoveNode(9), incompat.ErrNodeNotFound)
}

func TestMaxClique_QuartetTriangle(t *testing.T) {
	// The three non-trivial quartet splits are pairwise incompatible.
	ss := splits.NewSplitSystem(4)
	for i, side := range [][]int{{1, 2}, {1, 3}, {1, 4}} {
		s, err := splits.NewSplit(4, side, float64(i+1)*0.5)
		require.NoError(t, err)
		_, err = ss.Add(s)
		require.NoError(t, err)
	}
	g := incompat.Build(ss)

	require.Equal(t, 3, g.EdgeCount())
	require.Equal(t, 3, g.MaxClique())
	require.True(t, g.IsClique([]int{1, 2, 3}))
	require.Equal(t, int64(5000-10000-15000), g.CompatibilityScore(1))
}

func TestBuild_Empty(t *testing.T) {
	g := incompat.Build(splits.NewSplitSystem(5))
	require.Zero(t, g.NodeCount())
	require.Zero(t, g.EdgeCount())
	require.Zero(t, g.MaxClique())
}

func TestRetain(t *testing.T) {
	g := incompat.Build(boxSystem(t))
	keep := bitset.New(5).Set(1).Set(2)

	require.Equal(t, 2, g.Retain(keep))
	require.Equal(t, []int{1, 2}, g.Nodes())
	require.Equal(t, 1, g.EdgeCount())
	require.Equal(t, []int{2}, g.Neighbors(1))
	require.Zero(t, g.CompatibilityScore(1), "removed neighbor 4 no longer counts")

	require.Zero(t, g.Retain(keep), "already pruned")
}
