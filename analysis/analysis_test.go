// SPDX-License-Identifier: MIT

package analysis_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitnet/analysis"
	"github.com/katalvlaran/splitnet/splitmatrix"
	"github.com/katalvlaran/splitnet/splits"
)

var (
	sideA = []int{4, 5}
	sideB = []int{3, 4, 5}
	sideC = []int{2, 3}
	sideE = []int{2, 5}
)

func system(t *testing.T, weight float64, sides ...[]int) *splits.SplitSystem {
	t.Helper()
	ss := splits.NewSplitSystem(5)
	for _, side := range sides {
		s, err := splits.NewSplit(5, side, weight)
		require.NoError(t, err)
		_, err = ss.Add(s)
		require.NoError(t, err)
	}

	return ss
}

// seeded returns the original {A,B,C} and a matrix with ten replicates holding A and B,
// the first extra of which also hold E.
func seeded(t *testing.T, extra int) (*splits.SplitSystem, *splitmatrix.SplitMatrix) {
	t.Helper()
	original := system(t, 1, sideA, sideB, sideC)
	m, err := splitmatrix.NewSeeded(5, original)
	require.NoError(t, err)
	for r := 0; r < 10; r++ {
		rep := system(t, 1, sideA, sideB)
		if r < extra {
			rep = system(t, 1, sideA, sideB, sideE)
		}
		_, err = m.Add(rep)
		require.NoError(t, err)
	}

	return original, m
}

func TestEvalConfidences(t *testing.T) {
	original, m := seeded(t, 0)
	analysis.EvalConfidences(m, original)

	all := original.All()
	assert.Equal(t, 1.0, all[0].Confidence)
	assert.Equal(t, 1.0, all[1].Confidence)
	assert.Less(t, all[2].Confidence, 1.0)
	assert.Zero(t, all[2].Confidence)
	assert.Equal(t, 3, m.Nsplits())
}

func TestEvalConfidences_ReorderedAndUnknown(t *testing.T) {
	_, m := seeded(t, 4)
	ss := system(t, 1, sideE, []int{2, 4}, sideA)
	analysis.EvalConfidences(m, ss)

	all := ss.All()
	assert.InDelta(t, 0.4, all[0].Confidence, 1e-12)
	assert.Zero(t, all[1].Confidence, "never seen")
	assert.Equal(t, 1.0, all[2].Confidence)
}

func TestEvalConfidences_NoBlocks(t *testing.T) {
	original := system(t, 1, sideA)
	m, err := splitmatrix.NewSeeded(5, original)
	require.NoError(t, err)
	original.All()[0].Confidence = 0.7

	analysis.EvalConfidences(m, original)
	assert.Zero(t, original.All()[0].Confidence)

	err = analysis.ConfidenceIntervals(m, original, 0.95)
	assert.ErrorIs(t, err, analysis.ErrNoBlocks)
}

func TestPercentages(t *testing.T) {
	assert.Equal(t, 50.0, analysis.Percentage(0.5))
	assert.Equal(t, 12.3, analysis.Percentage(0.12345))
	assert.Equal(t, 100.0, analysis.Percentage(1))

	ss := system(t, 3, sideA, sideB)
	ss.All()[0].Confidence = 0.25
	analysis.ComputePercentages(ss)
	assert.Equal(t, 25.0, ss.All()[0].Weight)
	assert.Zero(t, ss.All()[1].Weight)
}

func TestConfidenceIntervals_Constant(t *testing.T) {
	original, m := seeded(t, 0)
	require.NoError(t, analysis.ConfidenceIntervals(m, original, 0.95))

	all := original.All()
	assert.Equal(t, splits.Interval{Low: 1, High: 1}, *all[0].Interval)
	assert.Equal(t, splits.Interval{Low: 1, High: 1}, *all[1].Interval)
	assert.Equal(t, splits.Interval{Low: 0, High: 0}, *all[2].Interval, "never reproduced")
}

func TestConfidenceIntervals_AbsentSplit(t *testing.T) {
	_, m := seeded(t, 0)
	ss := system(t, 0.4, []int{2, 4})
	require.NoError(t, analysis.ConfidenceIntervals(m, ss, 0.9))
	assert.Equal(t, splits.Interval{Low: 0, High: 0.8}, *ss.All()[0].Interval)
}

func TestConfidenceIntervals_BadLevel(t *testing.T) {
	original, m := seeded(t, 0)
	for _, level := range []float64{0, 1, -0.5, 1.5} {
		assert.ErrorIs(t, analysis.ConfidenceIntervals(m, original, level), analysis.ErrBadLevel)
		assert.ErrorIs(t, analysis.OldConfidenceIntervals(m, original, level), analysis.ErrBadLevel)
	}
}

// TestConfidenceIntervals_Bounds checks Low >= 0 and Low <= High on noisy replicates.
func TestConfidenceIntervals_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	sides := [][]int{sideA, sideB, sideC, sideE, {2, 4}}
	original := system(t, 0.5, sides...)
	m, err := splitmatrix.NewSeeded(5, original)
	require.NoError(t, err)
	for r := 0; r < 200; r++ {
		rep := splits.NewSplitSystem(5)
		for _, side := range sides {
			if rng.Float64() < 0.3 {
				continue
			}
			s, serr := splits.NewSplit(5, side, rng.Float64())
			require.NoError(t, serr)
			_, serr = rep.Add(s)
			require.NoError(t, serr)
		}
		_, err = m.Add(rep)
		require.NoError(t, err)
	}

	for _, level := range []float64{0.5, 0.9, 0.95, 0.99} {
		ss := original.Clone()
		require.NoError(t, analysis.ConfidenceIntervals(m, ss, level))
		for _, s := range ss.All() {
			require.NotNil(t, s.Interval)
			assert.GreaterOrEqual(t, s.Interval.Low, 0.0)
			assert.LessOrEqual(t, s.Interval.Low, s.Interval.High)
		}

		old := original.Clone()
		require.NoError(t, analysis.OldConfidenceIntervals(m, old, level))
		for _, s := range old.All() {
			assert.GreaterOrEqual(t, s.Interval.Low, 0.0)
			assert.LessOrEqual(t, s.Interval.Low, s.Interval.High)
		}
	}
}

func TestOldConfidenceIntervals_Constant(t *testing.T) {
	original, m := seeded(t, 0)
	require.NoError(t, analysis.OldConfidenceIntervals(m, original, 0.95))

	all := original.All()
	assert.Equal(t, splits.Interval{Low: 1, High: 1}, *all[0].Interval)
	assert.Equal(t, splits.Interval{Low: 0, High: 2}, *all[2].Interval)
}

func TestConfidenceNetwork(t *testing.T) {
	_, m := seeded(t, 3)

	net, agg, err := analysis.ConfidenceNetwork(m, 0.95, 0.5, analysis.Frequency)
	require.NoError(t, err)
	require.Equal(t, 2, net.Nsplits(), "C has an empty interval, E is bundled")
	assert.Equal(t, 100.0, net.All()[0].Weight)
	assert.Equal(t, 1, agg.Count)
	assert.InDelta(t, 0.3, agg.MaxConfidence, 1e-12)
	assert.InDelta(t, 0.3, agg.MeanWeight, 1e-12)
	assert.InDelta(t, 30.0, agg.Weight, 0.1)
	assert.Equal(t, 3, agg.Occurrences)
	for _, s := range net.All() {
		assert.NotEqual(t, sideE, s.Side(), "bundled splits are not listed")
	}

	net, agg, err = analysis.ConfidenceNetwork(m, 0.95, 0, analysis.Upper)
	require.NoError(t, err)
	require.Equal(t, 3, net.Nsplits())
	assert.Zero(t, agg.Count)
	assert.Zero(t, agg.Occurrences)
	assert.Equal(t, []int{2, 5}, net.All()[2].Side())
	assert.Equal(t, 1.0, net.All()[2].Weight)
}

func TestConfidenceNetwork_Errors(t *testing.T) {
	_, m := seeded(t, 0)

	_, _, err := analysis.ConfidenceNetwork(m, 0.95, 2, analysis.Frequency)
	assert.ErrorIs(t, err, analysis.ErrBadCutoff)
	_, _, err = analysis.ConfidenceNetwork(m, 0.95, 0, analysis.WeightMethod(42))
	assert.ErrorIs(t, err, analysis.ErrUnknownWeightMethod)
	_, _, err = analysis.ConfidenceNetwork(splitmatrix.New(5), 0.95, 0, analysis.Lower)
	assert.ErrorIs(t, err, analysis.ErrNoBlocks)
}

func TestParseWeightMethod(t *testing.T) {
	for _, wm := range []analysis.WeightMethod{
		analysis.Frequency, analysis.Lower, analysis.Estimated, analysis.Midpoint, analysis.Upper,
	} {
		got, err := analysis.ParseWeightMethod(wm.String())
		require.NoError(t, err)
		assert.Equal(t, wm, got)
	}
	_, err := analysis.ParseWeightMethod("median")
	assert.ErrorIs(t, err, analysis.ErrUnknownWeightMethod)
}
