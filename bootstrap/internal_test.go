// SPDX-License-Identifier: MIT

package bootstrap

import (
	"context"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitnet/characters"
	"github.com/katalvlaran/splitnet/splits"
)

func TestDeriveRNG_Reproducible(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for r := 1; r <= 5; r++ {
		ra, rb := deriveRNG(a, r), deriveRNG(b, r)
		require.Equal(t, ra.Int63(), rb.Int63(), "replicate %d", r)
	}
	require.NotEqual(t, deriveSeed(1, 1), deriveSeed(1, 2))
	require.NotZero(t, resolveSeed(0))
	require.Equal(t, int64(17), resolveSeed(17))
}

func TestRun_Metrics(t *testing.T) {
	data, err := characters.New([]string{"AACC", "AACA", "CCAA", "CCAC"})
	require.NoError(t, err)
	original := splits.NewSplitSystem(4)
	s, err := splits.NewSplit(4, []int{3, 4}, 0.5)
	require.NoError(t, err)
	_, err = original.Add(s)
	require.NoError(t, err)

	rc := RecomputeFunc(func(context.Context, *characters.Characters) (*splits.SplitSystem, error) {
		return original.Clone(), nil
	})

	merged := testutil.ToFloat64(replicatesTotal.WithLabelValues(outcomeMerged))
	finished := testutil.ToFloat64(runsTotal.WithLabelValues(Finished.String()))

	res, err := Run(context.Background(), data, original, rc, WithRuns(6), WithWorkers(4), WithSeed(1))
	require.NoError(t, err)
	require.Equal(t, 6, res.Completed)
	require.Equal(t, 1.0, res.Splits.All()[0].Confidence)

	require.Equal(t, merged+6, testutil.ToFloat64(replicatesTotal.WithLabelValues(outcomeMerged)))
	require.Equal(t, finished+1, testutil.ToFloat64(runsTotal.WithLabelValues(Finished.String())))
}
