// SPDX-License-Identifier: MIT

package recompute_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitnet/characters"
	"github.com/katalvlaran/splitnet/recompute"
)

func TestParseKind(t *testing.T) {
	for _, k := range []recompute.Kind{recompute.Binary, recompute.Compatible} {
		got, err := recompute.ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
		fn, err := k.Func()
		require.NoError(t, err)
		require.NotNil(t, fn)
	}

	_, err := recompute.ParseKind("nj")
	require.ErrorIs(t, err, recompute.ErrUnknownKind)
	_, err = recompute.Kind(9).Func()
	require.ErrorIs(t, err, recompute.ErrUnknownKind)
	require.Equal(t, "Kind(9)", recompute.Kind(9).String())
}

func TestBinarySplits(t *testing.T) {
	c, err := characters.New([]string{
		"AAAC?A",
		"AACAAA",
		"CCAAAA",
		"CCCAAG",
	})
	require.NoError(t, err)

	ss, err := recompute.BinarySplits(c)
	require.NoError(t, err)
	// Columns 1-2: 12|34; column 3: 13|24; column 4: trivial 1|234; column 5 has '?';
	// column 6 is trivial 4|123.
	require.Equal(t, 4, ss.Nsplits())

	first, err := ss.Get(1)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, first.Side())
	require.InDelta(t, 2.0/6.0, first.Weight, 1e-12)

	second, err := ss.Get(2)
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, second.Side())
	require.InDelta(t, 1.0/6.0, second.Weight, 1e-12)
}

func TestCompatibleSplits(t *testing.T) {
	c, err := characters.New([]string{
		"AAAC",
		"AACA",
		"CCAA",
		"CCCA",
	})
	require.NoError(t, err)

	all, err := recompute.BinarySplits(c)
	require.NoError(t, err)
	require.False(t, all.IsCompatible())

	ss, err := recompute.CompatibleSplits(c)
	require.NoError(t, err)
	require.True(t, ss.IsCompatible())
	first, err := ss.Get(1)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, first.Side(), "heaviest split survives")
	require.Less(t, ss.Nsplits(), all.Nsplits())
}
