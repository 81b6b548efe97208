// SPDX-License-Identifier: MIT

package splits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitnet/splits"
)

func quartets(t *testing.T) *splits.SplitSystem {
	t.Helper()
	ss := splits.NewSplitSystem(4)
	for i, side := range [][]int{{3, 4}, {2, 4}, {2, 3}} {
		s, err := splits.NewSplit(4, side, float64(i+1))
		require.NoError(t, err)
		idx, err := ss.Add(s)
		require.NoError(t, err)
		require.Equal(t, i+1, idx)
	}

	return ss
}

func TestSplitSystem_Basics(t *testing.T) {
	ss := quartets(t)

	assert.Equal(t, 4, ss.Ntax())
	assert.Equal(t, 3, ss.Nsplits())
	assert.Equal(t, 6.0, ss.TotalWeight())
	assert.False(t, ss.IsCompatible())
	assert.False(t, ss.IsWeaklyCompatible())

	s, err := ss.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 2, ss.Index(s))
	assert.Equal(t, 2, ss.Index(mustSplit(t, 4, 1, 3)), "lookup by bipartition")
	assert.Zero(t, ss.Index(mustSplit(t, 5, 2, 3)))

	_, err = ss.Get(0)
	assert.ErrorIs(t, err, splits.ErrIndexOutOfRange)
	_, err = ss.Add(mustSplit(t, 5, 2, 3))
	assert.ErrorIs(t, err, splits.ErrNtaxMismatch)
}

func TestSplitSystem_RemoveShifts(t *testing.T) {
	ss := quartets(t)

	require.NoError(t, ss.Remove(1))
	assert.Equal(t, 2, ss.Nsplits())
	first, err := ss.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, first.Weight)
	assert.True(t, ss.IsWeaklyCompatible(), "fewer than three splits")
	assert.ErrorIs(t, ss.Remove(3), splits.ErrIndexOutOfRange)
}

func TestSplitSystem_CloneIsDeep(t *testing.T) {
	ss := quartets(t)
	c := ss.Clone()
	c.All()[0].Weight = 100
	require.NoError(t, c.Remove(3))

	assert.Equal(t, 1.0, ss.All()[0].Weight)
	assert.Equal(t, 3, ss.Nsplits())
}

func TestSplitSystem_InducedDistances(t *testing.T) {
	ss := quartets(t)
	d, err := ss.InducedDistances()
	require.NoError(t, err)

	// Taxa 1 and 2 are separated by 13|24 and 14|23.
	v, err := d.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = d.At(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	v, err = d.At(2, 2)
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = d.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}
