// SPDX-License-Identifier: MIT

package splits_test

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitnet/splits"
)

func mustSplit(t *testing.T, ntax int, side ...int) *splits.Split {
	t.Helper()
	s, err := splits.NewSplit(ntax, side, 1)
	require.NoError(t, err)

	return s
}

// TestNewSplit_Canonical: either side of a bipartition yields the same stored side.
func TestNewSplit_Canonical(t *testing.T) {
	a := mustSplit(t, 5, 1, 2)
	b := mustSplit(t, 5, 3, 4, 5)

	assert.Equal(t, []int{3, 4, 5}, a.Side())
	assert.Equal(t, []int{1, 2}, a.Complement())
	assert.Equal(t, "3,4,5", a.Key())
	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, a.SameBipartition(b))
	assert.True(t, a.Bits().Equal(b.Bits()))
	assert.False(t, a.Contains(1))
	assert.Equal(t, 2, a.Size())
	assert.False(t, a.IsTrivial())
	assert.True(t, a.Separates(1, 3))
	assert.False(t, a.Separates(3, 4))
	assert.Equal(t, "{1 2} | {3 4 5}", a.String())
}

func TestNewSplit_Errors(t *testing.T) {
	_, err := splits.NewSplit(1, []int{1}, 1)
	assert.ErrorIs(t, err, splits.ErrBadNtax)

	_, err = splits.NewSplit(4, []int{0, 2}, 1)
	assert.ErrorIs(t, err, splits.ErrTaxonOutOfRange)

	_, err = splits.NewSplit(4, []int{5}, 1)
	assert.ErrorIs(t, err, splits.ErrTaxonOutOfRange)

	_, err = splits.NewSplit(4, nil, 1)
	assert.ErrorIs(t, err, splits.ErrTrivialSide)

	_, err = splits.NewSplit(4, []int{1, 2, 3, 4}, 1)
	assert.ErrorIs(t, err, splits.ErrTrivialSide)
}

func TestNewSplitFromBits(t *testing.T) {
	bits := bitset.New(64)
	bits.Set(1).Set(3)
	s, err := splits.NewSplitFromBits(4, bits, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, s.Side())
	assert.True(t, bits.Test(1), "input bit-vector stays untouched")
	assert.True(t, s.SameBipartition(mustSplit(t, 4, 2, 4)), "lengths of source bit-vectors do not matter")

	bits.Set(0)
	_, err = splits.NewSplitFromBits(4, bits, 1)
	assert.ErrorIs(t, err, splits.ErrTaxonOutOfRange)

	_, err = splits.NewSplitFromBits(4, nil, 1)
	assert.ErrorIs(t, err, splits.ErrTrivialSide)
}

func TestTrivialAndClone(t *testing.T) {
	s := mustSplit(t, 4, 2)
	assert.True(t, s.IsTrivial())

	s.Confidence = 0.5
	s.Interval = &splits.Interval{Low: 0.1, High: 0.9}
	s.Label = "b"
	c := s.Clone()
	c.Interval.High = 2
	c.Label = "x"
	assert.Equal(t, 0.9, s.Interval.High)
	assert.Equal(t, "b", s.Label)
	assert.Equal(t, 0.5, c.Confidence)
	assert.True(t, c.SameBipartition(s))
}

func TestAreCompatible(t *testing.T) {
	sides := [][]int{{2}, {2, 3}, {3, 4}, {2, 4}, {4, 5}, {2, 5, 6}, {2, 3, 4}}
	all := make([]*splits.Split, len(sides))
	for i, side := range sides {
		all[i] = mustSplit(t, 6, side...)
	}
	for _, a := range all {
		assert.True(t, a.CompatibleWith(a), "%v with itself", a)
		for _, b := range all {
			assert.Equal(t, a.CompatibleWith(b), b.CompatibleWith(a), "%v vs %v", a, b)
		}
	}
	assert.True(t, all[0].CompatibleWith(all[1]), "nested")
	assert.True(t, all[1].CompatibleWith(all[4]), "disjoint")
	assert.False(t, all[1].CompatibleWith(all[2]), "overlapping")
	assert.True(t, all[2].CompatibleWith(all[6]), "nested in a larger side")
}

func TestAreWeaklyCompatible(t *testing.T) {
	q := []*splits.Split{mustSplit(t, 4, 3, 4), mustSplit(t, 4, 2, 4), mustSplit(t, 4, 2, 3)}
	assert.False(t, splits.AreWeaklyCompatible(4, q[0].Bits(), q[1].Bits(), q[2].Bits()),
		"the three quartet splits")

	c := []*splits.Split{mustSplit(t, 5, 2, 3), mustSplit(t, 5, 3, 4), mustSplit(t, 5, 4, 5)}
	assert.True(t, splits.AreWeaklyCompatible(5, c[0].Bits(), c[1].Bits(), c[2].Bits()),
		"circular splits")

	s := q[0].Bits()
	assert.True(t, splits.AreWeaklyCompatible(4, s, s, s))
}
