// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitnet/matrix"
)

// fromRows fills a Dense with equally long rows.
func fromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}

	return m
}

func TestNewDense_Validation(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(2, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_Access(t *testing.T) {
	m := fromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())

	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)

	require.NoError(t, m.Set(0, 0, 9))
	row, err := m.Row(0)
	require.NoError(t, err)
	require.Equal(t, []float64{9, 2, 3}, row)
	row[1] = 100
	v, _ = m.At(0, 1)
	require.Equal(t, 2.0, v, "Row returns a copy")
}

func TestDense_OutOfRange(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	_, err = m.Row(5)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_Statistics(t *testing.T) {
	m := fromRows(t, [][]float64{{0, 1, 2, 1}, {0, 0, 0, 4}})

	require.Equal(t, []float64{1, 1}, m.RowMeans())
	require.Equal(t, []int{3, 1}, m.RowCountsAbove(0))
	require.Equal(t, []int{1, 1}, m.RowCountsAbove(1))
}
