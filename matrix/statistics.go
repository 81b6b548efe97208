// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row-wise summaries used by bootstrap analysis: means, positive-entry counts.
//
// Determinism:
//   - Fixed i→j traversal for all loops.

package matrix

// RowMeans returns the mean of every row.
// Complexity: O(r*c).
func (m *Dense) RowMeans() []float64 {
	means := make([]float64, m.r)
	var i, j int
	var s float64
	for i = 0; i < m.r; i++ {
		s = 0
		base := i * m.c
		for j = 0; j < m.c; j++ {
			s += m.data[base+j]
		}
		means[i] = s / float64(m.c)
	}

	return means
}

// RowCountsAbove returns, per row, how many entries are strictly greater than threshold.
// Complexity: O(r*c).
func (m *Dense) RowCountsAbove(threshold float64) []int {
	counts := make([]int, m.r)
	var i, j int
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			if m.data[base+j] > threshold {
				counts[i]++
			}
		}
	}

	return counts
}
