// SPDX-License-Identifier: MIT
//
// File: confidence.go
// Role: Occurrence-based confidences and display percentages.

package analysis

import (
	"math"

	"github.com/katalvlaran/splitnet/splitmatrix"
	"github.com/katalvlaran/splitnet/splits"
)

// rowFor returns the matrix row of split s stored at index i of its system.
// Row i is used when it still holds the same bipartition; otherwise the row is
// looked up by canonical key, which tolerates renumbering.
func rowFor(m *splitmatrix.SplitMatrix, i int, s *splits.Split) (int, bool) {
	if ms, err := m.Split(i); err == nil && ms.SameBipartition(s) {
		return i, true
	}

	return m.FindSplit(s)
}

// EvalConfidences sets Confidence of every split of ss to the fraction of replicate
// blocks of m in which it has strictly positive weight.
//
// Behavior highlights:
//   - Splits absent from m get confidence 0.
//   - With no blocks every confidence is 0.
//   - Results lie in [0,1]; a split present in every block gets exactly 1.
//
// Complexity:
//   - Time O(n·ntax/64) for n = ss.Nsplits(); occurrences are O(1) bitmap cardinalities.
func EvalConfidences(m *splitmatrix.SplitMatrix, ss *splits.SplitSystem) {
	nblocks := m.Nblocks()
	for i, s := range ss.All() {
		row, ok := rowFor(m, i+1, s)
		if !ok || nblocks == 0 {
			s.Confidence = 0
			continue
		}
		s.Confidence = float64(m.Occurrences(row)) / float64(nblocks)
	}
}

// Percentage rescales a confidence to a percentage truncated to one decimal.
func Percentage(confidence float64) float64 {
	return math.Floor(confidence*1000) / 10
}

// ComputePercentages overwrites every weight of ss with Percentage(Confidence).
// Intended for display-oriented copies only.
func ComputePercentages(ss *splits.SplitSystem) {
	for _, s := range ss.All() {
		s.Weight = Percentage(s.Confidence)
	}
}
