// SPDX-License-Identifier: MIT
//
// File: intervals.go
// Role: Simultaneous bootstrap confidence intervals for split weights.
// Determinism:
//   - Fixed split/block traversal; ties resolved by lower bound (t_j) and upper bound (s_j) ranks.

package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/splitnet/splitmatrix"
	"github.com/katalvlaran/splitnet/splits"
)

// rootTable holds, per split, its root values in block order and sorted.
type rootTable struct {
	raw    [][]float64 // raw[i][j] = w_ij - ŵ_i, nil when split i is absent
	sorted [][]float64 // ascending copy of raw[i]
}

// buildRoots materialises the replicate weights once and derives the root values of
// every split of ss. transform post-processes each root (identity or absolute value).
// Absent splits receive the degenerate interval [0, 2ŵ] immediately.
func buildRoots(m *splitmatrix.SplitMatrix, ss *splits.SplitSystem, transform func(float64) float64) (*rootTable, error) {
	dense, err := m.Dense()
	if err != nil && !errors.Is(err, splitmatrix.ErrEmpty) {
		return nil, err
	}

	all := ss.All()
	tbl := &rootTable{raw: make([][]float64, len(all)), sorted: make([][]float64, len(all))}
	for i, s := range all {
		row, ok := rowFor(m, i+1, s)
		if !ok || dense == nil {
			s.Interval = &splits.Interval{Low: 0, High: 2 * s.Weight}
			continue
		}
		w, rerr := dense.Row(row - 1)
		if rerr != nil {
			return nil, fmt.Errorf("analysis: row %d: %w", row, rerr)
		}
		for j := range w {
			w[j] = transform(w[j] - s.Weight)
		}
		tbl.raw[i] = w
		tbl.sorted[i] = append([]float64(nil), w...)
		sort.Float64s(tbl.sorted[i])
	}

	return tbl, nil
}

// lowerRank is the first position of v in sorted.
func lowerRank(sorted []float64, v float64) int {
	return sort.SearchFloat64s(sorted, v)
}

// upperRank is the last position of v in sorted.
func upperRank(sorted []float64, v float64) int {
	return sort.Search(len(sorted), func(k int) bool { return sorted[k] > v }) - 1
}

// clampIndex bounds k to [0, n-1].
func clampIndex(k, n int) int {
	if k < 0 {
		return 0
	}
	if k > n-1 {
		return n - 1
	}

	return k
}

func validateLevel(level float64) error {
	if !(level > 0 && level < 1) {
		return fmt.Errorf("analysis: level=%g: %w", level, ErrBadLevel)
	}

	return nil
}

// ConfidenceIntervals sets Interval of every split of ss using Beran's balanced
// simultaneous construction at the given level. Weight is the point estimate ŵ_i.
//
// Implementation:
//   - Stage 1: Root values R_ij = w_ij − ŵ_i per split, sorted per split.
//   - Stage 2: For every block j, s_j = max_i upperRank(R_ij), t_j = min_i lowerRank(R_ij).
//   - Stage 3: c = sorted(s)[ceil((1+level)/2·nblocks)], b = sorted(t)[floor((1−level)/2·nblocks)],
//     both positions clamped to [0, nblocks-1].
//   - Stage 4: Interval_i = [max(0, ŵ_i + sorted_i[b]), max(0, ŵ_i + sorted_i[c])].
//
// Behavior highlights:
//   - Splits absent from m get [0, 2ŵ_i].
//   - Low ≥ 0 and Low ≤ High always hold; the point estimate need not lie inside.
//
// Errors:
//   - ErrBadLevel, ErrNoBlocks.
//
// Complexity:
//   - Time O(n·B·log B) for n splits and B blocks, Space O(n·B).
func ConfidenceIntervals(m *splitmatrix.SplitMatrix, ss *splits.SplitSystem, level float64) error {
	if err := validateLevel(level); err != nil {
		return err
	}
	nblocks := m.Nblocks()
	if nblocks == 0 {
		return ErrNoBlocks
	}
	tbl, err := buildRoots(m, ss, identity)
	if err != nil {
		return err
	}

	upper := make([]int, nblocks)
	lower := make([]int, nblocks)
	var i, j, r int
	for j = 0; j < nblocks; j++ {
		upper[j], lower[j] = -1, nblocks
		for i = range tbl.raw {
			if tbl.raw[i] == nil {
				continue
			}
			if r = upperRank(tbl.sorted[i], tbl.raw[i][j]); r > upper[j] {
				upper[j] = r
			}
			if r = lowerRank(tbl.sorted[i], tbl.raw[i][j]); r < lower[j] {
				lower[j] = r
			}
		}
	}
	sort.Ints(upper)
	sort.Ints(lower)

	cn := upper[clampIndex(int(math.Ceil((1+level)/2*float64(nblocks))), nblocks)]
	bn := lower[clampIndex(int(math.Floor((1-level)/2*float64(nblocks))), nblocks)]
	if cn < 0 || bn >= nblocks {
		// every split absent: nothing left to bound
		return nil
	}

	for i, s := range ss.All() {
		if tbl.raw[i] == nil {
			continue
		}
		s.Interval = &splits.Interval{
			Low:  math.Max(0, s.Weight+tbl.sorted[i][bn]),
			High: math.Max(0, s.Weight+tbl.sorted[i][cn]),
		}
	}

	return nil
}

// OldConfidenceIntervals sets Interval of every split of ss with the legacy single-cutoff
// construction on absolute roots |R_ij|:
//
//	a_j = max_i upperRank(|R_ij|),  k = sorted(a)[ceil(level·nblocks)],
//	Interval_i = [max(0, ŵ_i − |R|_i[k]), ŵ_i + |R|_i[k]].
//
// Kept for reproducing earlier output; prefer ConfidenceIntervals.
func OldConfidenceIntervals(m *splitmatrix.SplitMatrix, ss *splits.SplitSystem, level float64) error {
	if err := validateLevel(level); err != nil {
		return err
	}
	nblocks := m.Nblocks()
	if nblocks == 0 {
		return ErrNoBlocks
	}
	tbl, err := buildRoots(m, ss, math.Abs)
	if err != nil {
		return err
	}

	extreme := make([]int, nblocks)
	var i, j, r int
	for j = 0; j < nblocks; j++ {
		extreme[j] = -1
		for i = range tbl.raw {
			if tbl.raw[i] == nil {
				continue
			}
			if r = upperRank(tbl.sorted[i], tbl.raw[i][j]); r > extreme[j] {
				extreme[j] = r
			}
		}
	}
	sort.Ints(extreme)
	k := extreme[clampIndex(int(math.Ceil(level*float64(nblocks))), nblocks)]
	if k < 0 {
		return nil
	}

	for i, s := range ss.All() {
		if tbl.raw[i] == nil {
			continue
		}
		half := tbl.sorted[i][k]
		s.Interval = &splits.Interval{Low: math.Max(0, s.Weight-half), High: s.Weight + half}
	}

	return nil
}

func identity(v float64) float64 { return v }
