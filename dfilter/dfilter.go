// SPDX-License-Identifier: MIT
//
// File: dfilter.go
// Role: Dimension filter over the incompatibility graph (exact clique pass and degree relaxation).

package dfilter

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/splitnet/incompat"
	"github.com/katalvlaran/splitnet/splits"
)

// Filter removes splits from ss until its incompatibility graph has no clique of size
// maxDimension+1. ss is modified in place.
//
// Implementation:
//   - Stage 1: Build the incompatibility graph.
//   - Stage 2: Reduce it to the nodes that may lie in a (d+1)-clique: exact for
//     d <= ExactDimensionLimit, degree relaxation above.
//   - Stage 3: Drop every node outside the reduction from the graph, so scores only
//     count neighbors that can still lie in a (d+1)-clique. While the reduction is
//     non-empty, delete its node of lowest compatibility score (ties: lowest index),
//     then reduce again within the previous reduction.
//   - Stage 4: Remove the deleted indices from ss, lowest first, shifting for earlier removals.
//
// Cancellation (ctx or Progress) is checked once per deletion; deletions made so far are
// applied and Result.Cancelled is set.
//
// Complexity:
//   - Exact pass: O(n·C(Δ, d)) per reduction in the worst case, Δ the maximum degree.
//   - Relaxation: O((n + m)·n/64) per reduction.
func Filter(ctx context.Context, ss *splits.SplitSystem, maxDimension int, opts ...Option) (*Result, error) {
	if ss == nil {
		return nil, ErrNilSplits
	}
	if maxDimension < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadDimension, maxDimension)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()

	g := incompat.Build(ss)
	o.Progress.SetMaximum(g.OriginalCount())
	o.Logger.Debug("dimension filter started",
		"splits", g.OriginalCount(), "edges", g.EdgeCount(), "max_dimension", maxDimension)

	toDelete := roaring.New()
	cancelled := false
	reduced := reduce(g, maxDimension, g.NodeSet())
	g.Retain(reduced)
	for reduced.Any() {
		if ctx.Err() != nil || o.Progress.Cancelled() {
			cancelled = true
			break
		}
		v := worstNode(g, reduced)
		if err := g.RemoveNode(v); err != nil {
			return nil, err
		}
		reduced.Clear(uint(v))
		toDelete.Add(uint32(v))
		o.Progress.SetProgress(int(toDelete.GetCardinality()))
		reduced = reduce(g, maxDimension, reduced)
		g.Retain(reduced)
	}

	removed, err := removeAll(ss, toDelete)
	if err != nil {
		return nil, err
	}
	removedTotal.WithLabelValues(filterDimension).Add(float64(len(removed)))
	filterDuration.WithLabelValues(filterDimension).Observe(time.Since(start).Seconds())
	o.Logger.Debug("dimension filter finished",
		"removed", len(removed), "kept", ss.Nsplits(), "cancelled", cancelled)

	return &Result{Removed: removed, Kept: ss.Nsplits(), Cancelled: cancelled}, nil
}

// reduce returns the nodes of universe that survive the clique pass for dimension d.
func reduce(g *incompat.Graph, d int, universe *bitset.BitSet) *bitset.BitSet {
	if d <= ExactDimensionLimit {
		return cliqueSubgraph(g, d+1, universe)
	}

	return relax(g, d, universe)
}

// worstNode returns the node of set with the lowest compatibility score.
func worstNode(g *incompat.Graph, set *bitset.BitSet) int {
	best, bestScore := -1, int64(0)
	for v, ok := set.NextSet(0); ok; v, ok = set.NextSet(v + 1) {
		score := g.CompatibilityScore(int(v))
		if best < 0 || score < bestScore {
			best, bestScore = int(v), score
		}
	}

	return best
}

// cliqueSubgraph returns every node of universe that belongs to a k-clique inside universe.
// A node found in no k-clique is discarded from later searches.
func cliqueSubgraph(g *incompat.Graph, k int, universe *bitset.BitSet) *bitset.BitSet {
	in := bitset.New(universe.Len())
	pool := universe.Clone()
	clique := make([]int, 0, k)
	for v, ok := universe.NextSet(0); ok; v, ok = universe.NextSet(v + 1) {
		if in.Test(v) {
			continue
		}
		cand := g.NeighborSet(int(v)).Intersection(pool)
		found := findClique(g, append(clique[:0], int(v)), cand, k-1)
		if found == nil {
			pool.Clear(v)
			continue
		}
		for _, u := range found {
			in.Set(uint(u))
		}
	}

	return in
}

// findClique extends clique by need more nodes drawn from cand, every node of cand being
// adjacent to all of clique. Returns the completed clique or nil.
func findClique(g *incompat.Graph, clique []int, cand *bitset.BitSet, need int) []int {
	if need == 0 {
		return clique
	}
	if int(cand.Count()) < need {
		return nil
	}
	rest := cand.Clone()
	for u, ok := cand.NextSet(0); ok; u, ok = cand.NextSet(u + 1) {
		rest.Clear(u)
		if int(rest.Count())+1 < need {
			return nil
		}
		next := rest.Intersection(g.NeighborSet(int(u)))
		if found := findClique(g, append(clique, int(u)), next, need-1); found != nil {
			return found
		}
	}

	return nil
}

// relax is the degree relaxation for d > ExactDimensionLimit. Starting from universe it
// drops nodes with fewer than d neighbors left, and for d <= relaxNeighborhoodLimit also
// nodes of degree d or d+1 whose remaining neighborhood holds no d-clique. Neighbors of
// a dropped node are queued again until nothing changes.
func relax(g *incompat.Graph, d int, universe *bitset.BitSet) *bitset.BitSet {
	keep := universe.Clone()
	queued := universe.Clone()
	queue := make([]int, 0, keep.Count())
	for v, ok := keep.NextSet(0); ok; v, ok = keep.NextSet(v + 1) {
		queue = append(queue, int(v))
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		queued.Clear(uint(v))
		if !keep.Test(uint(v)) {
			continue
		}
		nbrs := g.NeighborSet(v).Intersection(keep)
		deg := int(nbrs.Count())
		drop := deg < d
		if !drop && d <= relaxNeighborhoodLimit && deg <= d+1 {
			drop = findClique(g, nil, nbrs, d) == nil
		}
		if !drop {
			continue
		}
		keep.Clear(uint(v))
		for u, ok := nbrs.NextSet(0); ok; u, ok = nbrs.NextSet(u + 1) {
			if !queued.Test(u) {
				queued.Set(u)
				queue = append(queue, int(u))
			}
		}
	}

	return keep
}

// removeAll removes the 1-based indices in toDelete from ss, ascending. After count
// removals, original index s sits at s-count.
func removeAll(ss *splits.SplitSystem, toDelete *roaring.Bitmap) ([]int, error) {
	removed := make([]int, 0, toDelete.GetCardinality())
	count := 0
	it := toDelete.Iterator()
	for it.HasNext() {
		s := int(it.Next())
		if err := ss.Remove(s - count); err != nil {
			return removed, fmt.Errorf("dfilter: remove split %d: %w", s, err)
		}
		removed = append(removed, s)
		count++
	}

	return removed, nil
}
