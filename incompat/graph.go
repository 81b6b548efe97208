// SPDX-License-Identifier: MIT

// Package incompat builds the incompatibility graph of a split system: one node per split,
// scored by round(10000·weight), and one edge per pair of pairwise-incompatible splits.
// Cliques of size k in this graph correspond to k-dimensional boxes in the split network.
//
// Node IDs are the 1-based split indices of the source system and stay stable while
// nodes are removed. Adjacency is kept as one bit-vector per node, so degrees are
// popcounts and adjacency tests are O(1). The graph is single-owner; it is not safe
// for concurrent mutation.
package incompat

import (
	"errors"
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/splitnet/splits"
)

// ScoreScale converts split weights into integer node scores.
const ScoreScale = 10000

// ErrNodeNotFound indicates an operation on a missing or removed node.
var ErrNodeNotFound = errors.New("incompat: node not found")

// Graph is the incompatibility graph over split indices 1..n.
type Graph struct {
	alive *bitset.BitSet   // live node IDs
	score []int64          // score[v], index 0 unused
	adj   []*bitset.BitSet // adj[v] ⊆ alive, index 0 unused
	n     int              // number of nodes at construction
}

// Build constructs the incompatibility graph of ss.
//
// Implementation:
//   - Stage 1: One node per split, score = round(ScoreScale·weight).
//   - Stage 2: For every pair (i<j), add an edge when the splits are incompatible.
//
// Complexity:
//   - Time O(n²·ntax/64), Space O(n²/64).
func Build(ss *splits.SplitSystem) *Graph {
	all := ss.All()
	n := len(all)
	g := &Graph{
		alive: bitset.New(uint(n + 1)),
		score: make([]int64, n+1),
		adj:   make([]*bitset.BitSet, n+1),
		n:     n,
	}
	for v := 1; v <= n; v++ {
		g.alive.Set(uint(v))
		g.score[v] = int64(math.Round(ScoreScale * all[v-1].Weight))
		g.adj[v] = bitset.New(uint(n + 1))
	}
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			if !all[i-1].CompatibleWith(all[j-1]) {
				g.adj[i].Set(uint(j))
				g.adj[j].Set(uint(i))
			}
		}
	}

	return g
}

// OriginalCount returns the number of nodes at construction.
func (g *Graph) OriginalCount() int { return g.n }

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return int(g.alive.Count()) }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int {
	var sum uint
	for v, ok := g.alive.NextSet(0); ok; v, ok = g.alive.NextSet(v + 1) {
		sum += g.adj[v].Count()
	}

	return int(sum / 2)
}

// HasNode reports whether v is live.
func (g *Graph) HasNode(v int) bool {
	return v >= 1 && v <= g.n && g.alive.Test(uint(v))
}

// Nodes returns the live node IDs in ascending order.
func (g *Graph) Nodes() []int {
	out := make([]int, 0, g.alive.Count())
	for v, ok := g.alive.NextSet(0); ok; v, ok = g.alive.NextSet(v + 1) {
		out = append(out, int(v))
	}

	return out
}

// Neighbors returns the live neighbors of v in ascending order; nil for a missing node.
func (g *Graph) Neighbors(v int) []int {
	if !g.HasNode(v) {
		return nil
	}
	out := make([]int, 0, g.adj[v].Count())
	for u, ok := g.adj[v].NextSet(0); ok; u, ok = g.adj[v].NextSet(u + 1) {
		out = append(out, int(u))
	}

	return out
}

// NodeSet returns a copy of the live node set.
func (g *Graph) NodeSet() *bitset.BitSet { return g.alive.Clone() }

// NeighborSet returns a copy of the live neighbor set of v; an empty set for a missing node.
func (g *Graph) NeighborSet(v int) *bitset.BitSet {
	if !g.HasNode(v) {
		return bitset.New(uint(g.n + 1))
	}

	return g.adj[v].Clone()
}

// Degree returns the number of live neighbors of v (0 for a missing node).
func (g *Graph) Degree(v int) int {
	if !g.HasNode(v) {
		return 0
	}

	return int(g.adj[v].Count())
}

// Adjacent reports whether u and v are live and joined by an edge.
func (g *Graph) Adjacent(u, v int) bool {
	return g.HasNode(u) && g.HasNode(v) && g.adj[u].Test(uint(v))
}

// Score returns the weight score of v.
func (g *Graph) Score(v int) int64 {
	if v < 1 || v > g.n {
		return 0
	}

	return g.score[v]
}

// CompatibilityScore returns the score of v minus the scores of all its live neighbors.
// Low values mark splits that conflict with a lot of weight.
func (g *Graph) CompatibilityScore(v int) int64 {
	if !g.HasNode(v) {
		return 0
	}
	s := g.score[v]
	for u, ok := g.adj[v].NextSet(0); ok; u, ok = g.adj[v].NextSet(u + 1) {
		s -= g.score[u]
	}

	return s
}

// RemoveNode deletes v and all incident edges.
// Complexity: O(deg(v) + n/64).
func (g *Graph) RemoveNode(v int) error {
	if !g.HasNode(v) {
		return fmt.Errorf("incompat: RemoveNode(%d): %w", v, ErrNodeNotFound)
	}
	g.detach(uint(v))

	return nil
}

// Retain removes every live node outside keep and returns the number removed.
func (g *Graph) Retain(keep *bitset.BitSet) int {
	drop := g.alive.Difference(keep)
	for v, ok := drop.NextSet(0); ok; v, ok = drop.NextSet(v + 1) {
		g.detach(v)
	}

	return int(drop.Count())
}

// detach clears v from its neighbors and from the live set. v must be live.
func (g *Graph) detach(v uint) {
	for u, ok := g.adj[v].NextSet(0); ok; u, ok = g.adj[v].NextSet(u + 1) {
		g.adj[u].Clear(v)
	}
	g.adj[v].ClearAll()
	g.alive.Clear(v)
}

// IsClique reports whether the given live nodes are pairwise adjacent.
func (g *Graph) IsClique(nodes []int) bool {
	for i := 0; i < len(nodes); i++ {
		if !g.HasNode(nodes[i]) {
			return false
		}
		for j := i + 1; j < len(nodes); j++ {
			if !g.adj[nodes[i]].Test(uint(nodes[j])) {
				return false
			}
		}
	}

	return true
}

// MaxClique returns the size of a largest clique by exhaustive branch and bound.
// Exponential; intended for small graphs and verification.
func (g *Graph) MaxClique() int {
	best := 0
	var grow func(clique int, cand *bitset.BitSet)
	grow = func(clique int, cand *bitset.BitSet) {
		if clique > best {
			best = clique
		}
		if clique+int(cand.Count()) <= best {
			return
		}
		for v, ok := cand.NextSet(0); ok; v, ok = cand.NextSet(v + 1) {
			grow(clique+1, cand.Intersection(g.adj[v]))
			cand = cand.Clone()
			cand.Clear(v)
			if clique+int(cand.Count()) <= best {
				return
			}
		}
	}
	grow(0, g.alive.Clone())

	return best
}
