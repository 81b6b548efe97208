// SPDX-License-Identifier: MIT
//
// File: simulate.go
// Role: Parametric replicate generation under the Jukes–Cantor model on a fixed tree.

package characters

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// nucleotides are the Jukes–Cantor states.
var nucleotides = [4]byte{'A', 'C', 'G', 'T'}

// ErrBadTree indicates a malformed reference tree.
var ErrBadTree = errors.New("characters: malformed tree")

// Tree is a rooted reference tree in parent-array form.
//
// Nodes are 0..len(Parent)-1 and must be listed parents-first: Parent[0] == -1
// is the root and Parent[i] < i for every other node. Taxon[i] is the 1-based
// taxon at leaf i, or 0 for internal nodes. Length[i] is the branch length
// above node i in expected substitutions per site.
type Tree struct {
	Parent []int
	Length []float64
	Taxon  []int
}

// Validate checks the parent-array invariants and that leaves cover taxa 1..ntax exactly once.
func (tr *Tree) Validate(ntax int) error {
	n := len(tr.Parent)
	if n == 0 || len(tr.Length) != n || len(tr.Taxon) != n {
		return fmt.Errorf("characters: tree arrays have different lengths: %w", ErrBadTree)
	}
	if tr.Parent[0] != -1 {
		return fmt.Errorf("characters: node 0 must be the root: %w", ErrBadTree)
	}
	seen := make([]bool, ntax+1)
	for i := 0; i < n; i++ {
		if i > 0 && (tr.Parent[i] < 0 || tr.Parent[i] >= i) {
			return fmt.Errorf("characters: node %d has parent %d: %w", i, tr.Parent[i], ErrBadTree)
		}
		if tr.Length[i] < 0 || math.IsNaN(tr.Length[i]) {
			return fmt.Errorf("characters: node %d has branch length %g: %w", i, tr.Length[i], ErrBadTree)
		}
		t := tr.Taxon[i]
		if t == 0 {
			continue
		}
		if t < 0 || t > ntax || seen[t] {
			return fmt.Errorf("characters: node %d carries taxon %d: %w", i, t, ErrBadTree)
		}
		seen[t] = true
	}
	for t := 1; t <= ntax; t++ {
		if !seen[t] {
			return fmt.Errorf("characters: taxon %d has no leaf: %w", t, ErrBadTree)
		}
	}

	return nil
}

// JukesCantor simulates nucleotide data on a fixed tree.
type JukesCantor struct {
	Tree Tree
	Ntax int
}

// NewJukesCantor validates tr against ntax and returns a simulator.
func NewJukesCantor(tr Tree, ntax int) (*JukesCantor, error) {
	if err := tr.Validate(ntax); err != nil {
		return nil, err
	}

	return &JukesCantor{Tree: tr, Ntax: ntax}, nil
}

// Simulate draws nchar independent sites.
//
// Implementation:
//   - Root state uniform over ACGT.
//   - Along a branch of length t the state changes with probability 3/4·(1-exp(-4t/3)),
//     the new state being uniform over the other three.
//
// Complexity:
//   - Time O(nodes·nchar), Space O(nodes + ntax·nchar).
func (jc *JukesCantor) Simulate(rng *rand.Rand, nchar int) (*Characters, error) {
	if nchar <= 0 {
		return nil, ErrBadLength
	}
	n := len(jc.Tree.Parent)
	change := make([]float64, n)
	for i := 1; i < n; i++ {
		change[i] = 0.75 * (1 - math.Exp(-4.0*jc.Tree.Length[i]/3.0))
	}

	out := newEmpty(jc.Ntax, nchar, &Characters{Missing: DefaultMissing, Gap: DefaultGap})
	state := make([]int, n)
	var i, k int
	for k = 0; k < nchar; k++ {
		state[0] = rng.Intn(4)
		for i = 1; i < n; i++ {
			s := state[jc.Tree.Parent[i]]
			if rng.Float64() < change[i] {
				s = (s + 1 + rng.Intn(3)) % 4
			}
			state[i] = s
		}
		for i = 0; i < n; i++ {
			if t := jc.Tree.Taxon[i]; t > 0 {
				out.rows[t-1][k] = nucleotides[state[i]]
			}
		}
	}

	return out, nil
}
