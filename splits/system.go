// SPDX-License-Identifier: MIT
//
// File: system.go
// Role: SplitSystem, an ordered 1-based collection of splits over a fixed ntax.

package splits

import (
	"fmt"

	"github.com/katalvlaran/splitnet/matrix"
)

// SplitSystem is an ordered collection of splits over taxa 1..ntax, indexed 1..Nsplits().
// It is not safe for concurrent mutation.
type SplitSystem struct {
	ntax   int
	splits []*Split
}

// NewSplitSystem returns an empty split system over taxa 1..ntax.
func NewSplitSystem(ntax int) *SplitSystem {
	return &SplitSystem{ntax: ntax}
}

// Ntax returns the size of the taxon universe.
func (ss *SplitSystem) Ntax() int { return ss.ntax }

// Nsplits returns the number of splits.
func (ss *SplitSystem) Nsplits() int { return len(ss.splits) }

// Add appends s and returns its 1-based index.
// Returns ErrNtaxMismatch when s is defined over another taxon universe.
func (ss *SplitSystem) Add(s *Split) (int, error) {
	if s == nil || s.ntax != ss.ntax {
		return 0, ErrNtaxMismatch
	}
	ss.splits = append(ss.splits, s)

	return len(ss.splits), nil
}

// Get returns the split at 1-based index i.
func (ss *SplitSystem) Get(i int) (*Split, error) {
	if i < 1 || i > len(ss.splits) {
		return nil, fmt.Errorf("splits: Get(%d) of %d: %w", i, len(ss.splits), ErrIndexOutOfRange)
	}

	return ss.splits[i-1], nil
}

// All returns the splits in index order. The slice is a copy; the splits are shared.
func (ss *SplitSystem) All() []*Split {
	out := make([]*Split, len(ss.splits))
	copy(out, ss.splits)

	return out
}

// Remove deletes the split at 1-based index i; later splits shift down by one.
func (ss *SplitSystem) Remove(i int) error {
	if i < 1 || i > len(ss.splits) {
		return fmt.Errorf("splits: Remove(%d) of %d: %w", i, len(ss.splits), ErrIndexOutOfRange)
	}
	ss.splits = append(ss.splits[:i-1], ss.splits[i:]...)

	return nil
}

// Index returns the 1-based index of the first split equal to s as a bipartition, or 0.
func (ss *SplitSystem) Index(s *Split) int {
	if s == nil || s.ntax != ss.ntax {
		return 0
	}
	key := s.Key()
	for i, t := range ss.splits {
		if t.Key() == key {
			return i + 1
		}
	}

	return 0
}

// Clone returns a deep copy of the system and its splits.
func (ss *SplitSystem) Clone() *SplitSystem {
	c := &SplitSystem{ntax: ss.ntax, splits: make([]*Split, len(ss.splits))}
	for i, s := range ss.splits {
		c.splits[i] = s.Clone()
	}

	return c
}

// TotalWeight returns the sum of all split weights.
func (ss *SplitSystem) TotalWeight() float64 {
	var sum float64
	for _, s := range ss.splits {
		sum += s.Weight
	}

	return sum
}

// IsCompatible reports whether every pair of splits is compatible.
// Complexity: O(n²·ntax/64).
func (ss *SplitSystem) IsCompatible() bool {
	for i := 0; i < len(ss.splits); i++ {
		for j := i + 1; j < len(ss.splits); j++ {
			if !AreCompatible(ss.ntax, ss.splits[i].side, ss.splits[j].side) {
				return false
			}
		}
	}

	return true
}

// IsWeaklyCompatible reports whether every triple of splits is weakly compatible.
// Complexity: O(n³·ntax/64).
func (ss *SplitSystem) IsWeaklyCompatible() bool {
	n := len(ss.splits)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if !AreWeaklyCompatible(ss.ntax, ss.splits[i].side, ss.splits[j].side, ss.splits[k].side) {
					return false
				}
			}
		}
	}

	return true
}

// InducedDistances returns the ntax×ntax matrix d where d[i-1][j-1] is the total weight
// of the splits separating taxa i and j.
//
// Complexity:
//   - Time O(n·ntax²), Space O(ntax²).
func (ss *SplitSystem) InducedDistances() (*matrix.Dense, error) {
	d, err := matrix.NewDense(ss.ntax, ss.ntax)
	if err != nil {
		return nil, fmt.Errorf("splits: InducedDistances: %w", err)
	}
	var i, j int
	var v float64
	for _, s := range ss.splits {
		for i = 1; i <= ss.ntax; i++ {
			for j = i + 1; j <= ss.ntax; j++ {
				if !s.Separates(i, j) {
					continue
				}
				v, _ = d.At(i-1, j-1)
				_ = d.Set(i-1, j-1, v+s.Weight)
				_ = d.Set(j-1, i-1, v+s.Weight)
			}
		}
	}

	return d, nil
}
