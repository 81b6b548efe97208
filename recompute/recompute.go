// SPDX-License-Identifier: MIT

// Package recompute provides the built-in ways of turning a character matrix into a
// split system. The surrounding pipeline may supply any other function with the same
// shape; the bootstrap driver only sees a closure.
//
// Kinds are an explicit tagged variant rather than a name-keyed plugin lookup:
//
//	binary      every column with exactly two known states yields its split
//	compatible  like binary, then greedily keeps the heaviest pairwise-compatible subset
package recompute

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/splitnet/characters"
	"github.com/katalvlaran/splitnet/splits"
)

// Kind selects a built-in recompute strategy.
type Kind int

const (
	// Binary derives one split per bi-state column; weight = supporting columns / nchar.
	Binary Kind = iota + 1

	// Compatible filters Binary output down to a compatible (tree-like) system.
	Compatible
)

// ErrUnknownKind indicates a Kind outside the supported set.
var ErrUnknownKind = errors.New("recompute: unknown kind")

// String returns the configuration name of k.
func (k Kind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Compatible:
		return "compatible"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a configuration name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "binary":
		return Binary, nil
	case "compatible":
		return Compatible, nil
	default:
		return 0, fmt.Errorf("recompute: %q: %w", name, ErrUnknownKind)
	}
}

// Func returns the recompute function for k.
func (k Kind) Func() (func(*characters.Characters) (*splits.SplitSystem, error), error) {
	switch k {
	case Binary:
		return BinarySplits, nil
	case Compatible:
		return CompatibleSplits, nil
	default:
		return nil, fmt.Errorf("recompute: %v: %w", k, ErrUnknownKind)
	}
}

// BinarySplits returns one split per distinct bipartition induced by a column with exactly
// two known states. Taxa with unknown states at a column make it uninformative.
// Splits appear in first-seen column order.
//
// Complexity: O(ntax·nchar).
func BinarySplits(c *characters.Characters) (*splits.SplitSystem, error) {
	ntax, nchar := c.Ntax(), c.Nchar()
	ss := splits.NewSplitSystem(ntax)
	counts := make(map[string]int)
	order := make([]*splits.Split, 0)

	for k := 1; k <= nchar; k++ {
		col, err := c.Column(k)
		if err != nil {
			return nil, err
		}
		side, ok := binaryPartition(c, col)
		if !ok {
			continue
		}
		s, err := splits.NewSplitFromBits(ntax, side, 0)
		if err != nil {
			// single-state or all-on-one-side columns carry no split
			continue
		}
		key := s.Key()
		if counts[key] == 0 {
			order = append(order, s)
		}
		counts[key]++
	}

	for _, s := range order {
		s.Weight = float64(counts[s.Key()]) / float64(nchar)
		if _, err := ss.Add(s); err != nil {
			return nil, err
		}
	}

	return ss, nil
}

// binaryPartition returns the taxa carrying the state other than taxon 1's,
// or false when the column does not have exactly two known states.
func binaryPartition(c *characters.Characters, col []byte) (*bitset.BitSet, bool) {
	var first, second byte
	haveFirst, haveSecond := false, false
	side := bitset.New(uint(len(col) + 1))
	for t, b := range col {
		if c.IsUnknown(b) {
			return nil, false
		}
		switch {
		case !haveFirst:
			first, haveFirst = b, true
		case b == first:
		case !haveSecond:
			second, haveSecond = b, true
			side.Set(uint(t + 1))
		case b == second:
			side.Set(uint(t + 1))
		default:
			return nil, false
		}
	}

	return side, haveSecond
}

// CompatibleSplits keeps, heaviest first, every binary split compatible with all kept ones.
// Ties keep first-seen order. Output preserves the original relative order.
func CompatibleSplits(c *characters.Characters) (*splits.SplitSystem, error) {
	all, err := BinarySplits(c)
	if err != nil {
		return nil, err
	}
	cand := all.All()
	idx := make([]int, len(cand))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return cand[idx[a]].Weight > cand[idx[b]].Weight })

	keep := make([]bool, len(cand))
	kept := make([]*splits.Split, 0, len(cand))
	for _, i := range idx {
		ok := true
		for _, k := range kept {
			if !cand[i].CompatibleWith(k) {
				ok = false
				break
			}
		}
		if ok {
			keep[i] = true
			kept = append(kept, cand[i])
		}
	}

	out := splits.NewSplitSystem(all.Ntax())
	for i, s := range cand {
		if keep[i] {
			if _, err = out.Add(s); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
