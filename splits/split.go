// SPDX-License-Identifier: MIT
//
// File: split.go
// Role: Bipartition construction, canonical orientation and per-split annotations.
// Determinism:
//   - Side() and Complement() return taxa in ascending order.
//   - Key() is a pure function of the canonical side.

package splits

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Interval is a confidence interval attached to a split weight.
type Interval struct {
	Low  float64
	High float64
}

// Split is one weighted bipartition {A, B} of the taxa 1..ntax.
//
// Only A is stored; canonical orientation keeps taxon 1 out of A.
// Weight, Confidence, Interval and Label are annotations and may be
// rewritten freely by analysis passes.
type Split struct {
	ntax int
	side *bitset.BitSet // canonical side, bit 0 and bit 1 always clear

	// Weight is the non-negative split weight.
	Weight float64

	// Confidence is the bootstrap support in [0,1]; zero until evaluated.
	Confidence float64

	// Interval is the confidence interval of Weight; nil when unset.
	Interval *Interval

	// Label is an optional free-form name.
	Label string
}

// NewSplit builds a split over taxa 1..ntax from one of its sides.
//
// Implementation:
//   - Stage 1: Validate ntax and every taxon in side.
//   - Stage 2: Build the bit-vector and reject empty sides on either part.
//   - Stage 3: Canonicalize orientation (taxon 1 never in the stored side).
//
// Errors:
//   - ErrBadNtax, ErrTaxonOutOfRange, ErrTrivialSide.
//
// Complexity:
//   - Time O(len(side) + ntax/64), Space O(ntax/64).
func NewSplit(ntax int, side []int, weight float64) (*Split, error) {
	if ntax < 2 {
		return nil, ErrBadNtax
	}
	bits := bitset.New(uint(ntax + 1))
	for _, t := range side {
		if t < 1 || t > ntax {
			return nil, fmt.Errorf("splits: taxon %d not in [1..%d]: %w", t, ntax, ErrTaxonOutOfRange)
		}
		bits.Set(uint(t))
	}

	return newSplitFromBits(ntax, bits, weight)
}

// NewSplitFromBits builds a split from a bit-vector side over [1..ntax].
// The bit-vector is copied; the caller keeps ownership of bits.
// Bit 0 must be clear and no bit above ntax may be set.
func NewSplitFromBits(ntax int, bits *bitset.BitSet, weight float64) (*Split, error) {
	if ntax < 2 {
		return nil, ErrBadNtax
	}
	if bits == nil {
		return nil, ErrTrivialSide
	}
	if bits.Test(0) {
		return nil, fmt.Errorf("splits: taxon 0: %w", ErrTaxonOutOfRange)
	}
	if last, ok := lastSet(bits); ok && last > uint(ntax) {
		return nil, fmt.Errorf("splits: taxon %d not in [1..%d]: %w", last, ntax, ErrTaxonOutOfRange)
	}

	// Re-pack into a fresh ntax+1 bit-vector so that Equal never trips over lengths.
	packed := bitset.New(uint(ntax + 1))
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		packed.Set(i)
	}

	return newSplitFromBits(ntax, packed, weight)
}

// newSplitFromBits takes ownership of bits, which must be a subset of [1..ntax].
func newSplitFromBits(ntax int, bits *bitset.BitSet, weight float64) (*Split, error) {
	size := int(bits.Count())
	if size == 0 || size == ntax {
		return nil, ErrTrivialSide
	}
	if bits.Test(1) {
		bits = complementOf(ntax, bits)
	}

	return &Split{ntax: ntax, side: bits, Weight: weight}, nil
}

// complementOf returns [1..ntax] \ bits as a fresh bit-vector.
func complementOf(ntax int, bits *bitset.BitSet) *bitset.BitSet {
	c := bits.Clone()
	c.FlipRange(1, uint(ntax+1))
	c.Clear(0)

	return c
}

// lastSet reports the largest set bit.
func lastSet(bits *bitset.BitSet) (uint, bool) {
	var last uint
	found := false
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		last, found = i, true
	}

	return last, found
}

// Ntax returns the size of the taxon universe.
func (s *Split) Ntax() int { return s.ntax }

// Bits returns a copy of the canonical side as a bit-vector.
func (s *Split) Bits() *bitset.BitSet { return s.side.Clone() }

// ComplementBits returns a copy of the side containing taxon 1.
func (s *Split) ComplementBits() *bitset.BitSet { return complementOf(s.ntax, s.side) }

// Side returns the canonical side (never containing taxon 1) in ascending order.
func (s *Split) Side() []int { return toTaxa(s.side) }

// Complement returns the side containing taxon 1 in ascending order.
func (s *Split) Complement() []int { return toTaxa(complementOf(s.ntax, s.side)) }

// Contains reports whether taxon t lies on the canonical side.
func (s *Split) Contains(t int) bool {
	if t < 1 || t > s.ntax {
		return false
	}

	return s.side.Test(uint(t))
}

// Size returns the number of taxa on the smaller side.
func (s *Split) Size() int {
	n := int(s.side.Count())
	if other := s.ntax - n; other < n {
		return other
	}

	return n
}

// IsTrivial reports whether the split separates a single taxon.
func (s *Split) IsTrivial() bool { return s.Size() == 1 }

// Key returns the canonical string of the bipartition, e.g. "3,4".
// Two splits over the same ntax have equal keys iff they are the same bipartition.
func (s *Split) Key() string {
	var sb strings.Builder
	first := true
	for i, ok := s.side.NextSet(0); ok; i, ok = s.side.NextSet(i + 1) {
		if !first {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(i), 10))
		first = false
	}

	return sb.String()
}

// SameBipartition reports whether s and o describe the same bipartition.
func (s *Split) SameBipartition(o *Split) bool {
	return o != nil && s.ntax == o.ntax && s.side.Equal(o.side)
}

// CompatibleWith reports pairwise compatibility with o (see AreCompatible).
func (s *Split) CompatibleWith(o *Split) bool {
	return AreCompatible(s.ntax, s.side, o.side)
}

// Separates reports whether taxa a and b lie on different sides.
func (s *Split) Separates(a, b int) bool { return s.Contains(a) != s.Contains(b) }

// Clone returns a deep copy including annotations.
func (s *Split) Clone() *Split {
	c := &Split{
		ntax:       s.ntax,
		side:       s.side.Clone(),
		Weight:     s.Weight,
		Confidence: s.Confidence,
		Label:      s.Label,
	}
	if s.Interval != nil {
		iv := *s.Interval
		c.Interval = &iv
	}

	return c
}

// String renders the split as "{side} | {complement}".
func (s *Split) String() string {
	return fmt.Sprintf("{%s} | {%s}", joinTaxa(s.Complement()), joinTaxa(s.Side()))
}

func toTaxa(bits *bitset.BitSet) []int {
	out := make([]int, 0, bits.Count())
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		out = append(out, int(i))
	}

	return out
}

func joinTaxa(taxa []int) string {
	parts := make([]string, len(taxa))
	for i, t := range taxa {
		parts[i] = strconv.Itoa(t)
	}

	return strings.Join(parts, " ")
}
