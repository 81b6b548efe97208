// SPDX-License-Identifier: MIT
//
// File: compat.go
// Role: Pairwise and three-way compatibility predicates over taxon bit-vectors.
// Policy:
//   - Pure functions; no allocation beyond temporary intersections.
//   - Sides must be subsets of [1..ntax]; bit 0 must be clear. Mixed universes are undefined.

package splits

import "github.com/bits-and-blooms/bitset"

// AreCompatible reports whether the splits with sides a and b over [1..ntax] are compatible,
// i.e. at least one of A∩B, A∩B̄, Ā∩B, Ā∩B̄ is empty.
//
// Implementation:
//   - |A∩B| via IntersectionCardinality.
//   - |A∩B̄| and |Ā∩B| via DifferenceCardinality.
//   - |Ā∩B̄| = ntax - |A∪B|.
//
// Determinism:
//   - Symmetric in a and b; AreCompatible(n, a, a) is always true.
//
// Complexity:
//   - Time O(ntax/64), Space O(1).
func AreCompatible(ntax int, a, b *bitset.BitSet) bool {
	if a.IntersectionCardinality(b) == 0 {
		return true
	}
	if a.DifferenceCardinality(b) == 0 {
		return true
	}
	if b.DifferenceCardinality(a) == 0 {
		return true
	}

	return uint(ntax) == a.UnionCardinality(b)
}

// AreWeaklyCompatible reports whether three splits with sides a, b, c are weakly compatible.
//
// With X1 = X and X2 = complement(X), the triple is weakly incompatible iff either
//
//	A1∩B1∩C1, A1∩B2∩C2, A2∩B1∩C2, A2∩B2∩C1   are all non-empty, or
//	A2∩B2∩C2, A2∩B1∩C1, A1∩B2∩C1, A1∩B1∩C2   are all non-empty.
//
// Complexity:
//   - Time O(ntax/64), Space O(ntax/64) for the three complements.
func AreWeaklyCompatible(ntax int, a, b, c *bitset.BitSet) bool {
	a2, b2, c2 := complementOf(ntax, a), complementOf(ntax, b), complementOf(ntax, c)

	first := meets(a, b, c) && meets(a, b2, c2) && meets(a2, b, c2) && meets(a2, b2, c)
	if first {
		return false
	}
	second := meets(a2, b2, c2) && meets(a2, b, c) && meets(a, b2, c) && meets(a, b, c2)

	return !second
}

// meets reports whether x∩y∩z is non-empty.
func meets(x, y, z *bitset.BitSet) bool {
	return x.Intersection(y).IntersectionCardinality(z) > 0
}
