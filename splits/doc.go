// Package splits defines the data model shared by every other splitnet package:
// taxon bipartitions (Split), weighted ordered collections of them (SplitSystem),
// and the pairwise and three-way compatibility predicates.
//
// Taxa are numbered 1..ntax; there is no taxon 0. A bipartition {A, B} is stored
// by keeping a single side as a bit-vector (github.com/bits-and-blooms/bitset).
// The stored side never contains taxon 1, so two bipartitions computed independently,
// e.g. in different bootstrap replicates, compare equal by their bit-vectors and by
// their canonical Key().
//
// Quick example:
//
//	ss := splits.NewSplitSystem(4)
//	s, _ := splits.NewSplit(4, []int{1, 2}, 1.5) // stored as {3,4}
//	_, _ = ss.Add(s)
//
// Split systems are indexed 1..Nsplits(), matching the taxon convention.
//
// Errors:
//
//	ErrBadNtax          - ntax < 2.
//	ErrTaxonOutOfRange  - a taxon outside [1..ntax].
//	ErrTrivialSide      - one side of the bipartition is empty.
//	ErrNtaxMismatch     - split and split system disagree on ntax.
//	ErrIndexOutOfRange  - split index outside [1..Nsplits()].
package splits
