// Package splitmatrix accumulates split weights across many split systems.
//
// A SplitMatrix owns a master split system ("all splits seen so far") and a sparse
// table (row, block) → weight. Rows are 1-based indices into the master system.
// Blocks 1..Nblocks() are the merged replicates; block 0 holds the weights of the
// seed system passed to NewSeeded and never counts towards Nblocks().
//
// Bipartitions are matched by their canonical key (see splits.Split.Key), so the
// same bipartition computed in different replicates always lands in the same row.
//
// Absent cells read as weight zero: a split missing from a replicate simply did not
// appear in it. Lookups never fail.
//
// Concurrency: Add and AddSplitsWithoutBlock take a write lock, readers a read lock,
// so merges from several producers are serialised.
package splitmatrix
