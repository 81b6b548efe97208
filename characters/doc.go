// Package characters holds the primary data a split system is computed from:
// an ntax × nchar matrix of character states with designated missing and gap
// symbols, plus the two ways of producing bootstrap replicates from it.
//
//   - Resample draws columns uniformly with replacement (haploid) or whole loci,
//     i.e. adjacent character pairs (2k-1, 2k), with replacement (diploid).
//   - JukesCantor simulates fresh nucleotide columns down a fixed reference tree
//     (parametric bootstrap).
//
// Taxa and characters are 1-based in the public API.
package characters
