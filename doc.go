// Package splitnet estimates bootstrap support for split systems and filters split
// systems so the induced phylogenetic network stays low-dimensional.
//
// 🚀 What is splitnet?
//
//	A library plus a small CLI that brings together:
//		• Data model: taxon bipartitions (splits), split systems, compatibility predicates
//		• SplitMatrix: sparse split × replicate weight table built by merging replicates
//		• Bootstrap: column/locus resampling or Jukes–Cantor simulation, any recompute closure
//		• Analysis: confidences, Beran simultaneous confidence intervals, confidence networks
//		• Filters: incompatibility-graph dimension filter and circular-ordering crossing filter
//
// Under the hood, everything is organized in these packages:
//
//	splits/      — Split, SplitSystem, AreCompatible, AreWeaklyCompatible
//	matrix/      — small dense float64 matrix used for replicate tables and distances
//	splitmatrix/ — SplitMatrix accumulator keyed by canonical bipartition
//	characters/  — character matrices, bootstrap resampling, Jukes–Cantor simulation
//	recompute/   — built-in recompute routines (binary, compatible)
//	bootstrap/   — replicate driver with cancellation, soft stops and worker batches
//	analysis/    — confidences, intervals and confidence networks
//	incompat/    — incompatibility graph with clique search
//	dfilter/     — dimension filter and circular filter
//	config/      — viper/validator configuration of the CLI
//	splitio/     — YAML documents
//	cmd/splitnet — command line front end
//
// Quick ASCII example, four splits over taxa 1..6 whose incompatibility graph is a
// 4-cycle (a 2-dimensional box):
//
//	  23|1456 ──── 34|1256
//	     │            │
//	 256|134  ──── 45|1236
//
// dfilter.Filter at dimension 1 removes two of them; dimension 2 keeps all four.
//
//	go install github.com/katalvlaran/splitnet/cmd/splitnet@latest
package splitnet
