// Package bootstrap estimates split support by resampling the primary data, recomputing
// a split system per replicate and aggregating all replicates in a SplitMatrix.
//
// A run has three phases:
//
//	setup     validate options, seed the SplitMatrix with the original splits,
//	          resolve the resample length (-1 = nchar) and the RNG (seed 0 = random)
//	loop      for r = 1..runs: resample (or simulate), recompute, merge, report progress
//	finalize  confidences and simultaneous intervals on a copy of the original splits
//
// Stopping rules:
//
//   - Cancellation (context or Progress.Cancelled) keeps every merged replicate and
//     reports "bootstrap cancelled after r replicates" in Result.Notice.
//   - A recompute error wrapping ErrResourceExhausted keeps the r-1 merged replicates
//     and reports "only N bootstraps performed".
//   - Any other replicate error aborts the run with a *ReplicateError; a matrix with a
//     silently skipped replicate is never returned.
//
// Replicates may be computed by several workers (WithWorkers). Every replicate draws
// from its own RNG stream derived from the base seed in replicate order, and merges
// happen on the calling goroutine in replicate order, so a fixed seed gives the same
// matrix for any worker count.
//
// Options:
//
//	WithRuns(n)         number of replicates (default 100)
//	WithLength(n)       resample length, -1 = same as the original (default -1)
//	WithSeed(s)         RNG seed, 0 = non-deterministic (default 0)
//	WithWorkers(n)      concurrent replicate computations (default 1)
//	WithLevel(l)        confidence level for intervals (default 0.95)
//	WithPercentages()   also produce Result.Display with percentage weights
//	WithProgress(p)     progress sink and cancellation flag
//	WithLogger(l)       structured logger (default: discard)
package bootstrap
