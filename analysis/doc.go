// Package analysis turns a bootstrap SplitMatrix into statistics on a split system:
// per-split confidence (the fraction of replicate blocks in which a split occurs with
// positive weight), display percentages, simultaneous confidence intervals for split
// weights and the derived confidence network.
//
// Confidence intervals follow Beran's balanced simultaneous construction. For split i
// and block j the root statistic is R_ij = w_ij − ŵ_i. Every block contributes the most
// extreme rank its roots reach across all splits, from above (s_j) and from below (t_j);
// a single pair of global rank cutoffs is read from the sorted s and t arrays and
// applied to every split, so the joint coverage over all splits meets the level.
//
// OldConfidenceIntervals keeps the earlier single-cutoff construction on |R_ij| for
// callers that need to reproduce legacy output. The two are not interchangeable.
//
// Quantile positions use floor for lower and ceil for upper cutoffs on the 0-based
// index fraction·nblocks, clamped to [0, nblocks-1].
package analysis
