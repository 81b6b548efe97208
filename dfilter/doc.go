// Package dfilter removes splits from a split system so that the induced network avoids
// high-dimensional boxes.
//
// Filter (the dimension filter) bounds the clique size of the incompatibility graph:
// after filtering at maxDimension d, no d+1 remaining splits are pairwise incompatible.
// Each pass first reduces the graph to the nodes that can still lie in a (d+1)-clique,
// then deletes the node with the worst compatibility score (own score minus neighbor
// scores), until the reduced graph is empty.
//
//	d <= ExactDimensionLimit  exact (d+1)-clique subgraph by per-node backtracking
//	d >  ExactDimensionLimit  degree relaxation: drop nodes of degree < d, and for
//	                          d <= 6 nodes of degree d or d+1 whose neighborhood
//	                          holds no d-clique, re-examining the neighbors of every
//	                          dropped node
//
// CircularFilter is the order-only alternative: given a circular taxon ordering it drops
// every split whose sides are crossed more than maxCrossing times along the circle.
//
// Both filters mutate the split system in place. Cancellation leaves the splits removed
// so far removed; nothing is rolled back.
package dfilter
