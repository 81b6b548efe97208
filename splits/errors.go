// SPDX-License-Identifier: MIT

package splits

import "errors"

// Sentinel errors for split construction and split system access.
var (
	// ErrBadNtax indicates a taxon universe with fewer than two taxa.
	ErrBadNtax = errors.New("splits: ntax must be >= 2")

	// ErrTaxonOutOfRange indicates a taxon index outside [1..ntax].
	ErrTaxonOutOfRange = errors.New("splits: taxon out of range")

	// ErrTrivialSide indicates that one side of a bipartition is empty.
	ErrTrivialSide = errors.New("splits: bipartition side is empty")

	// ErrNtaxMismatch indicates a split over a different taxon universe.
	ErrNtaxMismatch = errors.New("splits: ntax mismatch")

	// ErrIndexOutOfRange indicates a split index outside [1..nsplits].
	ErrIndexOutOfRange = errors.New("splits: split index out of range")
)
