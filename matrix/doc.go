// Package matrix provides the row-major Dense matrix used for materialised views
// of sparse split data: bootstrap weight tables (splits × replicate blocks) and
// split-induced taxon distance matrices.
//
// Dense stores r·c float64 values in one flat slice. Indices are 0-based; callers
// that work with 1-based taxa or split indices translate at the boundary.
//
// Errors:
//
//	ErrInvalidDimensions - requested shape has a non-positive side.
//	ErrOutOfRange        - row or column index outside the matrix.
package matrix
