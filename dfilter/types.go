// SPDX-License-Identifier: MIT

package dfilter

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/splitnet/matrix"
)

// ExactDimensionLimit is the largest maxDimension handled by exact clique search.
const ExactDimensionLimit = 5

// relaxNeighborhoodLimit is the largest maxDimension for which the relaxation also
// inspects the neighborhoods of low-degree nodes.
const relaxNeighborhoodLimit = 6

var (
	// ErrNilSplits indicates a nil split system.
	ErrNilSplits = errors.New("dfilter: split system is nil")

	// ErrBadDimension indicates maxDimension < 1.
	ErrBadDimension = errors.New("dfilter: maxDimension must be >= 1")

	// ErrBadCrossing indicates maxCrossing < 1.
	ErrBadCrossing = errors.New("dfilter: maxCrossing must be >= 1")

	// ErrBadOrdering indicates an ordering that is not a permutation of 1..ntax.
	ErrBadOrdering = errors.New("dfilter: ordering is not a permutation of the taxa")

	// ErrNilOrderer indicates a missing circular-ordering routine.
	ErrNilOrderer = errors.New("dfilter: orderer is nil")
)

// Progress receives per-deletion progress and exposes a cancellation flag.
type Progress interface {
	SetMaximum(n int)
	SetProgress(i int)
	Cancelled() bool
}

type noopProgress struct{}

func (noopProgress) SetMaximum(int)  {}
func (noopProgress) SetProgress(int) {}
func (noopProgress) Cancelled() bool { return false }

// Orderer computes a circular ordering of taxa 1..ntax from split-induced distances
// (row/column i-1 ↔ taxon i). NeighborNet is the usual implementation.
type Orderer interface {
	Order(ntax int, dist *matrix.Dense) ([]int, error)
}

// OrdererFunc adapts a plain function to Orderer.
type OrdererFunc func(ntax int, dist *matrix.Dense) ([]int, error)

// Order calls f(ntax, dist).
func (f OrdererFunc) Order(ntax int, dist *matrix.Dense) ([]int, error) { return f(ntax, dist) }

// Option configures a filter run.
type Option func(*Options)

// Options holds the configurable parameters of a filter run.
type Options struct {
	// Progress receives progress relative to the original node count.
	Progress Progress

	// Logger receives debug logs.
	Logger *slog.Logger
}

// DefaultOptions returns a no-op progress sink and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Progress: noopProgress{},
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// WithProgress installs a progress sink. A nil sink has no effect.
func WithProgress(p Progress) Option {
	return func(o *Options) {
		if p != nil {
			o.Progress = p
		}
	}
}

// WithLogger installs a logger. A nil logger has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result reports what a filter removed.
type Result struct {
	// Removed lists the removed splits by their index before filtering, ascending.
	Removed []int

	// Kept is the number of splits left.
	Kept int

	// Cancelled is true when the run stopped early; Removed is still applied.
	Cancelled bool
}
