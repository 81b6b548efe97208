// SPDX-License-Identifier: MIT

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/splitnet/characters"
	"github.com/katalvlaran/splitnet/splitmatrix"
	"github.com/katalvlaran/splitnet/splits"
)

var (
	// ErrResourceExhausted marks a replicate that ran out of resources.
	// Recomputers wrap it to request a soft stop instead of a hard failure.
	ErrResourceExhausted = errors.New("bootstrap: resource exhausted")

	// ErrBadRuns indicates runs < 1.
	ErrBadRuns = errors.New("bootstrap: runs must be >= 1")

	// ErrBadWorkers indicates workers < 1.
	ErrBadWorkers = errors.New("bootstrap: workers must be >= 1")

	// ErrBadLength indicates a resample length that is neither -1 nor positive.
	ErrBadLength = errors.New("bootstrap: length must be -1 or > 0")

	// ErrNilOriginal indicates a missing original split system.
	ErrNilOriginal = errors.New("bootstrap: original split system is nil")

	// ErrNilRecompute indicates a missing recompute function.
	ErrNilRecompute = errors.New("bootstrap: recompute is nil")

	// ErrNilData indicates missing primary data or simulator.
	ErrNilData = errors.New("bootstrap: no data source")

	// ErrTaxaMismatch indicates primary data and original splits over different taxon counts.
	ErrTaxaMismatch = errors.New("bootstrap: data and splits disagree on ntax")

	// ErrNilReplicate indicates a recompute that returned neither splits nor an error.
	ErrNilReplicate = errors.New("bootstrap: recompute returned no splits")
)

// Recomputer computes a split system from one replicate dataset.
type Recomputer interface {
	Recompute(ctx context.Context, data *characters.Characters) (*splits.SplitSystem, error)
}

// RecomputeFunc adapts a plain function to Recomputer.
type RecomputeFunc func(ctx context.Context, data *characters.Characters) (*splits.SplitSystem, error)

// Recompute calls f(ctx, data).
func (f RecomputeFunc) Recompute(ctx context.Context, data *characters.Characters) (*splits.SplitSystem, error) {
	return f(ctx, data)
}

// Simulator draws a parametric replicate of nchar characters.
type Simulator interface {
	Simulate(rng *rand.Rand, nchar int) (*characters.Characters, error)
}

// Progress receives replicate progress and exposes a cancellation flag.
type Progress interface {
	SetMaximum(n int)
	SetProgress(i int)
	Cancelled() bool
}

// noopProgress never cancels.
type noopProgress struct{}

func (noopProgress) SetMaximum(int)  {}
func (noopProgress) SetProgress(int) {}
func (noopProgress) Cancelled() bool { return false }

// Option configures a bootstrap run.
type Option func(*Options)

// Options holds the configurable parameters of a run.
type Options struct {
	// Runs is the number of replicates.
	Runs int

	// Length is the resample length; -1 means the original character count.
	Length int

	// Seed seeds the RNG; 0 draws a random seed.
	Seed int64

	// Workers bounds concurrent replicate computations.
	Workers int

	// Level is the confidence level of the simultaneous intervals.
	Level float64

	// Percentages requests Result.Display with percentage weights.
	Percentages bool

	// Progress receives progress and cancellation; never nil after DefaultOptions.
	Progress Progress

	// Logger receives structured logs; never nil after DefaultOptions.
	Logger *slog.Logger
}

// DefaultOptions returns 100 runs, length -1, random seed, one worker, level 0.95,
// no percentages, a no-op progress sink and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Runs:     100,
		Length:   -1,
		Seed:     0,
		Workers:  1,
		Level:    0.95,
		Progress: noopProgress{},
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// WithRuns sets the number of replicates.
func WithRuns(n int) Option { return func(o *Options) { o.Runs = n } }

// WithLength sets the resample length (-1 = original length).
func WithLength(n int) Option { return func(o *Options) { o.Length = n } }

// WithSeed sets the RNG seed (0 = non-deterministic).
func WithSeed(seed int64) Option { return func(o *Options) { o.Seed = seed } }

// WithWorkers sets the number of concurrent replicate computations.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithLevel sets the confidence level.
func WithLevel(level float64) Option { return func(o *Options) { o.Level = level } }

// WithPercentages requests a display copy with percentage weights.
func WithPercentages() Option { return func(o *Options) { o.Percentages = true } }

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

// StopReason tells why the replicate loop ended.
type StopReason int

const (
	// Finished means every requested replicate was merged.
	Finished StopReason = iota
	// Cancelled means the context or progress sink requested a stop.
	Cancelled
	// ResourceExhausted means a replicate reported ErrResourceExhausted.
	ResourceExhausted
)

// String returns a metric-friendly name.
func (r StopReason) String() string {
	switch r {
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	case ResourceExhausted:
		return "resource_exhausted"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Result is the outcome of a completed or softly stopped run.
type Result struct {
	// Splits is a copy of the original splits with Confidence and Interval set.
	// Both stay unset when no replicate completed.
	Splits *splits.SplitSystem

	// Display is a copy of Splits with percentage weights (WithPercentages only).
	Display *splits.SplitSystem

	// Matrix holds every merged replicate; block r is replicate r.
	Matrix *splitmatrix.SplitMatrix

	// Requested and Completed count replicates.
	Requested int
	Completed int

	// Stop tells why the loop ended; Notice is the user-facing message for soft stops.
	Stop   StopReason
	Notice string

	// Seed is the effective seed (random when 0 was configured).
	Seed int64

	// RunID tags the run in logs.
	RunID string
}

// Partial reports whether fewer replicates than requested were merged.
func (r *Result) Partial() bool { return r.Completed < r.Requested }

// ReplicateError is the hard failure of one replicate; the run is aborted.
type ReplicateError struct {
	// Replicate is the 1-based failing replicate.
	Replicate int
	// Completed is the number of replicates merged before it.
	Completed int
	// Err is the underlying failure.
	Err error
}

// Error implements error.
func (e *ReplicateError) Error() string {
	return fmt.Sprintf("bootstrap: replicate %d failed after %d completed: %v", e.Replicate, e.Completed, e.Err)
}

// Unwrap exposes the underlying failure to errors.Is/As.
func (e *ReplicateError) Unwrap() error { return e.Err }
