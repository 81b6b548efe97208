// SPDX-License-Identifier: MIT
//
// File: bootstrap.go
// Role: Setup, replicate loop and finalize of nonparametric and parametric bootstrap runs.

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/splitnet/analysis"
	"github.com/katalvlaran/splitnet/characters"
	"github.com/katalvlaran/splitnet/splitmatrix"
	"github.com/katalvlaran/splitnet/splits"
)

// sampler produces one replicate dataset from its own RNG stream.
type sampler func(rng *rand.Rand) (*characters.Characters, error)

// outcome is the result of computing one replicate.
type outcome struct {
	ss  *splits.SplitSystem
	err error
}

// Run performs a nonparametric bootstrap of data against the original split system.
//
// Implementation:
//   - Stage 1 (setup): validate, resolve length and seed, seed the SplitMatrix with original.
//   - Stage 2 (loop): resample columns (or loci when data.Diploid), recompute, merge.
//   - Stage 3 (finalize): confidences and intervals on a copy of original.
//
// Returns:
//   - *Result on success or soft stop (cancellation, resource exhaustion).
//   - error: configuration errors before the loop, or *ReplicateError on hard failure.
//
// Errors:
//   - ErrNilData, ErrNilOriginal, ErrNilRecompute, ErrTaxaMismatch, ErrBadRuns, ErrBadWorkers,
//     ErrBadLength, characters.ErrOddDiploidLength, analysis.ErrBadLevel.
//   - *ReplicateError wrapping the recompute failure.
func Run(ctx context.Context, data *characters.Characters, original *splits.SplitSystem, rc Recomputer, opts ...Option) (*Result, error) {
	if data == nil {
		return nil, ErrNilData
	}
	o := buildOptions(opts)
	if original != nil && data.Ntax() != original.Ntax() {
		return nil, fmt.Errorf("bootstrap: data has %d taxa, splits %d: %w", data.Ntax(), original.Ntax(), ErrTaxaMismatch)
	}
	length := o.Length
	if length == -1 {
		length = data.Nchar()
	}
	if length <= 0 {
		return nil, fmt.Errorf("bootstrap: length=%d: %w", o.Length, ErrBadLength)
	}
	if data.Diploid && length%2 != 0 {
		return nil, fmt.Errorf("bootstrap: length=%d: %w", length, characters.ErrOddDiploidLength)
	}

	sample := func(rng *rand.Rand) (*characters.Characters, error) {
		rep, _, err := data.Resample(rng, length)
		return rep, err
	}

	return run(ctx, sample, original, rc, o, "nonparametric")
}

// RunParametric performs a parametric bootstrap: every replicate is simulated by sim with
// nchar characters (or the WithLength value when positive) instead of being resampled.
// Everything from recompute onward is identical to Run.
func RunParametric(ctx context.Context, sim Simulator, nchar int, original *splits.SplitSystem, rc Recomputer, opts ...Option) (*Result, error) {
	if sim == nil {
		return nil, ErrNilData
	}
	o := buildOptions(opts)
	length := nchar
	if o.Length > 0 {
		length = o.Length
	}
	if length <= 0 {
		return nil, fmt.Errorf("bootstrap: length=%d: %w", length, ErrBadLength)
	}

	sample := func(rng *rand.Rand) (*characters.Characters, error) {
		return sim.Simulate(rng, length)
	}

	return run(ctx, sample, original, rc, o, "parametric")
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// validate checks the options shared by both bootstrap flavours.
func (o *Options) validate(original *splits.SplitSystem, rc Recomputer) error {
	switch {
	case original == nil:
		return ErrNilOriginal
	case rc == nil:
		return ErrNilRecompute
	case o.Runs < 1:
		return fmt.Errorf("bootstrap: runs=%d: %w", o.Runs, ErrBadRuns)
	case o.Workers < 1:
		return fmt.Errorf("bootstrap: workers=%d: %w", o.Workers, ErrBadWorkers)
	case !(o.Level > 0 && o.Level < 1):
		return fmt.Errorf("bootstrap: level=%g: %w", o.Level, analysis.ErrBadLevel)
	}

	return nil
}

// run is the shared setup / loop / finalize state machine.
func run(ctx context.Context, sample sampler, original *splits.SplitSystem, rc Recomputer, o Options, flavour string) (*Result, error) {
	if err := o.validate(original, rc); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Setup.
	m, err := splitmatrix.NewSeeded(original.Ntax(), original)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: seed matrix: %w", err)
	}
	seed := resolveSeed(o.Seed)
	base := rand.New(rand.NewSource(seed))
	res := &Result{
		Matrix:    m,
		Requested: o.Runs,
		Seed:      seed,
		RunID:     uuid.NewString()[:8],
	}
	log := o.Logger.With("run_id", res.RunID, "flavour", flavour)
	log.InfoContext(ctx, "bootstrap started",
		"runs", o.Runs,
		"workers", o.Workers,
		"seed", seed,
		"splits", original.Nsplits(),
	)
	o.Progress.SetMaximum(o.Runs)
	progressLog := rate.Sometimes{First: 1, Interval: 2 * time.Second}

	// Replicate loop, one batch of up to Workers replicates at a time.
	var herr error
loop:
	for start := 1; start <= o.Runs; start += o.Workers {
		if ctx.Err() != nil || o.Progress.Cancelled() {
			res.Stop = Cancelled
			break
		}
		end := min(start+o.Workers-1, o.Runs)
		outs := computeBatch(ctx, sample, rc, base, start, end, o.Workers)

		for k, out := range outs {
			r := start + k
			if out.err != nil {
				switch {
				case errors.Is(out.err, ErrResourceExhausted):
					replicatesTotal.WithLabelValues(outcomeExhausted).Inc()
					res.Stop = ResourceExhausted
				case ctx.Err() != nil && errors.Is(out.err, ctx.Err()):
					res.Stop = Cancelled
				default:
					replicatesTotal.WithLabelValues(outcomeFailed).Inc()
					herr = &ReplicateError{Replicate: r, Completed: res.Completed, Err: out.err}
				}
				replicatesTotal.WithLabelValues(outcomeDiscarded).Add(float64(len(outs) - k - 1))
				break loop
			}
			if _, err = m.Add(out.ss); err != nil {
				herr = &ReplicateError{Replicate: r, Completed: res.Completed, Err: err}
				break loop
			}
			replicatesTotal.WithLabelValues(outcomeMerged).Inc()
			res.Completed++
			o.Progress.SetProgress(res.Completed)
			progressLog.Do(func() {
				log.InfoContext(ctx, "bootstrap progress", "completed", res.Completed, "runs", o.Runs, "rows", m.Nsplits())
			})
			if ctx.Err() != nil || o.Progress.Cancelled() {
				res.Stop = Cancelled
				replicatesTotal.WithLabelValues(outcomeDiscarded).Add(float64(len(outs) - k - 1))
				break loop
			}
		}
	}

	if herr != nil {
		runsTotal.WithLabelValues("failed").Inc()
		log.ErrorContext(ctx, "bootstrap failed", "completed", res.Completed, "error", herr)
		return nil, herr
	}
	runsTotal.WithLabelValues(res.Stop.String()).Inc()
	switch res.Stop {
	case Cancelled:
		res.Notice = fmt.Sprintf("bootstrap cancelled after %d replicates", res.Completed)
	case ResourceExhausted:
		res.Notice = fmt.Sprintf("only %d bootstraps performed", res.Completed)
	}
	if res.Notice != "" {
		log.WarnContext(ctx, res.Notice, "completed", res.Completed, "runs", o.Runs)
	}

	// Finalize.
	if err = finalize(res, original, o); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "bootstrap finished", "completed", res.Completed, "rows", m.Nsplits(), "stop", res.Stop.String())

	return res, nil
}

// computeBatch computes replicates start..end with at most workers in flight and returns
// their outcomes in replicate order. RNG streams are derived here, in order.
func computeBatch(ctx context.Context, sample sampler, rc Recomputer, base *rand.Rand, start, end, workers int) []outcome {
	outs := make([]outcome, end-start+1)
	rngs := make([]*rand.Rand, len(outs))
	for k := range rngs {
		rngs[k] = deriveRNG(base, start+k)
	}
	if workers == 1 {
		outs[0] = computeOne(ctx, sample, rc, rngs[0])
		return outs
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for k := range outs {
		g.Go(func() error {
			outs[k] = computeOne(ctx, sample, rc, rngs[k])
			return nil
		})
	}
	_ = g.Wait()

	return outs
}

// computeOne samples and recomputes a single replicate. Panics inside recompute become errors.
func computeOne(ctx context.Context, sample sampler, rc Recomputer, rng *rand.Rand) (out outcome) {
	began := time.Now()
	defer func() {
		replicateDuration.Observe(time.Since(began).Seconds())
		if p := recover(); p != nil {
			out = outcome{err: fmt.Errorf("bootstrap: recompute panicked: %v", p)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return outcome{err: err}
	}
	data, err := sample(rng)
	if err != nil {
		return outcome{err: err}
	}
	ss, err := rc.Recompute(ctx, data)
	if err != nil {
		return outcome{err: err}
	}
	if ss == nil {
		return outcome{err: ErrNilReplicate}
	}

	return outcome{ss: ss}
}

// finalize computes confidences and intervals on a copy of original.
func finalize(res *Result, original *splits.SplitSystem, o Options) error {
	res.Splits = original.Clone()
	if res.Completed == 0 {
		return nil
	}
	analysis.EvalConfidences(res.Matrix, res.Splits)
	if err := analysis.ConfidenceIntervals(res.Matrix, res.Splits, o.Level); err != nil {
		return fmt.Errorf("bootstrap: finalize: %w", err)
	}
	if o.Percentages {
		res.Display = res.Splits.Clone()
		analysis.ComputePercentages(res.Display)
	}

	return nil
}
