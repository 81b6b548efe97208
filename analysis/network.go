// SPDX-License-Identifier: MIT
//
// File: network.go
// Role: Confidence network: every split seen in the bootstrap whose interval upper bound
// is positive, weighted by a configurable policy.

package analysis

import (
	"fmt"

	"github.com/katalvlaran/splitnet/splitmatrix"
	"github.com/katalvlaran/splitnet/splits"
)

// WeightMethod selects the displayed weight of a confidence-network split.
type WeightMethod int

const (
	// Frequency displays Percentage(confidence).
	Frequency WeightMethod = iota
	// Lower displays the interval lower bound.
	Lower
	// Estimated displays the original point estimate.
	Estimated
	// Midpoint displays the interval midpoint.
	Midpoint
	// Upper displays the interval upper bound.
	Upper
)

var weightMethodNames = [...]string{"frequency", "lower", "estimated", "midpoint", "upper"}

// String returns the configuration name of wm.
func (wm WeightMethod) String() string {
	if wm < 0 || int(wm) >= len(weightMethodNames) {
		return fmt.Sprintf("WeightMethod(%d)", int(wm))
	}

	return weightMethodNames[wm]
}

// ParseWeightMethod maps frequency|lower|estimated|midpoint|upper to a WeightMethod.
func ParseWeightMethod(name string) (WeightMethod, error) {
	for i, n := range weightMethodNames {
		if n == name {
			return WeightMethod(i), nil
		}
	}

	return 0, fmt.Errorf("analysis: %q: %w", name, ErrUnknownWeightMethod)
}

// pick returns the displayed weight of s under wm.
func (wm WeightMethod) pick(s *splits.Split, estimate float64) float64 {
	iv := splits.Interval{Low: estimate, High: estimate}
	if s.Interval != nil {
		iv = *s.Interval
	}
	switch wm {
	case Lower:
		return iv.Low
	case Estimated:
		return estimate
	case Midpoint:
		return (iv.Low + iv.High) / 2
	case Upper:
		return iv.High
	default:
		return Percentage(s.Confidence)
	}
}

// Aggregate summarises the splits bundled instead of being listed individually.
type Aggregate struct {
	// Count is the number of bundled splits.
	Count int
	// Weight is the sum of their displayed weights.
	Weight float64
	// MeanWeight is the mean replicate weight over all bundled splits and blocks.
	MeanWeight float64
	// MaxConfidence is the largest confidence among them.
	MaxConfidence float64
	// Occurrences is the number of (split, block) cells with positive weight among them.
	Occurrences int
}

// ConfidenceNetwork builds a new split system from every row of m whose bootstrap
// interval upper bound exceeds zero.
//
// Implementation:
//   - Stage 1: Copy the master splits; set each weight to its seed estimate (block 0).
//   - Stage 2: EvalConfidences and ConfidenceIntervals at level on the copy.
//   - Stage 3: Keep rows with Interval.High > 0, weighted by method.
//   - Stage 4: Rows absent from the seed estimate with confidence < cutoff are bundled
//     into the returned Aggregate instead of being listed. No pseudo-split standing for
//     the bundle is added to the returned system; callers that draw one use Aggregate.
//
// Errors:
//   - ErrBadLevel, ErrBadCutoff, ErrNoBlocks, ErrUnknownWeightMethod.
//
// Complexity:
//   - Dominated by ConfidenceIntervals: O(n·B·log B).
func ConfidenceNetwork(m *splitmatrix.SplitMatrix, level, cutoff float64, method WeightMethod) (*splits.SplitSystem, *Aggregate, error) {
	if method < Frequency || method > Upper {
		return nil, nil, fmt.Errorf("analysis: %v: %w", method, ErrUnknownWeightMethod)
	}
	if cutoff < 0 || cutoff > 1 {
		return nil, nil, fmt.Errorf("analysis: cutoff=%g: %w", cutoff, ErrBadCutoff)
	}
	if m.Nblocks() == 0 {
		return nil, nil, ErrNoBlocks
	}

	work := m.Splits()
	estimates := make([]float64, work.Nsplits())
	for i, s := range work.All() {
		estimates[i] = m.Get(i+1, splitmatrix.SeedBlock)
		s.Weight = estimates[i]
	}
	EvalConfidences(m, work)
	if err := ConfidenceIntervals(m, work, level); err != nil {
		return nil, nil, err
	}

	dense, err := m.Dense()
	if err != nil {
		return nil, nil, fmt.Errorf("analysis: ConfidenceNetwork: %w", err)
	}
	means := dense.RowMeans()
	seen := dense.RowCountsAbove(0)

	out := splits.NewSplitSystem(m.Ntax())
	agg := &Aggregate{}
	for i, s := range work.All() {
		if s.Interval == nil || s.Interval.High <= 0 {
			continue
		}
		weight := method.pick(s, estimates[i])
		if estimates[i] <= 0 && s.Confidence < cutoff {
			agg.Count++
			agg.Weight += weight
			agg.MeanWeight += means[i]
			agg.Occurrences += seen[i]
			if s.Confidence > agg.MaxConfidence {
				agg.MaxConfidence = s.Confidence
			}
			continue
		}
		c := s.Clone()
		c.Weight = weight
		if _, err = out.Add(c); err != nil {
			return nil, nil, err
		}
	}
	if agg.Count > 0 {
		agg.MeanWeight /= float64(agg.Count)
	}

	return out, agg, nil
}
