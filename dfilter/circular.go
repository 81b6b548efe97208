// SPDX-License-Identifier: MIT
//
// File: circular.go
// Role: Order-only filter that drops splits crossing a circular taxon ordering too often.

package dfilter

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/splitnet/splits"
)

// ValidateOrdering checks that ordering is a permutation of 1..ntax.
func ValidateOrdering(ntax int, ordering []int) error {
	if len(ordering) != ntax {
		return fmt.Errorf("%w: length %d, want %d", ErrBadOrdering, len(ordering), ntax)
	}
	seen := make([]bool, ntax+1)
	for i, t := range ordering {
		if t < 1 || t > ntax || seen[t] {
			return fmt.Errorf("%w: position %d holds %d", ErrBadOrdering, i, t)
		}
		seen[t] = true
	}

	return nil
}

// Crossings returns how often a cyclic walk along ordering changes sides of s, halved.
// A split that is circular for the ordering has one crossing.
// ordering must be valid for s.Ntax().
func Crossings(s *splits.Split, ordering []int) int {
	n := len(ordering)
	if n == 0 {
		return 0
	}
	changes := 0
	prev := s.Contains(ordering[n-1])
	for _, t := range ordering {
		cur := s.Contains(t)
		if cur != prev {
			changes++
		}
		prev = cur
	}

	return changes / 2
}

// CircularFilter removes every split of ss with more than maxCrossing crossings along
// ordering. ss is modified in place.
func CircularFilter(ctx context.Context, ss *splits.SplitSystem, ordering []int, maxCrossing int, opts ...Option) (*Result, error) {
	if ss == nil {
		return nil, ErrNilSplits
	}
	if maxCrossing < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCrossing, maxCrossing)
	}
	if err := ValidateOrdering(ss.Ntax(), ordering); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()

	all := ss.All()
	o.Progress.SetMaximum(len(all))
	toDelete := roaring.New()
	cancelled := false
	for i, s := range all {
		if ctx.Err() != nil || o.Progress.Cancelled() {
			cancelled = true
			break
		}
		if c := Crossings(s, ordering); c > maxCrossing {
			o.Logger.Debug("split exceeds crossing bound", "split", i+1, "crossings", c)
			toDelete.Add(uint32(i + 1))
		}
		o.Progress.SetProgress(i + 1)
	}

	removed, err := removeAll(ss, toDelete)
	if err != nil {
		return nil, err
	}
	removedTotal.WithLabelValues(filterCircular).Add(float64(len(removed)))
	filterDuration.WithLabelValues(filterCircular).Observe(time.Since(start).Seconds())
	o.Logger.Debug("circular filter finished",
		"removed", len(removed), "kept", ss.Nsplits(), "max_crossing", maxCrossing, "cancelled", cancelled)

	return &Result{Removed: removed, Kept: ss.Nsplits(), Cancelled: cancelled}, nil
}

// CircularFilterWith computes the ordering from the split-induced distances of ss with
// orderer, then runs CircularFilter.
func CircularFilterWith(ctx context.Context, ss *splits.SplitSystem, orderer Orderer, maxCrossing int, opts ...Option) (*Result, []int, error) {
	if ss == nil {
		return nil, nil, ErrNilSplits
	}
	if orderer == nil {
		return nil, nil, ErrNilOrderer
	}
	dist, err := ss.InducedDistances()
	if err != nil {
		return nil, nil, fmt.Errorf("dfilter: induced distances: %w", err)
	}
	ordering, err := orderer.Order(ss.Ntax(), dist)
	if err != nil {
		return nil, nil, fmt.Errorf("dfilter: circular ordering: %w", err)
	}
	res, err := CircularFilter(ctx, ss, ordering, maxCrossing, opts...)
	if err != nil {
		return nil, nil, err
	}

	return res, ordering, nil
}
