// SPDX-License-Identifier: MIT

package bootstrap

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Replicate outcome labels.
const (
	outcomeMerged    = "merged"
	outcomeFailed    = "failed"
	outcomeExhausted = "exhausted"
	outcomeDiscarded = "discarded"
)

var (
	replicatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitnet_bootstrap_replicates_total",
		Help: "Bootstrap replicates by outcome",
	}, []string{"outcome"})

	replicateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitnet_bootstrap_replicate_duration_seconds",
		Help:    "Time to resample and recompute one replicate",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitnet_bootstrap_runs_total",
		Help: "Bootstrap runs by stop reason",
	}, []string{"stop"})
)
