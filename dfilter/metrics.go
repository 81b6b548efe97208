// SPDX-License-Identifier: MIT

package dfilter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	filterDimension = "dimension"
	filterCircular  = "circular"
)

var (
	removedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitnet_filter_removed_splits_total",
		Help: "Splits removed by filter",
	}, []string{"filter"})

	filterDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitnet_filter_duration_seconds",
		Help:    "Time to run one filter invocation",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"filter"})
)
