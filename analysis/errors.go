// SPDX-License-Identifier: MIT

package analysis

import "errors"

var (
	// ErrBadLevel indicates a confidence level outside (0,1).
	ErrBadLevel = errors.New("analysis: level must be in (0,1)")

	// ErrNoBlocks indicates a SplitMatrix without replicate blocks.
	ErrNoBlocks = errors.New("analysis: split matrix has no blocks")

	// ErrUnknownWeightMethod indicates an unsupported confidence-network weight policy.
	ErrUnknownWeightMethod = errors.New("analysis: unknown weight method")

	// ErrBadCutoff indicates a bundling cutoff outside [0,1].
	ErrBadCutoff = errors.New("analysis: cutoff must be in [0,1]")
)
