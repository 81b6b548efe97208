// SPDX-License-Identifier: MIT
//
// File: rng.go
// Role: Seed resolution and per-replicate RNG streams.
//
// Goals:
//   - Determinism: a fixed non-zero seed ⇒ identical replicate selections on every run.
//   - Independence: every replicate owns its *rand.Rand, so workers never share one.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Streams are derived on the driver goroutine,
//     in replicate order, before being handed to workers.

package bootstrap

import "math/rand"

// resolveSeed returns seed, or a random non-zero seed when seed == 0.
func resolveSeed(seed int64) int64 {
	for seed == 0 {
		seed = rand.Int63()
	}

	return seed
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer, so neighbouring replicates get decorrelated streams.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// deriveRNG consumes one value of base and returns the stream for replicate r.
// Calling it for r = 1, 2, ... in order reproduces the same streams for a given base seed.
func deriveRNG(base *rand.Rand, r int) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(base.Int63(), uint64(r))))
}
