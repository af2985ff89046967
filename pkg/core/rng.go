package core

import "math/rand/v2"

// Default family seeds for the two sampling streams.
const (
	DefaultGammaSeed   uint64 = 437
	DefaultPoissonSeed uint64 = 4357
)

// NewSource returns a deterministic PCG source. stream selects an independent
// sequence for the same family seed, so shards seeded with (seed, shard) never
// share state.
func NewSource(seed, stream uint64) *rand.PCG {
	return rand.NewPCG(seed, stream)
}
