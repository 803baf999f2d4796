package engine

import "math/rand/v2"

// Rand is the source of randomness used for tile placement.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// globalRand uses the process-wide math/rand/v2 source, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// NewRand returns a random source. A zero seed uses the process-wide source;
// any other seed gives a reproducible PCG stream that must not be shared
// across goroutines without external locking.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		return globalRand{}
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// spawnValue draws the exponent for a new tile: 1 (a 2) or 2 (a 4).
func spawnValue(r Rand) int {
	if r.Float64() < 1-FourTileProbability {
		return 1
	}
	return 2
}
