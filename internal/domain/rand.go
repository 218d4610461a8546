// Package domain contains the core manifest scrambling logic.
package domain

import "math/rand/v2"

// Rand is the randomness source behind every mutation decision. It exists
// so tests can substitute a seeded or scripted source and assert exact
// outputs; production code uses NewRand.
type Rand interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
	// IntN returns a pseudo-random number in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Shuffle pseudo-randomizes the order of n elements.
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a production randomness source. Each call returns an
// independent source, so concurrent scramble runs never share one.
func NewRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
