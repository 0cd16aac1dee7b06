package testutil

import "math/rand/v2"

// SeededSource returns a factory of identically seeded generators.
//
// Every call produces a fresh *rand.Rand starting from the same state, so two
// progress runs built from the same seed emit the same records.
func SeededSource(seed uint64) func() *rand.Rand {
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}
