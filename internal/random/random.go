// Package random provides the pseudo-random source shared by the draw and
// grouping engines. Fairness here is statistical, not cryptographic.
package random

import "math/rand/v2"

// Source picks a uniformly distributed integer in [0, n).
// IntN panics if n <= 0, matching math/rand/v2.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Default returns a Source backed by the automatically seeded global generator.
func Default() Source {
	return globalSource{}
}

// Seeded returns a deterministic Source. Tests use it to get reproducible draws.
func Seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Pick returns a uniformly chosen element of items. items must be non-empty.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
