// Package rng provides the deterministic, thread-safe uniform random source
// the saltation engine draws from. It is a thin wrapper around
// math/rand/v2 in the shape of the teacher's pkg/core/rng.go, extended with
// a mutex: the teacher's wrapper is only ever driven from a single
// goroutine at a time, while the desert package's worker pool drives one
// shared source from many goroutines concurrently (spec: "the source is
// expected to be thread-safe").
package rng

import (
	"math/rand/v2"
	"sync"
)

// Source is a deterministic, concurrency-safe uniform random source.
type Source struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New creates a deterministic Source using the provided 64-bit seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// IntN returns a uniform integer in [0, n).
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// UniformFloat64 returns a uniform value in [lo, hi).
func (s *Source) UniformFloat64(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.Float64()*(hi-lo)
}
