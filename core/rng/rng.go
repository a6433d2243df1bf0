// Package rng provides the random number capability used by the resamplers.
//
// A Source is passed explicitly to every sampling call. The process-wide
// default is backed by the math/rand/v2 top-level generator, which is safe for
// concurrent use. Seeded sources are reproducible but must not be shared
// between goroutines; use Split to derive one independent stream per worker.
package rng

import (
	"math/rand/v2"
)

// Source draws uniform random integers.
type Source interface {
	// IntN returns a uniform integer in [0, n). n must be positive.
	IntN(n int) int
	// Uint64 returns a uniform 64-bit value, used to seed derived streams.
	Uint64() uint64
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }
func (globalSource) Uint64() uint64 { return rand.Uint64() }

// Default returns the process-wide, goroutine-safe source.
func Default() Source {
	return globalSource{}
}

// New returns a reproducible PCG-backed source for the given seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Split derives k independent streams from src. The parent is consumed
// sequentially, so for a seeded parent the children are reproducible and do
// not depend on how they are later scheduled.
func Split(src Source, k int) []Source {
	children := make([]Source, k)
	for i := range children {
		children[i] = rand.New(rand.NewPCG(src.Uint64(), src.Uint64()))
	}
	return children
}

// Sequence replays a fixed list of draws. IntN(n) returns the next value and
// panics if it falls outside [0, n) or the list is exhausted. It exists for
// tests that need exact draws.
type Sequence struct {
	draws []int
	pos   int
}

// NewSequence creates a Sequence replaying draws in order.
func NewSequence(draws ...int) *Sequence {
	return &Sequence{draws: draws}
}

// IntN implements Source.
func (s *Sequence) IntN(n int) int {
	if s.pos >= len(s.draws) {
		panic("rng: sequence exhausted")
	}
	v := s.draws[s.pos]
	if v < 0 || v >= n {
		panic("rng: scripted draw out of range")
	}
	s.pos++
	return v
}

// Uint64 implements Source by replaying the next draw.
func (s *Sequence) Uint64() uint64 {
	if s.pos >= len(s.draws) {
		panic("rng: sequence exhausted")
	}
	v := s.draws[s.pos]
	s.pos++
	return uint64(v)
}

// Remaining reports how many scripted draws are left.
func (s *Sequence) Remaining() int {
	return len(s.draws) - s.pos
}
