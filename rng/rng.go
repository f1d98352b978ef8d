// Package rng gives a Selector one named, seeded random stream and threads
// it through every draw the selection core makes, the way mrnes gives every
// simulated device its own rngstream.RngStream (net.go: "every device has
// its own RNG stream") instead of reaching for a process-wide generator.
package rng

import (
	"github.com/iti/rngstream"
)

// Stream wraps a named rngstream.RngStream and adds the small set of draws
// the selection core needs: uniform floats, bounded ints, and sampling
// without replacement. Two Streams created with the same name produce the
// same sequence of draws, which is what gives selectors their determinism
// guarantee (spec §5).
type Stream struct {
	name string
	strm *rngstream.RngStream
}

// New creates a Stream whose draws are fully determined by name. Callers
// that need run-to-run determinism pass the same name (e.g. a seed string)
// across runs; callers that need independent streams per traffic class
// derive per-TC names from a common prefix.
func New(name string) *Stream {
	return &Stream{name: name, strm: rngstream.New(name)}
}

// Name returns the stream's identifying name.
func (s *Stream) Name() string { return s.name }

// Float64 returns a uniform draw in [0,1).
func (s *Stream) Float64() float64 {
	return s.strm.RandU01()
}

// IntN returns a uniform draw in [0,n). Panics if n <= 0.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN requires n > 0")
	}
	return int(s.Float64() * float64(n))
}

// Sample draws k distinct indices from [0,n) uniformly at random, using
// partial Fisher-Yates so that every C(n,k) combination is equally likely.
// Panics if k > n.
func (s *Stream) Sample(n, k int) []int {
	if k > n {
		panic("rng: Sample requires k <= n")
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + s.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	out := make([]int, k)
	copy(out, pool[:k])
	return out
}

// Bernoulli returns true with probability p (clamped to [0,1]).
func (s *Stream) Bernoulli(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Float64() < p
}

// Derive returns a new Stream named after this one plus a suffix, used to
// give each traffic class or bucket its own independent-but-reproducible
// stream without a global counter.
func (s *Stream) Derive(suffix string) *Stream {
	return New(s.name + "/" + suffix)
}
