package rng

import "math"

// FloatSource is the one method this package needs from *rand.Rand,
// so callers can pass an *rng.RNG's underlying *rand.Rand directly.
type FloatSource interface {
	Float64() float64
}

// RareEventSkipper yields the indices of hits from a Bernoulli(p)
// process without generating a random decision per trial: each call
// to Next draws a geometric-distributed gap and adds it to a running
// cursor, so the cost of scanning n trials with hit probability p is
// O(n*p) instead of O(n). Grounded on RareErrorIterator in the
// original: same geometric-skip idea, expressed against math/rand
// since Go's standard library has no built-in geometric distribution.
type RareEventSkipper struct {
	p    float64
	next int
}

// NewRareEventSkipper prepares a skipper for hit probability p,
// positioned so the first call to Next can report index 0. p==0 is
// allowed; every call to Next will then report "no more hits".
func NewRareEventSkipper(p float64) *RareEventSkipper {
	return &RareEventSkipper{p: p}
}

// drawGap samples a geometric(p) gap: the number of Bernoulli(p)
// trials strictly after the current one until the next hit. Using the
// standard inverse-CDF trick log(1-U)/log(1-p) keeps this to one
// random float64 draw per hit, matching std::geometric_distribution's
// expected cost.
func (s *RareEventSkipper) drawGap(r FloatSource) int {
	if s.p <= 0 {
		return math.MaxInt32
	}
	u := r.Float64()
	if u >= 1 {
		u = math.Nextafter(1, 0)
	}
	gap := math.Log(1-u) / math.Log(1-s.p)
	if math.IsInf(gap, 0) || math.IsNaN(gap) {
		return 0
	}
	return int(gap)
}

// Next advances the skipper using r and returns the index of the next
// hit. Once Next returns an index >= n for whatever upper bound the
// caller is scanning against, the caller should stop.
func (s *RareEventSkipper) Next(r FloatSource) int {
	cur := s.next + s.drawGap(r)
	s.next = cur + 1
	return cur
}

// ForSamples calls body(i) for every hit index i in [0, n), for a
// Bernoulli(p) process over n trials, using r as the entropy source.
// Mirrors RareErrorIterator::for_samples.
func ForSamples(p float64, n int, r FloatSource, body func(i int)) {
	if p <= 0 {
		return
	}
	skipper := NewRareEventSkipper(p)
	for {
		i := skipper.Next(r)
		if i >= n {
			return
		}
		body(i)
	}
}
