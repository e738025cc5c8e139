package simd

import (
	"math"
	"math/rand"
)

// BiasedRandomize fills the first Len() bits of v with i.i.d. bits
// that are 1 with probability p. For p==0.5 this is a single raw RNG
// read per word. For smaller (or larger, via the 1-p symmetry) p, each
// word is built by ANDing together ceil(log2(1/p)) random words and
// then repairing the residual fraction that a pure power of two can't
// express, exactly the scheme spec.md 4.D "Biased bit fill" describes.
func (v *BitVec) BiasedRandomize(p float64, rng *rand.Rand) {
	if p <= 0 {
		v.Clear()
		return
	}
	if p >= 1 {
		for i := range v.words {
			v.words[i] = ^Word(0)
		}
		v.MaskTrailingGarbage()
		return
	}
	if p > 0.5 {
		v.BiasedRandomize(1-p, rng)
		for i := range v.words {
			v.words[i] = ^v.words[i]
		}
		v.MaskTrailingGarbage()
		return
	}

	k := int(math.Ceil(math.Log2(1 / p)))
	if k < 1 {
		k = 1
	}
	// ANDing k independent uniform words together yields a word whose
	// bits are 1 independently with probability 2^-k <= p. That
	// undershoots p in general, so on top of the AND-composed word we
	// OR in an independent Bernoulli(residual) layer to bring the
	// per-bit probability back up to exactly p in expectation.
	base := 1.0 / math.Exp2(float64(k))
	residual := (p - base) / (1 - base)

	for i := range v.words {
		w := ^Word(0)
		for j := 0; j < k; j++ {
			w &= rng.Uint64()
		}
		if residual > 0 {
			extra := bernoulliWord(residual, rng)
			w |= extra &^ w
		}
		v.words[i] = w
	}
	v.MaskTrailingGarbage()
}

// bernoulliWord returns a word whose bits are independently 1 with
// probability p, computed bit by bit. Used only for the small residual
// correction in BiasedRandomize, so the per-bit cost doesn't matter.
func bernoulliWord(p float64, rng *rand.Rand) Word {
	var w Word
	for b := 0; b < WordBits; b++ {
		if rng.Float64() < p {
			w |= Word(1) << uint(b)
		}
	}
	return w
}

// ShiftLeft shifts the whole padded buffer left by n bits (toward
// higher indices), discarding bits shifted out the top.
func (v *BitVec) ShiftLeft(n int) {
	if n <= 0 {
		return
	}
	total := len(v.words) * WordBits
	if n >= total {
		v.Clear()
		return
	}
	wordShift := n / WordBits
	bitShift := uint(n % WordBits)
	nw := len(v.words)
	for i := nw - 1; i >= 0; i-- {
		var val Word
		src := i - wordShift
		if src >= 0 {
			val = v.words[src]
			if bitShift != 0 {
				val <<= bitShift
				if src-1 >= 0 {
					val |= v.words[src-1] >> (WordBits - bitShift)
				}
			}
		}
		v.words[i] = val
	}
	v.MaskTrailingGarbage()
}
