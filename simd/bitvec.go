package simd

import (
	"math/bits"
	"math/rand"
)

// BitVec is an owned, word-aligned bit buffer. Its logical length is
// tracked separately from the padded word count, mirroring simd_bits:
// the padding exists purely so whole-word bitwise ops never need a
// tail special case.
type BitVec struct {
	numBits int
	words   []Word
}

// NewBitVec allocates a zeroed BitVec able to hold at least numBits bits.
func NewBitVec(numBits int) BitVec {
	if numBits < 0 {
		numBits = 0
	}
	return BitVec{numBits: numBits, words: make([]Word, wordsFor(numBits))}
}

// Len returns the logical (unpadded) bit count.
func (v *BitVec) Len() int { return v.numBits }

// NumWords returns the number of backing words.
func (v *BitVec) NumWords() int { return len(v.words) }

// Words exposes the backing slice for word-at-a-time loops.
func (v *BitVec) Words() []Word { return v.words }

// Get reads bit i.
func (v *BitVec) Get(i int) bool {
	return v.words[i/WordBits]&(1<<uint(i%WordBits)) != 0
}

// Set writes bit i.
func (v *BitVec) Set(i int, b bool) {
	w := i / WordBits
	mask := Word(1) << uint(i%WordBits)
	if b {
		v.words[w] |= mask
	} else {
		v.words[w] &^= mask
	}
}

// Clear zeroes every word.
func (v *BitVec) Clear() {
	for i := range v.words {
		v.words[i] = 0
	}
}

// CopyFrom overwrites v's words with other's. Both must have the same
// word count.
func (v *BitVec) CopyFrom(other *BitVec) {
	copy(v.words, other.words)
}

// Equal reports whether two vectors hold the same bits up to their
// shared padded word count.
func (v *BitVec) Equal(other *BitVec) bool {
	if len(v.words) != len(other.words) {
		return false
	}
	for i := range v.words {
		if v.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// XorInto xors other into v, word by word. Both must share word count.
func (v *BitVec) XorInto(other *BitVec) {
	for i := range v.words {
		v.words[i] ^= other.words[i]
	}
}

// AndInto ands other into v.
func (v *BitVec) AndInto(other *BitVec) {
	for i := range v.words {
		v.words[i] &= other.words[i]
	}
}

// OrInto ors other into v.
func (v *BitVec) OrInto(other *BitVec) {
	for i := range v.words {
		v.words[i] |= other.words[i]
	}
}

// AndNotInto clears bits in v wherever other has them set (v &= ^other).
func (v *BitVec) AndNotInto(other *BitVec) {
	for i := range v.words {
		v.words[i] &^= other.words[i]
	}
}

// PopCount returns the number of set bits among the first Len() bits.
func (v *BitVec) PopCount() int {
	n := 0
	full := v.numBits / WordBits
	for i := 0; i < full; i++ {
		n += bits.OnesCount64(v.words[i])
	}
	if rem := v.numBits % WordBits; rem != 0 {
		mask := Word(1)<<uint(rem) - 1
		n += bits.OnesCount64(v.words[full] & mask)
	}
	return n
}

// MaskTrailingGarbage zeroes any bits at or beyond Len() in the last
// word. Batched operations round the shot count up to a multiple of
// WordBits; this keeps the padding shots from polluting popcounts or
// comparisons.
func (v *BitVec) MaskTrailingGarbage() {
	if rem := v.numBits % WordBits; rem != 0 {
		last := len(v.words) - 1
		mask := Word(1)<<uint(rem) - 1
		v.words[last] &= mask
	}
}

// Randomize fills the first Len() bits with uniform random bits from rng.
func (v *BitVec) Randomize(rng *rand.Rand) {
	for i := range v.words {
		v.words[i] = rng.Uint64()
	}
	v.MaskTrailingGarbage()
}

// PackToBytes returns the first Len() bits packed little-bit-first,
// ceil(Len()/8) bytes long -- the in-memory shape that the b8 shot
// format (out of scope here; see spec.md 6.1) serializes directly.
func (v *BitVec) PackToBytes() []byte {
	nbytes := (v.numBits + 7) / 8
	out := make([]byte, nbytes)
	for i := 0; i < v.numBits; i++ {
		if v.Get(i) {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// UnpackFromBytes loads bits from a little-bit-first byte slice,
// clearing any bits beyond what b supplies.
func (v *BitVec) UnpackFromBytes(b []byte) {
	v.Clear()
	n := v.numBits
	if len(b)*8 < n {
		n = len(b) * 8
	}
	for i := 0; i < n; i++ {
		if b[i/8]&(1<<uint(i%8)) != 0 {
			v.Set(i, true)
		}
	}
}
