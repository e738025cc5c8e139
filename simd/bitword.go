// Package simd provides the packed-bit primitives the rest of the
// simulator is built on: aligned bit vectors, 2D bit tables with
// in-place transpose, a sparse sorted xor-vector, and a monotonic
// arena. None of these allocate per element; callers that need more
// capacity grow the backing buffer by doubling, the same discipline
// the teacher uses for its RNS limb buffers.
package simd

// WordBits is the lane width of a single packed word. Real stim picks
// W from {64,128,256} at build time to match the host's widest cheap
// vector register; Go has no portable way to address a 128/256-bit
// SIMD register without cgo or assembly, so WordBits is pinned at 64
// and every algorithm here is written in terms of this constant so a
// wider backend only has to change this file.
const WordBits = 64

// Word is one packed lane of WordBits bits.
type Word = uint64

// wordsFor returns the number of Words needed to hold n bits, rounded
// up to a whole word.
func wordsFor(n int) int {
	return (n + WordBits - 1) / WordBits
}

// padded rounds n up to a multiple of WordBits.
func padded(n int) int {
	return wordsFor(n) * WordBits
}
