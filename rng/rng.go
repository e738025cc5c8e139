// Package rng provides the seeded random source every other package
// draws from: a thin wrapper around math/rand.Rand, seeded either from
// OS entropy or from a caller-supplied integer seed mixed through
// SHAKE-256 so that nearby seeds don't produce correlated streams.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"time"

	"golang.org/x/crypto/sha3"
)

// versionSeedIncompatibility is folded into every derived seed so that
// a seed saved against one version of this module never silently
// reproduces the same stream under a later version whose gate
// semantics changed -- the same superstition the original encodes as
// INTENTIONAL_VERSION_SEED_INCOMPATIBILITY.
const versionSeedIncompatibility uint64 = 0xDEADBEEF1237

// RNG wraps a math/rand.Rand with the sampling helpers the frame
// simulator and error analyzer need beyond the standard library
// (geometric-skip rare-event sampling, biased bit fills are in
// package simd and take an *rand.Rand directly).
type RNG struct {
	R *mrand.Rand
}

// FromSeed derives a deterministic RNG from an integer seed. The seed
// is absorbed into a SHAKE-256 instance alongside the version
// incompatibility constant and squeezed back out as a 64-bit source
// seed, the same absorb-then-squeeze shape PIOP.Shake256XOF uses for
// Fiat-Shamir challenges.
func FromSeed(seed uint64) *RNG {
	h := sha3.NewShake256()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], versionSeedIncompatibility)
	h.Write(buf[:])
	var out [8]byte
	h.Read(out[:])
	mixed := binary.LittleEndian.Uint64(out[:])
	return &RNG{R: mrand.New(mrand.NewSource(int64(mixed)))}
}

// FromEntropy seeds an RNG from the OS's crypto random source, falling
// back to the wall clock if that read fails -- mirrors
// ntru/random_seed.go's init-time fallback, but returns an RNG instead
// of reseeding the package-global source.
func FromEntropy() *RNG {
	var seed int64
	if err := binary.Read(rand.Reader, binary.LittleEndian, &seed); err != nil {
		seed = time.Now().UnixNano()
	}
	return &RNG{R: mrand.New(mrand.NewSource(seed))}
}
