package simd

import (
	"math/rand"
	"testing"
)

func TestBitVecSetGet(t *testing.T) {
	v := NewBitVec(130)
	v.Set(0, true)
	v.Set(63, true)
	v.Set(64, true)
	v.Set(129, true)
	for _, i := range []int{0, 63, 64, 129} {
		if !v.Get(i) {
			t.Fatalf("bit %d should be set", i)
		}
	}
	if v.Get(1) || v.Get(128) {
		t.Fatalf("unexpected bit set")
	}
	if v.PopCount() != 4 {
		t.Fatalf("popcount = %d, want 4", v.PopCount())
	}
}

func TestBitVecXorSelfCancel(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := NewBitVec(200)
	a.Randomize(rng)
	b := NewBitVec(200)
	b.CopyFrom(&a)
	a.XorInto(&b)
	if a.PopCount() != 0 {
		t.Fatalf("a xor a should be zero, got popcount %d", a.PopCount())
	}
}

func TestBitVecPackUnpackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	v := NewBitVec(77)
	v.Randomize(rng)
	packed := v.PackToBytes()
	v2 := NewBitVec(77)
	v2.UnpackFromBytes(packed)
	if !v.Equal(&v2) {
		t.Fatalf("round trip mismatch")
	}
}

func TestBitVecMaskTrailingGarbage(t *testing.T) {
	v := NewBitVec(3)
	for i := range v.words {
		v.words[i] = ^Word(0)
	}
	v.MaskTrailingGarbage()
	if v.PopCount() != 3 {
		t.Fatalf("popcount = %d, want 3", v.PopCount())
	}
}
