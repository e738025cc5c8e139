package simd

import (
	"math/rand"
	"testing"
)

func TestBitTableRowAliases(t *testing.T) {
	tb := NewBitTable(4, 70)
	row := tb.Row(1)
	row.Set(65, true)
	if !tb.Get(1, 65) {
		t.Fatalf("write through Row view did not reach backing table")
	}
}

func TestBitTableTransposeIsInvolution(t *testing.T) {
	n := 128
	tb := NewBitTable(n, n)
	rng := rand.New(rand.NewSource(42))
	tb.Randomize(rng)

	orig := make([]Word, len(tb.data))
	copy(orig, tb.data)

	tb.TransposeSquareInPlace()
	tb.TransposeSquareInPlace()

	for i := range orig {
		if orig[i] != tb.data[i] {
			t.Fatalf("double transpose did not return to original at word %d", i)
		}
	}
}

func TestBitTableTransposeSwapsAxes(t *testing.T) {
	n := 64
	tb := NewBitTable(n, n)
	tb.Set(2, 5, true)
	tb.TransposeSquareInPlace()
	if !tb.Get(5, 2) {
		t.Fatalf("transpose did not move bit (2,5) to (5,2)")
	}
	if tb.Get(2, 5) {
		t.Fatalf("bit (2,5) should be cleared after transpose")
	}
}
