package simd

import "testing"

func intLess(a, b int) bool { return a < b }

func TestSparseXorVecSelfCancel(t *testing.T) {
	a := NewSparseXorVec[int](intLess)
	a.XorItem(3)
	a.XorItem(7)
	a.XorItem(3)
	if a.Len() != 1 || !a.Contains(7) {
		t.Fatalf("expected {7}, got %v", a.Items())
	}
}

func TestSparseXorVecCommutative(t *testing.T) {
	a := NewSparseXorVec[int](intLess)
	a.SetFromSorted([]int{1, 4, 9})
	b := NewSparseXorVec[int](intLess)
	b.SetFromSorted([]int{4, 5, 9, 20})

	ab := NewSparseXorVec[int](intLess)
	ab.SetFromSorted(append([]int{}, a.items...))
	ab.Xor(&b)

	ba := NewSparseXorVec[int](intLess)
	ba.SetFromSorted(append([]int{}, b.items...))
	ba.Xor(&a)

	if !ab.Equal(&ba) {
		t.Fatalf("xor not commutative: %v vs %v", ab.Items(), ba.Items())
	}
	want := []int{1, 5, 20}
	if len(ab.items) != len(want) {
		t.Fatalf("got %v, want %v", ab.Items(), want)
	}
	for i, w := range want {
		if ab.items[i] != w {
			t.Fatalf("got %v, want %v", ab.Items(), want)
		}
	}
}

func TestSparseXorVecAssociative(t *testing.T) {
	a := NewSparseXorVec[int](intLess)
	a.SetFromSorted([]int{1, 2, 3})
	b := NewSparseXorVec[int](intLess)
	b.SetFromSorted([]int{2, 3, 4})
	c := NewSparseXorVec[int](intLess)
	c.SetFromSorted([]int{3, 4, 5})

	left := NewSparseXorVec[int](intLess)
	left.SetFromSorted(append([]int{}, a.items...))
	left.Xor(&b)
	left.Xor(&c)

	bc := NewSparseXorVec[int](intLess)
	bc.SetFromSorted(append([]int{}, b.items...))
	bc.Xor(&c)
	right := NewSparseXorVec[int](intLess)
	right.SetFromSorted(append([]int{}, a.items...))
	right.Xor(&bc)

	if !left.Equal(&right) {
		t.Fatalf("xor not associative: %v vs %v", left.Items(), right.Items())
	}
}

func TestSparseXorVecIsSupersetOf(t *testing.T) {
	a := NewSparseXorVec[int](intLess)
	a.SetFromSorted([]int{1, 2, 3, 4, 5})
	b := NewSparseXorVec[int](intLess)
	b.SetFromSorted([]int{2, 4})
	if !a.IsSupersetOf(&b) {
		t.Fatalf("expected superset")
	}
	b.XorItem(99)
	if a.IsSupersetOf(&b) {
		t.Fatalf("expected not a superset once 99 is present")
	}
}
