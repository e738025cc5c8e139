package rng

import "testing"

func TestFromSeedDeterministic(t *testing.T) {
	a := FromSeed(42)
	b := FromSeed(42)
	for i := 0; i < 10; i++ {
		if a.R.Uint64() != b.R.Uint64() {
			t.Fatalf("same seed produced different streams at draw %d", i)
		}
	}
}

func TestFromSeedDiffersAcrossSeeds(t *testing.T) {
	a := FromSeed(1)
	b := FromSeed(2)
	same := true
	for i := 0; i < 8; i++ {
		if a.R.Uint64() != b.R.Uint64() {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("distinct seeds produced identical streams")
	}
}

func TestForSamplesZeroProbabilityNoHits(t *testing.T) {
	r := FromSeed(7)
	hits := 0
	ForSamples(0, 1000, r.R, func(i int) { hits++ })
	if hits != 0 {
		t.Fatalf("expected no hits at p=0, got %d", hits)
	}
}

func TestForSamplesCertainProbabilityHitsEvery(t *testing.T) {
	r := FromSeed(7)
	var hits []int
	ForSamples(1, 5, r.R, func(i int) { hits = append(hits, i) })
	if len(hits) != 5 {
		t.Fatalf("expected 5 hits at p=1, got %d (%v)", len(hits), hits)
	}
	for i, h := range hits {
		if h != i {
			t.Fatalf("expected hit %d at index %d, got %d", i, i, h)
		}
	}
}

func TestForSamplesApproximateRate(t *testing.T) {
	r := FromSeed(123)
	n := 200000
	p := 0.01
	count := 0
	ForSamples(p, n, r.R, func(i int) { count++ })
	want := float64(n) * p
	if float64(count) < want*0.8 || float64(count) > want*1.2 {
		t.Fatalf("hit count %d far from expected %v", count, want)
	}
}
