package detect

import (
	"testing"

	"stim/circuit"
	"stim/gate"
	"stim/simd"
)

func rec(lookback int) gate.Target { return gate.RecordTarget(lookback, false) }

// A single measurement feeding one detector: the detection event is
// just that measurement XORed against the reference bit.
func TestSingleMeasurementDetector(t *testing.T) {
	c := circuit.New()
	c.Append(gate.MZ, []gate.Target{gate.QubitTarget(0, false)}, nil)
	c.Append(gate.Detector, []gate.Target{rec(1)}, nil)

	measurements := simd.NewBitTable(1, 4)
	row := measurements.Row(0)
	row.Set(0, true)
	row.Set(1, false)
	row.Set(2, true)
	row.Set(3, false)

	ref := simd.NewBitVec(1)
	ref.Set(0, true) // reference outcome was 1

	out, err := Events(c, measurements, ref, false)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if out.MajorLen() != 1 {
		t.Fatalf("expected 1 detector row, got %d", out.MajorLen())
	}
	want := []bool{false, true, false, true} // measurement XOR reference(1)
	got := out.Row(0)
	for i, w := range want {
		if got.Get(i) != w {
			t.Fatalf("shot %d: got %v want %v", i, got.Get(i), w)
		}
	}
}

// A detector combining two measurements XORs both of them.
func TestTwoMeasurementDetectorXors(t *testing.T) {
	c := circuit.New()
	c.Append(gate.MZ, []gate.Target{gate.QubitTarget(0, false), gate.QubitTarget(1, false)}, nil)
	c.Append(gate.Detector, []gate.Target{rec(2), rec(1)}, nil)

	measurements := simd.NewBitTable(2, 4)
	m0, m1 := measurements.Row(0), measurements.Row(1)
	m0.Set(0, true)
	m0.Set(1, true)
	m1.Set(0, true)
	m1.Set(1, false)

	ref := simd.NewBitVec(2) // reference all zero
	out, err := Events(c, measurements, ref, false)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	got := out.Row(0)
	if got.Get(0) != false { // 1 xor 1 = 0
		t.Fatalf("shot 0: expected detector to read 0")
	}
	if got.Get(1) != true { // 1 xor 0 = 1
		t.Fatalf("shot 1: expected detector to read 1")
	}
}

// OBSERVABLE_INCLUDE only contributes to the output when
// appendObservables is set, and lands at its declared index after all
// detector rows.
func TestObservableIncludeOnlyWhenAppended(t *testing.T) {
	c := circuit.New()
	c.Append(gate.MZ, []gate.Target{gate.QubitTarget(0, false)}, nil)
	c.Append(gate.Detector, []gate.Target{rec(1)}, nil)
	c.Append(gate.ObservableInclude, []gate.Target{rec(1)}, []float64{0})

	measurements := simd.NewBitTable(1, 2)
	m0 := measurements.Row(0)
	m0.Set(0, true)
	ref := simd.NewBitVec(1)

	withoutObs, err := Events(c, measurements, ref, false)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if withoutObs.MajorLen() != 1 {
		t.Fatalf("expected exactly 1 row without observables, got %d", withoutObs.MajorLen())
	}

	withObs, err := Events(c, measurements, ref, true)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if withObs.MajorLen() != 2 {
		t.Fatalf("expected 2 rows with observables appended, got %d", withObs.MajorLen())
	}
	obsRow := withObs.Row(1)
	if obsRow.Get(0) != true {
		t.Fatalf("observable row should mirror the same measurement as the detector")
	}
}

// A lookback referring to a measurement that hasn't happened yet must
// be rejected rather than silently reading garbage.
func TestLookbackBeforeBeginningOfTimeErrors(t *testing.T) {
	c := circuit.New()
	c.Append(gate.Detector, []gate.Target{rec(1)}, nil)

	measurements := simd.NewBitTable(1, 2)
	ref := simd.NewBitVec(1)
	if _, err := Events(c, measurements, ref, false); err == nil {
		t.Fatalf("expected an error for a lookback before any measurement")
	}
}
