package stabilizer

import (
	"testing"

	"stim/gate"
)

func TestFreshQubitMeasuresZeroDeterministically(t *testing.T) {
	s := NewState(1)
	outcome, det := s.MeasureZ(0)
	if !det || outcome {
		t.Fatalf("fresh |0> should measure 0 deterministically, got outcome=%v det=%v", outcome, det)
	}
}

func TestXThenMeasureZ(t *testing.T) {
	s := NewState(1)
	s.ApplySingleQubit(gate.X, 0)
	outcome, det := s.MeasureZ(0)
	if !det || !outcome {
		t.Fatalf("|1> should measure 1 deterministically, got outcome=%v det=%v", outcome, det)
	}
}

func TestHThenMeasureZIsNonDeterministic(t *testing.T) {
	s := NewState(1)
	s.ApplySingleQubit(gate.H, 0)
	_, det := s.MeasureZ(0)
	if det {
		t.Fatalf("H|0> should be non-deterministic in the Z basis")
	}
}

func TestHThenMeasureXIsDeterministicZero(t *testing.T) {
	s := NewState(1)
	s.ApplySingleQubit(gate.H, 0)
	outcome, det := s.MeasureInBasis('X', 0)
	if !det || outcome {
		t.Fatalf("H|0> should measure +1 (outcome 0) deterministically in X, got outcome=%v det=%v", outcome, det)
	}
}

func TestBellPairMeasurementsAgree(t *testing.T) {
	s := NewState(2)
	s.ApplySingleQubit(gate.H, 0)
	s.CX(0, 1)
	// Measuring qubit 0 collapses the pair, making qubit 1's Z
	// measurement deterministic and equal to qubit 0's outcome.
	o0, det0 := s.MeasureZ(0)
	if det0 {
		t.Fatalf("first Bell-pair measurement should be non-deterministic")
	}
	o1, det1 := s.MeasureZ(1)
	if !det1 {
		t.Fatalf("second Bell-pair measurement should become deterministic")
	}
	if o0 != o1 {
		t.Fatalf("Bell pair measurements should agree: %v vs %v", o0, o1)
	}
}

func TestResetZReturnsToZero(t *testing.T) {
	s := NewState(1)
	s.ApplySingleQubit(gate.H, 0)
	s.ResetZ(0)
	outcome, det := s.MeasureZ(0)
	if !det || outcome {
		t.Fatalf("reset qubit should measure 0 deterministically, got outcome=%v det=%v", outcome, det)
	}
}

func TestSwapExchangesState(t *testing.T) {
	s := NewState(2)
	s.ApplySingleQubit(gate.X, 0)
	s.Swap(0, 1)
	o0, _ := s.MeasureZ(0)
	o1, _ := s.MeasureZ(1)
	if o0 != false || o1 != true {
		t.Fatalf("swap should move the |1> to qubit 1, got o0=%v o1=%v", o0, o1)
	}
}

func TestMeasurePauliProductOnBellPair(t *testing.T) {
	s := NewState(2)
	s.ApplySingleQubit(gate.H, 0)
	s.CX(0, 1)
	outcome, det := s.MeasurePauliProduct([]PauliTerm{{0, 'Z'}, {1, 'Z'}})
	if !det || outcome {
		t.Fatalf("ZZ on a Bell pair should be deterministically +1, got outcome=%v det=%v", outcome, det)
	}
}

func TestEnsureQubitsPreservesState(t *testing.T) {
	s := NewState(1)
	s.ApplySingleQubit(gate.X, 0)
	s.EnsureQubits(3)
	if s.NumQubits() != 3 {
		t.Fatalf("expected 3 qubits, got %d", s.NumQubits())
	}
	o0, det0 := s.MeasureZ(0)
	if !det0 || !o0 {
		t.Fatalf("qubit 0 should still be |1> after growing, got outcome=%v det=%v", o0, det0)
	}
	o2, det2 := s.MeasureZ(2)
	if !det2 || o2 {
		t.Fatalf("new qubit 2 should be fresh |0>, got outcome=%v det=%v", o2, det2)
	}
}
