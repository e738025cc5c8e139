package tracker

import (
	"testing"

	"stim/dem"
	"stim/gate"
)

func q(i int) gate.Target { return gate.QubitTarget(i, false) }

func TestHSwapsXAndZSensitivity(t *testing.T) {
	tr := New(1)
	tr.Xs[0].XorItem(dem.RelativeDetectorID(5))
	if err := tr.Undo(gate.H, []gate.Target{q(0)}); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if tr.Xs[0].Len() != 0 || tr.Zs[0].Len() != 1 {
		t.Fatalf("H should move the X sensitivity onto Z")
	}
	if !tr.Zs[0].Contains(dem.RelativeDetectorID(5)) {
		t.Fatalf("expected D5 to now be a Z sensitivity")
	}
}

// Reverse CX: zs[c] ^= zs[t], xs[t] ^= xs[c].
func TestCXPropagatesSensitivities(t *testing.T) {
	tr := New(2)
	tr.Zs[1].XorItem(dem.RelativeDetectorID(1))
	tr.Xs[0].XorItem(dem.RelativeDetectorID(2))
	if err := tr.Undo(gate.CX, []gate.Target{q(0), q(1)}); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !tr.Zs[0].Contains(dem.RelativeDetectorID(1)) {
		t.Fatalf("control's Z set should pick up the target's Z sensitivity")
	}
	if !tr.Xs[1].Contains(dem.RelativeDetectorID(2)) {
		t.Fatalf("target's X set should pick up the control's X sensitivity")
	}
}

func TestClassicalControlledGateIsNoOp(t *testing.T) {
	tr := New(1)
	tr.Xs[0].XorItem(dem.RelativeDetectorID(9))
	before := append([]dem.Target(nil), tr.Xs[0].Items()...)
	err := tr.Undo(gate.CX, []gate.Target{gate.RecordTarget(1, false), q(0)})
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(before) != tr.Xs[0].Len() {
		t.Fatalf("classically controlled gate should not change sensitivities")
	}
}

func TestConsumeMeasurementReturnsDependents(t *testing.T) {
	tr := New(1)
	tr.NumMeasurementsInPast = 3
	tr.RecordMeasurementDependence(2, dem.RelativeDetectorID(7))
	d := tr.ConsumeMeasurement()
	if tr.NumMeasurementsInPast != 2 {
		t.Fatalf("expected counter to decrement to 2, got %d", tr.NumMeasurementsInPast)
	}
	if !d.Contains(dem.RelativeDetectorID(7)) {
		t.Fatalf("expected consumed set to contain D7")
	}
	if _, ok := tr.RecBits[2]; ok {
		t.Fatalf("consumed entry should be erased from RecBits")
	}
}

func TestShiftThenIsShiftedCopy(t *testing.T) {
	a := New(2)
	a.Xs[0].XorItem(dem.RelativeDetectorID(10))
	a.NumDetectorsInPast = 20
	a.NumMeasurementsInPast = 5
	a.RecordMeasurementDependence(4, dem.RelativeDetectorID(10))

	b := a.Clone()
	b.Shift(-3, -8)

	if !b.IsShiftedCopy(a) {
		t.Fatalf("b (a shifted by a known delta) should read back as a shifted copy of a")
	}
}
