package gate

import "testing"

func TestByNameRoundTrip(t *testing.T) {
	for _, name := range []string{"H", "CX", "DEPOLARIZE1", "DETECTOR", "MPP", "SQRT_XX"} {
		id, ok := ByName(name)
		if !ok {
			t.Fatalf("%s not found", name)
		}
		info, ok := Lookup(id)
		if !ok || info.Name != name {
			t.Fatalf("round trip failed for %s: %+v", name, info)
		}
	}
}

func TestInversesAreSymmetric(t *testing.T) {
	for id, info := range byType {
		if info.BestInverse == NotAGate {
			continue
		}
		inv, ok := Lookup(info.BestInverse)
		if !ok {
			t.Fatalf("%s has inverse %v which isn't registered", info.Name, info.BestInverse)
		}
		if inv.BestInverse != id {
			t.Fatalf("%s -> %s is not symmetric (got %v)", info.Name, inv.Name, inv.BestInverse)
		}
	}
}

func TestTargetPacking(t *testing.T) {
	qt := QubitTarget(5, false)
	if qt.Value() != 5 || qt.IsInverted() || !qt.IsQubit() {
		t.Fatalf("unexpected qubit target %v", qt)
	}
	rt := RecordTarget(2, true)
	if rt.Value() != 2 || !rt.IsInverted() || !rt.IsRecord() {
		t.Fatalf("unexpected record target %v", rt)
	}
	pt := PauliTarget(3, 'Y', false)
	if pt.PauliAxis() != 'Y' || pt.Value() != 3 {
		t.Fatalf("unexpected pauli target %v", pt)
	}
}

func TestNumDefinedGatesMatchesTable(t *testing.T) {
	if len(byType) != NumDefinedGates {
		t.Fatalf("byType has %d entries, want %d", len(byType), NumDefinedGates)
	}
}
