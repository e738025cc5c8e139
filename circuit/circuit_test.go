package circuit

import (
	"testing"

	"stim/gate"
)

func TestAppendFusesAdjacentSameGate(t *testing.T) {
	c := New()
	c.Append(gate.H, []gate.Target{gate.QubitTarget(0, false)}, nil)
	c.Append(gate.H, []gate.Target{gate.QubitTarget(1, false)}, nil)
	if len(c.Instructions) != 1 {
		t.Fatalf("expected fused single instruction, got %d", len(c.Instructions))
	}
	if len(c.Instructions[0].Targets) != 2 {
		t.Fatalf("expected 2 targets after fuse, got %d", len(c.Instructions[0].Targets))
	}
}

func TestAppendDoesNotFuseNotFusable(t *testing.T) {
	c := New()
	c.Append(gate.CorrelatedError, []gate.Target{gate.PauliTarget(0, 'X', false)}, []float64{0.1})
	c.Append(gate.CorrelatedError, []gate.Target{gate.PauliTarget(1, 'Z', false)}, []float64{0.1})
	if len(c.Instructions) != 2 {
		t.Fatalf("CORRELATED_ERROR instructions should never fuse, got %d instructions", len(c.Instructions))
	}
}

func TestCountMeasurementsThroughRepeat(t *testing.T) {
	body := New()
	body.Append(gate.MZ, []gate.Target{gate.QubitTarget(0, false), gate.QubitTarget(1, false)}, nil)
	c := New()
	c.AppendRepeatBlock(5, body)
	if got := c.CountMeasurements(); got != 10 {
		t.Fatalf("CountMeasurements = %d, want 10", got)
	}
}

func TestCountQubitsAndObservables(t *testing.T) {
	c := New()
	c.Append(gate.H, []gate.Target{gate.QubitTarget(3, false)}, nil)
	c.Append(gate.MZ, []gate.Target{gate.QubitTarget(1, false)}, nil)
	c.Append(gate.ObservableInclude, []gate.Target{gate.RecordTarget(1, false)}, []float64{2})
	if c.CountQubits() != 4 {
		t.Fatalf("CountQubits = %d, want 4", c.CountQubits())
	}
	if c.CountObservables() != 3 {
		t.Fatalf("CountObservables = %d, want 3", c.CountObservables())
	}
}

func TestForEachOperationUnrollsRepeat(t *testing.T) {
	body := New()
	body.Append(gate.X, []gate.Target{gate.QubitTarget(0, false)}, nil)
	c := New()
	c.AppendRepeatBlock(3, body)

	count := 0
	c.ForEachOperation(func(op Instruction) {
		if op.Gate == gate.X {
			count++
		}
	})
	if count != 3 {
		t.Fatalf("expected 3 unrolled X gates, got %d", count)
	}
}

func TestForEachOperationReverseOrder(t *testing.T) {
	c := New()
	c.Append(gate.H, []gate.Target{gate.QubitTarget(0, false)}, nil)
	c.Append(gate.X, []gate.Target{gate.QubitTarget(1, false)}, nil)

	var seen []gate.Type
	c.ForEachOperationReverse(func(op Instruction) {
		seen = append(seen, op.Gate)
	})
	if len(seen) != 2 || seen[0] != gate.X || seen[1] != gate.H {
		t.Fatalf("unexpected reverse order: %v", seen)
	}
}

func TestConcatAndRepeated(t *testing.T) {
	a := New()
	a.Append(gate.H, []gate.Target{gate.QubitTarget(0, false)}, nil)
	b := New()
	b.Append(gate.X, []gate.Target{gate.QubitTarget(0, false)}, nil)

	merged := a.Concat(b)
	if len(merged.Instructions) != 2 {
		t.Fatalf("expected 2 instructions after concat, got %d", len(merged.Instructions))
	}

	rep := merged.Repeated(10)
	if len(rep.Instructions) != 1 || rep.Instructions[0].Gate != gate.Repeat || rep.Instructions[0].RepeatCount != 10 {
		t.Fatalf("unexpected repeated circuit: %+v", rep.Instructions)
	}
	if rep.CountMeasurements() != 0 {
		t.Fatalf("expected no measurements")
	}
}

func TestEqual(t *testing.T) {
	a := New()
	a.Append(gate.H, []gate.Target{gate.QubitTarget(0, false)}, nil)
	b := New()
	b.Append(gate.H, []gate.Target{gate.QubitTarget(0, false)}, nil)
	if !a.Equal(b) {
		t.Fatalf("expected equal circuits")
	}
	b.Append(gate.X, []gate.Target{gate.QubitTarget(0, false)}, nil)
	if a.Equal(b) {
		t.Fatalf("expected unequal circuits")
	}
}
