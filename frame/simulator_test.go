package frame

import (
	"testing"

	"stim/circuit"
	"stim/gate"
	"stim/rng"
)

func q(i int) gate.Target { return gate.QubitTarget(i, false) }

// A bare |0> state measured in Z always reports 0: x_table starts
// cleared regardless of the frame-randomization option, since only
// z_table is ever randomized on reset.
func TestMeasureZFreshQubitsAreZero(t *testing.T) {
	c := circuit.New()
	c.Append(gate.MZ, []gate.Target{q(0), q(1), q(2)}, nil)
	r := rng.FromSeed(1)
	table, err := Sample(c, 64, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	for row := 0; row < table.MajorLen(); row++ {
		rv := table.Row(row)
		if rv.PopCount() != 0 {
			t.Fatalf("row %d: expected all-zero measurement, got %d hits", row, rv.PopCount())
		}
	}
}

// X_ERROR(1) deterministically flips every shot's X component, so a
// following Z measurement reports 1 every time.
func TestXErrorThenMeasureZIsAllOnes(t *testing.T) {
	c := circuit.New()
	c.Append(gate.XError, []gate.Target{q(0)}, []float64{1})
	c.Append(gate.MZ, []gate.Target{q(0)}, nil)
	r := rng.FromSeed(2)
	table, err := Sample(c, 128, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	row := table.Row(0)
	if row.PopCount() != row.Len() {
		t.Fatalf("expected every shot to report 1, got %d/%d", row.PopCount(), row.Len())
	}
}

// H;H is the identity, so an X error applied before the pair survives
// unchanged through to the Z measurement.
func TestHSquaredIsIdentity(t *testing.T) {
	c := circuit.New()
	c.Append(gate.XError, []gate.Target{q(0)}, []float64{1})
	c.Append(gate.H, []gate.Target{q(0)}, nil)
	c.Append(gate.H, []gate.Target{q(0)}, nil)
	c.Append(gate.MZ, []gate.Target{q(0)}, nil)
	r := rng.FromSeed(3)
	table, err := Sample(c, 64, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	row := table.Row(0)
	if row.PopCount() != row.Len() {
		t.Fatalf("H;H should act as identity, expected the X error to survive to the measurement")
	}
}

// CX propagates an X error on the control forward to the target (the
// target then commutes into its own Z measurement outcome too).
func TestCXPropagatesXFromControlToTarget(t *testing.T) {
	c := circuit.New()
	c.Append(gate.XError, []gate.Target{q(0)}, []float64{1})
	c.Append(gate.CX, []gate.Target{q(0), q(1)}, nil)
	c.Append(gate.MZ, []gate.Target{q(0), q(1)}, nil)
	r := rng.FromSeed(4)
	table, err := Sample(c, 64, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	r0, r1 := table.Row(0), table.Row(1)
	if r0.PopCount() != r0.Len() {
		t.Fatalf("control should still read 1")
	}
	if r1.PopCount() != r1.Len() {
		t.Fatalf("X error on the control should propagate through CX to the target")
	}
}

// CX propagates a Z error on the target backward to the control: the
// control's X-basis measurement (which reads its z component) should
// report 1 even though the error was injected on the other qubit.
func TestCXPropagatesZFromTargetToControl(t *testing.T) {
	c := circuit.New()
	c.Append(gate.ZError, []gate.Target{q(1)}, []float64{1})
	c.Append(gate.CX, []gate.Target{q(0), q(1)}, nil)
	c.Append(gate.MX, []gate.Target{q(0)}, nil)
	r := rng.FromSeed(5)
	table, err := Sample(c, 64, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	r0 := table.Row(0)
	if r0.PopCount() != r0.Len() {
		t.Fatalf("Z error on the target should propagate backward through CX to the control's X-basis outcome")
	}
}

// SWAP exchanges the X components (and thus the Z-measurement
// outcomes) of two qubits.
func TestSwapExchangesQubits(t *testing.T) {
	c := circuit.New()
	c.Append(gate.XError, []gate.Target{q(0)}, []float64{1})
	c.Append(gate.Swap, []gate.Target{q(0), q(1)}, nil)
	c.Append(gate.MZ, []gate.Target{q(0), q(1)}, nil)
	r := rng.FromSeed(6)
	table, err := Sample(c, 64, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	r0, r1 := table.Row(0), table.Row(1)
	if r0.PopCount() != 0 {
		t.Fatalf("after swap, qubit 0 should read 0")
	}
	if r1.PopCount() != r1.Len() {
		t.Fatalf("after swap, qubit 1 should read 1")
	}
}

// A Bell pair (H;CX) measured in Z reports perfectly correlated
// outcomes across all shots, and with frame randomization on, those
// outcomes are a genuinely random (not trivially constant) 0/1 stream
// -- ruling out a decomposition that happens to always report 0.
func TestBellPairMeasurementsCorrelate(t *testing.T) {
	c := circuit.New()
	c.Append(gate.H, []gate.Target{q(0)}, nil)
	c.Append(gate.CX, []gate.Target{q(0), q(1)}, nil)
	c.Append(gate.MZ, []gate.Target{q(0), q(1)}, nil)
	r := rng.FromSeed(7)
	n := 10000
	table, err := Sample(c, n, r, DefaultSamplerOpts())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	a, b := table.Row(0), table.Row(1)
	for i := 0; i < a.Len(); i++ {
		if a.Get(i) != b.Get(i) {
			t.Fatalf("shot %d: Bell pair outcomes disagree", i)
		}
	}
	rate := float64(a.PopCount()) / float64(n)
	if rate < 0.35 || rate > 0.65 {
		t.Fatalf("expected roughly 50/50 outcomes, got rate %.3f", rate)
	}
}

// REPEAT must apply its body count times in circuit order; two
// X_ERROR(1) applications under REPEAT 2 cancel out.
func TestRepeatAppliesBodyInOrder(t *testing.T) {
	body := circuit.New()
	body.Append(gate.XError, []gate.Target{q(0)}, []float64{1})
	c := circuit.New()
	c.AppendRepeatBlock(2, body)
	c.Append(gate.MZ, []gate.Target{q(0)}, nil)
	r := rng.FromSeed(8)
	table, err := Sample(c, 64, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	r0 := table.Row(0)
	if r0.PopCount() != 0 {
		t.Fatalf("two X_ERROR(1) applications under REPEAT 2 should cancel")
	}
}

// A classical bit (a measurement-record lookback) may control a
// quantum gate, but can never be that gate's target; this must raise
// an error carrying circuit location information, not silently
// corrupt state.
func TestClassicalBitAsCXTargetErrors(t *testing.T) {
	c := circuit.New()
	c.Append(gate.MZ, []gate.Target{q(0)}, nil)
	c.Append(gate.CX, []gate.Target{q(1), gate.RecordTarget(1, false)}, nil)
	r := rng.FromSeed(9)
	if _, err := Sample(c, 8, r, SamplerOpts{}); err == nil {
		t.Fatalf("expected an error for a classical bit used as CX's target")
	}
}

// DEPOLARIZE1 at a moderate rate should flip the X component of
// roughly the expected fraction of shots (2/3 of hits pick a
// combination that sets the X bit).
func TestDepolarize1ApproximateRate(t *testing.T) {
	c := circuit.New()
	c.Append(gate.Depolarize1, []gate.Target{q(0)}, []float64{0.3})
	c.Append(gate.MZ, []gate.Target{q(0)}, nil)
	r := rng.FromSeed(11)
	n := 100000
	table, err := Sample(c, n, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	r0 := table.Row(0)
	got := float64(r0.PopCount()) / float64(n)
	want := 0.3 * 2.0 / 3.0
	if got < want*0.8 || got > want*1.2 {
		t.Fatalf("depolarize1 rate out of range: got %.4f want ~%.4f", got, want)
	}
}

// MPP measuring the X0*X1 product is insensitive to a Z error on
// qubit 0 only when that error anticommutes with the measured factor;
// a Z error on a qubit entering as an X factor anticommutes with it,
// so the product measurement deterministically reports 1.
func TestMPPDetectsAnticommutingError(t *testing.T) {
	c := circuit.New()
	c.Append(gate.ZError, []gate.Target{q(0)}, []float64{1})
	c.Append(gate.MPP, []gate.Target{
		gate.PauliTarget(0, 'X', false),
		gate.CombinerTarget(),
		gate.PauliTarget(1, 'X', false),
	}, nil)
	r := rng.FromSeed(12)
	table, err := Sample(c, 64, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	r0 := table.Row(0)
	if r0.PopCount() != r0.Len() {
		t.Fatalf("a Z error on qubit 0 should flip the X0*X1 product measurement every shot")
	}
}

// MXX is MPP(X*X) restricted to a pair; an X error on either qubit
// commutes with it and leaves the outcome at 0.
func TestMXXCommutesWithXError(t *testing.T) {
	c := circuit.New()
	c.Append(gate.XError, []gate.Target{q(0)}, []float64{1})
	c.Append(gate.MXX, []gate.Target{q(0), q(1)}, nil)
	r := rng.FromSeed(13)
	table, err := Sample(c, 64, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	r0 := table.Row(0)
	if r0.PopCount() != 0 {
		t.Fatalf("an X error should commute with an X0*X1 measurement and leave it at 0")
	}
}

// PAULI_CHANNEL_1 with all mass on X behaves like X_ERROR(p).
func TestPauliChannel1AllXMassMatchesXError(t *testing.T) {
	c := circuit.New()
	c.Append(gate.PauliChannel1, []gate.Target{q(0)}, []float64{0.4, 0, 0})
	c.Append(gate.MZ, []gate.Target{q(0)}, nil)
	r := rng.FromSeed(14)
	n := 100000
	table, err := Sample(c, n, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	r0 := table.Row(0)
	got := float64(r0.PopCount()) / float64(n)
	if got < 0.4*0.8 || got > 0.4*1.2 {
		t.Fatalf("expected ~40%% of shots flipped, got %.4f", got)
	}
}

// ELSE_CORRELATED_ERROR chains are mutually exclusive: once the first
// link in a CORRELATED_ERROR/ELSE_CORRELATED_ERROR chain fires on a
// shot, a later link in the same chain must not also fire on it.
func TestCorrelatedErrorChainIsExclusive(t *testing.T) {
	c := circuit.New()
	c.Append(gate.CorrelatedError, []gate.Target{gate.PauliTarget(0, 'X', false)}, []float64{0.5})
	c.Append(gate.ElseCorrelatedError, []gate.Target{gate.PauliTarget(1, 'X', false)}, []float64{1})
	c.Append(gate.MZ, []gate.Target{q(0), q(1)}, nil)
	r := rng.FromSeed(15)
	table, err := Sample(c, 1024, r, SamplerOpts{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	a, b := table.Row(0), table.Row(1)
	for i := 0; i < a.Len(); i++ {
		if a.Get(i) && b.Get(i) {
			t.Fatalf("shot %d: both links of an exclusive chain fired", i)
		}
	}
}
