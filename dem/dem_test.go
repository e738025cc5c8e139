package dem

import "testing"

func TestAppendErrorRendersTargets(t *testing.T) {
	m := NewModel()
	m.AppendError(0.125, []Target{RelativeDetectorID(0), RelativeDetectorID(1)})
	want := "error(0.125) D0 D1\n"
	if got := m.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSeparatorAndObservableRender(t *testing.T) {
	m := NewModel()
	m.AppendError(0.5, []Target{
		RelativeDetectorID(3),
		Separator(),
		ObservableID(2),
	})
	want := "error(0.5) D3 ^ L2\n"
	if got := m.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDetectorAndLogicalObservableInstructions(t *testing.T) {
	m := NewModel()
	m.AppendDetector([]float64{1, 2}, RelativeDetectorID(0))
	m.AppendLogicalObservable(ObservableID(0))
	want := "detector(1,2) D0\nlogical_observable L0\n"
	if got := m.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRepeatBlockRendersIndented(t *testing.T) {
	body := NewModel()
	body.AppendError(0.1, []Target{RelativeDetectorID(0)})
	m := NewModel()
	m.AppendRepeatBlock(5, body)
	want := "repeat 5 {\n    error(0.1) D0\n}\n"
	if got := m.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

// CountDetectors must multiply through repeat blocks rather than
// counting the body once.
func TestCountDetectorsHonorsRepeat(t *testing.T) {
	body := NewModel()
	body.AppendDetector(nil, RelativeDetectorID(0))
	body.AppendDetector(nil, RelativeDetectorID(1))
	m := NewModel()
	m.AppendRepeatBlock(3, body)
	m.AppendDetector(nil, RelativeDetectorID(2))
	if got := m.CountDetectors(); got != 7 {
		t.Fatalf("expected 3*2+1=7 detectors, got %d", got)
	}
}

func TestCountObservablesTakesMaxPlusOne(t *testing.T) {
	m := NewModel()
	m.AppendLogicalObservable(ObservableID(0))
	m.AppendLogicalObservable(ObservableID(4))
	if got := m.CountObservables(); got != 5 {
		t.Fatalf("expected 5 observables, got %d", got)
	}
}

func TestTotalDetectorShiftSumsAcrossRepeats(t *testing.T) {
	body := NewModel()
	body.AppendShiftDetectors(nil, 10)
	m := NewModel()
	m.AppendRepeatBlock(4, body)
	m.AppendShiftDetectors(nil, 1)
	if got := m.TotalDetectorShift(); got != 41 {
		t.Fatalf("expected 4*10+1=41, got %d", got)
	}
}

func TestShiftIfDetectorIDLeavesObservablesAndSeparatorAlone(t *testing.T) {
	if got := ObservableID(2).ShiftDetectorID(5); got != ObservableID(2) {
		t.Fatalf("observable id should be unaffected by a detector shift, got %v", got)
	}
	if got := Separator().ShiftDetectorID(5); got != Separator() {
		t.Fatalf("separator should be unaffected by a detector shift, got %v", got)
	}
	if got := RelativeDetectorID(3).ShiftDetectorID(5); got != RelativeDetectorID(8) {
		t.Fatalf("expected detector id 8, got %v", got)
	}
}
