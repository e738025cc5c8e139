// Package analyze is the reverse error analyzer: it walks a circuit
// backward, turning every noise channel into one or more detector
// error model mechanisms instead of flipping bits forward. Grounded on
// ErrorAnalyzer in
// original_source/src/stim/simulators/error_analyzer.{h,cc}, adapted
// to this port's tracker/dem split (package tracker carries the
// per-qubit sensitivity bookkeeping the original folds into
// ErrorAnalyzer itself).
package analyze

import (
	"fmt"
	"sort"
	"strings"

	"stim/circuit"
	"stim/dem"
	"stim/diag"
	"stim/gate"
	"stim/simd"
	"stim/tracker"
)

// Config mirrors circuit_to_detector_error_model's configuration
// flags. DecomposeErrors, IgnoreDecompositionFailures, and
// BlockDecompositionFromIntroducingRemnantEdges are accepted for API
// shape but are not load-bearing: this analyzer never attempts local
// or global hyperedge decomposition (see DESIGN.md), instead folding
// every multi-Pauli noise channel directly into independent
// per-component mechanisms.
type Config struct {
	DecomposeErrors                               bool
	FoldLoops                                     bool
	AllowGaugeDetectors                           bool
	ApproximateDisjointErrorsThreshold             float64
	IgnoreDecompositionFailures                   bool
	BlockDecompositionFromIntroducingRemnantEdges bool
}

func demLess(a, b dem.Target) bool { return a < b }

// analyzer is the walk's mutable state: the tracker plus the
// accumulation map flush() drains into whichever scope is currently
// open.
type analyzer struct {
	cfg Config
	tr  *tracker.Tracker

	errOrder   []string
	errProb    map[string]float64
	errTargets map[string][]dem.Target

	tick int
}

func newAnalyzer(numQubits int, cfg Config) *analyzer {
	return &analyzer{
		cfg:        cfg,
		tr:         tracker.New(numQubits),
		errProb:    map[string]float64{},
		errTargets: map[string][]dem.Target{},
	}
}

// addError folds p into the accumulated probability for exactly this
// target set via p <- p*(1-p') + (1-p)*p', the same "independent
// channels recombine into one effective probability" rule spec.md
// gives for repeated identical error mechanisms.
func (a *analyzer) addError(p float64, targets []dem.Target) {
	if p <= 0 || len(targets) == 0 {
		return
	}
	sorted := append([]dem.Target(nil), targets...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	key := targetKey(sorted)
	if old, ok := a.errProb[key]; ok {
		a.errProb[key] = old*(1-p) + (1-old)*p
		return
	}
	a.errProb[key] = p
	a.errTargets[key] = sorted
	a.errOrder = append(a.errOrder, key)
}

func targetKey(sorted []dem.Target) string {
	var b strings.Builder
	for _, t := range sorted {
		fmt.Fprintf(&b, "%d,", uint64(t))
	}
	return b.String()
}

// flush drains every accumulated mechanism into sc and resets the map.
// Must be called before any operation that changes the meaning of the
// detector ids already baked into the accumulated target sets (entering
// or leaving a folded loop body, or shifting the tracker).
func (a *analyzer) flush(sc *scope) {
	for _, k := range a.errOrder {
		sc.appendError(a.errProb[k], a.errTargets[k])
	}
	a.errOrder = nil
	a.errProb = map[string]float64{}
	a.errTargets = map[string][]dem.Target{}
}

// checkGauge verifies that an anticommuting sensitivity set left
// behind by a measurement or reset is empty (the result was fully
// determined by detectors already accounted for). If it isn't: with
// gauge detectors disallowed this is a hard error; with them allowed,
// and no logical observable among the stragglers, the set becomes a
// 50% "gauge" mechanism and is cleared.
func (a *analyzer) checkGauge(sens *simd.SparseXorVec[dem.Target], what string) error {
	if sens.Len() == 0 {
		return nil
	}
	if !a.cfg.AllowGaugeDetectors {
		return fmt.Errorf("analyze: %s is not deterministic", what)
	}
	for _, t := range sens.Items() {
		if t.IsObservableID() {
			return fmt.Errorf("analyze: %s gauge includes a logical observable, cannot collapse", what)
		}
	}
	a.addError(0.5, append([]dem.Target(nil), sens.Items()...))
	sens.Clear()
	return nil
}

// CircuitToDetectorErrorModel walks c backward and returns the
// detector error model it implies. Mirrors
// ErrorAnalyzer::circuit_to_detector_error_model.
func CircuitToDetectorErrorModel(c *circuit.Circuit, cfg Config) (*dem.Model, error) {
	a := newAnalyzer(c.CountQubits(), cfg)
	a.tr.NumMeasurementsInPast = c.CountMeasurements()
	a.tr.NumDetectorsInPast = 0

	sc := newScope(0)
	if err := a.undoSequence(c.Instructions, sc); err != nil {
		return nil, err
	}
	for q := 0; q < a.tr.NumQubits(); q++ {
		what := fmt.Sprintf("qubit %d's initialization into |0> at the start of the circuit", q)
		if err := a.checkGauge(&a.tr.Xs[q], what); err != nil {
			return nil, err
		}
	}
	a.flush(sc)
	model := sc.finish()
	return model, nil
}

// undoSequence walks instrs backward into sc, special-casing REPEAT
// (unrolled or folded per cfg.FoldLoops) and CORRELATED_ERROR /
// ELSE_CORRELATED_ERROR chains (buffered until the opening
// CORRELATED_ERROR, then replayed forward with the running
// not-yet-taken probability mass spec.md describes).
func (a *analyzer) undoSequence(instrs []circuit.Instruction, sc *scope) error {
	var chain []circuit.Instruction
	flushChain := func() error {
		if len(chain) == 0 {
			return nil
		}
		// chain was built by pushing ELSE_CORRELATED_ERROR links while
		// walking backward, then the opening CORRELATED_ERROR last, so
		// it is already in reverse-of-forward order; reverse it back.
		for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
			chain[i], chain[j] = chain[j], chain[i]
		}
		remaining := 1.0
		for _, inst := range chain {
			actual := inst.Args[0] * remaining
			a.addCompositeError(actual, inst.Targets)
			remaining *= 1 - inst.Args[0]
		}
		chain = chain[:0]
		return nil
	}

	for i := len(instrs) - 1; i >= 0; i-- {
		op := instrs[i]
		switch op.Gate {
		case gate.ElseCorrelatedError:
			chain = append(chain, op)
			continue
		case gate.CorrelatedError:
			chain = append(chain, op)
			if err := flushChain(); err != nil {
				return err
			}
			continue
		}
		if len(chain) != 0 {
			if err := flushChain(); err != nil {
				return err
			}
		}
		if op.Gate == gate.Repeat {
			if err := a.undoRepeat(op, sc); err != nil {
				return err
			}
			continue
		}
		if err := a.undoInstruction(op, sc); err != nil {
			return diag.Wrap(err, []diag.Frame{{Tick: a.tick, InstructionOffset: i}}, "")
		}
	}
	return flushChain()
}

func (a *analyzer) undoInstruction(op circuit.Instruction, sc *scope) error {
	info, ok := gate.Lookup(op.Gate)
	if !ok {
		return fmt.Errorf("analyze: unknown gate %v", op.Gate)
	}
	switch op.Gate {
	case gate.Detector:
		return a.undoDetector(op, sc)
	case gate.ObservableInclude:
		return a.undoObservableInclude(op, sc)
	case gate.Tick:
		a.tick++
		return nil
	case gate.QubitCoords, gate.ShiftCoords:
		return nil
	case gate.MPad:
		return a.undoMPad(op.Args)
	case gate.MX:
		return a.undoMeasureEach('X', op.Targets, measurementNoiseArg(op.Args))
	case gate.MY:
		return a.undoMeasureEach('Y', op.Targets, measurementNoiseArg(op.Args))
	case gate.MZ:
		return a.undoMeasureEach('Z', op.Targets, measurementNoiseArg(op.Args))
	case gate.RX:
		return a.undoResetEach('X', op.Targets)
	case gate.RY:
		return a.undoResetEach('Y', op.Targets)
	case gate.RZ:
		return a.undoResetEach('Z', op.Targets)
	case gate.MRX:
		return a.undoMeasureResetEach('X', op.Targets, measurementNoiseArg(op.Args))
	case gate.MRY:
		return a.undoMeasureResetEach('Y', op.Targets, measurementNoiseArg(op.Args))
	case gate.MRZ:
		return a.undoMeasureResetEach('Z', op.Targets, measurementNoiseArg(op.Args))
	case gate.MPP:
		return a.undoMPP(op.Targets, measurementNoiseArg(op.Args))
	case gate.MXX:
		return a.undoPairMeasure('X', op.Targets, measurementNoiseArg(op.Args))
	case gate.MYY:
		return a.undoPairMeasure('Y', op.Targets, measurementNoiseArg(op.Args))
	case gate.MZZ:
		return a.undoPairMeasure('Z', op.Targets, measurementNoiseArg(op.Args))
	case gate.Depolarize1:
		return a.undoDepolarize1(op.Targets, op.Args[0])
	case gate.Depolarize2:
		return a.undoDepolarize2(op.Targets, op.Args[0])
	case gate.XError:
		return a.undoXError(op.Targets, op.Args[0])
	case gate.YError:
		return a.undoYError(op.Targets, op.Args[0])
	case gate.ZError:
		return a.undoZError(op.Targets, op.Args[0])
	case gate.PauliChannel1:
		return a.undoPauliChannel1(op.Targets, op.Args)
	case gate.PauliChannel2:
		return a.undoPauliChannel2(op.Targets, op.Args)
	case gate.HeraldedErase:
		return a.undoHeraldedNoise(op.Targets)
	case gate.HeraldedPauliChannel1:
		return a.undoHeraldedNoise(op.Targets)
	default:
		if info.Flags.Has(gate.IsUnitary) {
			return a.tr.Undo(op.Gate, op.Targets)
		}
		return fmt.Errorf("analyze: unsupported gate %v", op.Gate)
	}
}

func measurementNoiseArg(args []float64) float64 {
	if len(args) == 0 {
		return 0
	}
	return args[0]
}

func (a *analyzer) undoDetector(op circuit.Instruction, sc *scope) error {
	id := a.nextLocalDetectorID(sc)
	target := dem.RelativeDetectorID(id)
	for _, t := range op.Targets {
		k := uint64(t.Value())
		if k == 0 || k > a.tr.NumMeasurementsInPast {
			return fmt.Errorf("analyze: detector referred to a measurement result before the beginning of time")
		}
		a.tr.RecordMeasurementDependence(a.tr.NumMeasurementsInPast-k, target)
	}
	sc.appendDetector(op.Args, id)
	return nil
}

func (a *analyzer) undoObservableInclude(op circuit.Instruction, sc *scope) error {
	id := uint64(op.Args[0])
	target := dem.ObservableID(id)
	for _, t := range op.Targets {
		k := uint64(t.Value())
		if k == 0 || k > a.tr.NumMeasurementsInPast {
			return fmt.Errorf("analyze: observable include referred to a measurement result before the beginning of time")
		}
		a.tr.RecordMeasurementDependence(a.tr.NumMeasurementsInPast-k, target)
	}
	sc.appendObservable(id)
	return nil
}

func (a *analyzer) undoMPad(args []float64) error {
	n := len(args)
	if n == 0 {
		n = 1
	}
	for i := n - 1; i >= 0; i-- {
		d := a.tr.ConsumeMeasurement()
		if i < len(args) && args[i] > 0 {
			a.addError(args[i], append([]dem.Target(nil), d.Items()...))
		}
	}
	return nil
}

func (a *analyzer) undoMeasureEach(axis byte, targets []gate.Target, p float64) error {
	for i := len(targets) - 1; i >= 0; i-- {
		if err := a.undoMeasurement(axis, targets[i].Value(), p); err != nil {
			return err
		}
	}
	return nil
}

func (a *analyzer) undoResetEach(axis byte, targets []gate.Target) error {
	for i := len(targets) - 1; i >= 0; i-- {
		if err := a.undoReset(axis, targets[i].Value()); err != nil {
			return err
		}
	}
	return nil
}

func (a *analyzer) undoMeasureResetEach(axis byte, targets []gate.Target, p float64) error {
	for i := len(targets) - 1; i >= 0; i-- {
		if err := a.undoMeasureReset(axis, targets[i].Value(), p); err != nil {
			return err
		}
	}
	return nil
}

// undoMeasurement mirrors undo_MZ_with_context/undo_MX_with_context:
// consume the measurement's dependency set, fold it into a noise
// mechanism if the measurement was noisy, XOR it into the measured
// axis's sensitivity, and check the anticommuting axis is now
// deterministic. MY has no anticommuting partner (both axes receive
// the same dependency set), so it carries no gauge check.
func (a *analyzer) undoMeasurement(axis byte, q int, p float64) error {
	d := a.tr.ConsumeMeasurement()
	if p > 0 {
		a.addError(p, append([]dem.Target(nil), d.Items()...))
	}
	switch axis {
	case 'X':
		a.tr.Xs[q].Xor(&d)
		return a.checkGauge(&a.tr.Zs[q], fmt.Sprintf("the X-basis measurement of qubit %d", q))
	case 'Y':
		a.tr.Xs[q].Xor(&d)
		a.tr.Zs[q].Xor(&d)
		return nil
	case 'Z':
		a.tr.Zs[q].Xor(&d)
		return a.checkGauge(&a.tr.Xs[q], fmt.Sprintf("the Z-basis measurement of qubit %d", q))
	}
	return fmt.Errorf("analyze: bad measurement axis %q", axis)
}

func (a *analyzer) undoReset(axis byte, q int) error {
	var err error
	switch axis {
	case 'X':
		err = a.checkGauge(&a.tr.Zs[q], fmt.Sprintf("the X-basis reset of qubit %d", q))
	case 'Z':
		err = a.checkGauge(&a.tr.Xs[q], fmt.Sprintf("the Z-basis reset of qubit %d", q))
	}
	a.tr.ClearQubit(q)
	return err
}

func (a *analyzer) undoMeasureReset(axis byte, q int, p float64) error {
	d := a.tr.ConsumeMeasurement()
	if p > 0 {
		a.addError(p, append([]dem.Target(nil), d.Items()...))
	}
	// Undo the reset first (it came last going forward), then fold the
	// measurement's dependency set into the measured axis.
	var err error
	switch axis {
	case 'X':
		err = a.checkGauge(&a.tr.Zs[q], fmt.Sprintf("the X-basis measure-reset of qubit %d", q))
	case 'Z':
		err = a.checkGauge(&a.tr.Xs[q], fmt.Sprintf("the Z-basis measure-reset of qubit %d", q))
	}
	a.tr.ClearQubit(q)
	switch axis {
	case 'X':
		a.tr.Xs[q].Xor(&d)
	case 'Y':
		a.tr.Xs[q].Xor(&d)
		a.tr.Zs[q].Xor(&d)
	case 'Z':
		a.tr.Zs[q].Xor(&d)
	}
	return err
}

// undoHeraldedNoise consumes the herald result(s) with no sensitivity
// effect: heralded events are extrinsic (their own outcome doesn't
// depend on any propagated error), so they contribute no error
// mechanism in this analyzer. Simplification, see DESIGN.md.
func (a *analyzer) undoHeraldedNoise(targets []gate.Target) error {
	for range targets {
		a.tr.ConsumeMeasurement()
	}
	return nil
}

func applyPairs(targets []gate.Target, f func(a, b gate.Target) error) error {
	for i := 0; i+1 < len(targets); i += 2 {
		if err := f(targets[i], targets[i+1]); err != nil {
			return err
		}
	}
	return nil
}
