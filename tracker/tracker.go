// Package tracker is the reverse error analyzer's per-qubit
// sensitivity bookkeeping: for each qubit, which future detectors and
// observables an X (or Z) error on that qubit right now would end up
// flipping. Grounded on the SparseUnsignedRevFrameTracker usage
// pattern visible throughout
// original_source/src/stim/simulators/error_analyzer.cc (xs/zs vectors
// per qubit, rec_bits keyed by absolute measurement index,
// num_measurements_in_past/num_detectors_in_past counters, shift/
// is_shifted_copy for loop folding) -- the tracker's own header is not
// present in the source pack (only forward-declared in gate_data.h),
// so this package's field names and method shapes are reconstructed
// from that call-site evidence and from spec.md's description of the
// backward-gate rules, not ported line for line from an original file.
//
// Every Clifford transform mirrors frame.Simulator's forward bit-row
// transform (spec.md: "the full table mirrors the forward table... but
// applied to sets of DEM targets instead of bit-rows"), which is exact
// for every gate here except C_XYZ/C_ZYX, because the rest of the gate
// set error analysis cares about is self-inverse (H family, CX/CY/CZ,
// SWAP family, the sqrt-Pauli-pair gates all square to the identity up
// to phase, and phase is exactly what neither the forward sampler nor
// this tracker ever track). C_XYZ and C_ZYX are each other's inverse,
// so each is undone with the other's forward transform.
package tracker

import (
	"fmt"

	"stim/dem"
	"stim/gate"
	"stim/simd"
)

func targetLess(a, b dem.Target) bool { return a < b }

// Tracker holds, per qubit, the set of DEM targets an X error and a Z
// error on that qubit are currently sensitive to, plus the
// measurement/detector bookkeeping needed to wire a measurement's
// result into the sensitivities of whichever qubits it was sensitive
// to at the moment it's undone.
type Tracker struct {
	Xs []simd.SparseXorVec[dem.Target]
	Zs []simd.SparseXorVec[dem.Target]

	// RecBits maps an absolute measurement index (counted from the
	// start of the circuit) to the set of DEM targets "waiting" on
	// that measurement's result -- built up while undoing DETECTOR
	// instructions (which are seen before the measurements they
	// depend on, since the walk is backward) and consumed and erased
	// when the measurement instruction itself is undone.
	RecBits map[uint64]simd.SparseXorVec[dem.Target]

	NumMeasurementsInPast uint64
	NumDetectorsInPast    uint64
}

// New returns a tracker for numQubits qubits with empty sensitivities,
// ready to start undoing a circuit from its very end.
func New(numQubits int) *Tracker {
	t := &Tracker{
		Xs:      make([]simd.SparseXorVec[dem.Target], numQubits),
		Zs:      make([]simd.SparseXorVec[dem.Target], numQubits),
		RecBits: make(map[uint64]simd.SparseXorVec[dem.Target]),
	}
	for q := range t.Xs {
		t.Xs[q] = simd.NewSparseXorVec[dem.Target](targetLess)
		t.Zs[q] = simd.NewSparseXorVec[dem.Target](targetLess)
	}
	return t
}

// NumQubits returns the number of qubits the tracker covers.
func (t *Tracker) NumQubits() int { return len(t.Xs) }

func cloneVec(v simd.SparseXorVec[dem.Target]) simd.SparseXorVec[dem.Target] {
	out := simd.NewSparseXorVec[dem.Target](targetLess)
	items := append([]dem.Target(nil), v.Items()...)
	out.SetFromSorted(items)
	return out
}

// Clone makes a deep, independent copy -- used to spin up the "hare"
// tracker that speculatively runs ahead during loop-period detection
// without disturbing the real ("tortoise") tracker.
func (t *Tracker) Clone() *Tracker {
	c := &Tracker{
		Xs:                    make([]simd.SparseXorVec[dem.Target], len(t.Xs)),
		Zs:                    make([]simd.SparseXorVec[dem.Target], len(t.Zs)),
		RecBits:               make(map[uint64]simd.SparseXorVec[dem.Target], len(t.RecBits)),
		NumMeasurementsInPast: t.NumMeasurementsInPast,
		NumDetectorsInPast:    t.NumDetectorsInPast,
	}
	for q := range t.Xs {
		c.Xs[q] = cloneVec(t.Xs[q])
		c.Zs[q] = cloneVec(t.Zs[q])
	}
	for k, v := range t.RecBits {
		c.RecBits[k] = cloneVec(v)
	}
	return c
}

// swapVecs exchanges the contents of two sparse vectors.
func swapVecs(a, b *simd.SparseXorVec[dem.Target]) {
	ai := append([]dem.Target(nil), a.Items()...)
	bi := append([]dem.Target(nil), b.Items()...)
	a.SetFromSorted(bi)
	b.SetFromSorted(ai)
}

// snapshot returns an independent copy of *v, used whenever a
// transform needs the pre-update value of a vector it's also about to
// overwrite.
func snapshot(v *simd.SparseXorVec[dem.Target]) simd.SparseXorVec[dem.Target] {
	return cloneVec(*v)
}

// ClearQubit empties both sensitivity sets of q, the tracker's half of
// undoing a reset: a reset makes the pre-reset value of the qubit
// irrelevant to everything after it, so nothing from before the reset
// can be sensitive through it anymore.
func (t *Tracker) ClearQubit(q int) {
	t.Xs[q].Clear()
	t.Zs[q].Clear()
}

// RecordMeasurementDependence notes that target depends on the result
// of the measurement at absolute index measureIndex, the bookkeeping
// undo_DETECTOR/undo_OBSERVABLE_INCLUDE perform before the
// measurement itself has been undone.
func (t *Tracker) RecordMeasurementDependence(measureIndex uint64, target dem.Target) {
	d, ok := t.RecBits[measureIndex]
	if !ok {
		d = simd.NewSparseXorVec[dem.Target](targetLess)
	}
	d.XorItem(target)
	t.RecBits[measureIndex] = d
}

// ConsumeMeasurement decrements the measurement counter and returns
// (then forgets) the set of DEM targets that were waiting on the
// measurement now being undone. Call once per measured qubit, in
// reverse target order, mirroring undo_M*_with_context.
func (t *Tracker) ConsumeMeasurement() simd.SparseXorVec[dem.Target] {
	t.NumMeasurementsInPast--
	d, ok := t.RecBits[t.NumMeasurementsInPast]
	if !ok {
		d = simd.NewSparseXorVec[dem.Target](targetLess)
	}
	delete(t.RecBits, t.NumMeasurementsInPast)
	return d
}

// rotateToZ conjugates qubit q's sensitivity sets so the named axis
// lines up with Z -- the same shape as frame.Simulator.rotateToZ, just
// over sets instead of bit-rows.
func (t *Tracker) rotateToZ(axis byte, q int) {
	switch axis {
	case 'X':
		swapVecs(&t.Xs[q], &t.Zs[q])
	case 'Y':
		t.Xs[q].Xor(&t.Zs[q])
	}
}

// undoCX mirrors frame.Simulator.singleCX's transform: zs[c] ^= zs[t],
// xs[t] ^= xs[c]. Neither side feeds the other in a way that depends
// on update order, so no snapshot is needed.
func (t *Tracker) undoCX(c, tq int) {
	t.Zs[c].Xor(&t.Zs[tq])
	t.Xs[tq].Xor(&t.Xs[c])
}

func (t *Tracker) undoCY(c, tq int) {
	scratch := snapshot(&t.Xs[tq])
	zt := snapshot(&t.Zs[tq])
	scratch.Xor(&zt)
	t.Zs[c].Xor(&scratch)
	t.Zs[tq].Xor(&t.Xs[c])
	t.Xs[tq].Xor(&t.Xs[c])
}

// undoCZ mirrors singleCZ: symmetric, zs[c] ^= xs[t] and zs[t] ^=
// xs[c]. Neither update touches the x sets the other reads, so both
// can apply directly.
func (t *Tracker) undoCZ(c, tq int) {
	t.Zs[c].Xor(&t.Xs[tq])
	t.Zs[tq].Xor(&t.Xs[c])
}

// conjugatedPair undoes a controlled-Pauli gate with control axis cAxis
// and target axis tAxis: the control's axis is rotated onto Z and the
// target's onto X (identity for X, H_XY for Y, H for Z) around undoCX.
func (t *Tracker) conjugatedPair(c, tq int, cAxis, tAxis byte) {
	rotateTargetToX := func() {
		switch tAxis {
		case 'Y':
			t.Zs[tq].Xor(&t.Xs[tq])
		case 'Z':
			swapVecs(&t.Xs[tq], &t.Zs[tq])
		}
	}
	t.rotateToZ(cAxis, c)
	rotateTargetToX()
	t.undoCX(c, tq)
	rotateTargetToX()
	t.rotateToZ(cAxis, c)
}

// classicalTarget reports whether g's k'th/k+1'th two-qubit target is
// a record lookback or sweep bit rather than a qubit.
func classical(t gate.Target) bool { return t.IsRecord() || t.IsSweepBit() }

// Undo applies the reverse transform of unitary gate g, over the
// given targets (plain qubit indices for single-qubit gates,
// alternating control/target pairs for two-qubit gates). A pair where
// either side is a classical bit is left alone: a classical control
// carries a known, already-determined value by the time the circuit
// actually runs, not an unresolved error component, so it never
// creates a new sensitivity edge between qubits.
func (t *Tracker) Undo(g gate.Type, targets []gate.Target) error {
	switch g {
	case gate.I, gate.QubitCoords, gate.X, gate.Y, gate.Z:
		return nil
	case gate.H:
		for _, tt := range targets {
			q := tt.Value()
			swapVecs(&t.Xs[q], &t.Zs[q])
		}
	case gate.H_XY:
		for _, tt := range targets {
			q := tt.Value()
			t.Zs[q].Xor(&t.Xs[q])
		}
	case gate.H_YZ:
		for _, tt := range targets {
			q := tt.Value()
			t.Xs[q].Xor(&t.Zs[q])
		}
	case gate.C_XYZ:
		for _, tt := range targets {
			q := tt.Value()
			t.Zs[q].Xor(&t.Xs[q])
			t.Xs[q].Xor(&t.Zs[q])
		}
	case gate.C_ZYX:
		for _, tt := range targets {
			q := tt.Value()
			t.Xs[q].Xor(&t.Zs[q])
			t.Zs[q].Xor(&t.Xs[q])
		}
	case gate.SqrtX, gate.SqrtXDag:
		for _, tt := range targets {
			q := tt.Value()
			t.Xs[q].Xor(&t.Zs[q])
		}
	case gate.SqrtY, gate.SqrtYDag:
		for _, tt := range targets {
			q := tt.Value()
			swapVecs(&t.Xs[q], &t.Zs[q])
		}
	case gate.S, gate.SDag:
		for _, tt := range targets {
			q := tt.Value()
			t.Zs[q].Xor(&t.Xs[q])
		}
	case gate.CX, gate.CY, gate.CZ, gate.XCX, gate.XCY, gate.XCZ,
		gate.YCX, gate.YCY, gate.YCZ, gate.Swap, gate.ISwap, gate.ISwapDag,
		gate.SqrtXX, gate.SqrtXXDag, gate.SqrtYY, gate.SqrtYYDag,
		gate.SqrtZZ, gate.SqrtZZDag, gate.CXSwap, gate.SwapCX:
		return t.undoPairs(g, targets)
	default:
		return fmt.Errorf("tracker: unsupported unitary gate %v", g)
	}
	return nil
}

func (t *Tracker) undoPairs(g gate.Type, targets []gate.Target) error {
	for k := 0; k+1 < len(targets); k += 2 {
		a, b := targets[k], targets[k+1]
		if classical(a) || classical(b) {
			continue
		}
		c, tq := a.Value(), b.Value()
		switch g {
		case gate.CX:
			t.undoCX(c, tq)
		case gate.CY:
			t.undoCY(c, tq)
		case gate.CZ:
			t.undoCZ(c, tq)
		case gate.XCX:
			t.conjugatedPair(c, tq, 'X', 'X')
		case gate.XCY:
			t.conjugatedPair(c, tq, 'X', 'Y')
		case gate.XCZ:
			t.undoCX(tq, c)
		case gate.YCX:
			t.conjugatedPair(c, tq, 'Y', 'X')
		case gate.YCY:
			t.conjugatedPair(c, tq, 'Y', 'Y')
		case gate.YCZ:
			t.undoCY(tq, c)
		case gate.Swap:
			swapVecs(&t.Xs[c], &t.Xs[tq])
			swapVecs(&t.Zs[c], &t.Zs[tq])
		case gate.ISwap, gate.ISwapDag:
			t.undoISwap(c, tq)
		case gate.SqrtXX, gate.SqrtXXDag:
			dz := snapshot(&t.Zs[c])
			zb := snapshot(&t.Zs[tq])
			dz.Xor(&zb)
			t.Xs[c].Xor(&dz)
			t.Xs[tq].Xor(&dz)
		case gate.SqrtYY, gate.SqrtYYDag:
			d := snapshot(&t.Xs[c])
			for _, v := range []*simd.SparseXorVec[dem.Target]{&t.Zs[c], &t.Xs[tq], &t.Zs[tq]} {
				d.Xor(v)
			}
			t.Xs[c].Xor(&d)
			t.Zs[c].Xor(&d)
			t.Xs[tq].Xor(&d)
			t.Zs[tq].Xor(&d)
		case gate.SqrtZZ, gate.SqrtZZDag:
			dx := snapshot(&t.Xs[c])
			xb := snapshot(&t.Xs[tq])
			dx.Xor(&xb)
			t.Zs[c].Xor(&dx)
			t.Zs[tq].Xor(&dx)
		case gate.CXSwap:
			t.undoCX(c, tq)
			swapVecs(&t.Xs[c], &t.Xs[tq])
			swapVecs(&t.Zs[c], &t.Zs[tq])
		case gate.SwapCX:
			swapVecs(&t.Xs[c], &t.Xs[tq])
			swapVecs(&t.Zs[c], &t.Zs[tq])
			t.undoCX(c, tq)
		}
	}
	return nil
}

func (t *Tracker) undoISwap(q1, q2 int) {
	dx := snapshot(&t.Xs[q1])
	x2 := snapshot(&t.Xs[q2])
	dx.Xor(&x2)
	tt1 := snapshot(&t.Zs[q1])
	tt1.Xor(&dx)
	tt2 := snapshot(&t.Zs[q2])
	tt2.Xor(&dx)
	t.Zs[q1] = tt2
	t.Zs[q2] = tt1
	swapVecs(&t.Xs[q1], &t.Xs[q2])
}

// Shift adjusts the tracker's state as if measurementDelta fewer
// measurements and detectorDelta fewer detectors had happened so far:
// every DEM target referencing a detector id has that id shifted, and
// every RecBits key is shifted the same way. Used by the loop-folding
// pass to jump the tracker forward by whole recurrence periods without
// re-walking them. Grounded on the tracker.shift(...) call site in
// error_analyzer.cc's run_loop.
func (t *Tracker) Shift(measurementDelta, detectorDelta int64) {
	shiftVec := func(v *simd.SparseXorVec[dem.Target]) {
		items := v.Items()
		shifted := make([]dem.Target, len(items))
		for i, it := range items {
			shifted[i] = it.ShiftDetectorID(detectorDelta)
		}
		sortTargets(shifted)
		v.SetFromSorted(shifted)
	}
	for q := range t.Xs {
		shiftVec(&t.Xs[q])
		shiftVec(&t.Zs[q])
	}
	shiftedRec := make(map[uint64]simd.SparseXorVec[dem.Target], len(t.RecBits))
	for k, v := range t.RecBits {
		nv := cloneVec(v)
		shiftVec(&nv)
		shiftedRec[uint64(int64(k)+measurementDelta)] = nv
	}
	t.RecBits = shiftedRec
	t.NumMeasurementsInPast = uint64(int64(t.NumMeasurementsInPast) + measurementDelta)
	t.NumDetectorsInPast = uint64(int64(t.NumDetectorsInPast) + detectorDelta)
}

func sortTargets(ts []dem.Target) {
	for i := 1; i < len(ts); i++ {
		for j := i; j > 0 && ts[j-1] > ts[j]; j-- {
			ts[j-1], ts[j] = ts[j], ts[j-1]
		}
	}
}

// IsShiftedCopy reports whether t is structurally identical to other
// once every detector id in t is shifted down by the difference in
// their NumDetectorsInPast counters and every RecBits key is shifted
// down by the difference in their NumMeasurementsInPast counters --
// the fixed point loop folding looks for (the hare has looped back to
// a state that is the tortoise's state, just further along).
func (t *Tracker) IsShiftedCopy(other *Tracker) bool {
	if len(t.Xs) != len(other.Xs) {
		return false
	}
	detectorDelta := int64(other.NumDetectorsInPast) - int64(t.NumDetectorsInPast)
	measurementDelta := int64(other.NumMeasurementsInPast) - int64(t.NumMeasurementsInPast)
	shiftedEqual := func(a, b *simd.SparseXorVec[dem.Target], delta int64) bool {
		ai := a.Items()
		bi := b.Items()
		if len(ai) != len(bi) {
			return false
		}
		shifted := make([]dem.Target, len(bi))
		for i, it := range bi {
			shifted[i] = it.ShiftDetectorID(-delta)
		}
		sortTargets(shifted)
		for i := range ai {
			if ai[i] != shifted[i] {
				return false
			}
		}
		return true
	}
	for q := range t.Xs {
		if !shiftedEqual(&t.Xs[q], &other.Xs[q], detectorDelta) {
			return false
		}
		if !shiftedEqual(&t.Zs[q], &other.Zs[q], detectorDelta) {
			return false
		}
	}
	if len(t.RecBits) != len(other.RecBits) {
		return false
	}
	for k, v := range t.RecBits {
		ov, ok := other.RecBits[uint64(int64(k)+measurementDelta)]
		if !ok {
			return false
		}
		if !shiftedEqual(&v, &ov, detectorDelta) {
			return false
		}
	}
	return true
}
