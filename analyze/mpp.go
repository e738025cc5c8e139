package analyze

import "stim/gate"

// pauliFactor is one term of a joint Pauli-product measurement, the
// same shape frame.pauliFactor uses.
type pauliFactor struct {
	qubit int
	axis  byte
}

// undoPairMeasure undoes MXX/MYY/MZZ: a 2-qubit product measurement,
// handled as a restricted case of undoMeasureProduct with exactly two
// terms per pair.
func (a *analyzer) undoPairMeasure(axis byte, targets []gate.Target, p float64) error {
	return applyPairs(targets, func(x, y gate.Target) error {
		return a.undoMeasureProduct([]pauliFactor{{x.Value(), axis}, {y.Value(), axis}}, p)
	})
}

// undoMPP undoes an MPP instruction: split into Pauli-product groups
// the same way frame.mpp does, then undo each group's measurement in
// reverse group order, mirroring undo_MPP's reversal of the whole
// instruction's target list.
func (a *analyzer) undoMPP(targets []gate.Target, p float64) error {
	groups := splitMPPGroups(targets)
	for i := len(groups) - 1; i >= 0; i-- {
		if err := a.undoMeasureProduct(groups[i], p); err != nil {
			return err
		}
	}
	return nil
}

// splitMPPGroups mirrors frame.mpp's grouping logic: a new group
// starts at a term following another term with no intervening
// combiner.
func splitMPPGroups(targets []gate.Target) [][]pauliFactor {
	var groups [][]pauliFactor
	var group []pauliFactor
	prevWasTerm := false
	prevWasCombiner := false
	for _, t := range targets {
		if t.IsCombiner() {
			prevWasCombiner = true
			continue
		}
		if prevWasTerm && !prevWasCombiner {
			groups = append(groups, group)
			group = nil
		}
		group = append(group, pauliFactor{qubit: t.Value(), axis: t.PauliAxis()})
		prevWasTerm = true
		prevWasCombiner = false
	}
	if len(group) > 0 {
		groups = append(groups, group)
	}
	return groups
}

// undoMeasureProduct undoes one joint Pauli-product measurement:
// reverse the term order (mirroring undo_MPP's "reverse the target
// list, then reuse the forward decomposition"), then replay
// frame.measureProduct's rotate/cascade/measure/uncompute/unrotate
// shape using the tracker's reverse transforms (rotation expressed as
// undoing H or H_YZ, the same gates this port's forward
// Simulator.rotateToZ corresponds to structurally, rather than as a
// standalone helper -- tracker.rotateToZ exists but is unexported, so
// routing through the generic Undo dispatch keeps this package on the
// tracker's public surface only).
func (a *analyzer) undoMeasureProduct(terms []pauliFactor, p float64) error {
	if len(terms) == 0 {
		return nil
	}
	rev := make([]pauliFactor, len(terms))
	for i, t := range terms {
		rev[len(terms)-1-i] = t
	}
	for _, t := range rev {
		if err := a.rotateToZ(t.axis, t.qubit); err != nil {
			return err
		}
	}
	root := rev[0].qubit
	for _, t := range rev[1:] {
		if err := a.tr.Undo(gate.CX, []gate.Target{gate.QubitTarget(t.qubit, false), gate.QubitTarget(root, false)}); err != nil {
			return err
		}
	}
	if err := a.undoMeasurement('Z', root, p); err != nil {
		return err
	}
	for i := len(rev) - 1; i >= 1; i-- {
		if err := a.tr.Undo(gate.CX, []gate.Target{gate.QubitTarget(rev[i].qubit, false), gate.QubitTarget(root, false)}); err != nil {
			return err
		}
	}
	for i := len(rev) - 1; i >= 0; i-- {
		if err := a.rotateToZ(rev[i].axis, rev[i].qubit); err != nil {
			return err
		}
	}
	return nil
}

// rotateToZ conjugates qubit q's sensitivity so axis lines up with Z,
// via the self-inverse Clifford gate that performs that rotation (H
// for X, H_YZ for Y); Z needs no rotation.
func (a *analyzer) rotateToZ(axis byte, q int) error {
	switch axis {
	case 'X':
		return a.tr.Undo(gate.H, []gate.Target{gate.QubitTarget(q, false)})
	case 'Y':
		return a.tr.Undo(gate.H_YZ, []gate.Target{gate.QubitTarget(q, false)})
	case 'Z':
		return nil
	}
	return nil
}
