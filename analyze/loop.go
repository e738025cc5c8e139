package analyze

import (
	"stim/circuit"
	"stim/dem"
)

// undoRepeat undoes one REPEAT instruction: unrolled unless folding is
// requested and a recurrence period is actually found, mirroring
// ErrorAnalyzer::run_loop's tortoise-and-hare approach.
func (a *analyzer) undoRepeat(op circuit.Instruction, sc *scope) error {
	body := op.Body.Instructions
	iterations := op.RepeatCount
	if !a.cfg.FoldLoops || iterations < 4 {
		return a.unrollRepeat(body, iterations, sc)
	}
	folded, err := a.tryFoldLoop(body, iterations, sc)
	if err != nil {
		return err
	}
	if folded {
		return nil
	}
	return a.unrollRepeat(body, iterations, sc)
}

func (a *analyzer) unrollRepeat(body []circuit.Instruction, iterations uint64, sc *scope) error {
	for i := uint64(0); i < iterations; i++ {
		if err := a.undoSequence(body, sc); err != nil {
			return err
		}
	}
	return nil
}

// tryFoldLoop speculatively runs a tortoise (half speed) and a hare
// (full speed) analyzer over independent clones of the tracker,
// looking for the hare's tracker to become a shifted copy of the
// tortoise's -- a fixed point of the per-iteration state transition,
// meaning the loop has settled into a period. If found, it flushes the
// real accumulator, fast-forwards the real tracker past every
// repetition but one via Shift, builds that one repetition's DEM for
// real, and wraps it in a repeat block.
//
// Any error during the speculative run (including a gauge-detector
// failure that might not even apply to the real, non-speculative walk
// once leftover iterations are accounted for differently) disables
// folding for this loop rather than aborting the whole analysis --
// the real, unfolded walk below will surface a genuine error on its
// own terms.
func (a *analyzer) tryFoldLoop(body []circuit.Instruction, iterations uint64, sc *scope) (bool, error) {
	tortoiseAn := &analyzer{cfg: a.cfg, tr: a.tr.Clone(), errProb: map[string]float64{}, errTargets: map[string][]dem.Target{}}
	hareAn := &analyzer{cfg: a.cfg, tr: a.tr.Clone(), errProb: map[string]float64{}, errTargets: map[string][]dem.Target{}}

	var tortoiseIter, hareIter, period uint64
	stepOnce := func(an *analyzer) bool {
		// A zero-based sink numbers each speculative detector by the
		// tracker's absolute NumDetectorsInPast, so successive
		// iterations get distinct ids that IsShiftedCopy can line up.
		sink := newScope(0)
		if err := an.undoSequence(body, sink); err != nil {
			return false
		}
		an.flush(sink)
		return true
	}

	ok := true
	for hareIter < iterations {
		if !stepOnce(hareAn) {
			ok = false
			break
		}
		hareIter++
		if hareIter%2 == 0 && tortoiseIter < iterations {
			if !stepOnce(tortoiseAn) {
				ok = false
				break
			}
			tortoiseIter++
		}
		if hareAn.tr.IsShiftedCopy(tortoiseAn.tr) {
			period = hareIter - tortoiseIter
			break
		}
	}
	if !ok || period == 0 {
		return false, nil
	}

	totalFoldable := iterations - tortoiseIter
	k := totalFoldable / period
	leftover := totalFoldable % period
	if k < 2 {
		return false, nil
	}

	detectorsPerPeriod := hareAn.tr.NumDetectorsInPast - tortoiseAn.tr.NumDetectorsInPast
	measurementsPerPeriod := tortoiseAn.tr.NumMeasurementsInPast - hareAn.tr.NumMeasurementsInPast

	// Suffix: the tortoiseIter most-recent iterations, processed for
	// real since they sit outside the folded region.
	for i := uint64(0); i < tortoiseIter; i++ {
		if err := a.undoSequence(body, sc); err != nil {
			return false, err
		}
	}
	a.flush(sc)

	skipped := k - 1
	a.tr.Shift(-int64(skipped*measurementsPerPeriod), int64(skipped*detectorsPerPeriod))

	bodyScope := newScope(a.tr.NumDetectorsInPast)
	for i := uint64(0); i < period; i++ {
		if err := a.undoSequence(body, bodyScope); err != nil {
			return false, err
		}
	}
	a.flush(bodyScope)
	detectorsThisPeriod := a.tr.NumDetectorsInPast - bodyScope.base
	bodyModel := bodyScope.finish()
	if detectorsThisPeriod > 0 {
		bodyModel.AppendShiftDetectors(nil, detectorsThisPeriod)
	}
	sc.appendRepeat(k, bodyModel)

	for i := uint64(0); i < leftover; i++ {
		if err := a.undoSequence(body, sc); err != nil {
			return false, err
		}
	}
	return true, nil
}
