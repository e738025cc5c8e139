package frame

import (
	"fmt"

	"stim/gate"
	"stim/simd"
)

// measurementNoise returns the parens-argument noise probability for
// a collapsing gate, or 0 if none was given (ArgCountZeroOrOne).
func measurementNoise(args []float64) float64 {
	if len(args) == 0 {
		return 0
	}
	return args[0]
}

// reserveNoisyRows reserves one record row per target, pre-filling
// each with a biased-random flip mask at the measurement's error
// probability -- the part of the reservation that becomes the final
// recorded bit once XORed with the deterministic frame component.
// Mirrors MeasureRecord::reserve_noisy_space_for_results.
func (s *Simulator) reserveNoisyRows(n int, p float64) []int {
	rows := make([]int, n)
	for i := range rows {
		idx := s.record.reserve()
		rows[i] = idx
		if p > 0 {
			row := s.record.row(idx)
			row.BiasedRandomize(p, s.rng.R)
		}
	}
	return rows
}

// applyCollapsing dispatches MX/MY/M/RX/RY/R/MRX/MRY/MR.
func (s *Simulator) applyCollapsing(g gate.Type, targets []gate.Target, args []float64) error {
	p := measurementNoise(args)
	switch g {
	case gate.MX:
		return s.measureBasis('X', targets, p)
	case gate.MY:
		return s.measureBasis('Y', targets, p)
	case gate.MZ:
		return s.measureBasis('Z', targets, p)
	case gate.RX:
		s.resetBasis('X', targets)
		return nil
	case gate.RY:
		s.resetBasis('Y', targets)
		return nil
	case gate.RZ:
		s.resetBasis('Z', targets)
		return nil
	case gate.MRX:
		return s.measureResetBasis('X', targets, p)
	case gate.MRY:
		return s.measureResetBasis('Y', targets, p)
	case gate.MRZ:
		return s.measureResetBasis('Z', targets, p)
	default:
		return fmt.Errorf("frame: not a collapsing gate: %s", g)
	}
}

// measureBasis measures every target in the named Pauli basis: reserve
// a row, XOR in the frame component for that basis (X for Z-basis
// measurement, Z for X-basis, X^Z for Y-basis), and, if frame
// randomization is on, re-randomize the opposite-basis row so a later
// reuse of the qubit sees a fresh, correctly mixed half.
func (s *Simulator) measureBasis(axis byte, targets []gate.Target, p float64) error {
	rows := s.reserveNoisyRows(len(targets), p)
	for i, t := range targets {
		q := t.Value()
		row := s.record.row(rows[i])
		switch axis {
		case 'X':
			zq := s.zRow(q)
			row.XorInto(&zq)
			if s.opts.GuaranteeAnticommutationViaFrameRandomization {
				xq := s.xRow(q)
				xq.Randomize(s.rng.R)
			}
		case 'Y':
			xq, zq := s.xRow(q), s.zRow(q)
			xq.XorInto(&zq)
			row.XorInto(&xq)
			if s.opts.GuaranteeAnticommutationViaFrameRandomization {
				zq2 := s.zRow(q)
				zq2.Randomize(s.rng.R)
			}
			xq.XorInto(&zq)
		case 'Z':
			xq := s.xRow(q)
			row.XorInto(&xq)
			if s.opts.GuaranteeAnticommutationViaFrameRandomization {
				zq := s.zRow(q)
				zq.Randomize(s.rng.R)
			}
		}
	}
	return nil
}

// resetBasis resets every target into the +1 eigenstate of axis:
// clear the component perpendicular to axis, and, if frame
// randomization is on, randomize the parallel component so the next
// measurement along a different axis is unbiased.
func (s *Simulator) resetBasis(axis byte, targets []gate.Target) {
	for _, t := range targets {
		q := t.Value()
		xq, zq := s.xRow(q), s.zRow(q)
		switch axis {
		case 'X':
			zq.Clear()
			if s.opts.GuaranteeAnticommutationViaFrameRandomization {
				xq.Randomize(s.rng.R)
			}
		case 'Y':
			if s.opts.GuaranteeAnticommutationViaFrameRandomization {
				zq.Randomize(s.rng.R)
			}
			xq.CopyFrom(&zq)
		case 'Z':
			xq.Clear()
			if s.opts.GuaranteeAnticommutationViaFrameRandomization {
				zq.Randomize(s.rng.R)
			}
		}
	}
}

// measureResetBasis is measureBasis followed by a clear of the
// measured component -- kept as one pass (not measure-then-reset
// calling each other) since the same qubit can legally appear twice in
// one instruction's target list, and a naive compose would double up
// the noisy-row reservation.
func (s *Simulator) measureResetBasis(axis byte, targets []gate.Target, p float64) error {
	rows := s.reserveNoisyRows(len(targets), p)
	for i, t := range targets {
		q := t.Value()
		row := s.record.row(rows[i])
		switch axis {
		case 'X':
			zq := s.zRow(q)
			row.XorInto(&zq)
			zq.Clear()
			if s.opts.GuaranteeAnticommutationViaFrameRandomization {
				xq := s.xRow(q)
				xq.Randomize(s.rng.R)
			}
		case 'Y':
			xq, zq := s.xRow(q), s.zRow(q)
			xq.XorInto(&zq)
			row.XorInto(&xq)
			if s.opts.GuaranteeAnticommutationViaFrameRandomization {
				zq.Randomize(s.rng.R)
			}
			xq.CopyFrom(&zq)
		case 'Z':
			xq := s.xRow(q)
			row.XorInto(&xq)
			xq.Clear()
			if s.opts.GuaranteeAnticommutationViaFrameRandomization {
				zq := s.zRow(q)
				zq.Randomize(s.rng.R)
			}
		}
	}
	return nil
}

// mpad reserves len(args) rows (or one if args is empty -- MPAD with
// no argument pads by exactly one deterministic zero) biased by each
// arg's probability, and nothing else: a pure record-filler with no
// effect on any qubit.
func (s *Simulator) mpad(args []float64) error {
	n := len(args)
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		idx := s.record.reserve()
		if i < len(args) && args[i] > 0 {
			row := s.record.row(idx)
			row.BiasedRandomize(args[i], s.rng.R)
		}
	}
	return nil
}

// pairMeasure dispatches MXX/MYY/MZZ: a 2-qubit Pauli-product
// measurement, the same decomposition as MPP restricted to exactly two
// terms per group.
func (s *Simulator) pairMeasure(g gate.Type, targets []gate.Target, args []float64) error {
	axis := byte('Z')
	switch g {
	case gate.MXX:
		axis = 'X'
	case gate.MYY:
		axis = 'Y'
	case gate.MZZ:
		axis = 'Z'
	}
	p := measurementNoise(args)
	return s.applyPairs(targets, func(a, b gate.Target) error {
		return s.measureProduct([]pauliFactor{{a.Value(), axis}, {b.Value(), axis}}, p)
	})
}

type pauliFactor struct {
	qubit int
	axis  byte
}

// mpp measures a sequence of Pauli-product groups, each group's terms
// separated by CombinerBit targets in the flat target list (so
// "X1*Y2 Z3" is two groups: {X1,Y2} and {Z3}).
func (s *Simulator) mpp(targets []gate.Target, args []float64) error {
	p := measurementNoise(args)
	var group []pauliFactor
	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		err := s.measureProduct(group, p)
		group = group[:0]
		return err
	}
	// Groups are split at each CombinerBit boundary: two adjacent
	// non-combiner targets with no combiner between them start a new
	// group, matching how decompose_mpp_operation counts terms.
	prevWasTerm := false
	prevWasCombiner := false
	for _, t := range targets {
		if t.IsCombiner() {
			prevWasCombiner = true
			continue
		}
		if prevWasTerm && !prevWasCombiner {
			if err := flush(); err != nil {
				return err
			}
		}
		group = append(group, pauliFactor{qubit: t.Value(), axis: t.PauliAxis()})
		prevWasTerm = true
		prevWasCombiner = false
	}
	return flush()
}

// measureProduct decomposes a joint Pauli-product measurement into a
// basis change, a CNOT cascade onto the first term (the "root"), a Z
// measurement, and the uncompute of both, in that order -- matching
// decompose_mpp_operation and FrameSimulator::MPP.
func (s *Simulator) measureProduct(terms []pauliFactor, p float64) error {
	if len(terms) == 0 {
		return nil
	}
	for _, t := range terms {
		s.rotateToZ(t.axis, t.qubit)
	}
	root := terms[0].qubit
	for _, t := range terms[1:] {
		if err := s.singleCX(gate.QubitTarget(t.qubit, false), gate.QubitTarget(root, false)); err != nil {
			return err
		}
	}
	if err := s.measureBasis('Z', []gate.Target{gate.QubitTarget(root, false)}, p); err != nil {
		return err
	}
	for i := len(terms) - 1; i >= 1; i-- {
		if err := s.singleCX(gate.QubitTarget(terms[i].qubit, false), gate.QubitTarget(root, false)); err != nil {
			return err
		}
	}
	for i := len(terms) - 1; i >= 0; i-- {
		s.rotateToZ(terms[i].axis, terms[i].qubit)
	}
	return nil
}

// heraldedErase reserves one herald row per target, set whenever the
// shot's erasure event fired; no Pauli error is applied by the erasure
// itself (a following circuit would normally depolarize heralded
// qubits, which is just DEPOLARIZE1 in the program).
func (s *Simulator) heraldedErase(targets []gate.Target, p float64) error {
	s.reserveNoisyRows(len(targets), p)
	return nil
}

// heraldedPauliChannel1 reserves a herald row per target and, on the
// shots where it fires, applies one of X/Y/Z chosen by the channel's
// three conditional probabilities -- expressed as a reservation
// followed by a combined error application, per spec.
func (s *Simulator) heraldedPauliChannel1(targets []gate.Target, args []float64) error {
	if len(args) != 4 {
		return fmt.Errorf("frame: HERALDED_PAULI_CHANNEL_1 needs 4 args, got %d", len(args))
	}
	pHerald, px, py, pz := args[0], args[1], args[2], args[3]
	for _, t := range targets {
		q := t.Value()
		idx := s.record.reserve()
		herald := s.record.row(idx)
		herald.BiasedRandomize(pHerald, s.rng.R)
		if herald.PopCount() == 0 {
			continue
		}
		total := px + py + pz
		if total <= 0 {
			continue
		}
		choice := simd.NewBitVec(s.batch)
		choice.CopyFrom(&herald)
		s.applyChannelChoice(choice, q, px/total, py/total)
	}
	return nil
}

// applyChannelChoice flips X and/or Z on q, restricted to the shots
// marked in mask, choosing X with probability pxFrac and Y with
// probability pyFrac (remaining mass goes to Z) per shot.
func (s *Simulator) applyChannelChoice(mask simd.BitVec, q int, pxFrac, pyFrac float64) {
	roll := simd.NewBitVec(s.batch)
	zq := s.zRow(q)
	for i := 0; i < s.batch; i++ {
		if !mask.Get(i) {
			continue
		}
		r := s.rng.R.Float64()
		switch {
		case r < pxFrac:
			roll.Set(i, true) // X only
		case r < pxFrac+pyFrac:
			zq.Set(i, !zq.Get(i))
			roll.Set(i, true) // Y: X and Z both flip
		default:
			zq.Set(i, !zq.Get(i)) // Z only
		}
	}
	xq := s.xRow(q)
	xq.XorInto(&roll)
}
