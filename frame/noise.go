package frame

import (
	"fmt"

	"stim/gate"
	"stim/rng"
	"stim/simd"
)

// flipBit flips row[shot] -- used by the rare-event noise
// channels below, which hit individual (qubit, shot) cells rather than
// whole rows.
func flipBit(row simd.BitVec, shot int) {
	row.Set(shot, !row.Get(shot))
}

// depolarize1 applies independent single-qubit depolarizing noise:
// for every (qubit, shot) pair hit by the Bernoulli(p) process, pick
// one of X, Y, Z uniformly and flip the matching bits. Grounded on
// FrameSimulator::DEPOLARIZE1.
func (s *Simulator) depolarize1(targets []gate.Target, p float64) error {
	n := len(targets) * s.batch
	rng.ForSamples(p, n, s.rng.R, func(i int) {
		qi, shot := i/s.batch, i%s.batch
		q := targets[qi].Value()
		pick := 1 + s.rng.R.Intn(3) // 1=X, 2=Z, 3=Y, bit0=x-flip bit1=z-flip
		if pick&1 != 0 {
			flipBit(s.xRow(q), shot)
		}
		if pick&2 != 0 {
			flipBit(s.zRow(q), shot)
		}
	})
	return nil
}

// depolarize2 applies independent two-qubit depolarizing noise over
// each target pair: one of the 15 non-identity two-qubit Pauli
// combinations, chosen uniformly, is applied per hit. Grounded on
// FrameSimulator::DEPOLARIZE2.
func (s *Simulator) depolarize2(targets []gate.Target, p float64) error {
	pairs := len(targets) / 2
	n := pairs * s.batch
	rng.ForSamples(p, n, s.rng.R, func(i int) {
		pi, shot := i/s.batch, i%s.batch
		q1, q2 := targets[2*pi].Value(), targets[2*pi+1].Value()
		pick := 1 + s.rng.R.Intn(15)
		if pick&1 != 0 {
			flipBit(s.xRow(q1), shot)
		}
		if pick&2 != 0 {
			flipBit(s.zRow(q1), shot)
		}
		if pick&4 != 0 {
			flipBit(s.xRow(q2), shot)
		}
		if pick&8 != 0 {
			flipBit(s.zRow(q2), shot)
		}
	})
	return nil
}

// pauliError applies an independent single-axis error (X_ERROR,
// Y_ERROR, or Z_ERROR) to every target qubit at rate p.
func (s *Simulator) pauliError(targets []gate.Target, p float64, doX, doZ bool) error {
	n := len(targets) * s.batch
	rng.ForSamples(p, n, s.rng.R, func(i int) {
		qi, shot := i/s.batch, i%s.batch
		q := targets[qi].Value()
		if doX {
			flipBit(s.xRow(q), shot)
		}
		if doZ {
			flipBit(s.zRow(q), shot)
		}
	})
	return nil
}

// pauliChannel1 applies a single-qubit Pauli channel with independent
// X/Y/Z probabilities by rewriting it into a chain of
// CORRELATED_ERROR/ELSE_CORRELATED_ERROR steps with conditional
// probabilities, the same reduction
// perform_pauli_errors_via_correlated_errors<1> uses so the forward
// sampler only needs to implement one noise primitive.
func (s *Simulator) pauliChannel1(targets []gate.Target, args []float64) error {
	if len(args) != 3 {
		return fmt.Errorf("frame: PAULI_CHANNEL_1 needs 3 args, got %d", len(args))
	}
	px, py, pz := args[0], args[1], args[2]
	for _, t := range targets {
		q := t.Value()
		if err := s.elseCorrelatedErrorChain(q, px, py, pz); err != nil {
			return err
		}
	}
	return nil
}

// elseCorrelatedErrorChain runs the fresh 3-branch exclusive chain a
// single-qubit Pauli channel reduces to: CORRELATED_ERROR(px) on X,
// ELSE_CORRELATED_ERROR(py') on Y, ELSE_CORRELATED_ERROR(pz'') on Z,
// with each conditional probability computed against the remaining
// probability mass so the three branches stay mutually exclusive.
func (s *Simulator) elseCorrelatedErrorChain(q int, px, py, pz float64) error {
	s.lastCorrelatedErrorOccurred.Clear()
	xTarget := []gate.Target{gate.PauliTarget(q, 'X', false)}
	yTarget := []gate.Target{gate.PauliTarget(q, 'Y', false)}
	zTarget := []gate.Target{gate.PauliTarget(q, 'Z', false)}
	if err := s.elseCorrelatedError(xTarget, px); err != nil {
		return err
	}
	remaining := 1 - px
	pyCond := conditionalProbability(py, remaining)
	if err := s.elseCorrelatedError(yTarget, pyCond); err != nil {
		return err
	}
	remaining -= py
	pzCond := conditionalProbability(pz, remaining)
	return s.elseCorrelatedError(zTarget, pzCond)
}

// conditionalProbability turns an absolute branch probability p into
// the probability conditioned on not having already taken one of the
// earlier, mutually exclusive branches (remaining probability mass
// left after them).
func conditionalProbability(p, remaining float64) float64 {
	if remaining <= 0 {
		return 0
	}
	q := p / remaining
	if q > 1 {
		q = 1
	}
	return q
}

// pauliChannel2 is the two-qubit analogue of pauliChannel1: 15
// independent conditional probabilities, one per non-identity
// two-qubit Pauli combination, applied as a 15-branch exclusive chain.
func (s *Simulator) pauliChannel2(targets []gate.Target, args []float64) error {
	if len(args) != 15 {
		return fmt.Errorf("frame: PAULI_CHANNEL_2 needs 15 args, got %d", len(args))
	}
	return s.applyPairs(targets, func(a, b gate.Target) error {
		q1, q2 := a.Value(), b.Value()
		s.lastCorrelatedErrorOccurred.Clear()
		remaining := 1.0
		for k, p := range args {
			cond := conditionalProbability(p, remaining)
			terms := pauliPairTargets(q1, q2, k)
			if err := s.elseCorrelatedError(terms, cond); err != nil {
				return err
			}
			remaining -= p
		}
		return nil
	})
}

// pauliPairTargets decomposes PAULI_CHANNEL_2's fixed branch order
// (IX, IY, IZ, XI, XX, XY, XZ, YI, YX, YY, YZ, ZI, ZX, ZY, ZZ, in that
// order skipping II) into the Pauli targets naming that combination.
func pauliPairTargets(q1, q2, branch int) []gate.Target {
	axes := []byte{'I', 'X', 'Y', 'Z'}
	combos := []struct{ a, b byte }{}
	for _, a := range axes {
		for _, b := range axes {
			if a == 'I' && b == 'I' {
				continue
			}
			combos = append(combos, struct{ a, b byte }{a, b})
		}
	}
	combo := combos[branch]
	var out []gate.Target
	if combo.a != 'I' {
		out = append(out, gate.PauliTarget(q1, combo.a, false))
	}
	if combo.b != 'I' {
		out = append(out, gate.PauliTarget(q2, combo.b, false))
	}
	return out
}

// elseCorrelatedError samples one biased-random decision per shot at
// rate p, restricted to shots that haven't already fired an earlier
// link in the same CORRELATED_ERROR/ELSE_CORRELATED_ERROR chain, and
// applies the named Pauli flip on every shot where it fires. Grounded
// on FrameSimulator::ELSE_CORRELATED_ERROR.
func (s *Simulator) elseCorrelatedError(targets []gate.Target, p float64) error {
	buf := simd.NewBitVec(s.batch)
	buf.BiasedRandomize(p, s.rng.R)
	buf.MaskTrailingGarbage()
	buf.AndNotInto(&s.lastCorrelatedErrorOccurred)
	s.lastCorrelatedErrorOccurred.OrInto(&buf)
	for _, t := range targets {
		q := t.Value()
		xq, zq := s.xRow(q), s.zRow(q)
		switch t.PauliAxis() {
		case 'X':
			xq.XorInto(&buf)
		case 'Y':
			xq.XorInto(&buf)
			zq.XorInto(&buf)
		case 'Z':
			zq.XorInto(&buf)
		}
	}
	return nil
}
