package stabilizer

import "stim/gate"

// rowXor xors generator row src into row dst (both the x/z bits and
// the sign, via the standard Pauli-multiplication phase rule): this is
// the "rowsum" step of the Aaronson-Gottesman measurement algorithm.
func (s *State) rowXor(dst, src int) {
	// Phase tracking: accumulate the i-power picked up by multiplying
	// the two rows' Pauli components qubit by qubit, then fold the
	// result (which must land on a multiple of 2, since the product of
	// two Hermitian Pauli strings with real sign is again real) into a
	// single sign flip.
	twoPhase := 0 // accumulated i-exponent; reduced mod 4 at the end
	if s.rowSign(dst) {
		twoPhase += 2
	}
	if s.rowSign(src) {
		twoPhase += 2
	}
	for q := 0; q < s.n; q++ {
		x1, z1 := s.xs.Get(dst, q), s.zs.Get(dst, q)
		x2, z2 := s.xs.Get(src, q), s.zs.Get(src, q)
		twoPhase += pauliProductPhase(x1, z1, x2, z2)
		s.xs.Set(dst, q, x1 != x2)
		s.zs.Set(dst, q, z1 != z2)
	}
	twoPhase = ((twoPhase % 4) + 4) % 4
	s.signs.Set(dst, twoPhase == 2)
}

// pauliProductPhase is the Aaronson-Gottesman "g" function: the
// exponent (in units of i) picked up when single-qubit Pauli
// p1=(x1,z1) is multiplied by p2=(x2,z2), in {-1,0,1}. Summed over all
// qubits plus 2*(sign bits), the total is always congruent to 0 or 2
// mod 4 for two valid stabilizer rows, which is what lets rowXor read
// the new sign straight off that sum.
func pauliProductPhase(x1, z1, x2, z2 bool) int {
	switch {
	case !x1 && !z1: // I1
		return 0
	case x1 && z1: // Y1
		switch {
		case x2 && !z2:
			return -1 // X2
		case !x2 && z2:
			return 1 // Z2
		default:
			return 0 // I2 or Y2
		}
	case x1 && !z1: // X1
		switch {
		case !x2 && z2:
			return -1 // Z2
		case x2 && z2:
			return 1 // Y2
		default:
			return 0 // I2 or X2
		}
	default: // Z1
		switch {
		case x2 && !z2:
			return 1 // X2
		case x2 && z2:
			return -1 // Y2
		default:
			return 0 // I2 or Z2
		}
	}
}

// MeasureZ measures qubit q in the Z basis. If the outcome is
// non-deterministic, this simulator always records +1 (the "fixed
// +1-outcome sign bias" the reference sample depends on -- the actual
// sampled outcome is supplied independently by the frame sampler).
// Returns the recorded outcome and whether it was deterministic.
func (s *State) MeasureZ(q int) (outcome bool, deterministic bool) {
	pivot := -1
	for p := s.n; p < 2*s.n; p++ {
		if s.xs.Get(p, q) {
			pivot = p
			break
		}
	}
	if pivot < 0 {
		// Deterministic: compute the sign by rowsumming, for every
		// destabilizer row p whose X component on q is set, its
		// stabilizer partner row n+p into a fresh scratch row, then
		// read off its sign.
		scratchX := make([]bool, s.n)
		scratchZ := make([]bool, s.n)
		scratchSign := false
		for p := 0; p < s.n; p++ {
			if !s.xs.Get(p, q) {
				continue
			}
			src := s.n + p
			twoPhase := 0
			if scratchSign {
				twoPhase += 2
			}
			if s.rowSign(src) {
				twoPhase += 2
			}
			for k := 0; k < s.n; k++ {
				twoPhase += pauliProductPhase(scratchX[k], scratchZ[k], s.xs.Get(src, k), s.zs.Get(src, k))
				scratchX[k] = scratchX[k] != s.xs.Get(src, k)
				scratchZ[k] = scratchZ[k] != s.zs.Get(src, k)
			}
			twoPhase = ((twoPhase % 4) + 4) % 4
			scratchSign = twoPhase == 2
		}
		return scratchSign, true
	}

	// Non-deterministic: standard update. Every other row with an X
	// component on q gets rowsummed with the pivot, the pivot becomes
	// the old stabilizer shifted down into the destabilizer slot, and
	// the new stabilizer row at the pivot position is set to Z_q with
	// the fixed +1 sign bias.
	for p := 0; p < 2*s.n; p++ {
		if p == pivot {
			continue
		}
		if s.xs.Get(p, q) {
			s.rowXor(p, pivot)
		}
	}
	destabSlot := pivot - s.n
	for k := 0; k < s.n; k++ {
		s.xs.Set(destabSlot, k, s.xs.Get(pivot, k))
		s.zs.Set(destabSlot, k, s.zs.Get(pivot, k))
	}
	s.signs.Set(destabSlot, s.rowSign(pivot))
	for k := 0; k < s.n; k++ {
		s.xs.Set(pivot, k, false)
		s.zs.Set(pivot, k, false)
	}
	s.zs.Set(pivot, q, true)
	s.signs.Set(pivot, false) // biased to the +1 outcome
	return false, false
}

// ResetZ discards qubit q's state and reinitializes it to |0>: measure
// (to collapse any entanglement) and then, if the recorded outcome was
// 1, apply X to flip it back to |0>.
func (s *State) ResetZ(q int) {
	outcome, _ := s.MeasureZ(q)
	if outcome {
		s.ApplySingleQubit(gate.X, q)
	}
}

// MeasureInBasis measures qubit q in the given Pauli basis by rotating
// into Z, measuring, and rotating back.
func (s *State) MeasureInBasis(axis byte, q int) (outcome bool, deterministic bool) {
	s.rotateToZ(axis, q)
	outcome, deterministic = s.MeasureZ(q)
	s.rotateFromZ(axis, q)
	return
}

// ResetInBasis resets qubit q into the +1 eigenstate of the given axis.
func (s *State) ResetInBasis(axis byte, q int) {
	s.rotateToZ(axis, q)
	s.ResetZ(q)
	s.rotateFromZ(axis, q)
}
