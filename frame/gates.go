package frame

import (
	"fmt"

	"stim/gate"
	"stim/simd"
)

// swapWords exchanges two same-length bit rows word for word.
func swapWords(a, b simd.BitVec) {
	aw, bw := a.Words(), b.Words()
	for i := range aw {
		aw[i], bw[i] = bw[i], aw[i]
	}
}

func (s *Simulator) xRow(q int) simd.BitVec { return s.x.Row(q) }
func (s *Simulator) zRow(q int) simd.BitVec { return s.z.Row(q) }

// classicalBit reports whether target names a measurement-record or
// sweep-bit control rather than a qubit.
func classicalBit(t gate.Target) bool {
	return t.IsRecord() || t.IsSweepBit()
}

// xorControlBitInto xors the named classical control (a measurement
// record lookback or a sweep-table row) into target, the frame
// sampler's way of letting a prior measurement or a sweep flag
// conditionally flip a Pauli component. Mirrors
// FrameSimulator::xor_control_bit_into.
func (s *Simulator) xorControlBitInto(control gate.Target, target simd.BitVec) {
	if control.IsRecord() {
		src := s.record.lookback(control.Value())
		target.XorInto(&src)
		return
	}
	if control.Value() < s.sweep.MajorLen() {
		src := s.sweep.Row(control.Value())
		target.XorInto(&src)
	}
}

// applyUnitary dispatches a unitary gate instruction to its frame
// transform. Targets are plain qubit indices (single-qubit gates) or
// alternating control/target pairs (TargetsPairs gates).
func (s *Simulator) applyUnitary(g gate.Type, targets []gate.Target) error {
	switch g {
	case gate.I, gate.QubitCoords:
		return nil
	case gate.X, gate.Y, gate.Z:
		// Pure Pauli gates commute with every Pauli frame component and
		// have no effect on which X/Z bits are set.
		return nil
	case gate.H:
		for _, t := range targets {
			q := t.Value()
			swapWords(s.xRow(q), s.zRow(q))
		}
	case gate.H_XY:
		for _, t := range targets {
			q := t.Value()
			zq := s.zRow(q)
			xq := s.xRow(q)
			zq.XorInto(&xq)
		}
	case gate.H_YZ:
		for _, t := range targets {
			q := t.Value()
			xq := s.xRow(q)
			zq := s.zRow(q)
			xq.XorInto(&zq)
		}
	case gate.C_XYZ:
		for _, t := range targets {
			q := t.Value()
			xq, zq := s.xRow(q), s.zRow(q)
			xq.XorInto(&zq)
			zq.XorInto(&xq)
		}
	case gate.C_ZYX:
		for _, t := range targets {
			q := t.Value()
			xq, zq := s.xRow(q), s.zRow(q)
			zq.XorInto(&xq)
			xq.XorInto(&zq)
		}
	case gate.SqrtX, gate.SqrtXDag:
		// X-sqrt gates fix X and rotate Z into Y: X picks up Z. SQRT_X
		// and SQRT_X_DAG share the same mod-2 bit action (they differ
		// only by a global/Pauli phase, which this sampler never
		// tracks).
		for _, t := range targets {
			q := t.Value()
			xq, zq := s.xRow(q), s.zRow(q)
			xq.XorInto(&zq)
		}
	case gate.SqrtY, gate.SqrtYDag:
		for _, t := range targets {
			q := t.Value()
			xq, zq := s.xRow(q), s.zRow(q)
			swapWords(xq, zq)
		}
	case gate.S, gate.SDag:
		for _, t := range targets {
			q := t.Value()
			xq, zq := s.xRow(q), s.zRow(q)
			zq.XorInto(&xq)
		}
	case gate.CX:
		return s.applyPairs(targets, s.singleCX)
	case gate.CY:
		return s.applyPairs(targets, s.singleCY)
	case gate.CZ:
		return s.applyPairs(targets, s.singleCZ)
	case gate.XCX:
		return s.applyPairs(targets, func(a, b gate.Target) error { return s.conjugatedPair(a, b, 'X', 'X') })
	case gate.XCY:
		return s.applyPairs(targets, func(a, b gate.Target) error { return s.conjugatedPair(a, b, 'X', 'Y') })
	case gate.XCZ:
		return s.applyPairs(targets, func(a, b gate.Target) error { return s.singleCX(b, a) })
	case gate.YCX:
		return s.applyPairs(targets, func(a, b gate.Target) error { return s.conjugatedPair(a, b, 'Y', 'X') })
	case gate.YCY:
		return s.applyPairs(targets, func(a, b gate.Target) error { return s.conjugatedPair(a, b, 'Y', 'Y') })
	case gate.YCZ:
		return s.applyPairs(targets, func(a, b gate.Target) error { return s.singleCY(b, a) })
	case gate.Swap:
		return s.applyPairs(targets, func(a, b gate.Target) error {
			swapWords(s.xRow(a.Value()), s.xRow(b.Value()))
			swapWords(s.zRow(a.Value()), s.zRow(b.Value()))
			return nil
		})
	case gate.ISwap, gate.ISwapDag:
		return s.applyPairs(targets, s.iswapPair)
	case gate.SqrtXX, gate.SqrtXXDag:
		return s.applyPairs(targets, func(a, b gate.Target) error {
			q1, q2 := a.Value(), b.Value()
			dz := s.zRow(q1)
			other := s.zRow(q2)
			scratch := simd.NewBitVec(dz.Len())
			scratch.CopyFrom(&dz)
			scratch.XorInto(&other)
			x1, x2 := s.xRow(q1), s.xRow(q2)
			x1.XorInto(&scratch)
			x2.XorInto(&scratch)
			return nil
		})
	case gate.SqrtYY, gate.SqrtYYDag:
		return s.applyPairs(targets, func(a, b gate.Target) error {
			q1, q2 := a.Value(), b.Value()
			d := simd.NewBitVec(s.batch)
			for _, row := range []simd.BitVec{s.xRow(q1), s.zRow(q1), s.xRow(q2), s.zRow(q2)} {
				d.XorInto(&row)
			}
			x1, z1, x2, z2 := s.xRow(q1), s.zRow(q1), s.xRow(q2), s.zRow(q2)
			x1.XorInto(&d)
			z1.XorInto(&d)
			x2.XorInto(&d)
			z2.XorInto(&d)
			return nil
		})
	case gate.SqrtZZ, gate.SqrtZZDag:
		return s.applyPairs(targets, func(a, b gate.Target) error {
			q1, q2 := a.Value(), b.Value()
			dx := simd.NewBitVec(s.batch)
			x1, x2 := s.xRow(q1), s.xRow(q2)
			dx.CopyFrom(&x1)
			dx.XorInto(&x2)
			z1, z2 := s.zRow(q1), s.zRow(q2)
			z1.XorInto(&dx)
			z2.XorInto(&dx)
			return nil
		})
	case gate.CXSwap:
		return s.applyPairs(targets, func(a, b gate.Target) error {
			if err := s.singleCX(a, b); err != nil {
				return err
			}
			swapWords(s.xRow(a.Value()), s.xRow(b.Value()))
			swapWords(s.zRow(a.Value()), s.zRow(b.Value()))
			return nil
		})
	case gate.SwapCX:
		return s.applyPairs(targets, func(a, b gate.Target) error {
			swapWords(s.xRow(a.Value()), s.xRow(b.Value()))
			swapWords(s.zRow(a.Value()), s.zRow(b.Value()))
			return s.singleCX(a, b)
		})
	default:
		return fmt.Errorf("frame: unsupported unitary gate %s", g)
	}
	return nil
}

// applyPairs walks targets two at a time, calling step(control, target)
// for each pair.
func (s *Simulator) applyPairs(targets []gate.Target, step func(a, b gate.Target) error) error {
	for k := 0; k+1 < len(targets); k += 2 {
		if err := step(targets[k], targets[k+1]); err != nil {
			return err
		}
	}
	return nil
}

// singleCX applies a controlled-X with control c, target t, handling
// the classical-control cases: a measurement/sweep bit may control a
// quantum target (xor'd into it conditionally by shot) but may never
// itself be the *target* of a quantum gate.
func (s *Simulator) singleCX(c, t gate.Target) error {
	if classicalBit(t) {
		return fmt.Errorf("frame: controlled-X had a classical bit as its target instead of its control")
	}
	if classicalBit(c) {
		xt := s.xRow(t.Value())
		s.xorControlBitInto(c, xt)
		return nil
	}
	zc, xt := s.zRow(c.Value()), s.xRow(t.Value())
	zt := s.zRow(t.Value())
	xc := s.xRow(c.Value())
	zc.XorInto(&zt)
	xt.XorInto(&xc)
	return nil
}

// singleCY applies a controlled-Y with control c, target t.
func (s *Simulator) singleCY(c, t gate.Target) error {
	if classicalBit(t) {
		return fmt.Errorf("frame: controlled-Y had a classical bit as its target instead of its control")
	}
	if classicalBit(c) {
		xt, zt := s.xRow(t.Value()), s.zRow(t.Value())
		s.xorControlBitInto(c, xt)
		s.xorControlBitInto(c, zt)
		return nil
	}
	xc, zc := s.xRow(c.Value()), s.zRow(c.Value())
	xt, zt := s.xRow(t.Value()), s.zRow(t.Value())
	scratch := simd.NewBitVec(s.batch)
	scratch.CopyFrom(&xt)
	scratch.XorInto(&zt)
	zc.XorInto(&scratch)
	zt.XorInto(&xc)
	xt.XorInto(&xc)
	return nil
}

// singleCZ applies a controlled-Z; symmetric in c and t, so either
// side may be the classical control.
func (s *Simulator) singleCZ(c, t gate.Target) error {
	cClassical, tClassical := classicalBit(c), classicalBit(t)
	switch {
	case !cClassical && !tClassical:
		zc, xt := s.zRow(c.Value()), s.xRow(t.Value())
		zt, xc := s.zRow(t.Value()), s.xRow(c.Value())
		zc.XorInto(&xt)
		zt.XorInto(&xc)
	case !tClassical:
		zt := s.zRow(t.Value())
		s.xorControlBitInto(c, zt)
	case !cClassical:
		zc := s.zRow(c.Value())
		s.xorControlBitInto(t, zc)
	default:
		// Both targets are classical bits: no effect on any qubit row.
	}
	return nil
}

// conjugatedPair applies a controlled-Pauli gate whose control axis is
// cAxis and target axis is tAxis by rotating the control's axis onto Z
// and the target's axis onto X (identity for X, H_XY for Y, H for Z),
// running the CX primitive, and rotating back -- the same
// decomposition stabilizer.controlledInBasis uses, reused here since
// the frame sampler's bit-level transform is identical in shape.
func (s *Simulator) conjugatedPair(c, t gate.Target, cAxis, tAxis byte) error {
	cq, tq := c.Value(), t.Value()
	rotateTargetToX := func() {
		xt, zt := s.xRow(tq), s.zRow(tq)
		switch tAxis {
		case 'Y':
			zt.XorInto(&xt)
		case 'Z':
			swapWords(xt, zt)
		}
	}
	s.rotateToZ(cAxis, cq)
	rotateTargetToX()
	err := s.singleCX(c, t)
	rotateTargetToX()
	s.rotateToZ(cAxis, cq)
	return err
}

// rotateToZ conjugates qubit q's frame rows so the named axis lines
// up with Z: H for X, SqrtX-like H_YZ swap for Y, identity for Z. Its
// own inverse, as in the stabilizer package.
func (s *Simulator) rotateToZ(axis byte, q int) {
	switch axis {
	case 'X':
		swapWords(s.xRow(q), s.zRow(q))
	case 'Y':
		xq, zq := s.xRow(q), s.zRow(q)
		xq.XorInto(&zq)
	}
}

func (s *Simulator) iswapPair(a, b gate.Target) error {
	q1, q2 := a.Value(), b.Value()
	x1, z1 := s.xRow(q1), s.zRow(q1)
	x2, z2 := s.xRow(q2), s.zRow(q2)
	dx := simd.NewBitVec(s.batch)
	dx.CopyFrom(&x1)
	dx.XorInto(&x2)
	t1 := simd.NewBitVec(s.batch)
	t1.CopyFrom(&z1)
	t1.XorInto(&dx)
	t2 := simd.NewBitVec(s.batch)
	t2.CopyFrom(&z2)
	t2.XorInto(&dx)
	z1.CopyFrom(&t2)
	z2.CopyFrom(&t1)
	swapWords(x1, x2)
	return nil
}
