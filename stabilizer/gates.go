package stabilizer

import "stim/gate"

// pauliImage names where a single-qubit Clifford sends one input
// Pauli axis: the output axis plus whether the sign flips.
type pauliImage struct {
	axis    byte // 'X', 'Y', or 'Z'
	negate  bool
}

// singleQubitTable gives, for each single-qubit Clifford gate, the
// image of input X, Y, and Z under conjugation. Grounded on the
// stabilizer-flow convention documented in
// original_source/src/stim/gates/gate_data.h (Gate::tableau() builds a
// 1-qubit tableau from exactly an (X-image, Z-image) pair via
// Tableau::gate1); the Y-image is included directly here instead of
// being derived by Pauli multiplication, since for every gate below it
// follows the same well known single-qubit Clifford table the original
// ships as literal flow strings (not present in the retrieved header,
// only declared).
var singleQubitTable = map[gate.Type][3]pauliImage{
	gate.I:        {{'X', false}, {'Y', false}, {'Z', false}},
	gate.X:        {{'X', false}, {'Y', true}, {'Z', true}},
	gate.Y:        {{'X', true}, {'Y', false}, {'Z', true}},
	gate.Z:        {{'X', true}, {'Y', true}, {'Z', false}},
	gate.H:        {{'Z', false}, {'Y', true}, {'X', false}},
	gate.H_XY:     {{'Y', false}, {'X', false}, {'Z', true}},
	gate.H_YZ:     {{'X', true}, {'Z', false}, {'Y', false}},
	gate.S:        {{'Y', false}, {'X', true}, {'Z', false}},
	gate.SDag:     {{'Y', true}, {'X', false}, {'Z', false}},
	gate.SqrtX:    {{'X', false}, {'Z', false}, {'Y', true}},
	gate.SqrtXDag: {{'X', false}, {'Z', true}, {'Y', false}},
	gate.SqrtY:    {{'Z', true}, {'Y', false}, {'X', false}},
	gate.SqrtYDag: {{'Z', false}, {'Y', false}, {'X', true}},
	gate.C_XYZ:    {{'Y', false}, {'Z', false}, {'X', false}},
	gate.C_ZYX:    {{'Z', false}, {'X', false}, {'Y', false}},
}

// ApplySingleQubit conjugates every generator row's component on qubit
// q by the named gate, using singleQubitTable. Panics if g isn't a
// registered single-qubit Clifford (callers are expected to have
// checked gate.Info.Flags.Has(gate.IsSingleQubitGate) first).
func (s *State) ApplySingleQubit(g gate.Type, q int) {
	images, ok := singleQubitTable[g]
	if !ok {
		panic("stabilizer: no single-qubit tableau for " + g.String())
	}
	for row := 0; row < s.rows(); row++ {
		x := s.xs.Get(row, q)
		z := s.zs.Get(row, q)
		var img pauliImage
		switch {
		case x && !z:
			img = images[0] // X
		case x && z:
			img = images[1] // Y
		case !x && z:
			img = images[2] // Z
		default:
			continue // identity component, nothing to do
		}
		newX := img.axis == 'X' || img.axis == 'Y'
		newZ := img.axis == 'Z' || img.axis == 'Y'
		s.xs.Set(row, q, newX)
		s.zs.Set(row, q, newZ)
		if img.negate {
			s.flipSign(row)
		}
	}
}

// CX applies a controlled-X (control c, target t) to every generator
// row. The standard Aaronson-Gottesman update rule.
func (s *State) CX(c, t int) {
	for row := 0; row < s.rows(); row++ {
		xc := s.xs.Get(row, c)
		zc := s.zs.Get(row, c)
		xt := s.xs.Get(row, t)
		zt := s.zs.Get(row, t)
		if xc && zt && (xt == zc) {
			s.flipSign(row)
		}
		s.xs.Set(row, t, xt != xc)
		s.zs.Set(row, c, zc != zt)
	}
}

// Swap exchanges qubits c and t's components across every row.
func (s *State) Swap(c, t int) {
	for row := 0; row < s.rows(); row++ {
		xc, zc := s.xs.Get(row, c), s.zs.Get(row, c)
		xt, zt := s.xs.Get(row, t), s.zs.Get(row, t)
		s.xs.Set(row, c, xt)
		s.zs.Set(row, c, zt)
		s.xs.Set(row, t, xc)
		s.zs.Set(row, t, zc)
	}
}

// CZ is H(t); CX(c,t); H(t): a controlled-Z from the CX primitive plus
// the single-qubit H basis change, the standard decomposition.
func (s *State) CZ(c, t int) {
	s.ApplySingleQubit(gate.H, t)
	s.CX(c, t)
	s.ApplySingleQubit(gate.H, t)
}

// controlledInBasis applies a controlled Pauli gate where the control
// axis is cAxis and the target axis is tAxis, by rotating the control's
// axis onto Z and the target's axis onto X (identity for X, H_XY for Y,
// H for Z), running CX, and rotating back. This covers
// XCX/XCY/XCZ/YCX/YCY/YCZ/CY from the single CX primitive.
func (s *State) controlledInBasis(cAxis, tAxis byte, c, t int) {
	rotateTargetToX := func() {
		switch tAxis {
		case 'Y':
			s.ApplySingleQubit(gate.H_XY, t)
		case 'Z':
			s.ApplySingleQubit(gate.H, t)
		}
	}
	s.rotateToZ(cAxis, c)
	rotateTargetToX()
	s.CX(c, t)
	rotateTargetToX()
	s.rotateFromZ(cAxis, c)
}

// rotateToZ conjugates qubit q so that axis maps onto Z: H for X, H_YZ
// for Y, identity for Z.
func (s *State) rotateToZ(axis byte, q int) {
	switch axis {
	case 'X':
		s.ApplySingleQubit(gate.H, q)
	case 'Y':
		s.ApplySingleQubit(gate.H_YZ, q)
	}
}

// rotateFromZ undoes rotateToZ (H and H_YZ are each their own inverse).
func (s *State) rotateFromZ(axis byte, q int) {
	s.rotateToZ(axis, q)
}

// ApplyControlled dispatches any of the controlled-Pauli gate family
// to controlledInBasis/CX/CZ.
func (s *State) ApplyControlled(g gate.Type, c, t int) {
	switch g {
	case gate.CX:
		s.CX(c, t)
	case gate.CZ:
		s.CZ(c, t)
	case gate.CY:
		s.controlledInBasis('Z', 'Y', c, t)
	case gate.XCX:
		s.controlledInBasis('X', 'X', c, t)
	case gate.XCY:
		s.controlledInBasis('X', 'Y', c, t)
	case gate.XCZ:
		s.controlledInBasis('X', 'Z', c, t)
	case gate.YCX:
		s.controlledInBasis('Y', 'X', c, t)
	case gate.YCY:
		s.controlledInBasis('Y', 'Y', c, t)
	case gate.YCZ:
		s.controlledInBasis('Y', 'Z', c, t)
	default:
		panic("stabilizer: not a controlled gate: " + g.String())
	}
}

// sqrtPauliProduct implements SQRT_XX/SQRT_YY/SQRT_ZZ (and their DAG
// forms) via the standard identity sqrt(P⊗P) = basis-change into Z⊗Z,
// CX, S on the target, CX, basis-change back -- a CSS-style "phase the
// parity" construction built from already-primitive single qubit
// rotations and CX.
func (s *State) sqrtPauliProduct(axis byte, a, b int, dag bool) {
	s.rotateToZ(axis, a)
	s.rotateToZ(axis, b)
	s.CX(a, b)
	if dag {
		s.ApplySingleQubit(gate.SDag, b)
	} else {
		s.ApplySingleQubit(gate.S, b)
	}
	s.CX(a, b)
	s.rotateToZ(axis, b)
	s.rotateToZ(axis, a)
}

// ApplyPauliProduct dispatches SQRT_XX/SQRT_XX_DAG/SQRT_YY/SQRT_YY_DAG/
// SQRT_ZZ/SQRT_ZZ_DAG.
func (s *State) ApplyPauliProduct(g gate.Type, a, b int) {
	switch g {
	case gate.SqrtXX:
		s.sqrtPauliProduct('X', a, b, false)
	case gate.SqrtXXDag:
		s.sqrtPauliProduct('X', a, b, true)
	case gate.SqrtYY:
		s.sqrtPauliProduct('Y', a, b, false)
	case gate.SqrtYYDag:
		s.sqrtPauliProduct('Y', a, b, true)
	case gate.SqrtZZ:
		s.sqrtPauliProduct('Z', a, b, false)
	case gate.SqrtZZDag:
		s.sqrtPauliProduct('Z', a, b, true)
	default:
		panic("stabilizer: not a Pauli product gate: " + g.String())
	}
}

// ISwap is SWAP composed with a controlled-phase "twist": implemented
// via the standard identity ISWAP = SWAP * CZ * (S⊗S), applied in the
// order that makes it self-consistent as a prepend.
func (s *State) ISwap(a, b int) {
	s.ApplySingleQubit(gate.S, a)
	s.ApplySingleQubit(gate.S, b)
	s.CZ(a, b)
	s.Swap(a, b)
}

// ISwapDag is the inverse sequence of ISwap.
func (s *State) ISwapDag(a, b int) {
	s.Swap(a, b)
	s.CZ(a, b)
	s.ApplySingleQubit(gate.SDag, a)
	s.ApplySingleQubit(gate.SDag, b)
}

// CXSwap is CX(a,b) followed by SWAP(a,b); SwapCX is the reverse
// ordering, matching original_source's composition of the two
// primitives for these two gate names.
func (s *State) CXSwap(a, b int) {
	s.CX(a, b)
	s.Swap(a, b)
}

func (s *State) SwapCX(a, b int) {
	s.Swap(a, b)
	s.CX(a, b)
}
