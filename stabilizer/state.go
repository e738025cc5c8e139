// Package stabilizer implements the inverse-tableau stabilizer
// simulator used only to compute the noiseless reference sample that
// the Pauli-frame sampler propagates against. It uses the
// Aaronson-Gottesman list-of-generators representation (destabilizers
// and stabilizers as rows of a 2n x n bit table, plus a sign per row)
// rather than the original's per-qubit conjugation-table layout: both
// represent the same Clifford state, but the generator-list form needs
// no manual block-transpose bookkeeping to stay consistent, and reuses
// simd.BitTable directly.
package stabilizer

import (
	"stim/simd"
)

// State is a stabilizer tableau for n qubits: 2n rows (the first n are
// destabilizer generators, the last n are stabilizer generators), each
// row an n-qubit Pauli string packed as (x-bit, z-bit) per qubit plus
// one sign bit.
type State struct {
	n     int
	xs    simd.BitTable // 2n rows x n qubits
	zs    simd.BitTable
	signs simd.BitVec // 2n bits, 1 == negative
}

// NewState returns the all-|0> state: destabilizer i is X_i, stabilizer
// i is Z_i, every sign positive.
func NewState(numQubits int) *State {
	s := &State{
		n:     numQubits,
		xs:    simd.NewBitTable(2*numQubits, numQubits),
		zs:    simd.NewBitTable(2*numQubits, numQubits),
		signs: simd.NewBitVec(2 * numQubits),
	}
	for q := 0; q < numQubits; q++ {
		s.xs.Set(q, q, true)         // destabilizer q is X_q
		s.zs.Set(numQubits+q, q, true) // stabilizer q is Z_q
	}
	return s
}

// NumQubits returns the qubit count.
func (s *State) NumQubits() int { return s.n }

// EnsureQubits grows the state to accommodate at least numQubits
// qubits, extending with fresh |0> generators for the new qubits.
func (s *State) EnsureQubits(numQubits int) {
	if numQubits <= s.n {
		return
	}
	grown := NewState(numQubits)
	for row := 0; row < s.n; row++ {
		for q := 0; q < s.n; q++ {
			grown.xs.Set(row, q, s.xs.Get(row, q))
			grown.zs.Set(row, q, s.zs.Get(row, q))
		}
		grown.signs.Set(row, s.signs.Get(row))
	}
	for row := 0; row < s.n; row++ {
		srcRow := s.n + row
		dstRow := numQubits + row
		for q := 0; q < s.n; q++ {
			grown.xs.Set(dstRow, q, s.xs.Get(srcRow, q))
			grown.zs.Set(dstRow, q, s.zs.Get(srcRow, q))
		}
		grown.signs.Set(dstRow, s.signs.Get(srcRow))
	}
	*s = *grown
}

func (s *State) rows() int { return 2 * s.n }

// rowSign returns the row's sign bit.
func (s *State) rowSign(row int) bool { return s.signs.Get(row) }

func (s *State) flipSign(row int) { s.signs.Set(row, !s.signs.Get(row)) }
