package stabilizer

// PauliTerm is one factor of a Pauli product measurement: qubit q in
// Pauli basis axis ('X', 'Y', or 'Z').
type PauliTerm struct {
	Qubit int
	Axis  byte
}

// MeasurePauliProduct measures the product of the given Pauli terms as
// a single joint observable, the way MPP does. The decomposition order
// follows original_source's decompose_mpp_operation: rotate every
// term's qubit into the Z basis, CNOT every term onto the first term's
// qubit (the "pivot"), measure the pivot in Z, then undo the CNOT
// cascade and basis changes in reverse order so the qubits are left in
// the post-measurement state of the joint observable rather than
// disturbed further.
func (s *State) MeasurePauliProduct(terms []PauliTerm) (outcome bool, deterministic bool) {
	if len(terms) == 0 {
		return false, true
	}
	for _, t := range terms {
		s.rotateToZ(t.Axis, t.Qubit)
	}
	pivot := terms[0].Qubit
	for _, t := range terms[1:] {
		s.CX(t.Qubit, pivot)
	}
	outcome, deterministic = s.MeasureZ(pivot)
	for i := len(terms) - 1; i >= 1; i-- {
		s.CX(terms[i].Qubit, pivot)
	}
	for i := len(terms) - 1; i >= 0; i-- {
		s.rotateFromZ(terms[i].Axis, terms[i].Qubit)
	}
	return outcome, deterministic
}
