package analyze

import (
	"stim/dem"
	"stim/gate"
	"stim/simd"
)

// addCompositeError folds a single CORRELATED_ERROR/ELSE_CORRELATED_ERROR
// link's Pauli product into one error mechanism: the target set is the
// XOR of every named qubit's zs (for an X component), xs (for a Z
// component), or both (for Y), the same per-target mapping spec.md
// gives for X_ERROR/Z_ERROR/Y_ERROR generalized to a multi-qubit term.
func (a *analyzer) addCompositeError(p float64, targets []gate.Target) {
	if p <= 0 {
		return
	}
	acc := simd.NewSparseXorVec[dem.Target](demLess)
	for _, t := range targets {
		if t.IsCombiner() {
			continue
		}
		q := t.Value()
		switch t.PauliAxis() {
		case 'X':
			acc.Xor(&a.tr.Zs[q])
		case 'Y':
			acc.Xor(&a.tr.Zs[q])
			acc.Xor(&a.tr.Xs[q])
		case 'Z':
			acc.Xor(&a.tr.Xs[q])
		}
	}
	a.addError(p, append([]dem.Target(nil), acc.Items()...))
}

// undoXError folds X_ERROR(p) into one mechanism per target, targeting
// zs[q] (an X error commutes with Z-type detectors and anticommutes
// with Z-sensitive ones, so it flips whatever zs[q] is currently
// sensitive to).
func (a *analyzer) undoXError(targets []gate.Target, p float64) error {
	for _, t := range targets {
		q := t.Value()
		a.addError(p, append([]dem.Target(nil), a.tr.Zs[q].Items()...))
	}
	return nil
}

// undoZError folds Z_ERROR(p) into one mechanism per target, targeting
// xs[q].
func (a *analyzer) undoZError(targets []gate.Target, p float64) error {
	for _, t := range targets {
		q := t.Value()
		a.addError(p, append([]dem.Target(nil), a.tr.Xs[q].Items()...))
	}
	return nil
}

// undoYError folds Y_ERROR(p) into one mechanism per target, targeting
// xs[q] XOR zs[q].
func (a *analyzer) undoYError(targets []gate.Target, p float64) error {
	for _, t := range targets {
		q := t.Value()
		acc := simd.NewSparseXorVec[dem.Target](demLess)
		acc.Xor(&a.tr.Xs[q])
		acc.Xor(&a.tr.Zs[q])
		a.addError(p, append([]dem.Target(nil), acc.Items()...))
	}
	return nil
}

// undoDepolarize1 converts DEPOLARIZE1(p)'s disjoint (px=py=pz=p/3)
// single-qubit channel into two independent mechanisms by exact
// marginal probability instead of stim's closed-form/Newton-iteration
// disjoint-to-independent inversion (see DESIGN.md): qx = px+py is the
// exact probability that the sampled Pauli has an X component, qz =
// pz+py the exact probability it has a Z component. Two independent
// channels firing together naturally reproduces the Y (both-fire)
// case, so this is marginal-exact without needing the three-mechanism
// disjoint decomposition spec.md's literal wording describes.
func (a *analyzer) undoDepolarize1(targets []gate.Target, p float64) error {
	q := 2 * p / 3
	if err := a.undoXError(targets, q); err != nil {
		return err
	}
	return a.undoZError(targets, q)
}

// undoDepolarize2 applies the same exact-marginal simplification to
// DEPOLARIZE2(p)'s 15 uniform two-qubit combinations: 8 of the 15 have
// qubit a's Pauli in {X,Y} (and symmetrically for Z, and for qubit b),
// giving qx = qz = 8p/15 per qubit, treated as independent of the
// other qubit's channel.
func (a *analyzer) undoDepolarize2(targets []gate.Target, p float64) error {
	q := 8 * p / 15
	return applyPairs(targets, func(x, y gate.Target) error {
		pair := []gate.Target{x, y}
		if err := a.undoXError(pair, q); err != nil {
			return err
		}
		return a.undoZError(pair, q)
	})
}

// undoPauliChannel1 converts PAULI_CHANNEL_1(px,py,pz)'s asymmetric
// single-qubit channel the same way: qx = px+py, qz = pz+py, exact by
// construction since these are the channel's own marginals, no
// conversion needed.
func (a *analyzer) undoPauliChannel1(targets []gate.Target, args []float64) error {
	px, py, pz := args[0], args[1], args[2]
	qx, qz := px+py, pz+py
	if err := a.undoXError(targets, qx); err != nil {
		return err
	}
	return a.undoZError(targets, qz)
}

// pauliPairCombo is one of PAULI_CHANNEL_2's 15 non-identity
// two-qubit Pauli combinations.
type pauliPairCombo struct{ a, b byte }

// pauliPairCombos reconstructs the fixed branch order (IX, IY, IZ, XI,
// XX, ..., ZZ, skipping II) frame.pauliPairTargets builds -- that
// function is unexported, so this is a from-scratch reimplementation
// of the identical nested loop, not a call into package frame.
func pauliPairCombos() []pauliPairCombo {
	axes := []byte{'I', 'X', 'Y', 'Z'}
	var combos []pauliPairCombo
	for _, x := range axes {
		for _, y := range axes {
			if x == 'I' && y == 'I' {
				continue
			}
			combos = append(combos, pauliPairCombo{x, y})
		}
	}
	return combos
}

// undoPauliChannel2 sums each qubit's marginal X/Z-component
// probability across the 15 branches, then applies the same
// two-independent-mechanism model per qubit as undoPauliChannel1.
func (a *analyzer) undoPauliChannel2(targets []gate.Target, args []float64) error {
	combos := pauliPairCombos()
	return applyPairs(targets, func(qa, qb gate.Target) error {
		var qxa, qza, qxb, qzb float64
		for i, p := range args {
			if p <= 0 {
				continue
			}
			switch combos[i].a {
			case 'X':
				qxa += p
			case 'Y':
				qxa += p
				qza += p
			case 'Z':
				qza += p
			}
			switch combos[i].b {
			case 'X':
				qxb += p
			case 'Y':
				qxb += p
				qzb += p
			case 'Z':
				qzb += p
			}
		}
		a1 := []gate.Target{qa}
		b1 := []gate.Target{qb}
		if err := a.undoXError(a1, qxa); err != nil {
			return err
		}
		if err := a.undoZError(a1, qza); err != nil {
			return err
		}
		if err := a.undoXError(b1, qxb); err != nil {
			return err
		}
		return a.undoZError(b1, qzb)
	})
}
