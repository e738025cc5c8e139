// Package gate defines the circuit instruction vocabulary: gate
// identities, their flag bits, a packed target encoding shared by
// every gate argument list, and the static table describing each
// gate's shape.
package gate

// Target is a packed 32-bit gate argument: a qubit index, measurement
// record lookback, sweep bit index, or Pauli-product combiner,
// depending on which flag bits are set. The low 24 bits hold the
// index; the high 8 bits are flag bits, mirroring the packing used
// throughout the circuit's instruction targets so an instruction's
// argument list is a flat []Target with no per-argument tagging
// overhead.
type Target uint32

const (
	valueMask Target = (1 << 24) - 1

	// InvertedBit marks a measurement target whose recorded outcome
	// should be flipped before use (e.g. "!3" in a measurement gate's
	// target list).
	InvertedBit Target = 1 << 31
	// PauliXBit marks this target as carrying an X component of a
	// Pauli product (combined with PauliZBit, both bits set means Y).
	PauliXBit Target = 1 << 30
	// PauliZBit marks this target as carrying a Z component of a
	// Pauli product.
	PauliZBit Target = 1 << 29
	// RecordBit marks this target as a measurement record lookback
	// rather than a qubit index; the low bits hold the positive
	// lookback distance (1 = most recent result; see RecordTarget).
	RecordBit Target = 1 << 28
	// CombinerBit marks a "*" separator between Pauli terms of a
	// combined Pauli-product target list (e.g. "X1*Y2" in MPP).
	CombinerBit Target = 1 << 27
	// SweepBit marks this target as indexing into the per-shot sweep
	// bit table rather than a qubit.
	SweepBit Target = 1 << 26
)

// QubitTarget builds a plain qubit target, optionally inverted.
func QubitTarget(qubit int, inverted bool) Target {
	t := Target(qubit) & valueMask
	if inverted {
		t |= InvertedBit
	}
	return t
}

// RecordTarget builds a measurement-record lookback target. lookback
// is the usual negative stim convention (-1 means "the most recent
// measurement") passed as a positive distance.
func RecordTarget(lookback int, inverted bool) Target {
	t := Target(lookback)&valueMask | RecordBit
	if inverted {
		t |= InvertedBit
	}
	return t
}

// SweepBitTarget builds a sweep-bit target.
func SweepBitTarget(index int) Target {
	return Target(index)&valueMask | SweepBit
}

// CombinerTarget returns the sentinel "*" combiner target.
func CombinerTarget() Target {
	return CombinerBit
}

// PauliTarget builds a Pauli-product term: axis is 'X', 'Y', or 'Z'.
func PauliTarget(qubit int, axis byte, inverted bool) Target {
	t := Target(qubit) & valueMask
	switch axis {
	case 'X':
		t |= PauliXBit
	case 'Y':
		t |= PauliXBit | PauliZBit
	case 'Z':
		t |= PauliZBit
	}
	if inverted {
		t |= InvertedBit
	}
	return t
}

// Value returns the packed index (qubit id, lookback distance, or
// sweep bit index, depending on the target's kind).
func (t Target) Value() int { return int(t & valueMask) }

// IsInverted reports whether the inverted-result bit is set.
func (t Target) IsInverted() bool { return t&InvertedBit != 0 }

// IsRecord reports whether this is a measurement-record lookback target.
func (t Target) IsRecord() bool { return t&RecordBit != 0 }

// IsSweepBit reports whether this is a sweep-bit target.
func (t Target) IsSweepBit() bool { return t&SweepBit != 0 }

// IsCombiner reports whether this is a "*" Pauli-product combiner.
func (t Target) IsCombiner() bool { return t == CombinerBit }

// IsQubit reports whether this target names a plain qubit (not a
// record lookback, sweep bit, or combiner).
func (t Target) IsQubit() bool {
	return !t.IsRecord() && !t.IsSweepBit() && !t.IsCombiner()
}

// PauliAxis returns the Pauli axis ('X', 'Y', 'Z', or 0 if this target
// carries no Pauli component) encoded in the X/Z bits.
func (t Target) PauliAxis() byte {
	x := t&PauliXBit != 0
	z := t&PauliZBit != 0
	switch {
	case x && z:
		return 'Y'
	case x:
		return 'X'
	case z:
		return 'Z'
	default:
		return 0
	}
}

// WithoutFlags returns the target with every flag bit cleared.
func (t Target) WithoutFlags() Target { return t & valueMask }
