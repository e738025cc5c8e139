package gate

// Flags is a bit-packed description of a gate's shape: what kind of
// targets it accepts, whether it's unitary/noisy/dissipative, and how
// its arguments should be validated. Every defined gate has at least
// one flag set.
type Flags uint16

const (
	NoFlags Flags = 0

	// IsUnitary means the gate has tableau data and participates in
	// the noiseless reference sample.
	IsUnitary Flags = 1 << 0
	// IsNoisy means the gate is skipped when computing the reference
	// sample (it only matters for the sampled frame, not the ground
	// truth).
	IsNoisy Flags = 1 << 1
	// ArgsAreDisjointProbabilities means the gate's parens arguments
	// are probabilities of mutually exclusive outcomes that must sum
	// to at most 1.
	ArgsAreDisjointProbabilities Flags = 1 << 2
	// ProducesResults means the gate writes into the measurement
	// record, and its targets may carry the inverted-result bit.
	ProducesResults Flags = 1 << 3
	// IsNotFusable prevents identical adjacent instructions from being
	// merged into one wider invocation.
	IsNotFusable Flags = 1 << 4
	// IsBlock marks control-flow gates like REPEAT that own a nested
	// block of instructions instead of a target list.
	IsBlock Flags = 1 << 5
	// TargetsPairs means targets must come in twos (2-qubit gates).
	TargetsPairs Flags = 1 << 6
	// TargetsPauliString means targets form a Pauli product (X/Y/Z
	// axis per target), as in CORRELATED_ERROR.
	TargetsPauliString Flags = 1 << 7
	// OnlyTargetsMeasurementRecord restricts targets to rec[-k] lookbacks.
	OnlyTargetsMeasurementRecord Flags = 1 << 8
	// CanTargetBits allows measurement-record and sweep-bit targets
	// alongside qubit targets.
	CanTargetBits Flags = 1 << 9
	// TakesNoTargets means the gate has an empty target list (e.g. TICK).
	TakesNoTargets Flags = 1 << 10
	// ArgsAreUnsignedIntegers means parens arguments are validated as
	// non-negative integers rather than probabilities.
	ArgsAreUnsignedIntegers Flags = 1 << 11
	// TargetsCombiners allows "*" combiners joining Pauli terms, as in MPP.
	TargetsCombiners Flags = 1 << 12
	// IsReset means the gate discards the qubit's prior state.
	IsReset Flags = 1 << 13
	// HasNoEffectOnQubits marks annotations that matter to the
	// classical control system but not to qubit state.
	HasNoEffectOnQubits Flags = 1 << 14
	// IsSingleQubitGate means the gate trivially broadcasts over each
	// target independently.
	IsSingleQubitGate Flags = 1 << 15
)

// Has reports whether every bit in mask is set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }
