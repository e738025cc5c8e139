// Package frame implements the Pauli-frame sampling engine: a SIMD,
// shot-batched simulator that propagates Pauli errors through a
// Clifford circuit in forward time against a precomputed reference
// sample. Grounded on
// original_source/src/stim/simulators/frame_simulator.cc.
package frame

// SamplerOpts configures a Simulator. Zero value is not necessarily
// valid; call DefaultSamplerOpts or run NewSimulator, which applies
// defaults itself, mirroring PIOP.SimOpts.applyDefaults.
type SamplerOpts struct {
	// GuaranteeAnticommutationViaFrameRandomization, when set,
	// randomizes the opposite-basis row on every measurement/reset so
	// a state that happens to anticommute with the measured basis
	// still gets a correctly mixed 50/50 outcome instead of leaking
	// the deterministic all-zero frame that would otherwise result
	// from an uninitialized opposite basis.
	GuaranteeAnticommutationViaFrameRandomization bool

	// MaxLookback is accepted but not read by the simulator: the
	// measurement record keeps one row for every measurement of the
	// run, and no old rows are discarded.
	MaxLookback int

	// StreamBlockShots is the batch width used by StreamSample. 0
	// means use DefaultStreamBlockShots.
	StreamBlockShots int
}

// DefaultStreamBlockShots is the per-block shot count spec.md's
// streaming mode uses: large enough to amortize per-instruction
// dispatch overhead, small enough that one block's tables stay
// comfortably resident.
const DefaultStreamBlockShots = 768

// DefaultSamplerOpts returns the options the original frame simulator
// ships with: frame randomization on (so anticommuting states still
// measure a correct 50/50 outcome), unbounded lookback, and the
// standard streaming block size.
func DefaultSamplerOpts() SamplerOpts {
	return SamplerOpts{
		GuaranteeAnticommutationViaFrameRandomization: true,
		StreamBlockShots:                              DefaultStreamBlockShots,
	}
}

// applyDefaults fills in any field a caller left at its zero value but
// that has no sensible zero meaning (StreamBlockShots). Boolean fields
// are taken at face value: callers who want frame randomization off
// start from a zero SamplerOpts rather than DefaultSamplerOpts.
func (o SamplerOpts) applyDefaults() SamplerOpts {
	if o.StreamBlockShots <= 0 {
		o.StreamBlockShots = DefaultStreamBlockShots
	}
	return o
}
