package frame

import (
	"stim/circuit"
	"stim/rng"
	"stim/simd"
)

// Sample runs c once against a freshly seeded simulator and returns
// the raw measurement record, numShots shots wide, with no reference
// sample applied: row i holds the recorded bit (including any biased
// measurement-error noise) for the i'th measurement, one column per
// shot. Mirrors FrameSimulator::sample_flipped_measurements.
func Sample(c *circuit.Circuit, numShots int, source *rng.RNG, opts SamplerOpts) (simd.BitTable, error) {
	sim := NewSimulator(c.CountQubits(), numShots, int(c.CountMeasurements()), c.CountSweepBits(), source, opts)
	sim.ResetAll()
	if err := sim.Run(c); err != nil {
		return simd.BitTable{}, err
	}
	return sim.record.table, nil
}

// SampleAgainstReference runs c and XORs every measurement row against
// the corresponding bit of a noiseless reference sample (one bit per
// measurement, shared across every shot), turning the raw frame
// samples into actual simulated measurement outcomes. Mirrors
// FrameSimulator::sample.
func SampleAgainstReference(c *circuit.Circuit, referenceSample simd.BitVec, numShots int, source *rng.RNG, opts SamplerOpts) (simd.BitTable, error) {
	table, err := Sample(c, numShots, source, opts)
	if err != nil {
		return simd.BitTable{}, err
	}
	for i := 0; i < table.MajorLen(); i++ {
		if referenceSample.Get(i) {
			flipRow(table.Row(i))
		}
	}
	return table, nil
}

// flipRow complements every bit of row in place.
func flipRow(row simd.BitVec) {
	words := row.Words()
	for i := range words {
		words[i] = ^words[i]
	}
	row.MaskTrailingGarbage()
}

// StreamSink receives one completed block of sample results at a
// time: block is numMeasurements x blockShots (the last block may be
// narrower than opts.StreamBlockShots if numShots doesn't divide
// evenly), and firstShot is the index of its first column in the
// overall numShots-wide run. Mirrors the streaming write path
// sample_out_helper takes when should_use_streaming_instead_of_memory
// says the full table won't comfortably fit in memory.
type StreamSink func(block simd.BitTable, firstShot int) error

// StreamSample runs c in blocks of opts.StreamBlockShots shots (or
// DefaultStreamBlockShots if unset), handing each finished block to
// sink before moving on to the next -- the shape spec's streaming mode
// requires so a run covering more shots than comfortably fit in memory
// at once never needs the whole table resident. Each block gets its
// own simulator and its own slice of source's stream, so results are
// independent of how the shots happen to be chunked.
func StreamSample(c *circuit.Circuit, referenceSample simd.BitVec, numShots int, source *rng.RNG, opts SamplerOpts, sink StreamSink) error {
	opts = opts.applyDefaults()
	block := opts.StreamBlockShots
	for start := 0; start < numShots; start += block {
		width := block
		if start+width > numShots {
			width = numShots - start
		}
		table, err := SampleAgainstReference(c, referenceSample, width, source, opts)
		if err != nil {
			return err
		}
		if err := sink(table, start); err != nil {
			return err
		}
	}
	return nil
}
