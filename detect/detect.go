// Package detect turns a raw measurement record into detection events:
// for every DETECTOR and (optionally) OBSERVABLE_INCLUDE instruction
// in a circuit, XOR together the referenced measurement bits and flip
// the result wherever the noiseless reference sample disagrees.
// Grounded on measurements_to_detection_events_raw in
// original_source/src/stim/simulators/measurements_to_detection_events.cc.
package detect

import (
	"fmt"

	"stim/circuit"
	"stim/gate"
	"stim/simd"
)

// Events computes detection events from measurements (one row per
// measurement, one column per shot) and referenceSample (one bit per
// measurement, the noiseless outcome every shot is compared against).
// The output has one row per DETECTOR instruction, in circuit order,
// followed by one row per observable if appendObservables is set.
func Events(c *circuit.Circuit, measurements simd.BitTable, referenceSample simd.BitVec, appendObservables bool) (simd.BitTable, error) {
	numDetectors := int(c.CountDetectors())
	numObservables := 0
	if appendObservables {
		numObservables = c.CountObservables()
	}
	out := simd.NewBitTable(numDetectors+numObservables, measurements.MinorLen())

	measureCountSoFar := 0
	detectorOffset := 0
	var walkErr error
	c.ForEachOperation(func(op circuit.Instruction) {
		if walkErr != nil {
			return
		}
		var outIndex int
		switch {
		case op.Gate == gate.Detector:
			outIndex = detectorOffset
			detectorOffset++
		case appendObservables && op.Gate == gate.ObservableInclude:
			if len(op.Args) == 0 {
				walkErr = fmt.Errorf("detect: OBSERVABLE_INCLUDE missing its observable index argument")
				return
			}
			outIndex = numDetectors + int(op.Args[0])
		default:
			measureCountSoFar += op.CountMeasurementResults()
			return
		}

		row := out.Row(outIndex)
		if op.Gate == gate.Detector {
			row.Clear()
		}
		for _, t := range op.Targets {
			lookback := t.Value()
			if lookback > measureCountSoFar {
				walkErr = fmt.Errorf("detect: instruction referred to a measurement result before the beginning of time")
				return
			}
			idx := measureCountSoFar - lookback
			src := measurements.Row(idx)
			row.XorInto(&src)
			if referenceSample.Get(idx) {
				invertRow(row)
			}
		}
	})
	if walkErr != nil {
		return simd.BitTable{}, walkErr
	}
	return out, nil
}

// invertRow complements every bit of row in place.
func invertRow(row simd.BitVec) {
	words := row.Words()
	for i := range words {
		words[i] = ^words[i]
	}
	row.MaskTrailingGarbage()
}
