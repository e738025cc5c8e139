package frame

import (
	"fmt"

	"stim/circuit"
	"stim/diag"
	"stim/gate"
	"stim/rng"
	"stim/simd"
)

// Simulator is the Pauli-frame sampler's mutable state: one X and one
// Z bit-row per qubit, a measurement record, a sweep-bit table, a
// scratch vector, and the "did the last ELSE_CORRELATED_ERROR chain
// link fire" mask. Grounded on FrameSimulator in
// original_source/src/stim/simulators/frame_simulator.h.
type Simulator struct {
	numQubits int
	batch     int // shot count; the bit-row storage is word-padded past it

	x, z simd.BitTable // numQubits x batch
	sweep simd.BitTable // numSweepBits x batch

	record record

	lastCorrelatedErrorOccurred simd.BitVec
	shotMask                    simd.BitVec // 1 for real shots, 0 for batch padding

	rng  *rng.RNG
	opts SamplerOpts

	tick        int
	repeatStack []int
}

// NewSimulator allocates a simulator for numQubits qubits, sampling
// numShots shots at once (each bit row's storage is padded to a word
// boundary), with
// numMeasurements reserved rows in the measurement record and
// numSweepBits rows in the sweep table.
func NewSimulator(numQubits, numShots, numMeasurements, numSweepBits int, source *rng.RNG, opts SamplerOpts) *Simulator {
	opts = opts.applyDefaults()
	s := &Simulator{
		numQubits: numQubits,
		batch:     numShots,
		x:         simd.NewBitTable(numQubits, numShots),
		z:         simd.NewBitTable(numQubits, numShots),
		sweep:     simd.NewBitTable(numSweepBits, numShots),
		record:    newRecord(numMeasurements, numShots),
		rng:       source,
		opts:      opts,
	}
	s.lastCorrelatedErrorOccurred = simd.NewBitVec(numShots)
	s.shotMask = simd.NewBitVec(numShots)
	for i := 0; i < numShots; i++ {
		s.shotMask.Set(i, true)
	}
	return s
}

// ResetAll puts every qubit back into the +1 Z eigenstate: x_table
// cleared, and, if frame randomization is on, z_table re-randomized so
// a qubit that gets measured along a different basis before its X
// component is otherwise constrained still reports an unbiased
// outcome. Also rewinds the measurement record cursor. Grounded on
// FrameSimulator::reset_all, which the original calls once at the top
// of its sampling entry points rather than from the constructor.
func (s *Simulator) ResetAll() {
	s.x.Clear()
	if s.opts.GuaranteeAnticommutationViaFrameRandomization {
		s.z.Randomize(s.rng.R)
	}
	s.record.cursor = 0
}

// SetSweepBits loads row k of the sweep table from bits.
func (s *Simulator) SetSweepBits(k int, bits simd.BitVec) {
	row := s.sweep.Row(k)
	row.CopyFrom(&bits)
}

// Run executes every instruction of c against the simulator's current
// state, in program order, recursing into REPEAT blocks.
func (s *Simulator) Run(c *circuit.Circuit) error {
	for i, op := range c.Instructions {
		if err := s.applyInstruction(op); err != nil {
			iter := -1
			if n := len(s.repeatStack); n > 0 {
				iter = s.repeatStack[n-1]
			}
			frame := diag.Frame{Tick: s.tick, InstructionOffset: i, RepeatIteration: iter}
			if de, ok := err.(*diag.Error); ok {
				return de.Push(frame)
			}
			return diag.Wrap(err, []diag.Frame{frame}, "")
		}
	}
	return nil
}

func (s *Simulator) applyInstruction(op circuit.Instruction) error {
	info, ok := gate.Lookup(op.Gate)
	if !ok {
		return fmt.Errorf("frame: unknown gate %v", op.Gate)
	}
	switch {
	case op.Gate == gate.Repeat:
		for i := uint64(0); i < op.RepeatCount; i++ {
			s.repeatStack = append(s.repeatStack, int(i))
			if err := s.Run(op.Body); err != nil {
				s.repeatStack = s.repeatStack[:len(s.repeatStack)-1]
				return err
			}
			s.repeatStack = s.repeatStack[:len(s.repeatStack)-1]
		}
		return nil
	case op.Gate == gate.Tick:
		s.tick++
		return nil
	case info.Flags.Has(gate.HasNoEffectOnQubits):
		// DETECTOR, OBSERVABLE_INCLUDE, QUBIT_COORDS, SHIFT_COORDS:
		// analyzer-only annotations, no-ops for the sampler.
		return nil
	case info.Flags.Has(gate.IsUnitary):
		return s.applyUnitary(op.Gate, op.Targets)
	case op.Gate == gate.MPad:
		return s.mpad(op.Args)
	case op.Gate == gate.MX, op.Gate == gate.MY, op.Gate == gate.MZ,
		op.Gate == gate.RX, op.Gate == gate.RY, op.Gate == gate.RZ,
		op.Gate == gate.MRX, op.Gate == gate.MRY, op.Gate == gate.MRZ:
		return s.applyCollapsing(op.Gate, op.Targets, op.Args)
	case op.Gate == gate.MPP:
		return s.mpp(op.Targets, op.Args)
	case op.Gate == gate.MXX, op.Gate == gate.MYY, op.Gate == gate.MZZ:
		return s.pairMeasure(op.Gate, op.Targets, op.Args)
	case op.Gate == gate.Depolarize1:
		return s.depolarize1(op.Targets, op.Args[0])
	case op.Gate == gate.Depolarize2:
		return s.depolarize2(op.Targets, op.Args[0])
	case op.Gate == gate.XError:
		return s.pauliError(op.Targets, op.Args[0], true, false)
	case op.Gate == gate.YError:
		return s.pauliError(op.Targets, op.Args[0], true, true)
	case op.Gate == gate.ZError:
		return s.pauliError(op.Targets, op.Args[0], false, true)
	case op.Gate == gate.PauliChannel1:
		return s.pauliChannel1(op.Targets, op.Args)
	case op.Gate == gate.PauliChannel2:
		return s.pauliChannel2(op.Targets, op.Args)
	case op.Gate == gate.CorrelatedError:
		s.lastCorrelatedErrorOccurred.Clear()
		return s.elseCorrelatedError(op.Targets, op.Args[0])
	case op.Gate == gate.ElseCorrelatedError:
		return s.elseCorrelatedError(op.Targets, op.Args[0])
	case op.Gate == gate.HeraldedErase:
		return s.heraldedErase(op.Targets, op.Args[0])
	case op.Gate == gate.HeraldedPauliChannel1:
		return s.heraldedPauliChannel1(op.Targets, op.Args)
	default:
		return fmt.Errorf("frame: unsupported gate %s", info.Name)
	}
}
