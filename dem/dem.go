// Package dem is the detector error model data model: a flat
// instruction list plus nested repeat blocks, the output of the
// reverse error analyzer. Grounded on DetectorErrorModel /
// DemInstruction in
// original_source/src/stim/dem/detector_error_model.h.
//
// Unlike package circuit, targets and args are interned through
// simd.Arena rather than plain slices: the analyzer appends many
// short-lived target lists (one per error mechanism) one at a time as
// it walks the circuit, and wants them committed into a stable region
// it never has to revisit, which is exactly the monotonic-buffer role
// the original gives DetectorErrorModel's arg_buf/target_buf.
//
// No text parser: as with package circuit, the format spec.md
// describes is out of scope, so Model only supports writing
// (String()), never reading.
package dem

import (
	"strconv"
	"strings"
)

// InstructionType distinguishes the five kinds of DEM instruction.
type InstructionType uint8

const (
	InstructionError InstructionType = iota
	InstructionShiftDetectors
	InstructionDetector
	InstructionLogicalObservable
	InstructionRepeatBlock
)

// Instruction is one line of a detector error model. For
// InstructionRepeatBlock, Body holds the nested model and RepeatCount
// its repetition count; Args/Targets are unused.
type Instruction struct {
	Type        InstructionType
	Args        []float64
	Targets     []Target
	RepeatCount uint64
	Body        *Model
}

// Model is an instruction list plus the nested blocks any
// InstructionRepeatBlock instructions refer to, plus the two arenas
// backing every instruction's Args/Targets slices.
type Model struct {
	Instructions []Instruction

	args    *arenaF
	targets *arenaT
}

type arenaF = arena[float64]
type arenaT = arena[Target]

// NewModel returns an empty detector error model.
func NewModel() *Model {
	return &Model{
		args:    newArena[float64](64),
		targets: newArena[Target](64),
	}
}

// AppendError adds an `error(p) targets` instruction. targets is
// copied into the model's own target arena.
func (m *Model) AppendError(p float64, targets []Target) {
	m.Instructions = append(m.Instructions, Instruction{
		Type:    InstructionError,
		Args:    m.args.intern([]float64{p}),
		Targets: m.targets.intern(targets),
	})
}

// AppendShiftDetectors adds a `shift_detectors(coordShift...)
// detectorShift` instruction.
func (m *Model) AppendShiftDetectors(coordShift []float64, detectorShift uint64) {
	m.Instructions = append(m.Instructions, Instruction{
		Type:        InstructionShiftDetectors,
		Args:        m.args.intern(coordShift),
		RepeatCount: detectorShift,
	})
}

// AppendDetector adds a `detector(coords...) target` instruction.
func (m *Model) AppendDetector(coords []float64, target Target) {
	m.Instructions = append(m.Instructions, Instruction{
		Type:    InstructionDetector,
		Args:    m.args.intern(coords),
		Targets: m.targets.intern([]Target{target}),
	})
}

// AppendLogicalObservable adds a `logical_observable target`
// instruction.
func (m *Model) AppendLogicalObservable(target Target) {
	m.Instructions = append(m.Instructions, Instruction{
		Type:    InstructionLogicalObservable,
		Targets: m.targets.intern([]Target{target}),
	})
}

// AppendRepeatBlock adds a `repeat count { body }` instruction.
func (m *Model) AppendRepeatBlock(count uint64, body *Model) {
	m.Instructions = append(m.Instructions, Instruction{
		Type:        InstructionRepeatBlock,
		RepeatCount: count,
		Body:        body,
	})
}

// CountDetectors returns the number of InstructionDetector
// instructions, honoring repeat multiplicities without unrolling.
func (m *Model) CountDetectors() uint64 {
	return m.flatCount(func(ins Instruction) uint64 {
		if ins.Type == InstructionDetector {
			return 1
		}
		return 0
	})
}

// CountObservables returns one more than the largest logical
// observable id appearing in any InstructionLogicalObservable
// instruction.
func (m *Model) CountObservables() int {
	max := -1
	m.walk(func(ins Instruction) {
		if ins.Type != InstructionLogicalObservable {
			return
		}
		for _, t := range ins.Targets {
			if t.IsObservableID() {
				if id := int(t.Value()); id > max {
					max = id
				}
			}
		}
	})
	return max + 1
}

// TotalDetectorShift returns the sum of every InstructionShiftDetectors
// instruction's detector shift, honoring repeat multiplicities.
func (m *Model) TotalDetectorShift() uint64 {
	return m.flatCount(func(ins Instruction) uint64 {
		if ins.Type == InstructionShiftDetectors {
			return ins.RepeatCount
		}
		return 0
	})
}

func (m *Model) flatCount(count func(Instruction) uint64) uint64 {
	var n uint64
	for _, ins := range m.Instructions {
		if ins.Type == InstructionRepeatBlock {
			n += ins.Body.flatCount(count) * ins.RepeatCount
			continue
		}
		n += count(ins)
	}
	return n
}

func (m *Model) walk(cb func(Instruction)) {
	for _, ins := range m.Instructions {
		cb(ins)
		if ins.Type == InstructionRepeatBlock && ins.Body != nil {
			ins.Body.walk(cb)
		}
	}
}

// String renders the model the way it would be printed to a .dem
// file: one instruction per line, repeat blocks indented.
func (m *Model) String() string {
	var b strings.Builder
	m.writeIndented(&b, "")
	return b.String()
}

func (m *Model) writeIndented(b *strings.Builder, indent string) {
	for _, ins := range m.Instructions {
		b.WriteString(indent)
		writeInstruction(b, ins, indent)
	}
}

func writeInstruction(b *strings.Builder, ins Instruction, indent string) {
	switch ins.Type {
	case InstructionError:
		b.WriteString("error(")
		writeFloat(b, ins.Args[0])
		b.WriteString(")")
		for _, t := range ins.Targets {
			b.WriteByte(' ')
			b.WriteString(t.String())
		}
		b.WriteByte('\n')
	case InstructionShiftDetectors:
		b.WriteString("shift_detectors")
		writeCoordArgs(b, ins.Args)
		b.WriteByte(' ')
		writeUint(b, ins.RepeatCount)
		b.WriteByte('\n')
	case InstructionDetector:
		b.WriteString("detector")
		writeCoordArgs(b, ins.Args)
		b.WriteByte(' ')
		b.WriteString(ins.Targets[0].String())
		b.WriteByte('\n')
	case InstructionLogicalObservable:
		b.WriteString("logical_observable ")
		b.WriteString(ins.Targets[0].String())
		b.WriteByte('\n')
	case InstructionRepeatBlock:
		b.WriteString("repeat ")
		writeUint(b, ins.RepeatCount)
		b.WriteString(" {\n")
		ins.Body.writeIndented(b, indent+"    ")
		b.WriteString(indent)
		b.WriteString("}\n")
	}
}

func writeCoordArgs(b *strings.Builder, args []float64) {
	if len(args) == 0 {
		return
	}
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		writeFloat(b, a)
	}
	b.WriteByte(')')
}

func writeUint(b *strings.Builder, v uint64) {
	if v == 0 {
		b.WriteByte('0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	b.Write(buf[i:])
}

func writeFloat(b *strings.Builder, v float64) {
	b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}
