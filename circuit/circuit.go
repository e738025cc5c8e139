// Package circuit is the programmatic data model for a stabilizer
// circuit: instructions, nested REPEAT blocks, and the counting
// helpers every other package (frame, detect, analyze) needs to size
// its own buffers before walking the circuit. There is no text
// parser; circuits are built by calling the Append* methods directly,
// the way a caller already holding a parsed/generated program would.
package circuit

import (
	"strings"

	"stim/gate"
)

// Circuit is a sequence of instructions, from earliest to latest, plus
// the nested bodies referenced by any REPEAT instructions in it.
type Circuit struct {
	Instructions []Instruction
}

// New returns an empty circuit.
func New() *Circuit {
	return &Circuit{}
}

// Append adds g applied to targets with the given args at the end of
// the circuit. If the previous instruction is the same fusable gate
// with identical args, its target list is extended in place instead
// of adding a new instruction, mirroring the auto-fusing the teacher's
// own text format relies on.
func (c *Circuit) Append(g gate.Type, targets []gate.Target, args []float64) {
	op := Instruction{Gate: g, Targets: targets, Args: args}
	if n := len(c.Instructions); n > 0 && c.Instructions[n-1].CanFuse(op) {
		c.Instructions[n-1].Targets = append(c.Instructions[n-1].Targets, targets...)
		return
	}
	c.Instructions = append(c.Instructions, op)
}

// AppendRepeatBlock adds a REPEAT instruction wrapping body, executed
// count times.
func (c *Circuit) AppendRepeatBlock(count uint64, body *Circuit) {
	c.Instructions = append(c.Instructions, Instruction{
		Gate:        gate.Repeat,
		RepeatCount: count,
		Body:        body,
	})
}

// Clear resets the circuit to empty.
func (c *Circuit) Clear() {
	c.Instructions = c.Instructions[:0]
}

// ForEachOperation walks every non-REPEAT instruction in executed
// order, unrolling REPEAT blocks according to their count. cb may be
// called a number of times exponential in nesting depth for deeply
// repeated circuits; callers analyzing huge repeat counts should use
// the DEM's own repeat-block instructions instead of unrolling here.
func (c *Circuit) ForEachOperation(cb func(Instruction)) {
	for _, op := range c.Instructions {
		if op.Gate == gate.Repeat {
			for k := uint64(0); k < op.RepeatCount; k++ {
				op.Body.ForEachOperation(cb)
			}
			continue
		}
		cb(op)
	}
}

// ForEachOperationReverse walks every non-REPEAT instruction in
// reverse executed order -- the traversal the reverse error analyzer
// drives.
func (c *Circuit) ForEachOperationReverse(cb func(Instruction)) {
	for i := len(c.Instructions) - 1; i >= 0; i-- {
		op := c.Instructions[i]
		if op.Gate == gate.Repeat {
			for k := uint64(0); k < op.RepeatCount; k++ {
				op.Body.ForEachOperationReverse(cb)
			}
			continue
		}
		cb(op)
	}
}

// flatCount walks the circuit (honoring repeat multiplicities without
// unrolling) summing count(op) over every non-block instruction.
func (c *Circuit) flatCount(count func(Instruction) uint64) uint64 {
	var n uint64
	for _, op := range c.Instructions {
		if op.Gate == gate.Repeat {
			sub := op.Body.flatCount(count)
			n = addSaturate(n, mulSaturate(sub, op.RepeatCount))
			continue
		}
		n = addSaturate(n, count(op))
	}
	return n
}

func addSaturate(a, b uint64) uint64 {
	s := a + b
	if s < a {
		return ^uint64(0)
	}
	return s
}

func mulSaturate(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/a != b {
		return ^uint64(0)
	}
	return p
}

// CountMeasurements returns the total number of measurement-record
// bits produced by running the circuit.
func (c *Circuit) CountMeasurements() uint64 {
	return c.flatCount(func(op Instruction) uint64 { return uint64(op.CountMeasurementResults()) })
}

// CountDetectors returns the number of DETECTOR instructions (each
// contributes exactly one detection-event bit).
func (c *Circuit) CountDetectors() uint64 {
	return c.flatCount(func(op Instruction) uint64 {
		if op.Gate == gate.Detector {
			return 1
		}
		return 0
	})
}

// CountTicks returns the number of TICK instructions executed.
func (c *Circuit) CountTicks() uint64 {
	return c.flatCount(func(op Instruction) uint64 {
		if op.Gate == gate.Tick {
			return 1
		}
		return 0
	})
}

// CountQubits returns one more than the largest qubit index referenced
// by any instruction's targets.
func (c *Circuit) CountQubits() int {
	max := -1
	c.walkAllIncludingBlocks(func(op Instruction) {
		for _, t := range op.Targets {
			if t.IsQubit() && t.Value() > max {
				max = t.Value()
			}
		}
	})
	return max + 1
}

// CountObservables returns one more than the largest index k from any
// OBSERVABLE_INCLUDE(k) instruction.
func (c *Circuit) CountObservables() int {
	max := -1
	c.walkAllIncludingBlocks(func(op Instruction) {
		if op.Gate == gate.ObservableInclude && len(op.Args) > 0 {
			if k := int(op.Args[0]); k > max {
				max = k
			}
		}
	})
	return max + 1
}

// MaxLookback returns the largest k from any rec[-k] target anywhere
// in the circuit.
func (c *Circuit) MaxLookback() int {
	max := 0
	c.walkAllIncludingBlocks(func(op Instruction) {
		for _, t := range op.Targets {
			if t.IsRecord() && t.Value() > max {
				max = t.Value()
			}
		}
	})
	return max
}

// CountSweepBits returns one more than the largest sweep bit index
// referenced anywhere in the circuit.
func (c *Circuit) CountSweepBits() int {
	max := -1
	c.walkAllIncludingBlocks(func(op Instruction) {
		for _, t := range op.Targets {
			if t.IsSweepBit() && t.Value() > max {
				max = t.Value()
			}
		}
	})
	return max + 1
}

// walkAllIncludingBlocks visits every instruction exactly once
// (without unrolling REPEAT), recursing into block bodies -- the
// right traversal for structural properties like "largest qubit
// index" that don't depend on how many times a block repeats.
func (c *Circuit) walkAllIncludingBlocks(cb func(Instruction)) {
	for _, op := range c.Instructions {
		cb(op)
		if op.Gate == gate.Repeat && op.Body != nil {
			op.Body.walkAllIncludingBlocks(cb)
		}
	}
}

// Concat returns a new circuit with other's instructions appended
// after c's (fusing the boundary instruction if possible).
func (c *Circuit) Concat(other *Circuit) *Circuit {
	result := &Circuit{Instructions: append([]Instruction{}, c.Instructions...)}
	for _, op := range other.Instructions {
		if op.Gate == gate.Repeat {
			result.Instructions = append(result.Instructions, op)
			continue
		}
		result.Append(op.Gate, op.Targets, op.Args)
	}
	return result
}

// Repeated returns a new circuit consisting of a single REPEAT
// instruction wrapping a copy of c, run `count` times. Repeating by a
// single outer REPEAT rather than literally duplicating instructions
// keeps circuit size proportional to log(total operations), matching
// the multiply operator's role in the original's circuit arithmetic.
func (c *Circuit) Repeated(count uint64) *Circuit {
	body := &Circuit{Instructions: append([]Instruction{}, c.Instructions...)}
	out := &Circuit{}
	out.AppendRepeatBlock(count, body)
	return out
}

// Equal reports whether two circuits have the same instruction
// sequence and block structure.
func (c *Circuit) Equal(other *Circuit) bool {
	if len(c.Instructions) != len(other.Instructions) {
		return false
	}
	for i := range c.Instructions {
		if !instructionsEqual(c.Instructions[i], other.Instructions[i]) {
			return false
		}
	}
	return true
}

func instructionsEqual(a, b Instruction) bool {
	if a.Gate != b.Gate || a.RepeatCount != b.RepeatCount {
		return false
	}
	if len(a.Targets) != len(b.Targets) || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Targets {
		if a.Targets[i] != b.Targets[i] {
			return false
		}
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}
	if (a.Body == nil) != (b.Body == nil) {
		return false
	}
	if a.Body != nil && !a.Body.Equal(b.Body) {
		return false
	}
	return true
}

// String renders the circuit the way it would be printed to a file:
// one instruction per line, REPEAT blocks indented.
func (c *Circuit) String() string {
	var b strings.Builder
	c.writeIndented(&b, "")
	return b.String()
}

func (c *Circuit) writeIndented(b *strings.Builder, indent string) {
	for _, op := range c.Instructions {
		b.WriteString(indent)
		if op.Gate == gate.Repeat {
			b.WriteString("REPEAT ")
			writeUint(b, op.RepeatCount)
			b.WriteString(" {\n")
			op.Body.writeIndented(b, indent+"    ")
			b.WriteString(indent)
			b.WriteString("}\n")
			continue
		}
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
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

// DescribeInstructionLocation renders a human-readable circuit
// location (tick count and instruction offset at the top level) for
// the instruction at the given top-level offset, used to build the
// frame stack on a diag.Error.
func (c *Circuit) DescribeInstructionLocation(instructionOffset int) (tick int, offset int) {
	ticks := 0
	for i, op := range c.Instructions {
		if i == instructionOffset {
			return ticks, i
		}
		if op.Gate == gate.Tick {
			ticks++
		}
	}
	return ticks, instructionOffset
}
