package circuit

import (
	"fmt"
	"strings"

	"stim/gate"
)

// Instruction is a single gate applied to a target list, with
// optional parens arguments. For a REPEAT instruction, Body holds the
// nested block and Targets/Args are unused (the repeat count lives in
// RepeatCount).
type Instruction struct {
	Gate        gate.Type
	Targets     []gate.Target
	Args        []float64
	RepeatCount uint64 // only meaningful when Gate == gate.Repeat
	Body        *Circuit
}

// CanFuse reports whether two adjacent instructions of the same gate
// could be merged into one wider invocation -- same gate, same args,
// and the gate isn't marked non-fusable (CORRELATED_ERROR chains must
// stay distinct instructions since each carries its own probability).
func (op Instruction) CanFuse(other Instruction) bool {
	if op.Gate != other.Gate {
		return false
	}
	info, ok := gate.Lookup(op.Gate)
	if !ok || info.Flags.Has(gate.IsNotFusable) {
		return false
	}
	if len(op.Args) != len(other.Args) {
		return false
	}
	for i := range op.Args {
		if op.Args[i] != other.Args[i] {
			return false
		}
	}
	return true
}

// CountMeasurementResults returns how many bits this instruction adds
// to the measurement record. Invalid to call on a REPEAT instruction;
// callers must account for repeat blocks via the body's own count
// multiplied by RepeatCount.
func (op Instruction) CountMeasurementResults() int {
	info, ok := gate.Lookup(op.Gate)
	if !ok || !info.Flags.Has(gate.ProducesResults) {
		return 0
	}
	switch {
	case info.Flags.Has(gate.TargetsPairs):
		return len(op.Targets) / 2
	case info.Flags.Has(gate.TargetsPauliString) || info.Flags.Has(gate.TargetsCombiners):
		return countPauliProductTerms(op.Targets)
	case op.Gate == gate.MPad:
		return len(op.Args)
	default:
		return len(op.Targets)
	}
}

// countPauliProductTerms counts how many "*"-joined Pauli product
// groups are in targets, used by MPP where each product contributes
// exactly one measurement result regardless of its term count.
func countPauliProductTerms(targets []gate.Target) int {
	if len(targets) == 0 {
		return 0
	}
	groups := 1
	for i := 1; i < len(targets); i++ {
		if !targets[i].IsCombiner() && !targets[i-1].IsCombiner() {
			groups++
		}
	}
	return groups
}

// String renders the instruction the way it would appear in a
// circuit file: NAME(args) target target ...
func (op Instruction) String() string {
	info, _ := gate.Lookup(op.Gate)
	var b strings.Builder
	b.WriteString(info.Name)
	if len(op.Args) > 0 {
		b.WriteByte('(')
		for i, a := range op.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%g", a)
		}
		b.WriteByte(')')
	}
	if op.Gate == gate.Repeat {
		fmt.Fprintf(&b, " %d", op.RepeatCount)
		return b.String()
	}
	for _, t := range op.Targets {
		b.WriteByte(' ')
		b.WriteString(targetString(t))
	}
	return b.String()
}

func targetString(t gate.Target) string {
	switch {
	case t.IsCombiner():
		return "*"
	case t.IsSweepBit():
		return fmt.Sprintf("sweep[%d]", t.Value())
	case t.IsRecord():
		s := fmt.Sprintf("rec[-%d]", t.Value())
		if t.IsInverted() {
			return "!" + s
		}
		return s
	default:
		prefix := ""
		if axis := t.PauliAxis(); axis != 0 {
			prefix = string(axis)
		}
		s := fmt.Sprintf("%s%d", prefix, t.Value())
		if t.IsInverted() {
			return "!" + s
		}
		return s
	}
}
