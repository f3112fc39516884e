package cpu

import (
	"fmt"
	"iter"
	"slices"
)

// Program is an assembled program: a flat instruction list plus labels.
type Program struct {
	Instructions []Instruction
	Label        map[string]int // Map of labels to instruction indexes.
}

// Target returns the instruction index of a label.
func (prog *Program) Target(label string) (ip int, err error) {
	ip, ok := prog.Label[label]
	if !ok {
		err = &ErrToken{Err: ErrLabelUnknown, Token: label}
	}
	return
}

// Debug returns the instruction at ip, or nil if ip is outside the program.
func (prog *Program) Debug(ip int) (ins *Instruction) {
	if prog == nil || ip < 0 || ip >= len(prog.Instructions) {
		return
	}

	ins = &prog.Instructions[ip]
	return
}

// Listing yields each instruction with its index.
func (prog *Program) Listing() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, ins Instruction) bool) {
		for ip, ins := range prog.Instructions {
			if !yield(ip, ins) {
				return
			}
		}
	}
}

// Labels yields the labels that resolve to ip.
func (prog *Program) Labels(ip int) iter.Seq[string] {
	return func(yield func(label string) bool) {
		for label, target := range prog.Label {
			if target == ip && !yield(label) {
				return
			}
		}
	}
}

// String returns the program as an assembler listing.
func (prog *Program) String() (text string) {
	for ip, ins := range prog.Listing() {
		for _, label := range slices.Sorted(prog.Labels(ip)) {
			text += label + ":\n"
		}
		text += fmt.Sprintf("%4d: %v\n", ip, ins)
	}

	for _, label := range slices.Sorted(prog.Labels(len(prog.Instructions))) {
		text += label + ":\n"
	}

	return
}
