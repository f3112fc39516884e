package cpu

import (
	"strings"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_MOV  = Op(0)  // mov
	OP_INC  = Op(1)  // inc
	OP_DEC  = Op(2)  // dec
	OP_ADD  = Op(3)  // add
	OP_SUB  = Op(4)  // sub
	OP_MUL  = Op(5)  // mul
	OP_DIV  = Op(6)  // div
	OP_JMP  = Op(7)  // jmp
	OP_CMP  = Op(8)  // cmp
	OP_JNE  = Op(9)  // jne
	OP_JE   = Op(10) // je
	OP_JGE  = Op(11) // jge
	OP_JG   = Op(12) // jg
	OP_JLE  = Op(13) // jle
	OP_JL   = Op(14) // jl
	OP_CALL = Op(15) // call
	OP_MSG  = Op(16) // msg
	OP_RET  = Op(17) // ret
	OP_END  = Op(18) // end

	op_count = 19
)

// opMap maps mnemonics to operations.
var opMap = func() map[string]Op {
	ops := make(map[string]Op, op_count)
	for op := range Op(op_count) {
		ops[op.String()] = op
	}
	return ops
}()

// ParseOp returns the operation for a mnemonic. Mnemonics are lowercase only.
func ParseOp(word string) (op Op, ok bool) {
	op, ok = opMap[word]
	return
}

// Arity returns the required argument count, or -1 if any count is accepted.
func (op Op) Arity() int {
	switch op {
	case OP_MSG, OP_RET, OP_END:
		return -1
	case OP_INC, OP_DEC, OP_JMP, OP_JNE, OP_JE, OP_JGE, OP_JG, OP_JLE, OP_JL, OP_CALL:
		return 1
	default:
		return 2
	}
}

// Instruction is a single parsed line of a program.
type Instruction struct {
	LineNo int      // Source line, starting from 1.
	Op     Op       // Operation.
	Args   []string // Argument tokens as written.
}

// String returns the instruction in assembler syntax.
func (ins Instruction) String() string {
	if len(ins.Args) == 0 {
		return ins.Op.String()
	}

	return ins.Op.String() + " " + strings.Join(ins.Args, ", ")
}
