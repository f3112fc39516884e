package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOp(t *testing.T) {
	assert := assert.New(t)

	mnemonics := []string{
		"mov", "inc", "dec", "add", "sub", "mul", "div",
		"jmp", "cmp", "jne", "je", "jge", "jg", "jle", "jl",
		"call", "msg", "ret", "end",
	}

	for n, word := range mnemonics {
		op, ok := ParseOp(word)
		assert.True(ok, word)
		assert.Equal(Op(n), op, word)
		assert.Equal(word, op.String())
	}

	for _, word := range []string{"MOV", "Mov", "nop", "", "jmp:", "call,"} {
		_, ok := ParseOp(word)
		assert.False(ok, word)
	}

	assert.Equal("Op(19)", Op(19).String())
}

func TestOpArity(t *testing.T) {
	assert := assert.New(t)

	table := map[Op]int{
		OP_MOV: 2, OP_ADD: 2, OP_SUB: 2, OP_MUL: 2, OP_DIV: 2, OP_CMP: 2,
		OP_INC: 1, OP_DEC: 1, OP_JMP: 1, OP_JNE: 1, OP_JE: 1, OP_JGE: 1,
		OP_JG: 1, OP_JLE: 1, OP_JL: 1, OP_CALL: 1,
		OP_MSG: -1, OP_RET: -1, OP_END: -1,
	}

	assert.Equal(op_count, len(table))
	for op, arity := range table {
		assert.Equal(arity, op.Arity(), op.String())
	}
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("ret", Instruction{Op: OP_RET}.String())
	assert.Equal("mov a, 5", Instruction{Op: OP_MOV, Args: []string{"a", "5"}}.String())
	assert.Equal("msg 'a, b', c", Instruction{Op: OP_MSG, Args: []string{"'a, b'", "c"}}.String())
}
