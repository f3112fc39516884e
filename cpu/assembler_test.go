package cpu

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Instructions))
	assert.NotNil(prog.Label)
	assert.Equal(0, len(prog.Label))
}

func insEqual(t *testing.T, expected, instructions []Instruction) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(instructions))
	if len(expected) == len(instructions) {
		for n := range len(expected) {
			assert.Equal(expected[n], instructions[n])
		}
	}
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"; header comment",
		"",
		"start:",
		"  mov   a, 2   ; set a",
		"\tinc a",
		"loop: ignored words",
		"call  loop",
		"   ; only a comment",
		"done:",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Instruction{
		{4, OP_MOV, []string{"a", "2"}},
		{5, OP_INC, []string{"a"}},
		{7, OP_CALL, []string{"loop"}},
	}

	insEqual(t, expected, prog.Instructions)

	assert.Equal(map[string]int{"start": 0, "loop": 2, "done": 3}, prog.Label)
}

func TestAssemblerLabelRedefined(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"here:",
		"inc a",
		"here:",
		"inc b",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(1, prog.Label["here"])
}

func TestAssemblerArgs(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line string
		op   Op
		args []string
	}){
		{"mov a, 5", OP_MOV, []string{"a", "5"}},
		{"mov a 5", OP_MOV, []string{"a", "5"}},
		{"mov a,5", OP_MOV, []string{"a,5"}},
		{"add x,, 1", OP_ADD, []string{"x,", "1"}},
		{"cmp a, , b", OP_CMP, []string{"a", "", "b"}},
		{"jne\tloop", OP_JNE, []string{"loop"}},
		{"ret", OP_RET, nil},
		{"end", OP_END, nil},
		{"msg a, '^', b, ' = ', c", OP_MSG, []string{"a", "'^'", "b", "' = '", "c"}},
		{"msg 'gcd(', a, ', ', b, ') = ', c", OP_MSG, []string{"'gcd('", "a", "', '", "b", "') = '", "c"}},
		{"msg 'x, y',z", OP_MSG, []string{"'x, y'", "z"}},
		{"msg '  spaced  '", OP_MSG, []string{"'  spaced  '"}},
		{"msg a,,b", OP_MSG, []string{"a", "", "b"}},
		{"msg a ,b", OP_MSG, []string{"a ", "b"}},
		{"msg a,", OP_MSG, []string{"a"}},
		{"msg", OP_MSG, nil},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(entry.line))
		assert.NoError(err, entry.line)
		if !assert.Equal(1, len(prog.Instructions), entry.line) {
			continue
		}
		ins := prog.Instructions[0]
		assert.Equal(entry.op, ins.Op, entry.line)
		assert.Equal(entry.args, ins.Args, entry.line)
	}
}

func TestAssemblerUnknownInstruction(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []string
		lineno  int
		token   string
	}){
		{[]string{"mov a, 1", "MOV a, 2"}, 2, "MOV"},
		{[]string{"", "", "  nop  ; nothing"}, 3, "nop"},
		{[]string{": foo"}, 1, ":"},
		{[]string{"jmp", "je:x"}, 2, "je:x"},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.Nil(prog)
		assert.True(errors.Is(err, ErrUnknownInstruction), entry.token)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax)) {
			assert.Equal(entry.lineno, syntax.LineNo)
		}

		var token *ErrToken
		if assert.True(errors.As(err, &token)) {
			assert.Equal(entry.token, token.Token)
		}
	}
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader("a:\ninc a\nb:\ninc b"))
	assert.NoError(err)
	assert.Equal(2, len(prog.Instructions))
	assert.Equal(2, len(prog.Label))

	second, err := asm.Parse(strings.NewReader("end"))
	assert.NoError(err)
	assert.Equal(1, len(second.Instructions))
	assert.Equal(0, len(second.Label))

	// The first program is not affected by reuse of the assembler.
	assert.Equal(2, len(prog.Instructions))
	assert.Equal(OP_INC, prog.Instructions[0].Op)
	assert.Equal(2, len(prog.Label))
}

func TestAssemblerLongLine(t *testing.T) {
	assert := assert.New(t)

	text := "'" + strings.Repeat("x", 70000) + "'"
	program := []string{
		"mov a, 5",
		"msg " + text + ", a",
		"end",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(err) {
		return
	}

	if assert.Equal(3, len(prog.Instructions)) {
		assert.Equal([]string{text, "a"}, prog.Instructions[1].Args)
		assert.Equal(2, prog.Instructions[1].LineNo)
	}
}

func TestAssemblerReadError(t *testing.T) {
	assert := assert.New(t)

	errRead := errors.New("read failed")

	asm := &Assembler{}
	prog, err := asm.Parse(iotest.ErrReader(errRead))
	assert.Nil(prog)
	assert.ErrorIs(err, errRead)

	var syntax *ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(1, syntax.LineNo)
		assert.Equal("", syntax.Line)
	}
}

func TestAssemblerWhitespace(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("\v\finc\ta \r\nmov\fb,\v2\f"))
	assert.NoError(err)
	expected := []Instruction{
		{1, OP_INC, []string{"a"}},
		{2, OP_MOV, []string{"b", "2"}},
	}
	insEqual(t, expected, prog.Instructions)

	// A non-breaking space does not separate words.
	prog, err = asm.Parse(strings.NewReader("inc\u00a0a"))
	assert.Nil(prog)
	var token *ErrToken
	if assert.True(errors.As(err, &token)) {
		assert.Equal(ErrUnknownInstruction, token.Err)
		assert.Equal("inc\u00a0a", token.Token)
	}

	prog, err = asm.Parse(strings.NewReader("mov a,\u00a01"))
	assert.NoError(err)
	if assert.Equal(1, len(prog.Instructions)) {
		assert.Equal([]string{"a,\u00a01"}, prog.Instructions[0].Args)
	}
}
