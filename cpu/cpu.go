package cpu

import (
	"cmp"
	"fmt"
	"log"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// DEFAULT_OUTPUT is the output of a program that never builds a message.
const DEFAULT_OUTPUT = "-1"

// Cpu is the execution context of the register machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Program being executed.

	Ip       int              // Index of the next instruction to execute.
	Register map[string]int64 // Register bank. Unset registers read as zero.
	Compare  int64            // Result of the last cmp.
	Stack    Stack            // Call stack of return addresses.
	Message  []string         // Message pattern of the last msg.

	Output string // Program output, valid once Halted.
	Halted bool   // Set by end, or by running off the end of the program.
	Ticks  int    // Executed instructions counter.
}

// NewCpu creates a new CPU with an empty program.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Program: &Program{},
	}

	cpu.Reset()

	return
}

// IsRegister returns true if word is a register name: one or more of 'a' to 'z'.
func IsRegister(word string) bool {
	if len(word) == 0 {
		return false
	}

	for _, c := range []byte(word) {
		if c < 'a' || c > 'z' {
			return false
		}
	}

	return true
}

// IsLiteral returns true if word is a decimal integer literal: an optional
// '-', then either '0' or a non-zero digit followed by digits.
func IsLiteral(word string) bool {
	digits := strings.TrimPrefix(word, "-")
	if len(digits) == 0 {
		return false
	}
	if digits[0] == '0' {
		return len(digits) == 1
	}

	for _, c := range []byte(digits) {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

// Reset the CPU state.
// - Clears the registers, comparison result, stack and message.
// - Rewinds to the first instruction.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	if cpu.Register == nil {
		cpu.Register = make(map[string]int64)
	}
	clear(cpu.Register)

	cpu.Ip = 0
	cpu.Compare = 0
	cpu.Stack.Reset()
	cpu.Message = nil
	cpu.Output = DEFAULT_OUTPUT
	cpu.Halted = false
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 8s: %v\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 8s: %v\n", "cmp", cpu.Compare)

	ret, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("% 8s: %v (depth %d)\n", "stack", ret, cpu.Stack.Depth())
	} else {
		text += fmt.Sprintf("% 8s: --\n", "stack")
	}

	for _, reg := range slices.Sorted(maps.Keys(cpu.Register)) {
		text += fmt.Sprintf("% 8s: %v\n", reg, cpu.Register[reg])
	}

	return
}

// Value resolves a register name or integer literal.
func (cpu *Cpu) Value(word string) (value int64, err error) {
	switch {
	case IsRegister(word):
		value = cpu.Register[word]
	case IsLiteral(word):
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = &ErrToken{Err: ErrOperandInvalid, Token: word}
		}
	default:
		err = &ErrToken{Err: ErrOperandInvalid, Token: word}
	}

	return
}

// BuildOutput renders the message pattern. Quoted text is copied without
// its quotes, registers are replaced by their decimal value.
func (cpu *Cpu) BuildOutput() (output string, err error) {
	if len(cpu.Message) == 0 {
		output = DEFAULT_OUTPUT
		return
	}

	var text strings.Builder
	for _, arg := range cpu.Message {
		switch {
		case strings.HasPrefix(arg, "'"):
			end := strings.LastIndexByte(arg, '\'')
			if end == 0 {
				err = &ErrToken{Err: ErrMessageArgument, Token: arg}
				return
			}
			text.WriteString(arg[1:end])
		case IsRegister(arg):
			text.WriteString(strconv.FormatInt(cpu.Register[arg], 10))
		default:
			err = &ErrToken{Err: ErrMessageArgument, Token: arg}
			return
		}
	}

	output = text.String()
	return
}

// Tick executes the instruction at the instruction pointer.
// Running off the end of the program halts with the default output.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	if cpu.Program == nil {
		err = ErrProgramMissing
		return
	}

	ins := cpu.Program.Debug(cpu.Ip)
	if ins == nil {
		if cpu.Verbose {
			log.Printf("%04d: end of program", cpu.Ip)
		}
		cpu.halt(DEFAULT_OUTPUT)
		return
	}

	cpu.Ticks++

	err = cpu.Execute(*ins)

	return
}

func (cpu *Cpu) halt(output string) {
	cpu.Output = output
	cpu.Halted = true
}

// register checks that an argument names a register.
func register(word string) (err error) {
	if !IsRegister(word) {
		err = &ErrToken{Err: ErrRegisterExpected, Token: word}
	}
	return
}

// Execute executes a single instruction as if it were at the instruction pointer.
// A failing instruction leaves the CPU state unchanged.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%04d: %v", cpu.Ip, ins)
	}

	op := ins.Op
	args := ins.Args

	want := op.Arity()
	if want >= 0 && len(args) != want {
		err = &ErrArgs{Op: op, Want: want, Got: len(args)}
		return
	}

	next := cpu.Ip + 1

	switch op {
	case OP_MOV:
		err = register(args[0])
		if err != nil {
			return
		}
		var value int64
		value, err = cpu.Value(args[1])
		if err != nil {
			return
		}
		cpu.Register[args[0]] = value
	case OP_INC, OP_DEC, OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		err = register(args[0])
		if err != nil {
			return
		}
		value := int64(1)
		if len(args) > 1 {
			value, err = cpu.Value(args[1])
			if err != nil {
				return
			}
		}
		var result int64
		result, err = doAlu(op, cpu.Register[args[0]], value)
		if err != nil {
			err = &ErrToken{Err: err, Token: ins.String()}
			return
		}
		cpu.Register[args[0]] = result
	case OP_CMP:
		var a, b int64
		a, err = cpu.Value(args[0])
		if err != nil {
			return
		}
		b, err = cpu.Value(args[1])
		if err != nil {
			return
		}
		cpu.Compare = doCompare(a, b)
	case OP_JMP, OP_JNE, OP_JE, OP_JGE, OP_JG, OP_JLE, OP_JL:
		var target int
		target, err = cpu.Program.Target(args[0])
		if err != nil {
			return
		}
		if taken(op, cpu.Compare) {
			next = target
		}
	case OP_CALL:
		var target int
		target, err = cpu.Program.Target(args[0])
		if err != nil {
			return
		}
		err = cpu.Stack.Push(next)
		if err != nil {
			return
		}
		next = target
	case OP_RET:
		ret, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		next = ret
	case OP_MSG:
		cpu.Message = args
	case OP_END:
		var output string
		output, err = cpu.BuildOutput()
		if err != nil {
			return
		}
		cpu.halt(output)
	default:
		err = &ErrToken{Err: ErrUnknownInstruction, Token: op.String()}
		return
	}

	cpu.Ip = next

	return
}

// taken returns true if a jump is taken for a comparison result.
func taken(op Op, compare int64) bool {
	switch op {
	case OP_JMP:
		return true
	case OP_JNE:
		return compare != 0
	case OP_JE:
		return compare == 0
	case OP_JGE:
		return compare >= 0
	case OP_JG:
		return compare > 0
	case OP_JLE:
		return compare <= 0
	case OP_JL:
		return compare < 0
	}

	return false
}

// doCompare returns a - b. If the difference overflows, only its sign is kept.
func doCompare(a, b int64) int64 {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		return int64(cmp.Compare(a, b))
	}
	return diff
}

// doAlu computes a register update, failing on overflow or division by zero.
func doAlu(op Op, a, b int64) (result int64, err error) {
	switch op {
	case OP_INC, OP_ADD:
		result = a + b
		if (b > 0 && result < a) || (b < 0 && result > a) {
			err = ErrOverflow
		}
	case OP_DEC, OP_SUB:
		result = a - b
		if (b > 0 && result > a) || (b < 0 && result < a) {
			err = ErrOverflow
		}
	case OP_MUL:
		if a == 0 || b == 0 {
			return
		}
		result = a * b
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || result/b != a {
			err = ErrOverflow
		}
	case OP_DIV:
		switch {
		case b == 0:
			err = ErrDivisionByZero
		case a == math.MinInt64 && b == -1:
			err = ErrOverflow
		default:
			result = a / b
		}
	}

	if err != nil {
		result = 0
	}

	return
}
