package cpu

import (
	"errors"

	"github.com/ezrec/regmach/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrUnknownInstruction = errors.New(f("unknown instruction"))

	// Cpu errors
	ErrArgumentCount    = errors.New(f("argument count mismatch"))
	ErrRegisterExpected = errors.New(f("register expected"))
	ErrOperandInvalid   = errors.New(f("operand invalid"))
	ErrLabelUnknown     = errors.New(f("label unknown"))
	ErrStackEmpty       = errors.New(f("stack empty"))
	ErrStackFull        = errors.New(f("stack full"))
	ErrMessageArgument  = errors.New(f("message argument invalid"))
	ErrDivisionByZero   = errors.New(f("division by zero"))
	ErrOverflow         = errors.New(f("integer overflow"))
	ErrHalted           = errors.New(f("halted"))
	ErrProgramMissing   = errors.New(f("program missing"))
)

// ErrToken is an error caused by a specific source token.
type ErrToken struct {
	Err   error
	Token string
}

func (err *ErrToken) Error() string {
	return f("%v '%v'", err.Err, err.Token)
}

func (err *ErrToken) Unwrap() error {
	return err.Err
}

// ErrArgs is an argument count mismatch for an operation.
type ErrArgs struct {
	Op   Op
	Want int
	Got  int
}

func (err *ErrArgs) Error() string {
	return f("%v: %v wants %d, got %d", ErrArgumentCount, err.Op, err.Want, err.Got)
}

func (err *ErrArgs) Is(target error) bool {
	return target == ErrArgumentCount
}

// ErrSyntax locates an assembler error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
