// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/regmach/cpu"
	"github.com/ezrec/regmach/internal"
)

// Emulator state. CPU + program + run limits.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program.

	StepLimit int // Maximum instructions per run; unlimited if zero.

	predefine map[string]int64
}

// State is a snapshot of the machine, suitable for serialization.
type State struct {
	Output    string           `yaml:"output"`
	Halted    bool             `yaml:"halted"`
	Ip        int              `yaml:"ip"`
	LineNo    int              `yaml:"line"`
	Compare   int64            `yaml:"compare"`
	Depth     int              `yaml:"depth"`
	Ticks     int              `yaml:"ticks"`
	Registers map[string]int64 `yaml:"registers"`
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Interpret assembles and runs a program, returning its output.
func Interpret(text string) (output string, err error) {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(text))
	if err != nil {
		return
	}

	emu := NewEmulator()
	emu.Program = prog

	output, err = emu.Run()

	return
}

// Predefine sets a register value applied at every Reset.
func (emu *Emulator) Predefine(reg string, value int64) {
	if emu.predefine == nil {
		emu.predefine = map[string]int64{reg: value}
	} else {
		emu.predefine[reg] = value
	}
}

// Defines returns an iterator over the predefined registers, by name.
func (emu *Emulator) Defines() iter.Seq2[string, int64] {
	return internal.IterSortedMap(emu.predefine)
}

// Reset loads the program and predefined registers into the CPU.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Program = emu.Program
	emu.Cpu.Reset()

	for reg, value := range emu.Defines() {
		if !cpu.IsRegister(reg) {
			err = &cpu.ErrToken{Err: cpu.ErrRegisterExpected, Token: reg}
			return
		}
		emu.Cpu.Register[reg] = value
		if emu.Verbose {
			log.Printf("emulator: %v = %v", reg, value)
		}
	}

	return
}

// Ticks returns the executed instructions since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line of the instruction at the instruction pointer.
func (emu *Emulator) LineNo() int {
	ins := emu.Program.Debug(emu.Cpu.Ip)
	if ins == nil {
		return 0
	}

	return ins.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	// Running off the end of the program is not a step.
	limited := emu.StepLimit > 0 && emu.Cpu.Ticks >= emu.StepLimit
	if limited && !emu.Cpu.Halted && emu.Program.Debug(emu.Cpu.Ip) != nil {
		err = ErrStepLimit
		return
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted

	return
}

// Run resets the emulator and runs the program until it halts.
// On error, no output is returned.
func (emu *Emulator) Run() (output string, err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			if emu.Verbose {
				log.Printf("emulator: %v\n%v", err, emu.Cpu.String())
			}
			return
		}
	}

	output = emu.Cpu.Output

	return
}

// State returns a snapshot of the machine.
func (emu *Emulator) State() (state State) {
	state = State{
		Output:    emu.Cpu.Output,
		Halted:    emu.Cpu.Halted,
		Ip:        emu.Cpu.Ip,
		LineNo:    emu.LineNo(),
		Compare:   emu.Cpu.Compare,
		Depth:     emu.Cpu.Stack.Depth(),
		Ticks:     emu.Cpu.Ticks,
		Registers: maps.Clone(emu.Cpu.Register),
	}

	return
}
