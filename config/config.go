// Package config loads run configuration for the register machine.
//
// Configuration is TOML. Register initializers are integer expressions,
// evaluated once at load time:
//
//	verbose = false
//	step_limit = 100000000
//	stack_limit = 65536
//
//	[registers]
//	a = "2"
//	b = "5 * 2"
package config

import (
	"iter"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/regmach/cpu"
	"github.com/ezrec/regmach/internal"
)

const (
	DEFAULT_STEP_LIMIT = 100_000_000 // Default instructions per run.
)

// Config holds the run configuration.
type Config struct {
	Verbose    bool              `toml:"verbose"`
	StepLimit  int               `toml:"step_limit"`
	StackLimit int               `toml:"stack_limit"`
	Language   []string          `toml:"language"`
	Expression map[string]string `toml:"registers"`

	registers map[string]int64
}

// Default returns the default configuration.
func Default() (cfg *Config) {
	cfg = &Config{
		StepLimit:  DEFAULT_STEP_LIMIT,
		StackLimit: cpu.STACK_LIMIT,
		Expression: map[string]string{},
		registers:  map[string]int64{},
	}

	return
}

// Load reads a configuration file.
func Load(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	cfg, err = Parse(string(data))
	if err != nil {
		err = &ErrConfig{Path: path, Err: err}
		return
	}

	return
}

// Parse parses configuration text, starting from the defaults.
func Parse(text string) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.Decode(text, cfg)
	if err != nil {
		cfg = nil
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		err = &ErrKey{Key: undecoded[0].String()}
		cfg = nil
		return
	}

	err = cfg.validate()
	if err != nil {
		cfg = nil
		return
	}

	return
}

// validate checks limits and evaluates the register expressions.
func (cfg *Config) validate() (err error) {
	if cfg.StepLimit < 0 {
		err = &ErrKey{Key: "step_limit"}
		return
	}
	if cfg.StackLimit < 0 {
		err = &ErrKey{Key: "stack_limit"}
		return
	}

	clear(cfg.registers)
	for reg, expr := range internal.IterSortedMap(cfg.Expression) {
		err = cfg.Define(reg, expr)
		if err != nil {
			return
		}
	}

	return
}

// Define evaluates expr and sets it as the initial value of a register.
func (cfg *Config) Define(reg string, expr string) (err error) {
	if !cpu.IsRegister(reg) {
		err = &cpu.ErrToken{Err: cpu.ErrRegisterExpected, Token: reg}
		return
	}

	value, err := Eval(expr)
	if err != nil {
		return
	}

	if cfg.registers == nil {
		cfg.registers = make(map[string]int64)
	}
	cfg.registers[reg] = value

	return
}

// ParseDefine parses and evaluates a "reg=expr" definition.
func ParseDefine(define string) (reg string, value int64, err error) {
	reg, expr, ok := strings.Cut(define, "=")
	if !ok {
		err = &ErrDefine{Define: define}
		return
	}

	reg = strings.TrimSpace(reg)
	if !cpu.IsRegister(reg) {
		err = &cpu.ErrToken{Err: cpu.ErrRegisterExpected, Token: reg}
		return
	}

	value, err = Eval(expr)
	return
}

// Registers yields the initial register values, by name.
func (cfg *Config) Registers() iter.Seq2[string, int64] {
	return internal.IterSortedMap(cfg.registers)
}
