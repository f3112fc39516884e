// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/regmach/config"
	"github.com/ezrec/regmach/cpu"
	"github.com/ezrec/regmach/emulator"
	"github.com/ezrec/regmach/internal"
	"github.com/ezrec/regmach/translate"
)

var (
	cfgFile string
	verbose bool
	defines []string
	steps   int
	state   bool
	lang    []string
)

var rootCmd = &cobra.Command{
	Use:   "regmach [flags] FILE...",
	Short: "Assemble and run register machine programs",
	Long: `regmach assembles each FILE and runs it, printing the program output.

A program that runs off its end, or ends without a msg, prints -1.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "TOML run configuration")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	rootCmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "Predefine a register, as reg=expr")
	rootCmd.Flags().IntVar(&steps, "steps", -1, "Step limit, 0 for unlimited (default from config)")
	rootCmd.Flags().BoolVar(&state, "state", false, "Print the final machine state as YAML")
	rootCmd.Flags().StringSliceVar(&lang, "lang", nil, "Message languages, as BCP 47 tags (selects number formatting)")
}

// loadConfig reads the configuration file, if any, and applies the flags.
// Registers defined by flags are returned separately, as they override the file.
func loadConfig() (cfg *config.Config, regs map[string]int64, err error) {
	cfg = config.Default()
	if len(cfgFile) != 0 {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return
		}
	}

	if verbose {
		cfg.Verbose = true
	}
	if steps >= 0 {
		cfg.StepLimit = steps
	}
	if len(lang) != 0 {
		cfg.Language = lang
	}

	regs = make(map[string]int64, len(defines))
	for _, define := range defines {
		var reg string
		var value int64
		reg, value, err = config.ParseDefine(define)
		if err != nil {
			return
		}
		regs[reg] = value
	}

	return
}

// dumpState writes the final machine state of a program as YAML.
func dumpState(w io.Writer, path string, st emulator.State) (err error) {
	enc := yaml.NewEncoder(w)
	defer func() {
		cerr := enc.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = enc.Encode(map[string]emulator.State{path: st})

	return
}

// runFile assembles and runs a single program file.
func runFile(cfg *config.Config, regs map[string]int64, path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: cfg.Verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = cfg.Verbose
	emu.Program = prog
	emu.StepLimit = cfg.StepLimit
	emu.Cpu.Stack.Limit = cfg.StackLimit
	for reg, value := range internal.IterSeq2Concat(cfg.Registers(), internal.IterSortedMap(regs)) {
		emu.Predefine(reg, value)
	}

	output, err := emu.Run()
	if state {
		serr := dumpState(os.Stdout, path, emu.State())
		if err == nil {
			err = serr
		}
	}
	if err != nil {
		return
	}

	fmt.Println(output)

	return
}

func run(cmd *cobra.Command, args []string) (err error) {
	cfg, regs, err := loadConfig()
	if err != nil {
		return
	}

	if len(cfg.Language) != 0 {
		translate.SetLanguage(cfg.Language...)
	}

	for _, path := range args {
		err = runFile(cfg, regs, path)
		if err != nil {
			err = fmt.Errorf("%v: %w", path, err)
			return
		}
	}

	return
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", rootCmd.Name(), err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
