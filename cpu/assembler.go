// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"math"
	"slices"
	"strings"
)

// whitespace separates words. Other Unicode spaces are part of a word.
const whitespace = " \t\n\r\f\v"

func isWhitespace(c rune) bool {
	return strings.ContainsRune(whitespace, c)
}

// Assembler is a single pass assembler for the register machine.
type Assembler struct {
	Verbose      bool          // If set, verbosely logs the assembler actions.
	Instructions []Instruction // List of parsed instructions.

	Label map[string]int // Map of labels to instruction indexes.
}

// isLabel reports whether a word declares a label, returning its name.
func isLabel(word string) (label string, ok bool) {
	if len(word) > 1 && strings.HasSuffix(word, ":") {
		label = word[:len(word)-1]
		ok = true
	}
	return
}

// msgArgs splits the text following a msg mnemonic into arguments.
// Commas inside single quotes do not separate; quotes are kept.
func msgArgs(text string) (args []string) {
	var arg strings.Builder
	quoted := false

	for _, c := range text {
		switch {
		case c == ' ' && arg.Len() == 0:
			continue
		case c == '\'':
			quoted = !quoted
		case c == ',' && !quoted:
			args = append(args, arg.String())
			arg.Reset()
			continue
		}
		arg.WriteRune(c)
	}

	if arg.Len() > 0 {
		args = append(args, arg.String())
	}

	return
}

// wordArgs splits whitespace separated arguments, dropping one trailing comma from each.
func wordArgs(text string) (args []string) {
	for _, word := range strings.FieldsFunc(text, isWhitespace) {
		args = append(args, strings.TrimSuffix(word, ","))
	}
	return
}

// parseLine parses a single comment-free, trimmed line.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	if len(line) == 0 {
		return
	}

	word, rest := line, ""
	if i := strings.IndexAny(line, whitespace); i >= 0 {
		word, rest = line[:i], line[i:]
	}

	label, ok := isLabel(word)
	if ok {
		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = len(asm.Instructions)
		return
	}

	op, ok := ParseOp(word)
	if !ok {
		err = &ErrToken{Err: ErrUnknownInstruction, Token: word}
		return
	}

	var args []string
	if op == OP_MSG {
		args = msgArgs(rest)
	} else {
		args = wordArgs(rest)
	}

	asm.Instructions = append(asm.Instructions, Instruction{
		LineNo: lineno,
		Op:     op,
		Args:   args,
	})

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Instructions = asm.Instructions[:0]

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text, _, _ = strings.Cut(text, ";")
		line = strings.Trim(text, whitespace)

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		lineno += 1
		line = ""
		return
	}

	prog = &Program{
		Instructions: slices.Clone(asm.Instructions),
		Label:        maps.Clone(asm.Label),
	}
	if prog.Label == nil {
		prog.Label = map[string]int{}
	}

	return
}
