// Package cpu implements the register machine and its assembler.
//
// The machine has an unbounded bank of named 64-bit integer registers
// (any name of lowercase letters, implicitly zero), a comparison result
// set by cmp and consumed by the conditional jumps, a call stack of
// return addresses, and a message pattern that becomes the program output
// when end executes.
//
// The assembler turns program text into a flat instruction list and a
// label table. Labels index into the instruction list, so jumps, calls and
// returns only ever move the instruction pointer.
package cpu
