// Package cpu implements the 16-bit register machine and its instruction decoder.
//
// The machine has four 16-bit registers (AX, BX, CX, DX) and understands
// three two-operand instructions: MOV, ADD and SUB. The destination operand
// is always a register; the source operand is either a register or a
// '#'-prefixed hexadecimal immediate. Arithmetic wraps modulo 2^16.
//
// Instructions are decoded from text one line at a time; there is no
// binary encoding, memory, branching or flag state.
package cpu
