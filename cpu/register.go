package cpu

import (
	"fmt"
	"iter"
	"strings"
)

const (
	WORD_BITS = 16     // Register width in bits.
	WORD_MASK = 0xffff // Mask applied after every register write.
)

// Register is a register index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_AX = Register(0) // AX
	REG_BX = Register(1) // BX
	REG_CX = Register(2) // CX
	REG_DX = Register(3) // DX
)

// REG_COUNT is the number of registers in the bank.
const REG_COUNT = int(REG_DX) + 1

// regMap maps register names to registers.
var regMap = map[string]Register{
	"AX": REG_AX,
	"BX": REG_BX,
	"CX": REG_CX,
	"DX": REG_DX,
}

// ParseRegister returns the register with the given name.
// Names are case sensitive.
func ParseRegister(name string) (reg Register, err error) {
	reg, ok := regMap[name]
	if !ok {
		err = ErrParseRegister(name)
	}

	return
}

// Registers is the register bank.
type Registers struct {
	Value [REG_COUNT]uint16
}

// Get returns the value of a register.
func (r Registers) Get(reg Register) uint16 {
	return r.Value[reg]
}

// Set truncates value to 16 bits and stores it in a register.
func (r *Registers) Set(reg Register, value uint32) {
	r.Value[reg] = uint16(value & WORD_MASK)
}

// Reset zeroes all registers.
func (r *Registers) Reset() {
	clear(r.Value[:])
}

// All iterates over the registers in bank order.
func (r Registers) All() iter.Seq2[Register, uint16] {
	return func(yield func(reg Register, value uint16) bool) {
		for n, value := range r.Value {
			if !yield(Register(n), value) {
				return
			}
		}
	}
}

// String renders the bank as one 'NAME: VVVV' line per register.
func (r Registers) String() string {
	var text strings.Builder
	for reg, value := range r.All() {
		fmt.Fprintf(&text, "%v: %04X\n", reg, value)
	}

	return text.String()
}
