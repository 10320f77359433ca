package cpu

import (
	"fmt"
	"math/big"
	"strings"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_MOV = Op(0) // MOV
	OP_ADD = Op(1) // ADD
	OP_SUB = Op(2) // SUB
)

// opMap maps mnemonics to operations.
var opMap = map[string]Op{
	"MOV": OP_MOV,
	"ADD": OP_ADD,
	"SUB": OP_SUB,
}

// ParseOp returns the operation for an uppercase mnemonic.
func ParseOp(mnemonic string) (op Op, err error) {
	op, ok := opMap[mnemonic]
	if !ok {
		err = ErrParseOp(mnemonic)
	}

	return
}

// OperandKind is the type of a source operand.
type OperandKind int

const (
	OPERAND_REGISTER  = OperandKind(0) // Register reference.
	OPERAND_IMMEDIATE = OperandKind(1) // '#' prefixed hexadecimal literal.
)

// Operand is a resolved source operand.
type Operand struct {
	Kind      OperandKind
	Register  Register // Valid when Kind is OPERAND_REGISTER.
	Immediate uint16   // Valid when Kind is OPERAND_IMMEDIATE.
}

// Value returns the operand value against a register bank.
func (op Operand) Value(regs *Registers) uint16 {
	if op.Kind == OPERAND_IMMEDIATE {
		return op.Immediate
	}

	return regs.Get(op.Register)
}

// String returns the assembly text of the operand.
func (op Operand) String() string {
	if op.Kind == OPERAND_IMMEDIATE {
		return fmt.Sprintf("#%04X", op.Immediate)
	}

	return op.Register.String()
}

// ParseOperand parses a source operand: either '#' and hex digits, or a
// register name.
func ParseOperand(word string) (op Operand, err error) {
	if digits, ok := strings.CutPrefix(word, "#"); ok {
		op.Kind = OPERAND_IMMEDIATE
		op.Immediate, err = parseImmediate(digits)
		return
	}

	op.Kind = OPERAND_REGISTER
	op.Register, err = ParseRegister(word)

	return
}

// ParseDestination parses a destination operand, which must name a register.
func ParseDestination(word string) (reg Register, err error) {
	if strings.HasPrefix(word, "#") {
		err = ErrDestination(word)
		return
	}

	return ParseRegister(word)
}

var wordMask = big.NewInt(WORD_MASK)

// parseImmediate parses hex digits of any length, with an optional sign and
// optional 0x prefix, reducing the result modulo 2^16.
func parseImmediate(digits string) (value uint16, err error) {
	text := digits
	negative := false
	switch {
	case strings.HasPrefix(text, "-"):
		negative = true
		text = text[1:]
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	}
	if len(text) > 2 && (text[:2] == "0x" || text[:2] == "0X") {
		text = text[2:]
	}

	if len(text) == 0 || text[0] == '+' || text[0] == '-' {
		err = ErrParseImmediate(digits)
		return
	}

	v, ok := new(big.Int).SetString(text, 16)
	if !ok {
		err = ErrParseImmediate(digits)
		return
	}
	if negative {
		v.Neg(v)
	}

	// big.Int And uses two's complement for negative values.
	value = uint16(v.And(v, wordMask).Uint64())

	return
}
