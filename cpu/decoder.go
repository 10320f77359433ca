package cpu

import (
	"strings"
	"unicode"
)

// Instruction is a decoded, not yet validated, line of program text.
type Instruction struct {
	Mnemonic string   // Uppercased mnemonic.
	Operands []string // Operand words in order; only the first two are used.
}

// String returns the canonical text of the instruction.
func (inst Instruction) String() string {
	return strings.Join(append([]string{inst.Mnemonic}, inst.Operands...), " ")
}

// isSeparator reports whether r separates words in an instruction line.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ','
}

// Decode splits a line into a mnemonic and its operand words.
// Words are separated by whitespace or commas, so "MOV AX, #1" and
// "MOV AX #1" decode the same.
// A line needs a mnemonic and at least two operands; the mnemonic itself
// is not checked here.
func Decode(line string) (inst Instruction, err error) {
	words := strings.FieldsFunc(line, isSeparator)
	if len(words) < 3 {
		err = ErrOperandCount(max(len(words)-1, 0))
		return
	}

	inst = Instruction{
		Mnemonic: strings.ToUpper(words[0]),
		Operands: words[1:],
	}

	return
}
