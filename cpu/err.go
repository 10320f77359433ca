package cpu

import (
	"errors"

	"github.com/ezrec/regsim/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrMalformedInstruction = errors.New(f("malformed instruction"))
	ErrUnknownInstruction   = errors.New(f("unknown instruction"))

	// Operand errors
	ErrUnknownRegister    = errors.New(f("unknown register"))
	ErrInvalidImmediate   = errors.New(f("invalid immediate"))
	ErrInvalidDestination = errors.New(f("invalid destination"))
)

// errKinds is the closed set of error kinds reported by the machine.
var errKinds = []error{
	ErrMalformedInstruction,
	ErrUnknownInstruction,
	ErrUnknownRegister,
	ErrInvalidImmediate,
	ErrInvalidDestination,
}

// Kind returns the error kind sentinel of err, or nil if err did not
// originate from the machine.
func Kind(err error) error {
	for _, kind := range errKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

type ErrOperandCount int

func (err ErrOperandCount) Error() string {
	return f("%d operands, need 2", int(err))
}

func (err ErrOperandCount) Unwrap() error {
	return ErrMalformedInstruction
}

type ErrParseOp string

func (err ErrParseOp) Error() string {
	return f("unknown instruction '%v'", string(err))
}

func (err ErrParseOp) Unwrap() error {
	return ErrUnknownInstruction
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("unknown register '%v'", string(err))
}

func (err ErrParseRegister) Unwrap() error {
	return ErrUnknownRegister
}

type ErrParseImmediate string

func (err ErrParseImmediate) Error() string {
	return f("'%v' is not a hexadecimal immediate", string(err))
}

func (err ErrParseImmediate) Unwrap() error {
	return ErrInvalidImmediate
}

type ErrDestination string

func (err ErrDestination) Error() string {
	return f("'%v' is not a register destination", string(err))
}

func (err ErrDestination) Unwrap() error {
	return ErrInvalidDestination
}
