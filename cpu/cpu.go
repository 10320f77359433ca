package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"WORD_BITS": fmt.Sprintf("%X", WORD_BITS),
	"WORD_MASK": fmt.Sprintf("%X", WORD_MASK),
}

// Cpu is the simulation context for the register machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers Registers // Register bank.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU with all registers zeroed.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu, as hexadecimal text.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current register state as a string.
func (cpu *Cpu) String() string {
	return cpu.Registers.String()
}

// Snapshot returns a copy of the register bank.
func (cpu *Cpu) Snapshot() Registers {
	return cpu.Registers
}

// Reset the CPU state.
// - Clears the registers.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Ticks = 0
}

// ExecuteLine decodes and executes a single line of program text.
func (cpu *Cpu) ExecuteLine(line string) (err error) {
	inst, err := Decode(line)
	if err != nil {
		return
	}

	return cpu.Execute(inst)
}

// Execute executes a single decoded instruction.
// Either the whole instruction takes effect, or nothing changes.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%04d: %v", cpu.Ticks, inst)
	}

	op, err := ParseOp(inst.Mnemonic)
	if err != nil {
		return
	}

	if len(inst.Operands) < 2 {
		err = ErrOperandCount(len(inst.Operands))
		return
	}

	dst, err := ParseDestination(inst.Operands[0])
	if err != nil {
		return
	}

	src, err := ParseOperand(inst.Operands[1])
	if err != nil {
		return
	}

	input := uint32(cpu.Registers.Get(dst))
	value := uint32(src.Value(&cpu.Registers))

	output := cpu.doAlu(op, input, value)
	cpu.Registers.Set(dst, output)

	if cpu.Verbose {
		log.Printf("%04d: %v = %04X", cpu.Ticks, dst, cpu.Registers.Get(dst))
	}

	cpu.Ticks += 1

	return
}

// doAlu performs the requested operation, and returns the untruncated output value.
func (cpu *Cpu) doAlu(op Op, input uint32, value uint32) (output uint32) {
	switch op {
	case OP_MOV:
		output = value
	case OP_ADD:
		output = input + value
	case OP_SUB:
		output = input - value
	default:
		panic("unknown op")
	}

	return
}
