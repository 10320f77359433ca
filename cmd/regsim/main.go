// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/regsim/asm"
	"github.com/ezrec/regsim/emulator"
)

var verbose bool
var assemble bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "regsim",
	Short: "A 16-bit register machine simulator",
	Long: `Regsim runs programs for a tiny machine with four 16-bit registers
(AX, BX, CX, DX) and three instructions:

  MOV dst src    dst = src
  ADD dst src    dst = dst + src
  SUB dst src    dst = dst - src

The destination is a register; the source is a register or a '#' prefixed
hexadecimal immediate. Arithmetic wraps modulo 0x10000.
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	rootCmd.PersistentFlags().BoolVarP(&assemble, "asm", "a", false, "Preprocess input (comments, .equ, $(expr))")
}

// program is a loaded program, with its source listing when assembled.
type program struct {
	name    string
	lines   []string
	listing *asm.Listing
}

// loadProgram reads a program file, or stdin for "-".
func loadProgram(path string) (prog *program, err error) {
	var input io.Reader = os.Stdin
	if path != "-" {
		var inf *os.File
		inf, err = os.Open(path)
		if err != nil {
			return
		}
		defer inf.Close()
		input = inf
	}

	prog = &program{name: path}

	if assemble {
		emu := emulator.NewEmulator()
		assembler := &asm.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			assembler.Predefine(key, value)
		}
		prog.listing, err = assembler.Parse(input)
		if err != nil {
			err = fmt.Errorf("%v: %w", path, err)
			return
		}
		prog.lines = prog.listing.Lines
		return
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return
	}
	prog.lines = emulator.Lines(string(data))

	return
}

// describe adds the source location to runtime errors.
func (prog *program) describe(err error) error {
	var runtime *emulator.ErrRuntime
	if !errors.As(err, &runtime) {
		return err
	}

	lineno := runtime.Index + 1
	if prog.listing != nil {
		lineno = prog.listing.SourceLine(runtime.Index)
	}

	return fmt.Errorf("%v:%d: %w", prog.name, lineno, runtime.Err)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
