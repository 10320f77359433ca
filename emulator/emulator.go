// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/regsim/cpu"
	"github.com/ezrec/regsim/internal"
)

var _emulator_defines = map[string]string{
	"REG_COUNT": fmt.Sprintf("%X", cpu.REG_COUNT),
}

// StepOutcome is the result of a single step.
type StepOutcome int

//go:generate go tool stringer -linecomment -type=StepOutcome
const (
	STEP_EXECUTED = StepOutcome(0) // executed
	STEP_COMPLETE = StepOutcome(1) // complete
)

// Source supplies program text on demand, typically from an editor.
//
//go:generate go tool mockgen -write_package_comment=false -package=$GOPACKAGE -destination=mock_source_test.go github.com/ezrec/regsim/emulator Source
type Source interface {
	Text() string
}

// Emulator state. CPU + captured program + cursor.
type Emulator struct {
	Verbose  bool     // If set, enables verbose logging.
	*cpu.Cpu          // Reference to the CPU simulation.
	Program  []string // Captured program lines.
	Cursor   int      // Index of the next line to step.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// lineBreaks normalizes CRLF and lone CR line endings to LF.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Lines splits program text into lines, after trimming the whole text.
// Lines end at LF, CRLF or a lone CR, and may be of any length.
// Empty text has no lines.
func Lines(text string) (lines []string) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	return strings.Split(lineBreaks.Replace(text), "\n")
}

// Reset the emulator state.
// - Zeroes the registers.
// - Forgets the captured program.
// - Rewinds the cursor.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Program = nil
	emu.Cursor = 0
}

// Snapshot returns a copy of the register bank.
func (emu *Emulator) Snapshot() cpu.Registers {
	return emu.Cpu.Snapshot()
}

// Done returns true when the cursor is past the last program line.
func (emu *Emulator) Done() bool {
	return emu.Cursor >= len(emu.Program)
}

// LineIndex returns the index of the next line to step.
func (emu *Emulator) LineIndex() int {
	return emu.Cursor
}

// Run executes all lines in order, stopping at the first failure.
// Changes made by lines before the failing one are kept.
func (emu *Emulator) Run(lines []string) (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Program = slices.Clone(lines)

	for n, line := range emu.Program {
		err = emu.Cpu.ExecuteLine(line)
		if err != nil {
			err = &ErrRuntime{Index: n, Line: line, Err: err}
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: ran %d lines", len(emu.Program))
	}

	return
}

// RunSource runs the current text of a source.
func (emu *Emulator) RunSource(src Source) (err error) {
	return emu.Run(Lines(src.Text()))
}

// Step executes the line at the cursor.
// The program is captured from lines only if none is captured yet.
func (emu *Emulator) Step(lines []string) (outcome StepOutcome, err error) {
	if len(emu.Program) == 0 {
		emu.load(lines)
	}

	return emu.Tick()
}

// StepSource steps, reading the source text only when a program must be captured.
func (emu *Emulator) StepSource(src Source) (outcome StepOutcome, err error) {
	if len(emu.Program) == 0 {
		emu.load(Lines(src.Text()))
	}

	return emu.Tick()
}

// load captures a program and rewinds the cursor.
func (emu *Emulator) load(lines []string) {
	if emu.Verbose {
		log.Printf("emulator: captured %d lines", len(lines))
	}

	emu.Program = slices.Clone(lines)
	emu.Cursor = 0
}

// Tick performs a single step of the captured program.
// The cursor only advances when the line executes without error.
func (emu *Emulator) Tick() (outcome StepOutcome, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Done() {
		outcome = STEP_COMPLETE
		return
	}

	line := emu.Program[emu.Cursor]
	err = emu.Cpu.ExecuteLine(line)
	if err != nil {
		err = &ErrRuntime{Index: emu.Cursor, Line: line, Err: err}
		return
	}

	emu.Cursor++
	outcome = STEP_EXECUTED

	return
}
