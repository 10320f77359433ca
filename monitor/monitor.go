// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package monitor is a line oriented front end for the emulator.
//
// Lines typed into the monitor are collected in an editor buffer. Lines
// starting with ':' are commands that run, step or reset the emulator
// against the buffer, display the registers, and load or save the buffer.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/ezrec/regsim/asm"
	"github.com/ezrec/regsim/emulator"
	"github.com/ezrec/regsim/translate"
)

// LineReader reads one line of input at a time.
type LineReader interface {
	ReadLine() (line string, err error)
}

// Monitor state. Emulator + editor buffer.
type Monitor struct {
	Verbose  bool               // If set, enables verbose logging.
	Assemble bool               // If set, :load preprocesses files with asm.
	Emulator *emulator.Emulator // Emulator under control.
	Buffer   []string           // Editor buffer, one program line each.
	Out      io.Writer          // Display output.
}

// NewMonitor creates a monitor for an emulator.
func NewMonitor(emu *emulator.Emulator, out io.Writer) (mon *Monitor) {
	mon = &Monitor{
		Emulator: emu,
		Out:      out,
	}

	return
}

var help = []string{
	":run          run the buffer from the first line",
	":step         execute the next line",
	":reset        zero registers and forget the stepped program",
	":regs         display registers",
	":list         display the buffer",
	":clear        empty the buffer",
	":load FILE    replace the buffer with a file",
	":save FILE    write the buffer to a file",
	":help         display this list",
	":quit         leave the monitor",
}

// Text implements emulator.Source.
func (mon *Monitor) Text() string {
	return strings.Join(mon.Buffer, "\n")
}

// printf writes a translated message line to the display.
func (mon *Monitor) printf(format string, args ...any) {
	translate.Fprint(mon.Out, format, args...)
}

// printRegisters displays the register bank.
func (mon *Monitor) printRegisters() {
	fmt.Fprint(mon.Out, mon.Emulator.Snapshot().String())
}

// Exec processes one line of input.
func (mon *Monitor) Exec(input string) (quit bool, err error) {
	mon.Emulator.Verbose = mon.Verbose

	if !IsCommand(input) {
		line := strings.TrimSpace(input)
		if len(line) != 0 {
			mon.Buffer = append(mon.Buffer, line)
		}
		return
	}

	cmd := ParseCommand(input)

	if mon.Verbose {
		log.Printf("monitor: %v %v", cmd.Name, cmd.Args)
	}

	switch cmd.Name {
	case "run", "step", "reset", "regs", "list", "clear", "help", "quit":
		if len(cmd.Args) != 0 {
			err = ErrCommandArgs
			return
		}
	case "load", "save":
		if len(cmd.Args) != 1 {
			err = ErrCommandArgs
			return
		}
	}

	switch cmd.Name {
	case "run":
		err = mon.Emulator.RunSource(mon)
		if err != nil {
			return
		}
		mon.printRegisters()
		mon.printf("program executed")
	case "step":
		var outcome emulator.StepOutcome
		outcome, err = mon.Emulator.StepSource(mon)
		if err != nil {
			return
		}
		if outcome == emulator.STEP_COMPLETE {
			mon.printf("program execution complete")
			return
		}
		mon.printRegisters()
	case "reset":
		mon.Emulator.Reset()
		mon.printRegisters()
		mon.printf("processor reset")
	case "regs":
		mon.printRegisters()
	case "list":
		// The cursor indexes the captured program, so only mark it while
		// the buffer still holds that program.
		stepping := len(mon.Emulator.Program) != 0 &&
			slices.Equal(emulator.Lines(mon.Text()), mon.Emulator.Program)
		for n, line := range mon.Buffer {
			marker := " "
			if stepping && n == mon.Emulator.Cursor {
				marker = ">"
			}
			fmt.Fprintf(mon.Out, "%v%4d: %v\n", marker, n+1, line)
		}
	case "clear":
		mon.Buffer = nil
	case "load":
		err = mon.Load(cmd.Args[0])
		if err != nil {
			return
		}
		mon.printf("program loaded")
	case "save":
		err = mon.Save(cmd.Args[0])
		if err != nil {
			return
		}
		mon.printf("program saved")
	case "help":
		for _, text := range help {
			mon.printf(text)
		}
	case "quit":
		quit = true
	default:
		err = ErrCommand(cmd.Name)
	}

	return
}

// Load replaces the buffer with the contents of a text file.
func (mon *Monitor) Load(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return mon.Read(inf)
}

// Read replaces the buffer with program text from a reader.
func (mon *Monitor) Read(input io.Reader) (err error) {
	if mon.Assemble {
		assembler := &asm.Assembler{Verbose: mon.Verbose}
		for key, value := range mon.Emulator.Defines() {
			assembler.Predefine(key, value)
		}
		var listing *asm.Listing
		listing, err = assembler.Parse(input)
		if err != nil {
			return
		}
		mon.Buffer = listing.Lines
		return
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	mon.Buffer = emulator.Lines(string(data))

	return
}

// Save writes the buffer to a text file.
func (mon *Monitor) Save(path string) (err error) {
	text := mon.Text()
	if len(text) != 0 {
		text += "\n"
	}

	return os.WriteFile(path, []byte(text), 0o644)
}

// Serve processes input lines until end of input or ':quit'.
// Errors from individual lines are displayed, and do not stop the monitor.
func (mon *Monitor) Serve(in LineReader) (err error) {
	for {
		var line string
		line, err = in.ReadLine()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		quit, cmd_err := mon.Exec(line)
		if cmd_err != nil {
			mon.printf("error: %v", cmd_err)
		}
		if quit {
			return
		}
	}
}

// Scanner adapts an io.Reader to a LineReader.
type Scanner struct {
	scanner *bufio.Scanner
}

// NewScanner creates a LineReader over plain input.
func NewScanner(input io.Reader) *Scanner {
	return &Scanner{scanner: bufio.NewScanner(input)}
}

// ReadLine returns the next line, or io.EOF at end of input.
func (s *Scanner) ReadLine() (line string, err error) {
	if !s.scanner.Scan() {
		err = s.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	line = s.scanner.Text()

	return
}
