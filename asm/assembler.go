// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm preprocesses program files before they are handed to the
// emulator: comments, blank lines, textual equates and load time
// expressions.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var exprRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a single pass preprocessor for regsim program files.
type Assembler struct {
	Verbose bool              // If set, verbosely logs the assembler actions.
	Equate  map[string]string // Map of equates.

	predefine map[string]string // Predefines
}

// Listing is a preprocessed program.
type Listing struct {
	Lines  []string // Program lines, one instruction each.
	LineNo []int    // Source line number of each program line.
}

// Text returns the program lines joined by newlines.
func (l *Listing) Text() string {
	return strings.Join(l.Lines, "\n")
}

// SourceLine returns the source line number for a program line index, or
// 0 if the index is out of range.
func (l *Listing) SourceLine(index int) int {
	if index < 0 || index >= len(l.LineNo) {
		return 0
	}

	return l.LineNo[index]
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a hexadecimal word, with optional '#' prefix.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	digits := strings.TrimPrefix(word, "#")
	value, err = strconv.ParseInt(digits, 16, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}

	return
}

// parenEval does load time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// isSeparator reports whether r separates words in a line.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ','
}

// parseLine parses a single line into words, handling directives and substitutions.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%X", lineno)

	// Do $() evaluations
	line = exprRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%X", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, isSeparator)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	if strings.HasPrefix(words[0], ".") {
		err = ErrDirective
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
			continue
		}

		name, is_imm := strings.CutPrefix(word, "#")
		if !is_imm {
			continue
		}
		equate, ok = asm.Equate[name]
		if ok {
			words[n] = "#" + strings.TrimPrefix(equate, "#")
		}
	}

	return
}

// MAX_LINE is the longest source line Parse accepts.
const MAX_LINE = 16 << 20

// Parse parses an input stream into a Listing of program lines.
func (asm *Assembler) Parse(input io.Reader) (listing *Listing, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(nil, MAX_LINE)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			listing = nil
		}
	}()

	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	listing = &Listing{}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		code, _, _ := strings.Cut(text, ";")
		line = strings.TrimSpace(code)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		if len(words) == 0 {
			continue
		}

		listing.Lines = append(listing.Lines, strings.Join(words, " "))
		listing.LineNo = append(listing.LineNo, lineno)
	}

	err = scanner.Err()

	return
}
