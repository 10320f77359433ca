package emulator

import (
	"github.com/ezrec/regsim/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Index int    // Zero based index of the failing line.
	Line  string // Text of the failing line.
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("line %d '%v' %v", err.Index+1, err.Line, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
