package monitor

import (
	"errors"

	"github.com/ezrec/regsim/translate"
)

var f = translate.From

var (
	ErrCommandArgs = errors.New(f("wrong number of arguments"))
)

type ErrCommand string

func (err ErrCommand) Error() string {
	return f("unknown command ':%v'", string(err))
}
