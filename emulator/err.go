package emulator

import (
	"errors"

	"github.com/ezrec/smc/translate"
)

var f = translate.From

var (
	ErrPcRange      = errors.New(f("pc out of bounds"))
	ErrAddressRange = errors.New(f("memory address out of bounds"))
	ErrMemoryFull   = errors.New(f("program larger than memory"))
	ErrTickLimit    = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %d %v", err.Pc, err.Err)
	}
	return f("pc %d line %d %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrLoad indicates a machine code line that is not a number.
type ErrLoad struct {
	LineNo  int
	Address int
	Text    string
}

func (err *ErrLoad) Error() string {
	return f("error in reading address %d (line %d) '%v'", err.Address, err.LineNo, err.Text)
}
