package asm

import (
	"errors"

	"github.com/ezrec/smc/translate"
)

var f = translate.From

var (
	// Pass 1 errors
	ErrLabelInvalid   = errors.New(f("label invalid"))
	ErrLabelDuplicate = errors.New(f("label duplicated"))

	// Pass 2 errors
	ErrOpcodeInvalid    = errors.New(f("opcode invalid"))
	ErrFieldMissing     = errors.New(f("field missing"))
	ErrImmediateInvalid = errors.New(f("immediate invalid"))
	ErrRegisterInvalid  = errors.New(f("register invalid"))
	ErrLabelUndefined   = errors.New(f("label undefined"))
	ErrOffsetRange      = errors.New(f("offset out of range"))

	// Interchange errors
	ErrRecordOrder = errors.New(f("record addresses not increasing"))
)

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrLabelMissing names a label an expression refers to that is not defined.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label '%v' undefined", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates a Pass 1 error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrAssemble locates a Pass 2 error at the address of the failing record.
type ErrAssemble struct {
	Address int    // Address of the failing record.
	LineNo  int    // Source line, if known.
	Op      string // Mnemonic text of the record.
	Field   string // Offending operand text, if any.
	Detail  string // Human readable description.
	Err     error  // One of the Pass 2 error kinds.
}

func (err *ErrAssemble) Error() string {
	if len(err.Detail) == 0 {
		return f("address %d (%v) %v", err.Address, err.Op, err.Err)
	}
	return f("address %d (%v) %v: %v", err.Address, err.Op, err.Err, err.Detail)
}

func (err *ErrAssemble) Unwrap() error {
	return err.Err
}
