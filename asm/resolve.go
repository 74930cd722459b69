// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"go.starlark.net/starlark"

	"github.com/ezrec/smc/isa"
)

// Record is one addressable source line, as produced by Pass 1.
type Record struct {
	Address int      `yaml:"address"`
	LineNo  int      `yaml:"line,omitempty"`
	Label   string   `yaml:"label,omitempty"`
	Op      string   `yaml:"op"`
	Fields  []string `yaml:"fields,omitempty,flow"`
}

// Resolved is a Record whose operands have passed Pass 2.
type Resolved struct {
	Record

	Mnemonic isa.Mnemonic
	RegA     int   // Register A, 0..7.
	RegB     int   // Register B, 0..7.
	Dest     int   // R-format destination register, 0..7.
	Offset   int   // I-format offset, -32768..32767.
	Fill     int32 // .fill value.
}

// IsFill returns true if the record is a .fill directive.
func (r *Resolved) IsFill() bool {
	return r.Mnemonic == isa.OP_FILL
}

// Word packs the resolved fields into a machine word.
func (r *Resolved) Word() isa.Word {
	format, _ := r.Mnemonic.Format()
	switch format {
	case isa.FORMAT_R:
		return isa.MakeWordR(r.Mnemonic, r.RegA, r.RegB, r.Dest)
	case isa.FORMAT_I:
		return isa.MakeWordI(r.Mnemonic, r.RegA, r.RegB, r.Offset)
	case isa.FORMAT_J:
		return isa.MakeWordJ(r.Mnemonic, r.RegA, r.RegB)
	case isa.FORMAT_O:
		return isa.MakeWordO(r.Mnemonic)
	case isa.FORMAT_FILL:
		return isa.Word(r.Fill)
	}

	return 0
}

// Resolve runs Pass 2 over records, stopping at the first invalid record.
func Resolve(symbols *SymbolTable, records []Record) (resolved []Resolved, err error) {
	rs := &resolver{symbols: symbols}

	resolved = make([]Resolved, 0, len(records))
	for n := range records {
		var r Resolved
		r, err = rs.resolve(&records[n])
		if err != nil {
			resolved = nil
			return
		}
		resolved = append(resolved, r)
	}

	return
}

// Assemble resolves records and packs them into machine words.
// Either every record yields a word, or an error is returned.
func Assemble(symbols *SymbolTable, records []Record) (words []isa.Word, resolved []Resolved, err error) {
	resolved, err = Resolve(symbols, records)
	if err != nil {
		return
	}

	words = make([]isa.Word, len(resolved))
	for n := range resolved {
		words[n] = resolved[n].Word()
	}

	return
}

// resolver holds the Pass 2 state for the record being resolved.
type resolver struct {
	symbols     *SymbolTable
	record      *Record
	predeclared starlark.StringDict
}

// fail creates an error for the current record.
func (rs *resolver) fail(kind error, field string, format string, args ...any) error {
	return &ErrAssemble{
		Address: rs.record.Address,
		LineNo:  rs.record.LineNo,
		Op:      rs.record.Op,
		Field:   field,
		Detail:  f(format, args...),
		Err:     kind,
	}
}

func (rs *resolver) resolve(record *Record) (r Resolved, err error) {
	rs.record = record

	if len(record.Op) == 0 {
		err = rs.fail(ErrOpcodeInvalid, "", "missing instruction")
		return
	}

	m, ok := isa.ParseMnemonic(record.Op)
	if !ok {
		err = rs.fail(ErrOpcodeInvalid, record.Op, "unknown opcode '%v'", record.Op)
		return
	}

	r = Resolved{Record: *record, Mnemonic: m}

	format, _ := m.Format()
	switch format {
	case isa.FORMAT_FILL:
		r.Fill, err = rs.fill()
	case isa.FORMAT_R:
		var regs []int
		regs, err = rs.registers("regA", "regB", "dest")
		if err != nil {
			return
		}
		r.RegA, r.RegB, r.Dest = regs[0], regs[1], regs[2]
	case isa.FORMAT_I:
		err = rs.require("regA", "regB", "offset")
		if err != nil {
			return
		}
		var regs []int
		regs, err = rs.registers("regA", "regB")
		if err != nil {
			return
		}
		r.RegA, r.RegB = regs[0], regs[1]
		r.Offset, err = rs.offset(2, m == isa.OP_BEQ)
	case isa.FORMAT_J:
		var regs []int
		regs, err = rs.registers("regA", "regB")
		if err != nil {
			return
		}
		r.RegA, r.RegB = regs[0], regs[1]
	case isa.FORMAT_O:
		// Operands, if any, are unused.
	}

	if err != nil {
		r = Resolved{}
	}

	return
}

// require checks that the leading operand fields are present.
func (rs *resolver) require(names ...string) (err error) {
	for n, name := range names {
		if n >= len(rs.record.Fields) || len(rs.record.Fields[n]) == 0 {
			err = rs.fail(ErrFieldMissing, "", "%v missing", name)
			return
		}
	}

	return
}

// registers parses the leading operand fields as registers.
func (rs *resolver) registers(names ...string) (regs []int, err error) {
	err = rs.require(names...)
	if err != nil {
		return
	}

	values := make([]int64, len(names))
	for n, name := range names {
		word := rs.record.Fields[n]
		if !isNumeric(word) {
			err = rs.fail(ErrImmediateInvalid, word, "%v '%v' must be numeric", name, word)
			return
		}
		values[n], err = rs.number(word, name)
		if err != nil {
			return
		}
	}

	regs = make([]int, len(names))
	for n, name := range names {
		value := values[n]
		word := rs.record.Fields[n]
		switch {
		case value < 0:
			err = rs.fail(ErrRegisterInvalid, word, "%v missing (%d)", name, value)
			return
		case value >= isa.REG_COUNT:
			err = rs.fail(ErrRegisterInvalid, word, "%v %d out of range 0..%d", name, value, isa.REG_COUNT-1)
			return
		}
		regs[n] = int(value)
	}

	return
}

// offset resolves operand n as a 16-bit signed value. Labels resolve to their
// address, or for branches to the distance from the following instruction.
func (rs *resolver) offset(n int, branch bool) (offset int, err error) {
	word := rs.record.Fields[n]

	var value int64
	if isNumeric(word) {
		value, err = rs.number(word, "offset")
		if err != nil {
			return
		}
	} else {
		address, ok := rs.symbols.Lookup(word)
		if !ok {
			err = rs.fail(ErrLabelUndefined, word, "label '%v' undefined", word)
			return
		}
		value = int64(address)
		if branch {
			value -= int64(rs.record.Address) + 1
		}
	}

	if value < isa.OFFSET_MIN || value > isa.OFFSET_MAX {
		err = rs.fail(ErrOffsetRange, word, "%d not in %d..%d", value, isa.OFFSET_MIN, isa.OFFSET_MAX)
		return
	}

	offset = int(value)
	return
}

// fill resolves the single .fill operand.
func (rs *resolver) fill() (value int32, err error) {
	err = rs.require("value")
	if err != nil {
		return
	}

	word := rs.record.Fields[0]
	if !isNumeric(word) {
		address, ok := rs.symbols.Lookup(word)
		if !ok {
			err = rs.fail(ErrLabelUndefined, word, "label '%v' undefined", word)
			return
		}
		value = int32(address)
		return
	}

	v64, err := rs.number(word, "value")
	if err != nil {
		return
	}
	if v64 < math.MinInt32 || v64 > math.MaxInt32 {
		err = rs.fail(ErrImmediateInvalid, word, "%d does not fit in 32 bits", v64)
		return
	}

	value = int32(v64)
	return
}

// number parses a numeric operand or evaluates a $(...) expression.
func (rs *resolver) number(word string, name string) (value int64, err error) {
	if isExpression(word) {
		value, err = rs.eval(word[2 : len(word)-1])
		var missing ErrLabelMissing
		switch {
		case errors.As(err, &missing):
			err = rs.fail(ErrLabelUndefined, word, "label '%v' undefined", string(missing))
		case err != nil:
			err = rs.fail(ErrImmediateInvalid, word, "%v %v", name, err)
		}
		return
	}

	value, err = parseNumber(word)
	if err != nil {
		err = rs.fail(ErrImmediateInvalid, word, "%v %v", name, err)
	}
	return
}

// isExpression returns true for $(...) words.
func isExpression(word string) bool {
	return strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")")
}

// isNumeric returns true if word is meant as a number rather than a label.
func isNumeric(word string) bool {
	if len(word) == 0 {
		return false
	}
	if isExpression(word) {
		return true
	}
	c := word[0]
	return (c >= '0' && c <= '9') || c == '+' || c == '-'
}

// parseNumber parses an optionally signed decimal or 0x hexadecimal number.
func parseNumber(word string) (value int64, err error) {
	digits := word
	negative := false
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		negative = digits[0] == '-'
		digits = digits[1:]
	}

	base := 10
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		base = 16
		digits = digits[2:]
	}

	u64, err := strconv.ParseUint(digits, base, 63)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int64(u64)
	if negative {
		value = -value
	}

	return
}
