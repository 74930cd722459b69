package isa

import (
	"fmt"
)

// Mnemonic is an SMC instruction or directive.
// The values of the eight instructions are their opcodes.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	OP_ADD  = Mnemonic(0) // add
	OP_NAND = Mnemonic(1) // nand
	OP_LW   = Mnemonic(2) // lw
	OP_SW   = Mnemonic(3) // sw
	OP_BEQ  = Mnemonic(4) // beq
	OP_JALR = Mnemonic(5) // jalr
	OP_HALT = Mnemonic(6) // halt
	OP_NOOP = Mnemonic(7) // noop
	OP_FILL = Mnemonic(8) // .fill
)

// Format is the machine word layout of a mnemonic.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R    = Format(0) // R
	FORMAT_I    = Format(1) // I
	FORMAT_J    = Format(2) // J
	FORMAT_O    = Format(3) // O
	FORMAT_FILL = Format(4) // fill
)

// Bit positions and widths of the machine word fields.
const (
	OPCODE_SHIFT = 22
	REGA_SHIFT   = 19
	REGB_SHIFT   = 16

	OPCODE_MASK = 0x7
	REG_MASK    = 0x7
	DEST_MASK   = 0x7
	OFFSET_MASK = 0xffff

	REG_COUNT  = 8
	OFFSET_MIN = -32768
	OFFSET_MAX = 32767
)

// mnemonicMap maps source text to mnemonics.
var mnemonicMap = map[string]Mnemonic{
	"add":   OP_ADD,
	"nand":  OP_NAND,
	"lw":    OP_LW,
	"sw":    OP_SW,
	"beq":   OP_BEQ,
	"jalr":  OP_JALR,
	"halt":  OP_HALT,
	"noop":  OP_NOOP,
	".fill": OP_FILL,
}

// ParseMnemonic looks up the mnemonic spelled by word.
func ParseMnemonic(word string) (m Mnemonic, ok bool) {
	m, ok = mnemonicMap[word]
	return
}

// IsMnemonic returns true if word names an instruction or directive.
func IsMnemonic(word string) bool {
	_, ok := mnemonicMap[word]
	return ok
}

// Opcode returns the 3-bit opcode of the mnemonic.
// Directives have no opcode.
func (m Mnemonic) Opcode() (opcode int, ok bool) {
	if m < OP_ADD || m > OP_NOOP {
		return -1, false
	}

	return int(m), true
}

// Format returns the machine word layout used by the mnemonic, or false
// if m is not a mnemonic.
func (m Mnemonic) Format() (format Format, ok bool) {
	ok = true
	switch m {
	case OP_ADD, OP_NAND:
		format = FORMAT_R
	case OP_LW, OP_SW, OP_BEQ:
		format = FORMAT_I
	case OP_JALR:
		format = FORMAT_J
	case OP_HALT, OP_NOOP:
		format = FORMAT_O
	case OP_FILL:
		format = FORMAT_FILL
	default:
		ok = false
	}

	return
}

// Word is a single 32-bit SMC machine word.
type Word int32

// makeHeader packs the fields shared by every instruction format.
func makeHeader(m Mnemonic, regA, regB int) uint32 {
	return (uint32(m)&OPCODE_MASK)<<OPCODE_SHIFT |
		(uint32(regA)&REG_MASK)<<REGA_SHIFT |
		(uint32(regB)&REG_MASK)<<REGB_SHIFT
}

// MakeWordR creates an R-format (add, nand) word.
func MakeWordR(m Mnemonic, regA, regB, dest int) Word {
	return Word(makeHeader(m, regA, regB) | uint32(dest)&DEST_MASK)
}

// MakeWordI creates an I-format (lw, sw, beq) word.
// Negative offsets are stored as their 16-bit two's-complement pattern.
func MakeWordI(m Mnemonic, regA, regB, offset int) Word {
	return Word(makeHeader(m, regA, regB) | uint32(offset)&OFFSET_MASK)
}

// MakeWordJ creates a J-format (jalr) word.
func MakeWordJ(m Mnemonic, regA, regB int) Word {
	return Word(makeHeader(m, regA, regB))
}

// MakeWordO creates an O-format (halt, noop) word.
func MakeWordO(m Mnemonic) Word {
	return Word(makeHeader(m, 0, 0))
}

// Encode packs already validated fields into the word for mnemonic m.
// For R-format field is the destination register, for I-format the
// offset, and for .fill the value itself.
func Encode(m Mnemonic, regA, regB, field int) (word Word, err error) {
	format, ok := m.Format()
	if !ok {
		err = fmt.Errorf("%w: %v", ErrMnemonicInvalid, m)
		return
	}

	switch format {
	case FORMAT_R:
		word = MakeWordR(m, regA, regB, field)
	case FORMAT_I:
		word = MakeWordI(m, regA, regB, field)
	case FORMAT_J:
		word = MakeWordJ(m, regA, regB)
	case FORMAT_O:
		word = MakeWordO(m)
	case FORMAT_FILL:
		word = Word(int32(field))
	}

	return
}

// Opcode returns the instruction decoded from bits 24..22.
func (w Word) Opcode() Mnemonic {
	return Mnemonic((uint32(w) >> OPCODE_SHIFT) & OPCODE_MASK)
}

// RegA returns the register in bits 21..19.
func (w Word) RegA() int {
	return int((uint32(w) >> REGA_SHIFT) & REG_MASK)
}

// RegB returns the register in bits 18..16.
func (w Word) RegB() int {
	return int((uint32(w) >> REGB_SHIFT) & REG_MASK)
}

// Dest returns the R-format destination register in bits 2..0.
func (w Word) Dest() int {
	return int(uint32(w) & DEST_MASK)
}

// Offset returns the sign-extended I-format offset in bits 15..0.
func (w Word) Offset() int {
	return int(int16(uint16(uint32(w) & OFFSET_MASK)))
}

// DecodeR decodes an R-format word.
func (w Word) DecodeR() (m Mnemonic, regA, regB, dest int) {
	return w.Opcode(), w.RegA(), w.RegB(), w.Dest()
}

// DecodeI decodes an I-format word.
func (w Word) DecodeI() (m Mnemonic, regA, regB, offset int) {
	return w.Opcode(), w.RegA(), w.RegB(), w.Offset()
}

// String returns the assembly language representation of this word,
// treating it as an instruction.
func (w Word) String() (out string) {
	m := w.Opcode()
	format, _ := m.Format()

	switch format {
	case FORMAT_R:
		out = fmt.Sprintf("%v %d %d %d", m, w.RegA(), w.RegB(), w.Dest())
	case FORMAT_I:
		out = fmt.Sprintf("%v %d %d %d", m, w.RegA(), w.RegB(), w.Offset())
	case FORMAT_J:
		out = fmt.Sprintf("%v %d %d", m, w.RegA(), w.RegB())
	default:
		out = m.String()
	}

	return
}
