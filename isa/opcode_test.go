package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMnemonic(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		word   string
		m      Mnemonic
		opcode int
		format Format
	}{
		{"add", OP_ADD, 0, FORMAT_R},
		{"nand", OP_NAND, 1, FORMAT_R},
		{"lw", OP_LW, 2, FORMAT_I},
		{"sw", OP_SW, 3, FORMAT_I},
		{"beq", OP_BEQ, 4, FORMAT_I},
		{"jalr", OP_JALR, 5, FORMAT_J},
		{"halt", OP_HALT, 6, FORMAT_O},
		{"noop", OP_NOOP, 7, FORMAT_O},
	}

	for _, entry := range table {
		m, ok := ParseMnemonic(entry.word)
		assert.True(ok, entry.word)
		assert.Equal(entry.m, m, entry.word)
		assert.Equal(entry.word, m.String())
		format, ok := m.Format()
		assert.True(ok, entry.word)
		assert.Equal(entry.format, format, entry.word)
		opcode, ok := m.Opcode()
		assert.True(ok, entry.word)
		assert.Equal(entry.opcode, opcode, entry.word)
	}

	m, ok := ParseMnemonic(".fill")
	assert.True(ok)
	assert.Equal(OP_FILL, m)
	format, ok := m.Format()
	assert.True(ok)
	assert.Equal(FORMAT_FILL, format)
	_, ok = m.Opcode()
	assert.False(ok)

	for _, word := range []string{"", "ADD", "fill", "mov", "lw:"} {
		assert.False(IsMnemonic(word), word)
	}
}

func TestMakeWordR(t *testing.T) {
	assert := assert.New(t)

	for _, m := range []Mnemonic{OP_ADD, OP_NAND} {
		for regA := range REG_COUNT {
			for regB := range REG_COUNT {
				for dest := range REG_COUNT {
					w := MakeWordR(m, regA, regB, dest)
					dm, da, db, dd := w.DecodeR()
					assert.Equal(m, dm)
					assert.Equal(regA, da)
					assert.Equal(regB, db)
					assert.Equal(dest, dd)
					// Bits 15..3 are always clear.
					assert.Equal(int32(0), int32(w)&0xfff8)
				}
			}
		}
	}

	// add 0 1 2
	assert.Equal(Word((0<<22)|(0<<19)|(1<<16)|2), MakeWordR(OP_ADD, 0, 1, 2))
	assert.Equal(Word(65538), MakeWordR(OP_ADD, 0, 1, 2))
}

func TestMakeWordI(t *testing.T) {
	assert := assert.New(t)

	for offset := OFFSET_MIN; offset <= OFFSET_MAX; offset++ {
		w := MakeWordI(OP_BEQ, 1, 2, offset)
		if w.Offset() != offset {
			assert.Equal(offset, w.Offset())
			break
		}
	}

	w := MakeWordI(OP_BEQ, 1, 2, -1)
	assert.Equal(int32(0xffff), int32(w)&0xffff)
	assert.Equal(OP_BEQ, w.Opcode())
	assert.Equal(1, w.RegA())
	assert.Equal(2, w.RegB())
	assert.Equal(Word(17498111), w)

	w = MakeWordI(OP_LW, 0, 1, 7)
	assert.Equal(Word(8454151), w)
	w = MakeWordI(OP_SW, 0, 1, OFFSET_MIN)
	assert.Equal(OFFSET_MIN, w.Offset())
	assert.Equal(int32(0x8000), int32(w)&0xffff)
}

func TestMakeWordJO(t *testing.T) {
	assert := assert.New(t)

	w := MakeWordJ(OP_JALR, 4, 2)
	assert.Equal(Word(5<<22|4<<19|2<<16), w)
	assert.Equal(int32(0), int32(w)&0xffff)

	assert.Equal(Word(25165824), MakeWordO(OP_HALT))
	assert.Equal(Word(7<<22), MakeWordO(OP_NOOP))
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		m     Mnemonic
		field int
		word  Word
	}{
		{OP_NAND, 3, MakeWordR(OP_NAND, 1, 2, 3)},
		{OP_SW, -3, MakeWordI(OP_SW, 1, 2, -3)},
		{OP_JALR, 99, MakeWordJ(OP_JALR, 1, 2)},
		{OP_NOOP, 3, MakeWordO(OP_NOOP)},
		{OP_FILL, 123, Word(123)},
		{OP_FILL, -1, Word(-1)},
	}

	for _, entry := range table {
		word, err := Encode(entry.m, 1, 2, entry.field)
		assert.NoError(err, entry.m)
		assert.Equal(entry.word, word, entry.m)
	}

	for _, m := range []Mnemonic{Mnemonic(-1), Mnemonic(9), Mnemonic(100)} {
		_, ok := m.Format()
		assert.False(ok, m)
		word, err := Encode(m, 1, 2, 3)
		assert.ErrorIs(err, ErrMnemonicInvalid, m)
		assert.Equal(Word(0), word)
	}
}

func TestWordString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add 0 1 2", MakeWordR(OP_ADD, 0, 1, 2).String())
	assert.Equal("beq 1 2 -1", MakeWordI(OP_BEQ, 1, 2, -1).String())
	assert.Equal("jalr 4 2", MakeWordJ(OP_JALR, 4, 2).String())
	assert.Equal("halt", MakeWordO(OP_HALT).String())
	assert.Equal("Mnemonic(9)", Mnemonic(9).String())
	assert.Equal("fill", FORMAT_FILL.String())
}

func FuzzWordI(f *testing.F) {
	f.Add(uint8(2), uint8(0), uint8(1), int16(-1))
	f.Add(uint8(4), uint8(7), uint8(7), int16(32767))
	f.Add(uint8(3), uint8(3), uint8(5), int16(-32768))

	f.Fuzz(func(t *testing.T, op uint8, regA uint8, regB uint8, offset int16) {
		assert := assert.New(t)

		m := []Mnemonic{OP_LW, OP_SW, OP_BEQ}[int(op)%3]
		a := int(regA) % REG_COUNT
		b := int(regB) % REG_COUNT

		w := MakeWordI(m, a, b, int(offset))
		dm, da, db, doff := w.DecodeI()
		assert.Equal(m, dm)
		assert.Equal(a, da)
		assert.Equal(b, db)
		assert.Equal(int(offset), doff)
		assert.Equal(int32(0), int32(w)>>25)
	})
}
