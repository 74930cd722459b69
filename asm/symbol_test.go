package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidLabel(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"a", "loop", "L1", "abcdef", "x12345", "Start"} {
		assert.True(ValidLabel(name), name)
	}

	for _, name := range []string{"", "1abc", "abcdefg", "lab_1", "a-b", "loop:", ".fill", "$(x)", "ñ"} {
		assert.False(ValidLabel(name), name)
	}
}

func TestSymbolTable(t *testing.T) {
	assert := assert.New(t)

	st := &SymbolTable{}

	_, ok := st.Lookup("start")
	assert.False(ok)
	assert.Equal(0, st.Len())

	assert.NoError(st.Define("start", 0))
	assert.NoError(st.Define("loop", 4))
	assert.ErrorIs(st.Define("loop", 5), ErrLabelDuplicate)
	assert.ErrorIs(st.Define("9lives", 5), ErrLabelInvalid)

	address, ok := st.Lookup("loop")
	assert.True(ok)
	assert.Equal(4, address)
	assert.Equal(2, st.Len())
	assert.Equal([]Label{{"start", 0}, {"loop", 4}}, st.Labels)

	var names []string
	for name := range st.All() {
		names = append(names, name)
	}
	assert.Equal([]string{"start", "loop"}, names)

	var nilTable *SymbolTable
	_, ok = nilTable.Lookup("start")
	assert.False(ok)
	assert.Equal(0, nilTable.Len())
}

func TestNewSymbolTable(t *testing.T) {
	assert := assert.New(t)

	st, err := NewSymbolTable(Label{"one", 1}, Label{"two", 2})
	assert.NoError(err)
	address, ok := st.Lookup("two")
	assert.True(ok)
	assert.Equal(2, address)

	_, err = NewSymbolTable(Label{"one", 1}, Label{"one", 2})
	assert.ErrorIs(err, ErrLabelDuplicate)

	_, err = NewSymbolTable(Label{"too_long", 1})
	assert.ErrorIs(err, ErrLabelInvalid)
}
