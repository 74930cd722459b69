package asm

import (
	"iter"
)

// LABEL_MAX is the longest permitted label name.
const LABEL_MAX = 6

// Label is a named word address.
type Label struct {
	Name    string `yaml:"name"`
	Address int    `yaml:"address"`
}

// SymbolTable maps label names to addresses.
// It is built once by Pass 1 and only read by Pass 2.
type SymbolTable struct {
	Labels []Label // Labels in order of definition.

	index map[string]int
}

// NewSymbolTable creates a symbol table from a list of labels, as produced
// by a separate front end.
func NewSymbolTable(labels ...Label) (st *SymbolTable, err error) {
	st = &SymbolTable{}
	for _, label := range labels {
		err = st.Define(label.Name, label.Address)
		if err != nil {
			return nil, err
		}
	}

	return
}

// ValidLabel returns true if name starts with a letter and is made of at most
// LABEL_MAX letters and digits.
func ValidLabel(name string) bool {
	if len(name) == 0 || len(name) > LABEL_MAX {
		return false
	}

	for n := range len(name) {
		c := name[n]
		letter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		digit := c >= '0' && c <= '9'
		if !letter && (n == 0 || !digit) {
			return false
		}
	}

	return true
}

// Define registers a new label.
func (st *SymbolTable) Define(name string, address int) (err error) {
	if !ValidLabel(name) {
		err = ErrLabelInvalid
		return
	}

	if _, ok := st.index[name]; ok {
		err = ErrLabelDuplicate
		return
	}

	if st.index == nil {
		st.index = make(map[string]int, 16)
	}
	st.index[name] = address
	st.Labels = append(st.Labels, Label{Name: name, Address: address})

	return
}

// Lookup returns the address of a label.
func (st *SymbolTable) Lookup(name string) (address int, ok bool) {
	if st == nil {
		return
	}
	address, ok = st.index[name]
	return
}

// Len returns the number of labels defined.
func (st *SymbolTable) Len() int {
	if st == nil {
		return 0
	}
	return len(st.Labels)
}

// All iterates over the labels in order of definition.
func (st *SymbolTable) All() iter.Seq2[string, int] {
	return func(yield func(name string, address int) bool) {
		if st == nil {
			return
		}
		for _, label := range st.Labels {
			if !yield(label.Name, label.Address) {
				return
			}
		}
	}
}
