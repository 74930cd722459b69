package asm

import (
	"bufio"
	"fmt"
	"io"
	"iter"

	"github.com/ezrec/smc/isa"
)

// Program is a fully assembled program.
type Program struct {
	Symbols *SymbolTable // Symbol table from Pass 1.
	Records []Resolved   // Resolved records, in program order.
	Words   []isa.Word   // One machine word per record.
}

// Link resolves and encodes the output of a front end into a Program.
func Link(symbols *SymbolTable, records []Record) (prog *Program, err error) {
	words, resolved, err := Assemble(symbols, records)
	if err != nil {
		return
	}

	prog = &Program{
		Symbols: symbols,
		Records: resolved,
		Words:   words,
	}

	return
}

// Debug returns the record assembled at an address, or nil.
func (prog *Program) Debug(address int) (record *Resolved) {
	for n := range prog.Records {
		if prog.Records[n].Address == address {
			record = &prog.Records[n]
			break
		}
	}

	return
}

// Codes iterates over the address and machine word of every record.
func (prog *Program) Codes() iter.Seq2[int, isa.Word] {
	return func(yield func(address int, word isa.Word) bool) {
		for n, word := range prog.Words {
			if !yield(prog.Records[n].Address, word) {
				return
			}
		}
	}
}

// WriteTo writes the machine words as signed decimal, one per line.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)

	for _, word := range prog.Words {
		var c int
		c, err = fmt.Fprintf(bw, "%d\n", int32(word))
		n += int64(c)
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}
