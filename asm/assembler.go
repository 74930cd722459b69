// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"io"
	"log"

	"github.com/ezrec/smc/isa"
)

// FIELD_MAX is the number of operand fields kept per instruction.
const FIELD_MAX = 3

// Assembler is a two pass assembler for the SMC system.
type Assembler struct {
	Verbose         bool   // If set, verbosely logs the assembler actions.
	CountBlankLines bool   // If set, blank lines assemble as noop.
	CommentChars    string // Characters starting a comment. DefaultCommentChars if empty.
}

func (asm *Assembler) commentChars() string {
	if len(asm.CommentChars) == 0 {
		return DefaultCommentChars
	}
	return asm.CommentChars
}

// Scan runs Pass 1 over the input: it assigns addresses to every instruction
// line and builds the symbol table.
func (asm *Assembler) Scan(input io.Reader) (records []Record, symbols *SymbolTable, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			records = nil
			symbols = nil
		}
	}()

	symbols = &SymbolTable{}
	address := 0
	pending := ""

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		words := Tokenize(line, asm.commentChars())
		record := Record{Address: address, LineNo: lineno}

		if len(words) == 0 {
			if !asm.CountBlankLines {
				continue
			}
			record.Op = isa.OP_NOOP.String()
		} else {
			if !isa.IsMnemonic(words[0]) {
				label := words[0]
				err = symbols.Define(label, address)
				if err != nil {
					return
				}
				if len(pending) == 0 {
					pending = label
				}
				words = words[1:]
			}

			// A lonely label decorates the next instruction.
			if len(words) == 0 {
				continue
			}

			record.Op = words[0]
			if len(words) > 1 {
				record.Fields = words[1:min(len(words), 1+FIELD_MAX)]
			}
		}

		record.Label = pending
		pending = ""

		records = append(records, record)
		address++
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if asm.Verbose {
		log.Printf("pass 1: %d records, %d labels\n", len(records), symbols.Len())
	}

	return
}

// Parse assembles an input stream into a Program containing machine words.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	records, symbols, err := asm.Scan(input)
	if err != nil {
		return
	}

	prog, err = Link(symbols, records)
	if err != nil {
		return
	}

	if asm.Verbose {
		for n, word := range prog.Words {
			log.Printf("(address %d): %d (hex 0x%08X)\n", prog.Records[n].Address, int32(word), uint32(word))
		}
	}

	return
}
