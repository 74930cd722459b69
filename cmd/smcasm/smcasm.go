package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/ezrec/smc/asm"
	"github.com/ezrec/smc/config"
	"github.com/ezrec/smc/isa"
	"github.com/ezrec/smc/translate"
)

var f = translate.From

var ErrNoInput = errors.New(f("no input: use -c or -ir-in"))

type options struct {
	compile string
	irIn    string
	irOut   string
	output  string
	listing bool
	opcode  string
	verbose bool
	config  *config.Config
}

func loadConfig(path string) (cfg *config.Config, err error) {
	if len(path) == 0 {
		cfg = config.Default()
		return
	}
	return config.Load(path)
}

// describe writes the opcode of a mnemonic.
func describe(w io.Writer, word string) (err error) {
	m, ok := isa.ParseMnemonic(word)
	if !ok {
		err = fmt.Errorf("%w: %v", asm.ErrOpcodeInvalid, word)
		return
	}

	opcode, ok := m.Opcode()
	if !ok {
		_, err = fmt.Fprintf(w, "%v -> %v\n", m, f("(directive)"))
		return
	}

	format, _ := m.Format()
	_, err = fmt.Fprintf(w, "%v -> %v %d (bin %03b) %v\n", m, f("opcode"), opcode, opcode, format)
	return
}

// tableStyle picks a coloured listing when the output is a terminal.
func tableStyle(w io.Writer) table.Style {
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return table.StyleColoredDark
	}
	return table.StyleDefault
}

// build runs both passes, or links an interchange file.
func build(opts *options) (prog *asm.Program, err error) {
	switch {
	case len(opts.irIn) != 0:
		var inf *os.File
		inf, err = os.Open(opts.irIn)
		if err != nil {
			return
		}
		defer inf.Close()

		var symbols *asm.SymbolTable
		var records []asm.Record
		symbols, records, err = asm.ReadIR(inf)
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.irIn, err)
			return
		}

		prog, err = asm.Link(symbols, records)
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.irIn, err)
		}
		return
	case len(opts.compile) != 0:
		var inf *os.File
		inf, err = os.Open(opts.compile)
		if err != nil {
			return
		}
		defer inf.Close()

		assembler := opts.config.NewAssembler(opts.verbose)
		var symbols *asm.SymbolTable
		var records []asm.Record
		records, symbols, err = assembler.Scan(inf)
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.compile, err)
			return
		}

		if len(opts.irOut) != 0 {
			err = writeFile(opts.irOut, func(w io.Writer) error {
				return asm.WriteIR(w, symbols, records)
			})
			if err != nil {
				return
			}
		}

		prog, err = asm.Link(symbols, records)
		if err != nil {
			prog = nil
			err = fmt.Errorf("%v: %w", opts.compile, err)
		}
		return
	}

	err = ErrNoInput
	return
}

// writeFile writes through a temporary file renamed into place on success.
func writeFile(path string, writer func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	err = writer(tmp)
	if err != nil {
		return
	}

	err = tmp.Close()
	if err != nil {
		return
	}

	err = os.Rename(tmp.Name(), path)
	return
}

func run(opts *options, stdout io.Writer, stderr io.Writer) (err error) {
	if opts.config == nil {
		opts.config = config.Default()
	}

	if len(opts.opcode) != 0 {
		return describe(stdout, opts.opcode)
	}

	prog, err := build(opts)
	if err != nil {
		return
	}

	if opts.verbose {
		for address, word := range prog.Codes() {
			log.Printf("(address %d): %d (hex 0x%08X)\n", address, int32(word), uint32(word))
		}
	}

	if opts.listing {
		style := tableStyle(stderr)
		fmt.Fprintln(stderr, prog.Listing(style))
		if prog.Symbols.Len() != 0 {
			fmt.Fprintln(stderr, prog.Symbols.Render(style))
		}
	}

	if opts.output == "-" || len(opts.output) == 0 {
		_, err = prog.WriteTo(stdout)
		return
	}

	err = writeFile(opts.output, func(w io.Writer) error {
		_, err := prog.WriteTo(w)
		return err
	})
	return
}
