package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ezrec/smc/config"
	"github.com/ezrec/smc/emulator"
	"github.com/ezrec/smc/translate"
)

var f = translate.From

var ErrNoInput = errors.New(f("no input: use -m or -c"))

type options struct {
	machine string
	compile string
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

// load places the program into the emulator.
func load(opts *options, emu *emulator.Emulator) (err error) {
	var path string
	switch {
	case len(opts.machine) != 0:
		path = opts.machine
	case len(opts.compile) != 0:
		path = opts.compile
	default:
		err = ErrNoInput
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	if len(opts.machine) != 0 {
		err = emu.LoadFrom(inf)
	} else {
		assembler := opts.config.NewAssembler(opts.verbose)
		prog, perr := assembler.Parse(inf)
		if perr != nil {
			err = perr
		} else {
			err = emu.LoadProgram(prog)
		}
	}

	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

func run(opts *options, stdout io.Writer) (err error) {
	if opts.config == nil {
		opts.config = config.Default()
	}

	emu := opts.config.NewEmulator(opts.verbose)

	err = load(opts, emu)
	if err != nil {
		return
	}

	if opts.config.Simulator.Trace {
		err = emu.WriteMemory(stdout)
		if err != nil {
			return
		}
		emu.Trace = stdout
	}

	err = emu.Run(opts.config.Simulator.MaxTicks)
	if err != nil {
		return
	}

	fmt.Fprintln(stdout, f("machine halted"))
	fmt.Fprintln(stdout, f("total of %d instructions executed", emu.Ticks))
	fmt.Fprintln(stdout, f("final state of machine:"))

	err = emu.WriteState(stdout)
	return
}
