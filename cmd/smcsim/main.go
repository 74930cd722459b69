// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"log"
	"os"

	"github.com/tebeka/atexit"
)

func main() {
	var opts options
	var configFile string
	var maxTicks int
	var quiet bool

	flag.StringVar(&opts.machine, "m", "", "Machine code file to run")
	flag.StringVar(&opts.compile, "c", "", ".asm file to assemble and run")
	flag.IntVar(&maxTicks, "n", 0, "Maximum instructions to execute (0 for no limit)")
	flag.BoolVar(&quiet, "q", false, "Quiet, print only the final state")
	flag.StringVar(&configFile, "config", "", ".toml configuration file")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		atexit.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		atexit.Fatalf("%v: %v", configFile, err)
	}

	// Flags override the configuration file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "n":
			cfg.Simulator.MaxTicks = maxTicks
		case "q":
			cfg.Simulator.Trace = !quiet
		}
	})
	opts.config = cfg

	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() {
		stdout.Flush()
	})

	err = run(&opts, stdout)
	if err != nil {
		stdout.Flush()
		log.Print(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
