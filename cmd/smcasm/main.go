// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/tebeka/atexit"
)

func main() {
	var opts options
	var configFile string
	var blank bool
	var comment string

	flag.StringVar(&opts.compile, "c", "", ".asm file to assemble")
	flag.StringVar(&opts.irIn, "ir-in", "", "Link an interchange (.yaml) file instead of assembling")
	flag.StringVar(&opts.irOut, "ir-out", "", "Write the pass 1 interchange (.yaml) file")
	flag.StringVar(&opts.output, "o", "-", "Machine code output")
	flag.BoolVar(&blank, "b", false, "Blank lines assemble to noop")
	flag.StringVar(&comment, "comment", "", "Comment characters")
	flag.BoolVar(&opts.listing, "l", false, "Print a listing to stderr")
	flag.StringVar(&opts.opcode, "opcode", "", "Describe a mnemonic and exit")
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
		case "b":
			cfg.Assembler.CountBlankLines = blank
		case "comment":
			cfg.Assembler.CommentChars = comment
		}
	})
	opts.config = cfg

	err = run(&opts, os.Stdout, os.Stderr)
	if err != nil {
		log.Print(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
