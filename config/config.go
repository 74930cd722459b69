// Package config loads the TOML settings shared by the SMC assembler and
// simulator drivers.
package config

import (
	"errors"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/smc/asm"
	"github.com/ezrec/smc/emulator"
	"github.com/ezrec/smc/translate"
)

var ErrMemorySize = errors.New(translate.From("memory size out of range"))

// Assembler options.
type Assembler struct {
	CountBlankLines bool   `toml:"count_blank_lines"` // Blank lines assemble to noop.
	CommentChars    string `toml:"comment_chars"`     // Characters starting a comment.
}

// Simulator options.
type Simulator struct {
	MaxTicks   int  `toml:"max_ticks"`   // 0 for no limit.
	Trace      bool `toml:"trace"`       // Print the machine state before each instruction.
	MemorySize int  `toml:"memory_size"` // Words of memory.
}

// Config is the top level of a configuration file.
//
//	[assembler]
//	count_blank_lines = true
//	comment_chars = "#;"
//
//	[simulator]
//	max_ticks = 100000
//	trace = true
//	memory_size = 65536
type Config struct {
	Assembler Assembler `toml:"assembler"`
	Simulator Simulator `toml:"simulator"`
}

// Default returns the built-in configuration.
func Default() (cfg *Config) {
	cfg = &Config{
		Assembler: Assembler{
			CommentChars: asm.DefaultCommentChars,
		},
		Simulator: Simulator{
			Trace:      true,
			MemorySize: emulator.MEMORY_SIZE,
		},
	}
	return
}

// Load a configuration file over the defaults.
func Load(path string) (cfg *Config, err error) {
	cfg = Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		cfg = nil
		return
	}

	err = cfg.check(md)
	if err != nil {
		cfg = nil
	}
	return
}

// Parse configuration text over the defaults.
func Parse(input io.Reader) (cfg *Config, err error) {
	cfg = Default()
	md, err := toml.NewDecoder(input).Decode(cfg)
	if err != nil {
		cfg = nil
		return
	}

	err = cfg.check(md)
	if err != nil {
		cfg = nil
	}
	return
}

func (cfg *Config) check(md toml.MetaData) (err error) {
	undecoded := md.Undecoded()
	if len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = translate.Errorf("unknown configuration keys: %v", strings.Join(keys, ", "))
		return
	}

	if cfg.Simulator.MemorySize <= 0 || cfg.Simulator.MemorySize > emulator.MEMORY_SIZE {
		err = ErrMemorySize
		return
	}

	if cfg.Simulator.MaxTicks < 0 {
		cfg.Simulator.MaxTicks = 0
	}

	return
}

// NewAssembler returns an assembler set up from the configuration.
func (cfg *Config) NewAssembler(verbose bool) *asm.Assembler {
	return &asm.Assembler{
		Verbose:         verbose,
		CountBlankLines: cfg.Assembler.CountBlankLines,
		CommentChars:    cfg.Assembler.CommentChars,
	}
}

// NewEmulator returns an emulator set up from the configuration.
func (cfg *Config) NewEmulator(verbose bool) (emu *emulator.Emulator) {
	emu = emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Memory = make([]int32, cfg.Simulator.MemorySize)
	return
}
