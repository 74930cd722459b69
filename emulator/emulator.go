// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator simulates the SMC machine running assembled words.
package emulator

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/ezrec/smc/asm"
	"github.com/ezrec/smc/isa"
)

const (
	NUM_REGS    = isa.REG_COUNT // General purpose registers.
	MEMORY_SIZE = 65536         // Words of memory.
)

// Emulator state. PC + registers + memory.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Program *asm.Program // Program listing, if known, for diagnostics.
	Trace   io.Writer    // If set, receives the machine state before every instruction.

	Pc       int             // Program counter.
	Register [NUM_REGS]int32 // Register bank. Register 0 always reads as 0.
	Memory   []int32         // Word addressed memory.
	Loaded   int             // Number of words loaded at reset.
	Halted   bool            // Set by halt.
	Ticks    int             // Instructions executed since reset.

	image []int32
}

// NewEmulator creates a new emulator with MEMORY_SIZE words of memory.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Memory: make([]int32, MEMORY_SIZE),
	}

	return
}

// Load sets the machine code image that Reset places in memory.
func (emu *Emulator) Load(words []isa.Word) (err error) {
	if len(words) > len(emu.Memory) {
		err = ErrMemoryFull
		return
	}

	emu.image = make([]int32, len(words))
	for n, word := range words {
		emu.image[n] = int32(word)
	}

	emu.Reset()

	return
}

// LoadProgram loads an assembled program, keeping it for diagnostics.
func (emu *Emulator) LoadProgram(prog *asm.Program) (err error) {
	err = emu.Load(prog.Words)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// LoadFrom loads machine code text: one signed decimal word per line.
// Blank lines are skipped and anything after the first word is ignored.
func (emu *Emulator) LoadFrom(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var words []isa.Word
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		var value int64
		value, err = strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			err = &ErrLoad{LineNo: lineno, Address: len(words), Text: fields[0]}
			return
		}
		words = append(words, isa.Word(value))
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	emu.Program = nil
	err = emu.Load(words)
	return
}

// Reset the machine: memory holds the loaded image, registers and PC are 0.
func (emu *Emulator) Reset() {
	clear(emu.Memory)
	copy(emu.Memory, emu.image)
	emu.Loaded = len(emu.image)

	emu.Pc = 0
	clear(emu.Register[:])
	emu.Halted = false
	emu.Ticks = 0
}

// LineNo returns the source line number for the current PC, or 0 if unknown.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	record := emu.Program.Debug(emu.Pc)
	if record == nil {
		return 0
	}

	return record.LineNo
}

// Code returns the word at the current PC.
func (emu *Emulator) Code() isa.Word {
	if emu.Pc < 0 || emu.Pc >= len(emu.Memory) {
		return 0
	}
	return isa.Word(emu.Memory[emu.Pc])
}

// address computes a memory address for lw and sw.
func (emu *Emulator) address(code isa.Word) (addr int, err error) {
	addr = int(emu.Register[code.RegA()]) + code.Offset()
	if addr < 0 || addr >= len(emu.Memory) {
		err = fmt.Errorf("%w: %d", ErrAddressRange, addr)
	}
	return
}

// Tick executes a single instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Halted {
		done = true
		return
	}

	pc := emu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	if pc < 0 || pc >= emu.Loaded {
		err = ErrPcRange
		return
	}

	code := isa.Word(emu.Memory[pc])
	regA := code.RegA()
	regB := code.RegB()
	reg := &emu.Register

	if emu.Verbose {
		log.Printf("%d: %v\n", pc, code)
	}

	next := pc + 1

	switch code.Opcode() {
	case isa.OP_ADD:
		reg[code.Dest()] = reg[regA] + reg[regB]
	case isa.OP_NAND:
		reg[code.Dest()] = ^(reg[regA] & reg[regB])
	case isa.OP_LW:
		var addr int
		addr, err = emu.address(code)
		if err != nil {
			return
		}
		reg[regB] = emu.Memory[addr]
	case isa.OP_SW:
		var addr int
		addr, err = emu.address(code)
		if err != nil {
			return
		}
		emu.Memory[addr] = reg[regB]
	case isa.OP_BEQ:
		if reg[regA] == reg[regB] {
			next = pc + 1 + code.Offset()
		}
	case isa.OP_JALR:
		target := int(reg[regA])
		reg[regB] = int32(pc + 1)
		if regA != regB {
			next = target
		}
	case isa.OP_HALT:
		emu.Halted = true
	case isa.OP_NOOP:
	}

	reg[0] = 0
	emu.Pc = next
	emu.Ticks++

	done = emu.Halted
	return
}

// Run executes until halt, an error, or maxTicks instructions (0 for no limit).
// With a Trace writer, the state is written before every instruction.
func (emu *Emulator) Run(maxTicks int) (err error) {
	for {
		if maxTicks > 0 && emu.Ticks >= maxTicks {
			err = &ErrRuntime{Pc: emu.Pc, LineNo: emu.LineNo(), Err: ErrTickLimit}
			return
		}

		if emu.Trace != nil {
			err = emu.WriteState(emu.Trace)
			if err != nil {
				return
			}
		}

		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}

		if done {
			break
		}
	}

	return
}

// WriteMemory writes the loaded memory image, one word per line.
func (emu *Emulator) WriteMemory(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	for n := range emu.Loaded {
		fmt.Fprintf(bw, "memory[%d]=%d\n", n, emu.Memory[n])
	}
	return bw.Flush()
}

// WriteState writes the machine state in the traditional simulator format.
func (emu *Emulator) WriteState(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "@@@\nstate:\n")
	fmt.Fprintf(bw, "\tpc %d\n", emu.Pc)
	fmt.Fprintf(bw, "\tmemory:\n")
	for n := range emu.Loaded {
		fmt.Fprintf(bw, "\t\tmem[ %d ] %d\n", n, emu.Memory[n])
	}
	fmt.Fprintf(bw, "\tregisters:\n")
	for n, value := range emu.Register {
		fmt.Fprintf(bw, "\t\treg[ %d ] %d\n", n, value)
	}
	fmt.Fprintf(bw, "end state\n \n")

	return bw.Flush()
}
