// Package isa describes the SMC instruction set: eight opcodes on eight
// 3-bit registers, plus the .fill data directive.
//
// Every machine word is a 32-bit signed integer whose low 25 bits carry the
// instruction:
//
//	[ opcode:3 @22 | regA:3 @19 | regB:3 @16 | format-specific 16 bits ]
//
// R-format (add, nand) keeps the destination register in bits 2..0,
// I-format (lw, sw, beq) keeps a two's-complement offset in bits 15..0,
// J-format (jalr) and O-format (halt, noop) leave the remainder zero.
package isa
