// Package asm implements the two-pass assembler for the SMC instruction set.
//
// Pass 1 (Assembler.Scan) splits source lines into words, assigns every
// instruction and .fill directive one word address, and builds the symbol
// table. Pass 2 (Resolve) validates operands, resolves label references and
// PC-relative branch offsets, and range-checks every field. The resolved
// records are then packed into machine words by the isa package.
//
// Assembly is fail-fast: the first error, in address order, is returned and
// no machine words are produced.
package asm
