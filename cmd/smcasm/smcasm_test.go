package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/smc/asm"
	"github.com/ezrec/smc/config"
)

const countSource = `        lw   0 1 five    # load 5
        lw   0 2 neg1
start   add  1 2 1
        beq  0 1 done
        beq  0 0 start
done    halt
five    .fill 5
neg1    .fill -1
`

const countWords = "8454150\n8519687\n655361\n16842753\n16842749\n25165824\n5\n-1\n"

func writeSource(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "prog.asm")
	err := os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunStdout(t *testing.T) {
	assert := assert.New(t)

	var stdout, stderr bytes.Buffer
	err := run(&options{compile: writeSource(t, countSource), output: "-", listing: true}, &stdout, &stderr)
	assert.NoError(err)
	assert.Equal(countWords, stdout.String())
	assert.Contains(stderr.String(), "0x0100FFFD")
	assert.Contains(stderr.String(), "neg1")
}

func TestRunFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	output := filepath.Join(dir, "prog.mc")
	irOut := filepath.Join(dir, "prog.yaml")

	var stdout, stderr bytes.Buffer
	err := run(&options{compile: writeSource(t, countSource), output: output, irOut: irOut}, &stdout, &stderr)
	assert.NoError(err)
	assert.Equal(0, stdout.Len())

	data, err := os.ReadFile(output)
	assert.NoError(err)
	assert.Equal(countWords, string(data))

	// The interchange file links to the same words.
	stdout.Reset()
	err = run(&options{irIn: irOut, output: "-"}, &stdout, &stderr)
	assert.NoError(err)
	assert.Equal(countWords, stdout.String())

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	assert.Equal(2, len(entries))
}

func TestRunFailure(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	output := filepath.Join(dir, "prog.mc")

	var stdout, stderr bytes.Buffer
	err := run(&options{compile: writeSource(t, "add 0 1 2\nbeq 0 0 nowhere\n"), output: output}, &stdout, &stderr)
	assert.ErrorIs(err, asm.ErrLabelUndefined)

	// Nothing is written on failure.
	_, err = os.Stat(output)
	assert.True(os.IsNotExist(err))
	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	assert.Equal(0, len(entries))

	err = run(&options{compile: writeSource(t, "1abc add 0 1 2\n"), output: "-"}, &stdout, &stderr)
	assert.ErrorIs(err, asm.ErrLabelInvalid)

	err = run(&options{output: "-"}, &stdout, &stderr)
	assert.ErrorIs(err, ErrNoInput)

	err = run(&options{compile: filepath.Join(dir, "missing.asm")}, &stdout, &stderr)
	assert.Error(err)

	assert.Equal(0, stdout.Len())
}

func TestRunConfig(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.Assembler.CountBlankLines = true
	cfg.Assembler.CommentChars = "!"

	var stdout, stderr bytes.Buffer
	err := run(&options{compile: writeSource(t, "noop\n\nhalt ! stop\n"), output: "-", config: cfg}, &stdout, &stderr)
	assert.NoError(err)
	assert.Equal("29360128\n29360128\n25165824\n", stdout.String())
}

func TestDescribe(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		word   string
		output string
	}{
		{"add", "add -> opcode 0 (bin 000) R\n"},
		{"beq", "beq -> opcode 4 (bin 100) I\n"},
		{"jalr", "jalr -> opcode 5 (bin 101) J\n"},
		{"noop", "noop -> opcode 7 (bin 111) O\n"},
		{".fill", ".fill -> (directive)\n"},
	}

	for _, entry := range table {
		var stdout bytes.Buffer
		err := run(&options{opcode: entry.word}, &stdout, nil)
		assert.NoError(err, entry.word)
		assert.Equal(entry.output, stdout.String())
	}

	var stdout bytes.Buffer
	err := describe(&stdout, "mov")
	assert.ErrorIs(err, asm.ErrOpcodeInvalid)
	assert.True(strings.HasSuffix(err.Error(), "mov"))
}
