package asm

import (
	"strings"
	"unicode"
)

// DefaultCommentChars are the characters that start a comment unless the
// Assembler is configured otherwise.
const DefaultCommentChars = "#;"

// Tokenize removes everything from the first comment character onward and
// splits the remainder of line into whitespace separated words.
//
// A $(...) expression is always a single word, even if it contains spaces.
func Tokenize(line string, commentChars string) (words []string) {
	if n := strings.IndexAny(line, commentChars); n >= 0 {
		line = line[:n]
	}

	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	runes := []rune(line)
	depth := 0
	for n := 0; n < len(runes); n++ {
		r := runes[n]
		switch {
		case depth > 0:
			word.WriteRune(r)
			switch r {
			case '(':
				depth++
			case ')':
				depth--
			}
		case r == '$' && n+1 < len(runes) && runes[n+1] == '(':
			word.WriteString("$(")
			depth = 1
			n++
		case unicode.IsSpace(r):
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()

	return
}
