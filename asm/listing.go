package asm

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Listing renders the program as a table of address, source and machine word.
func (prog *Program) Listing(style table.Style) string {
	tw := table.NewWriter()
	tw.SetStyle(style)
	tw.SetTitle(f("Program (%d words)", len(prog.Words)))
	tw.AppendHeader(table.Row{f("Address"), f("Label"), f("Source"), f("Decimal"), f("Hex"), f("Decoded")})

	for n, r := range prog.Records {
		word := prog.Words[n]
		source := strings.Join(append([]string{r.Op}, r.Fields...), " ")
		decoded := ""
		if !r.IsFill() {
			decoded = word.String()
		}
		tw.AppendRow(table.Row{
			r.Address,
			r.Label,
			source,
			int32(word),
			fmt.Sprintf("0x%08X", uint32(word)),
			decoded,
		})
	}

	return tw.Render()
}

// Render renders the symbol table.
func (st *SymbolTable) Render(style table.Style) string {
	tw := table.NewWriter()
	tw.SetStyle(style)
	tw.SetTitle(f("Symbols (%d)", st.Len()))
	tw.AppendHeader(table.Row{f("Label"), f("Address")})

	for name, address := range st.All() {
		tw.AppendRow(table.Row{name, address})
	}

	return tw.Render()
}
