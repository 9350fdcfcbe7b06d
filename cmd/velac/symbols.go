package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/you-not-fish/vela/internal/syntax"
	"github.com/you-not-fish/vela/internal/types"
)

// writeSymbols renders the global symbol table as a table.
// Struct sizes are taken from their declarations in prog.
func writeSymbols(w io.Writer, prog syntax.Main, globals *types.Globals) {
	structs := make(map[string]*syntax.StructTypes)
	for _, d := range prog {
		if st, ok := d.(*syntax.StructTypes); ok {
			structs[st.Name.Name()] = st
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Kind", "Name", "Type", "Size"})
	table.SetAutoFormatHeaders(false)

	for _, name := range globals.ConstantNames() {
		typ, _ := globals.Constant(name)
		table.Append([]string{"const", name, typ.Name(), fmt.Sprint(types.DefaultSizes.Sizeof(typ))})
	}
	for _, name := range globals.TypeNames() {
		size := "-"
		if st, ok := structs[name]; ok {
			l := types.DefaultSizes.Layout(st.Type())
			size = fmt.Sprintf("%d (align %d)", l.Size, l.Align)
		}
		table.Append([]string{"type", name, "struct", size})
	}
	for _, name := range globals.FunctionNames() {
		sig, _ := globals.Function(name)
		table.Append([]string{"func", name, sig.String(), "-"})
	}
	table.Render()
}
