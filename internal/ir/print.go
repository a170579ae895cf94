package ir

import (
	"fmt"
	"io"
	"strings"
)

func (m *Module) Print(writer io.Writer) {
	for _, fn := range m.Functions {
		fn.Print(writer)
		fmt.Fprintf(writer, "\n")
	}
}

func (f *Function) String() string {
	var sb strings.Builder
	f.Print(&sb)
	return sb.String()
}

func (f *Function) Print(writer io.Writer) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%%%d/%d", p, f.ParamSizes[i])
	}
	fmt.Fprintf(writer, "Function %s(%s):\n", f.Name, strings.Join(params, ", "))
	if f.IsDeclaration() {
		fmt.Fprintf(writer, "  <declaration>\n")
		return
	}
	for _, b := range f.Blocks {
		if b == nil {
			continue
		}
		marker := ""
		if b.ID == f.Entry {
			marker = " (entry)"
		}
		fmt.Fprintf(writer, "  %s:%s\n", b.Label, marker)
		for _, instr := range b.Instrs {
			fmt.Fprintf(writer, "    %s\n", instr)
		}
		if b.Term != nil {
			fmt.Fprintf(writer, "    %s\n", b.Term)
		}
	}
}
