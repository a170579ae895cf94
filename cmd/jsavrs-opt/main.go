package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/opt"
)

// jsavrs-opt is the harness standing in for the surrounding compiler
// pipeline: it builds a showcase module, runs dead code elimination on it,
// verifies the result and emits the diagnostics report.
func main() {
	printIR := flag.Bool("ir", false, "print the IR before and after optimization")
	reportString := flag.String("report", "-", "output file for the YAML report (\"-\" for stdout)")
	flag.Parse()

	module := showcaseModule()

	if *printIR {
		fmt.Println("=== before ===")
		module.Print(os.Stdout)
	}

	report := opt.Run(module)

	for _, fn := range module.Functions {
		if fn.IsDeclaration() {
			continue
		}
		if err := opt.Verify(fn); err != nil {
			fmt.Fprintf(os.Stderr, "verification failed: %v\n", err)
			os.Exit(1)
		}
	}

	if *printIR {
		fmt.Println("=== after ===")
		module.Print(os.Stdout)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error serializing report: %v\n", err)
		os.Exit(1)
	}

	if *reportString == "-" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(*reportString, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing report: %v\n", err)
		os.Exit(1)
	}
}

// showcaseModule builds a module exercising the main removal and retention
// cases: a dead arithmetic chain, an unreachable block, an unread local
// buffer, and an allocation whose address escapes into a call.
func showcaseModule() *ir.Module {
	deadChain := ir.NewFunction("dead_chain")
	entry := deadChain.NewBlock("entry")
	v1 := deadChain.NewValue()
	v2 := deadChain.NewValue()
	v3 := deadChain.NewValue()
	v4 := deadChain.NewValue()
	entry.Append(ir.NewBinary(v1, "+", ir.ConstInt(1), ir.ConstInt(2), 8))
	entry.Append(ir.NewBinary(v2, "*", ir.Val(v1), ir.ConstInt(3), 8))
	entry.Append(ir.NewBinary(v3, "-", ir.Val(v2), ir.ConstInt(5), 8))
	entry.Append(ir.NewBinary(v4, "+", ir.ConstInt(10), ir.ConstInt(20), 8))
	ret := ir.Val(v4)
	deadChain.SetTerm(entry, ir.Return{Value: &ret, Size: 8})

	orphan := deadChain.NewBlock("orphan")
	v5 := deadChain.NewValue()
	orphan.Append(ir.NewBinary(v5, "*", ir.ConstInt(2), ir.ConstInt(2), 8))
	deadChain.SetTerm(orphan, ir.Return{})

	localBuffer := ir.NewFunction("local_buffer")
	lbEntry := localBuffer.NewBlock("entry")
	buf := localBuffer.NewValue()
	lbEntry.Append(ir.NewAlloc(buf, 8))
	lbEntry.Append(ir.NewStore(ir.Val(buf), ir.ConstInt(42)))
	localBuffer.SetTerm(lbEntry, ir.Return{})

	publish := ir.NewFunction("publish")
	pbEntry := publish.NewBlock("entry")
	cell := publish.NewValue()
	pbEntry.Append(ir.NewAlloc(cell, 8))
	pbEntry.Append(ir.NewStore(ir.Val(cell), ir.ConstInt(7)))
	pbEntry.Append(ir.NewCall(ir.NoValue, "sink", 0, ir.Val(cell)))
	publish.SetTerm(pbEntry, ir.Return{})

	return &ir.Module{Functions: []*ir.Function{
		deadChain,
		localBuffer,
		publish,
		ir.Declare("sink"),
	}}
}
