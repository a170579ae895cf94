package opt

import (
	"fmt"

	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
)

// effectClass tags how removable an instruction is.
type effectClass int

const (
	classPure effectClass = iota
	classMemoryRead
	classMemoryWrite
	classEffectful
)

// classify maps an instruction to its side-effect class. For the EffectFul
// classes it also names the reason a dead-looking instance must be retained.
// Deterministic and stateless, O(1) per instruction.
func classify(instr *ir.Instruction, esc *escapeInfo, callees map[string]*ir.Function) (effectClass, Reason) {
	switch instr.Kind {
	case ir.Binary, ir.Unary, ir.Cast, ir.PtrAdd, ir.Vector, ir.Phi:
		return classPure, ""

	case ir.Load:
		// Volatile marking would hook in here; loads are currently always
		// eligible when unused.
		return classMemoryRead, ""

	case ir.Alloc:
		return classMemoryWrite, ""

	case ir.Store:
		address := instr.Operands[0]
		if esc.isMixed(address) {
			return classEffectful, ReasonMayAlias
		}
		root, ok := esc.rootOf(address)
		if !ok {
			// Parameter or loaded pointer: the target may alias anything.
			return classEffectful, ReasonMayAlias
		}
		switch esc.status[root] {
		case escapeLocal:
			return classMemoryWrite, ""
		case escapeAddressTaken:
			return classEffectful, ReasonPotentialSideEffect
		default:
			return classEffectful, ReasonEscapedPointer
		}

	case ir.Call:
		if callee, ok := callees[instr.Callee]; ok && callee.Pure && !callee.IsDeclaration() {
			return classPure, ""
		}
		// External, bodyless or unannotated callees are all assumed
		// effectful.
		return classEffectful, ReasonUnknownCallPurity
	}
	panic(fmt.Sprintf("unhandled instruction kind: %v", instr.Kind))
}
