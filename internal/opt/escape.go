package opt

import (
	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
)

// escapeStatus classifies a local allocation. The status only ever increases
// toward the more conservative end.
type escapeStatus int

const (
	escapeLocal escapeStatus = iota
	escapeAddressTaken
	escapeEscaped
)

func (s escapeStatus) String() string {
	switch s {
	case escapeLocal:
		return "Local"
	case escapeAddressTaken:
		return "AddressTaken"
	}
	return "Escaped"
}

// escapeInfo is the per-round summary of the escape analyzer.
type escapeInfo struct {
	// status is kept per allocation-producing value.
	status map[ir.ValueID]escapeStatus
	// root maps a derived pointer back to the allocation it addresses.
	// Allocations map to themselves. Function parameters and pointers loaded
	// through other pointers have no entry: their targets are the
	// conservative Escaped baseline.
	root map[ir.ValueID]ir.ValueID
	// mixed marks pointers merged through a phi; writes through them are
	// alias-ambiguous.
	mixed map[ir.ValueID]bool
	// reads counts the surviving loads per allocation. The transformer
	// decrements it as it deletes loads so unread stores fall out in the same
	// round.
	reads map[ir.ValueID]int
}

func (e *escapeInfo) rootOf(op ir.Operand) (ir.ValueID, bool) {
	if !op.IsValue() {
		return ir.NoValue, false
	}
	r, ok := e.root[op.Value]
	return r, ok
}

func (e *escapeInfo) isMixed(op ir.Operand) bool {
	return op.IsValue() && e.mixed[op.Value]
}

// raise moves an allocation's status toward the conservative end, never back.
func (e *escapeInfo) raise(alloc ir.ValueID, s escapeStatus) {
	if current, ok := e.status[alloc]; !ok || s > current {
		e.status[alloc] = s
	}
}

// raiseOperand raises the allocation addressed by op, if op is a tracked
// pointer.
func (e *escapeInfo) raiseOperand(op ir.Operand, s escapeStatus) {
	if r, ok := e.rootOf(op); ok {
		e.raise(r, s)
	}
}

// analyzeEscapes runs a single monotone forward pass over the function.
// Pointers whose derivation the pass has not seen yet (e.g. phi incomings
// from a back-edge) are simply left untracked, which errs conservative.
func analyzeEscapes(fn *ir.Function) *escapeInfo {
	esc := &escapeInfo{
		status: make(map[ir.ValueID]escapeStatus),
		root:   make(map[ir.ValueID]ir.ValueID),
		mixed:  make(map[ir.ValueID]bool),
		reads:  make(map[ir.ValueID]int),
	}

	for _, b := range fn.Blocks {
		if b == nil {
			continue
		}
		for _, instr := range b.Instrs {
			switch instr.Kind {
			case ir.Alloc:
				esc.raise(instr.Result, escapeLocal)
				esc.root[instr.Result] = instr.Result

			case ir.PtrAdd, ir.Cast:
				// Address computation over an allocation: the result still
				// addresses the same allocation, which now counts as
				// address-taken.
				base := instr.Operands[0]
				if r, ok := esc.rootOf(base); ok {
					esc.root[instr.Result] = r
					esc.raise(r, escapeAddressTaken)
				}
				if esc.isMixed(base) {
					esc.mixed[instr.Result] = true
				}

			case ir.Phi:
				// Merging allocation pointers loses the single-root
				// property. Mark the result alias-ambiguous and give every
				// contributing allocation the escaped baseline.
				for _, in := range instr.Incoming {
					if r, ok := esc.rootOf(in.Value); ok {
						esc.raise(r, escapeEscaped)
						esc.mixed[instr.Result] = true
					}
					if esc.isMixed(in.Value) {
						esc.mixed[instr.Result] = true
					}
				}

			case ir.Load:
				if r, ok := esc.rootOf(instr.Operands[0]); ok {
					esc.reads[r]++
				}

			case ir.Store:
				// Storing an allocation's address into memory publishes it.
				// The address operand itself is only being written through.
				esc.raiseOperand(instr.Operands[1], escapeEscaped)

			case ir.Call:
				for _, arg := range instr.Operands {
					esc.raiseOperand(arg, escapeEscaped)
				}

			case ir.Binary, ir.Unary, ir.Vector:
				// Arithmetic over an address is not itself an escape; a
				// pointer rebuilt from it surfaces as PtrAdd or Cast.
			}
		}

		switch term := b.Term.(type) {
		case ir.Return:
			if term.Value != nil {
				esc.raiseOperand(*term.Value, escapeEscaped)
			}
		case ir.IndirectBranch:
			esc.raiseOperand(term.Address, escapeEscaped)
		}
	}
	return esc
}
