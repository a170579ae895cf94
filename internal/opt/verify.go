package opt

import (
	"fmt"

	"github.com/willf/bitset"

	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
)

// Verify checks the structural and SSA invariants of a function, intended to
// be called after optimization as part of the caller's pipeline validation.
// Any violation indicates a transformer defect and is returned as a
// descriptive error, never tolerated or auto-corrected. Returns nil when the
// function is sound.
func Verify(fn *ir.Function) *StructuralError {
	if fn.IsDeclaration() {
		return nil
	}
	if fn.EntryBlock() == nil {
		return violation(fn, "entry block is missing or removed")
	}

	// Recompute the ground-truth predecessor sets from the terminators.
	preds := make(map[ir.BlockID]map[ir.BlockID]bool)
	for _, b := range fn.Blocks {
		if b == nil {
			continue
		}
		if b.Term == nil {
			return violation(fn, fmt.Sprintf("block %s has no terminator", b.Label))
		}
		for _, s := range b.Successors() {
			if fn.Block(s) == nil {
				return violation(fn, fmt.Sprintf("block %s branches to removed block b%d", b.Label, s))
			}
			if preds[s] == nil {
				preds[s] = make(map[ir.BlockID]bool)
			}
			preds[s][b.ID] = true
		}
	}

	// Collect definitions, enforcing the one-definition rule.
	defined := bitset.New(uint(fn.NumValues() + 1))
	for _, p := range fn.Params {
		defined.Set(uint(p))
	}
	for _, b := range fn.Blocks {
		if b == nil {
			continue
		}
		for _, instr := range b.Instrs {
			if instr.Result == ir.NoValue {
				continue
			}
			if defined.Test(uint(instr.Result)) {
				return violation(fn, fmt.Sprintf("value %%%d has more than one definition", instr.Result))
			}
			defined.Set(uint(instr.Result))
		}
	}

	for _, b := range fn.Blocks {
		if b == nil {
			continue
		}

		actual := preds[b.ID]
		if len(b.Preds) != len(actual) {
			return violation(fn, fmt.Sprintf("block %s records %d predecessors, control flow has %d",
				b.Label, len(b.Preds), len(actual)))
		}
		for _, p := range b.Preds {
			if !actual[p] {
				return violation(fn, fmt.Sprintf("block %s records b%d as predecessor, but no edge exists", b.Label, p))
			}
		}

		for _, instr := range b.Instrs {
			if instr.Kind == ir.Phi {
				if len(instr.Incoming) != len(actual) {
					return violation(fn, fmt.Sprintf("block %s: phi %%%d has %d incoming entries, want %d",
						b.Label, instr.Result, len(instr.Incoming), len(actual)))
				}
				seen := make(map[ir.BlockID]bool, len(instr.Incoming))
				for _, in := range instr.Incoming {
					if !actual[in.Pred] {
						return violation(fn, fmt.Sprintf("block %s: phi %%%d names b%d, which is not a predecessor",
							b.Label, instr.Result, in.Pred))
					}
					if seen[in.Pred] {
						return violation(fn, fmt.Sprintf("block %s: phi %%%d names b%d twice",
							b.Label, instr.Result, in.Pred))
					}
					seen[in.Pred] = true
				}
			}
			for _, op := range instr.Uses() {
				if op.IsValue() && !defined.Test(uint(op.Value)) {
					return violation(fn, fmt.Sprintf("block %s: %s references undefined value %%%d",
						b.Label, instr, op.Value))
				}
			}
		}
		for _, op := range b.Term.Operands() {
			if op.IsValue() && !defined.Test(uint(op.Value)) {
				return violation(fn, fmt.Sprintf("block %s: terminator %s references undefined value %%%d",
					b.Label, b.Term, op.Value))
			}
		}
	}
	return nil
}

func violation(fn *ir.Function, detail string) *StructuralError {
	return &StructuralError{Function: fn.Name, Detail: detail}
}
