package opt

import (
	"slices"

	"github.com/willf/bitset"

	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
)

// removeUnreachableBlocks deletes every block outside the reachable set. For
// each removed block the incoming entries of phis in surviving successors
// are deleted too, matched by predecessor identity, never by position.
// Returns the number of blocks removed.
func removeUnreachableBlocks(fn *ir.Function, reachable *bitset.BitSet) int {
	removed := 0
	for _, b := range fn.Blocks {
		if b == nil || reachable.Test(uint(b.ID)) {
			continue
		}
		for _, s := range b.Successors() {
			succ := fn.Block(s)
			if succ == nil || !reachable.Test(uint(s)) {
				continue
			}
			succ.RemovePred(b.ID)
			for _, instr := range succ.Instrs {
				if instr.Kind == ir.Phi {
					instr.RemoveIncoming(b.ID)
				}
			}
		}
		fn.RemoveBlock(b.ID)
		removed++
	}
	return removed
}

// removeDeadInstructions sweeps every surviving block backward, deleting
// instructions the analyses proved dead. The working live set is updated as
// instructions are deleted, so a dead def-use chain inside one block
// collapses in a single pass. Dead-looking instructions that must stay are
// recorded as conservative decisions. Returns the number of instructions
// removed.
func removeDeadInstructions(fn *ir.Function, live *livenessInfo, esc *escapeInfo, callees map[string]*ir.Function, stats *Stats) int {
	removed := 0
	for _, b := range fn.Blocks {
		if b == nil {
			continue
		}
		work := live.liveOut(b.ID).Clone()
		for _, op := range b.Term.Operands() {
			if op.IsValue() {
				work.Set(uint(op.Value))
			}
		}

		kept := make([]*ir.Instruction, 0, len(b.Instrs))
		for i := len(b.Instrs) - 1; i >= 0; i-- {
			instr := b.Instrs[i]
			class, reason := classify(instr, esc, callees)
			if removable(instr, class, work, esc) {
				if instr.Kind == ir.Load {
					if r, ok := esc.rootOf(instr.Operands[0]); ok {
						esc.reads[r]--
					}
				}
				removed++
				continue
			}
			if reason != "" && looksRemovable(instr, work, esc) {
				stats.Conservative = append(stats.Conservative, Decision{
					Block:  b.Label,
					Instr:  instr.String(),
					Reason: reason,
				})
			}
			if instr.Result != ir.NoValue {
				work.Clear(uint(instr.Result))
			}
			if instr.Kind != ir.Phi {
				// Phi operands are uses at predecessor exits, not here.
				for _, op := range instr.Operands {
					if op.IsValue() {
						work.Set(uint(op.Value))
					}
				}
			}
			kept = append(kept, instr)
		}
		slices.Reverse(kept)
		b.Instrs = kept
	}
	return removed
}

// removable decides whether one instruction may be deleted given the working
// live set at its position. EffectFul instructions are never removed; a phi
// follows the Pure rule and is never collapsed into a copy here, only
// dropped when its result is dead.
func removable(instr *ir.Instruction, class effectClass, work *bitset.BitSet, esc *escapeInfo) bool {
	switch class {
	case classPure, classMemoryRead:
		return instr.Result != ir.NoValue && !work.Test(uint(instr.Result))
	case classMemoryWrite:
		if instr.Kind == ir.Alloc {
			return !work.Test(uint(instr.Result)) &&
				esc.status[instr.Result] == escapeLocal &&
				esc.reads[instr.Result] == 0
		}
		// Store classified MemoryWrite: target is a Local allocation.
		// Removable once no read of that allocation remains.
		root, ok := esc.rootOf(instr.Operands[0])
		return ok && esc.reads[root] == 0
	}
	return false
}

// looksRemovable reports whether a retained instruction would have been a
// removal candidate if not for its side-effect class. Such retentions are
// the conservative-preservation events surfaced in the stats.
func looksRemovable(instr *ir.Instruction, work *bitset.BitSet, esc *escapeInfo) bool {
	if instr.Result != ir.NoValue {
		return !work.Test(uint(instr.Result))
	}
	if instr.Kind == ir.Store {
		if esc.isMixed(instr.Operands[0]) {
			return true
		}
		if root, ok := esc.rootOf(instr.Operands[0]); ok {
			return esc.reads[root] == 0
		}
	}
	return false
}
