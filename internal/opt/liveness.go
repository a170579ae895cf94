package opt

import (
	"github.com/willf/bitset"

	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
)

// livenessInfo holds the per-block live-variable sets, indexed by value ID.
type livenessInfo struct {
	in  map[ir.BlockID]*bitset.BitSet
	out map[ir.BlockID]*bitset.BitSet
}

// liveOut returns the set of values live at the exit of the given block.
func (l *livenessInfo) liveOut(id ir.BlockID) *bitset.BitSet {
	return l.out[id]
}

// analyzeLiveness runs the iterative live-variable analysis:
//
//	in[B]  = gen[B] ∪ (out[B] − kill[B])
//	out[B] = ∪ in[S] over successors S, plus phi uses credited to B's exit
//
// Blocks are visited in reverse post-order repeatedly until no in-set
// changes. Phi incoming values count as uses at the exit of the matching
// predecessor, not inside the phi's own block. The sets grow monotonically
// and are bounded by the value count, so the iteration converges; an inner
// sweep cap guards pathological inputs. The sets grow from empty, so a
// capped result may still be missing live values and must not drive
// removals: the caller checks the returned converged flag.
func analyzeLiveness(fn *ir.Function) (*livenessInfo, bool) {
	bits := uint(fn.NumValues() + 1)
	order := reversePostorder(fn)

	gen := make(map[ir.BlockID]*bitset.BitSet, len(order))
	kill := make(map[ir.BlockID]*bitset.BitSet, len(order))
	live := &livenessInfo{
		in:  make(map[ir.BlockID]*bitset.BitSet, len(order)),
		out: make(map[ir.BlockID]*bitset.BitSet, len(order)),
	}

	for _, id := range order {
		b := fn.Block(id)
		g := bitset.New(bits)
		k := bitset.New(bits)
		for _, instr := range b.Instrs {
			if instr.Kind != ir.Phi {
				// gen holds values used before any redefinition in the block.
				for _, op := range instr.Operands {
					if op.IsValue() && !k.Test(uint(op.Value)) {
						g.Set(uint(op.Value))
					}
				}
			}
			if instr.Result != ir.NoValue {
				k.Set(uint(instr.Result))
			}
		}
		for _, op := range b.Term.Operands() {
			if op.IsValue() && !k.Test(uint(op.Value)) {
				g.Set(uint(op.Value))
			}
		}
		gen[id] = g
		kill[id] = k
		live.in[id] = bitset.New(bits)
		live.out[id] = bitset.New(bits)
	}

	for sweep := 0; sweep < maxLivenessSweeps; sweep++ {
		changed := false
		for _, id := range order {
			b := fn.Block(id)

			out := bitset.New(bits)
			for _, s := range b.Successors() {
				succ := fn.Block(s)
				if succ == nil || live.in[s] == nil {
					continue
				}
				out.InPlaceUnion(live.in[s])
				for _, instr := range succ.Instrs {
					if instr.Kind != ir.Phi {
						continue
					}
					if use, ok := instr.IncomingFor(id); ok && use.IsValue() {
						out.Set(uint(use.Value))
					}
				}
			}

			in := gen[id].Union(out.Difference(kill[id]))
			if !in.Equal(live.in[id]) {
				changed = true
			}
			live.in[id] = in
			live.out[id] = out
		}
		if !changed {
			return live, true
		}
	}
	return live, false
}
