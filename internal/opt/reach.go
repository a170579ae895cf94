package opt

import (
	"github.com/willf/bitset"

	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
)

// reachableBlocks returns the set of block IDs reachable from the entry
// block. Read-only, O(blocks + edges).
func reachableBlocks(fn *ir.Function) *bitset.BitSet {
	reachable := bitset.New(uint(len(fn.Blocks)))
	reachable.Set(uint(fn.Entry))
	stack := []ir.BlockID{fn.Entry}
	for len(stack) > 0 {
		b := fn.Block(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		if b == nil {
			continue
		}
		for _, s := range b.Successors() {
			if fn.Block(s) == nil {
				continue
			}
			if !reachable.Test(uint(s)) {
				reachable.Set(uint(s))
				stack = append(stack, s)
			}
		}
	}
	return reachable
}

// reversePostorder returns the reachable blocks in reverse post-order, the
// visitation order that speeds convergence of the dataflow iteration.
func reversePostorder(fn *ir.Function) []ir.BlockID {
	visited := bitset.New(uint(len(fn.Blocks)))
	postorder := make([]ir.BlockID, 0, len(fn.Blocks))

	var visit func(id ir.BlockID)
	visit = func(id ir.BlockID) {
		visited.Set(uint(id))
		b := fn.Block(id)
		if b == nil {
			return
		}
		for _, s := range b.Successors() {
			if fn.Block(s) != nil && !visited.Test(uint(s)) {
				visit(s)
			}
		}
		postorder = append(postorder, id)
	}
	visit(fn.Entry)

	order := make([]ir.BlockID, 0, len(postorder))
	for i := len(postorder) - 1; i >= 0; i-- {
		order = append(order, postorder[i])
	}
	return order
}
