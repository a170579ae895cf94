package opt

import (
	"testing"

	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
)

func TestRemoveUnreachableBlocksRepairsPhis(t *testing.T) {
	fn := ir.NewFunction("f")
	entry := fn.NewBlock("entry")
	alive := fn.NewBlock("alive")
	dead := fn.NewBlock("dead")
	merge := fn.NewBlock("merge")

	vAlive := fn.NewValue()
	vPhi := fn.NewValue()

	fn.SetTerm(entry, ir.Branch{Target: alive.ID})
	alive.Append(ir.NewBinary(vAlive, "+", ir.ConstInt(1), ir.ConstInt(1), 8))
	fn.SetTerm(alive, ir.Branch{Target: merge.ID})
	// dead has no predecessors but still feeds the merge phi.
	fn.SetTerm(dead, ir.Branch{Target: merge.ID})
	phi := merge.Append(ir.NewPhi(vPhi, 8,
		ir.Incoming{Value: ir.Val(vAlive), Pred: alive.ID},
		ir.Incoming{Value: ir.ConstInt(5), Pred: dead.ID},
	))
	ret := ir.Val(vPhi)
	fn.SetTerm(merge, ir.Return{Value: &ret, Size: 8})

	removed := removeUnreachableBlocks(fn, reachableBlocks(fn))
	if removed != 1 {
		t.Fatalf("removed %d blocks, want 1", removed)
	}
	if fn.Block(dead.ID) != nil {
		t.Error("dead block still present")
	}
	if merge.HasPred(dead.ID) {
		t.Error("merge still lists the removed block as predecessor")
	}
	// The remaining single-entry phi is retained unmodified, not collapsed.
	if len(phi.Incoming) != 1 {
		t.Fatalf("phi has %d incoming entries, want 1", len(phi.Incoming))
	}
	if phi.Incoming[0].Pred != alive.ID || phi.Incoming[0].Value.Value != vAlive {
		t.Errorf("surviving phi entry = %+v, want %%%d from %s", phi.Incoming[0], vAlive, alive.Label)
	}
	if err := Verify(fn); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

func TestRemoveUnreachableBlocksKeepsReachableRegion(t *testing.T) {
	fn := ir.NewFunction("f")
	entry := fn.NewBlock("entry")
	loopHead := fn.NewBlock("head")
	loopBody := fn.NewBlock("body")
	exit := fn.NewBlock("exit")

	cond := fn.NewValue()
	fn.SetTerm(entry, ir.Branch{Target: loopHead.ID})
	fn.SetTerm(loopHead, ir.CondBranch{Cond: ir.Val(cond), Size: 1, Then: loopBody.ID, Else: exit.ID})
	fn.SetTerm(loopBody, ir.Branch{Target: loopHead.ID})
	fn.SetTerm(exit, ir.Return{})

	if removed := removeUnreachableBlocks(fn, reachableBlocks(fn)); removed != 0 {
		t.Errorf("removed %d blocks from a fully reachable CFG", removed)
	}
	for _, b := range []*ir.BasicBlock{entry, loopHead, loopBody, exit} {
		if fn.Block(b.ID) == nil {
			t.Errorf("block %s was removed", b.Label)
		}
	}
}

func TestDeadChainCollapsesInOnePass(t *testing.T) {
	fn := ir.NewFunction("f")
	entry := fn.NewBlock("entry")
	v1 := fn.NewValue()
	v2 := fn.NewValue()
	v3 := fn.NewValue()
	v4 := fn.NewValue()
	entry.Append(ir.NewBinary(v1, "+", ir.ConstInt(1), ir.ConstInt(2), 8))
	entry.Append(ir.NewBinary(v2, "*", ir.Val(v1), ir.ConstInt(3), 8))
	entry.Append(ir.NewBinary(v3, "-", ir.Val(v2), ir.ConstInt(5), 8))
	entry.Append(ir.NewBinary(v4, "+", ir.ConstInt(10), ir.ConstInt(20), 8))
	ret := ir.Val(v4)
	fn.SetTerm(entry, ir.Return{Value: &ret, Size: 8})

	live, _ := analyzeLiveness(fn)
	esc := analyzeEscapes(fn)
	stats := &Stats{}
	removed := removeDeadInstructions(fn, live, esc, nil, stats)
	if removed != 3 {
		t.Errorf("removed %d instructions, want 3", removed)
	}
	if len(entry.Instrs) != 1 || entry.Instrs[0].Result != v4 {
		t.Errorf("surviving instructions = %v, want just %%%d", entry.Instrs, v4)
	}
}

func TestSpanSurvivesTransform(t *testing.T) {
	fn := ir.NewFunction("f")
	entry := fn.NewBlock("entry")
	v1 := fn.NewValue()
	v2 := fn.NewValue()
	span := ir.SourceSpan{File: "main.vn", Line: 3, Col: 9}
	keep := ir.NewBinary(v1, "+", ir.ConstInt(1), ir.ConstInt(2), 8)
	keep.Span = span
	entry.Append(keep)
	entry.Append(ir.NewBinary(v2, "*", ir.ConstInt(2), ir.ConstInt(2), 8))
	ret := ir.Val(v1)
	fn.SetTerm(entry, ir.Return{Value: &ret, Size: 8})

	live, _ := analyzeLiveness(fn)
	stats := &Stats{}
	removeDeadInstructions(fn, live, analyzeEscapes(fn), nil, stats)
	if len(entry.Instrs) != 1 {
		t.Fatalf("surviving instructions = %d, want 1", len(entry.Instrs))
	}
	if entry.Instrs[0].Span != span {
		t.Errorf("span = %v, want %v preserved verbatim", entry.Instrs[0].Span, span)
	}
}
