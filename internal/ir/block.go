package ir

type BasicBlock struct {
	ID    BlockID
	Label string
	// Instrs is the ordered instruction list; phis come first by SSA
	// convention but nothing here depends on that.
	Instrs []*Instruction
	Term   Terminator
	// Preds lists the blocks that transfer control here. Successors are
	// derived from the terminator.
	Preds []BlockID
}

func (b *BasicBlock) Append(instr *Instruction) *Instruction {
	b.Instrs = append(b.Instrs, instr)
	return instr
}

func (b *BasicBlock) Successors() []BlockID {
	if b.Term == nil {
		return nil
	}
	return b.Term.Successors()
}

func (b *BasicBlock) HasPred(pred BlockID) bool {
	for _, p := range b.Preds {
		if p == pred {
			return true
		}
	}
	return false
}

// RemovePred unlinks an incoming edge. Phi incoming entries are repaired
// separately, matched by predecessor identity.
func (b *BasicBlock) RemovePred(pred BlockID) {
	kept := b.Preds[:0]
	for _, p := range b.Preds {
		if p != pred {
			kept = append(kept, p)
		}
	}
	b.Preds = kept
}
