package ir

import (
	"fmt"
	"strings"
)

// Terminator is the control-transfer instruction ending a basic block.
type Terminator interface {
	fmt.Stringer
	// Successors returns the blocks this terminator can transfer control to.
	Successors() []BlockID
	// Operands returns the value uses of the terminator.
	Operands() []Operand
}

type Return struct {
	Value *Operand // nil for bare returns
	Size  int
}

func (r Return) String() string {
	if r.Value != nil {
		return fmt.Sprintf("Return%d(%s)", r.Size, r.Value)
	}
	return "Return()"
}

func (r Return) Successors() []BlockID {
	return nil
}

func (r Return) Operands() []Operand {
	if r.Value == nil {
		return nil
	}
	return []Operand{*r.Value}
}

type Branch struct {
	Target BlockID
}

func (b Branch) String() string {
	return fmt.Sprintf("Jump(b%d)", b.Target)
}

func (b Branch) Successors() []BlockID {
	return []BlockID{b.Target}
}

func (b Branch) Operands() []Operand {
	return nil
}

type CondBranch struct {
	Cond Operand
	Size int
	Then BlockID
	Else BlockID
}

func (c CondBranch) String() string {
	return fmt.Sprintf("BranchIf%d(%s, b%d, b%d)", c.Size, c.Cond, c.Then, c.Else)
}

func (c CondBranch) Successors() []BlockID {
	return []BlockID{c.Then, c.Else}
}

func (c CondBranch) Operands() []Operand {
	return []Operand{c.Cond}
}

type SwitchCase struct {
	Value  int64
	Target BlockID
}

type Switch struct {
	Value   Operand
	Size    int
	Cases   []SwitchCase
	Default BlockID
}

func (s Switch) String() string {
	cases := make([]string, len(s.Cases))
	for i, c := range s.Cases {
		cases[i] = fmt.Sprintf("%d: b%d", c.Value, c.Target)
	}
	return fmt.Sprintf("Switch%d(%s, [%s], b%d)", s.Size, s.Value, strings.Join(cases, ", "), s.Default)
}

func (s Switch) Successors() []BlockID {
	succs := make([]BlockID, 0, len(s.Cases)+1)
	for _, c := range s.Cases {
		succs = append(succs, c.Target)
	}
	return append(succs, s.Default)
}

func (s Switch) Operands() []Operand {
	return []Operand{s.Value}
}

type IndirectBranch struct {
	Address Operand
	// Targets is the full set of blocks the address may name.
	Targets []BlockID
}

func (i IndirectBranch) String() string {
	targets := make([]string, len(i.Targets))
	for j, t := range i.Targets {
		targets[j] = fmt.Sprintf("b%d", t)
	}
	return fmt.Sprintf("IndirectBranch(%s, [%s])", i.Address, strings.Join(targets, ", "))
}

func (i IndirectBranch) Successors() []BlockID {
	return i.Targets
}

func (i IndirectBranch) Operands() []Operand {
	return []Operand{i.Address}
}

type Unreachable struct{}

func (Unreachable) String() string {
	return "Unreachable()"
}

func (Unreachable) Successors() []BlockID {
	return nil
}

func (Unreachable) Operands() []Operand {
	return nil
}
