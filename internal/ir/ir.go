package ir

import (
	"fmt"
)

/*
SSA intermediate representation for the jsavrs optimizer. Functions are
control-flow graphs of basic blocks; blocks are addressed by stable indices
into the function's block arena, so loops create no ownership cycles.

Each instruction carries a size associated with it. That is the size of the
result of the operation in bytes.

Here are the currently supported instructions:
 * Binary(Result, Operation, Left, Right) - binary arithmetic or logic (e.g. add or multiply).
 * Unary(Result, Operation, Value) - unary arithmetic or logic (e.g. unary minus).
 * Cast(Result, Value) - reinterpret a value at a different size.
 * PtrAdd(Result, Base, Offset) - pointer arithmetic over an address.
 * Vector(Result, Operation, Elements...) - element-wise vector operation.
 * Phi(Result, [Value from Pred]...) - select a value based on the predecessor that transferred control.
 * Alloc(Result) - allocate local memory, producing its address.
 * Load(Result, Address) - read memory.
 * Store(Address, Value) - write memory.
 * Call(Result, Callee, Args...) - call a function by name.

Every block ends in exactly one terminator: Return, Branch, CondBranch,
Switch, IndirectBranch or Unreachable.
*/

// ValueID identifies an SSA value. Under SSA each value has exactly one
// defining instruction (or is a function parameter).
type ValueID int

// NoValue marks instructions that produce no result.
const NoValue ValueID = 0

// BlockID is a stable index into Function.Blocks.
type BlockID int

const NoBlock BlockID = -1

// SourceSpan is debug metadata attached to an instruction. It is preserved
// verbatim on any instruction that survives optimization.
type SourceSpan struct {
	File string
	Line int
	Col  int
}

func (s SourceSpan) String() string {
	if s.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}

type Module struct {
	Functions []*Function
}

// FuncsByName returns the callee lookup table for the module.
func (m *Module) FuncsByName() map[string]*Function {
	funcs := make(map[string]*Function, len(m.Functions))
	for _, fn := range m.Functions {
		funcs[fn.Name] = fn
	}
	return funcs
}

type Function struct {
	Name       string
	Params     []ValueID
	ParamSizes []int
	// Pure marks a callee whose calls have no observable effect beyond the
	// returned value.
	Pure bool

	Entry BlockID
	// Blocks is the block arena. A nil slot is a removed block; indices of
	// surviving blocks never change.
	Blocks []*BasicBlock

	numValues int
}

func NewFunction(name string) *Function {
	return &Function{Name: name, Entry: NoBlock}
}

// Declare creates a bodyless function. Declarations are skipped by the
// optimizer and treated as unknown callees.
func Declare(name string) *Function {
	return &Function{Name: name, Entry: NoBlock}
}

func (f *Function) IsDeclaration() bool {
	return len(f.Blocks) == 0
}

// NewValue allocates a fresh SSA value identifier.
func (f *Function) NewValue() ValueID {
	f.numValues++
	return ValueID(f.numValues)
}

// NumValues returns the number of value identifiers allocated so far.
// Identifiers are 1-based, so every allocated ID is in [1, NumValues()].
func (f *Function) NumValues() int {
	return f.numValues
}

// NewParam allocates a value for a function parameter of the given size.
func (f *Function) NewParam(size int) ValueID {
	id := f.NewValue()
	f.Params = append(f.Params, id)
	f.ParamSizes = append(f.ParamSizes, size)
	return id
}

// NewBlock appends a block to the arena. An empty label defaults to bN.
func (f *Function) NewBlock(label string) *BasicBlock {
	id := BlockID(len(f.Blocks))
	if label == "" {
		label = fmt.Sprintf("b%d", id)
	}
	b := &BasicBlock{ID: id, Label: label}
	f.Blocks = append(f.Blocks, b)
	if f.Entry == NoBlock {
		f.Entry = id
	}
	return b
}

// Block returns the block with the given ID or nil if it was removed or the
// ID is out of range.
func (f *Function) Block(id BlockID) *BasicBlock {
	if id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return f.Blocks[id]
}

func (f *Function) EntryBlock() *BasicBlock {
	return f.Block(f.Entry)
}

func (f *Function) SetEntry(id BlockID) {
	f.Entry = id
}

// SetTerm installs the terminator for a block and records the block as a
// predecessor of each successor. Parallel edges collapse into one
// predecessor entry so that phi incoming lists stay keyed by identity.
func (f *Function) SetTerm(b *BasicBlock, term Terminator) {
	b.Term = term
	for _, s := range term.Successors() {
		succ := f.Block(s)
		if succ == nil {
			continue
		}
		if !succ.HasPred(b.ID) {
			succ.Preds = append(succ.Preds, b.ID)
		}
	}
}

// RemoveBlock deletes a block from the arena. Edges into surviving blocks
// must be unlinked by the caller first.
func (f *Function) RemoveBlock(id BlockID) {
	if id >= 0 && int(id) < len(f.Blocks) {
		f.Blocks[id] = nil
	}
}
