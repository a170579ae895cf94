package ir

import (
	"fmt"
	"strings"
)

// OpKind tags the instruction variant. Classification sites switch over it
// exhaustively, so adding a kind forces every consumer to be updated.
type OpKind int

const (
	Binary OpKind = iota
	Unary
	Cast
	PtrAdd
	Vector
	Phi
	Alloc
	Load
	Store
	Call
)

func (k OpKind) String() string {
	switch k {
	case Binary:
		return "BinaryOp"
	case Unary:
		return "UnaryOp"
	case Cast:
		return "Cast"
	case PtrAdd:
		return "PtrAdd"
	case Vector:
		return "VectorOp"
	case Phi:
		return "Phi"
	case Alloc:
		return "Alloc"
	case Load:
		return "Load"
	case Store:
		return "Store"
	case Call:
		return "Call"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Incoming is one phi entry: the value to select when control arrives from
// the given predecessor.
type Incoming struct {
	Value Operand
	Pred  BlockID
}

type Instruction struct {
	Kind   OpKind
	Result ValueID // NoValue if the instruction produces nothing
	// Operation names the operator for Binary/Unary/Vector, e.g. "+" or "add".
	Operation string
	// Operands are the ordered value uses. For Load the single operand is the
	// address; for Store it is address then value; for Call the arguments.
	Operands []Operand
	// Incoming is only set on phis.
	Incoming []Incoming
	// Callee is only set on calls.
	Callee string
	// Size of the result (or the memory access) in bytes.
	Size int
	// Span is source metadata, preserved verbatim when the instruction
	// survives optimization.
	Span SourceSpan
}

// Uses returns every operand of the instruction, phi incoming values
// included. Liveness credits phi uses to predecessor exits instead; this
// accessor serves whole-function queries like the verifier's.
func (i *Instruction) Uses() []Operand {
	if i.Kind != Phi {
		return i.Operands
	}
	uses := make([]Operand, 0, len(i.Incoming))
	for _, in := range i.Incoming {
		uses = append(uses, in.Value)
	}
	return uses
}

// IncomingFor returns the phi entry for the given predecessor.
func (i *Instruction) IncomingFor(pred BlockID) (Operand, bool) {
	for _, in := range i.Incoming {
		if in.Pred == pred {
			return in.Value, true
		}
	}
	return Operand{}, false
}

// RemoveIncoming deletes the phi entry for the given predecessor, matched by
// predecessor identity.
func (i *Instruction) RemoveIncoming(pred BlockID) {
	kept := i.Incoming[:0]
	for _, in := range i.Incoming {
		if in.Pred != pred {
			kept = append(kept, in)
		}
	}
	i.Incoming = kept
}

func (i *Instruction) String() string {
	switch i.Kind {
	case Binary:
		return fmt.Sprintf("BinaryOp%d(%%%d = %s %s %s)", i.Size, i.Result, i.Operands[0], i.Operation, i.Operands[1])
	case Unary:
		return fmt.Sprintf("UnaryOp%d(%%%d = %s%s)", i.Size, i.Result, i.Operation, i.Operands[0])
	case Cast:
		return fmt.Sprintf("Cast%d(%%%d = %s)", i.Size, i.Result, i.Operands[0])
	case PtrAdd:
		return fmt.Sprintf("PtrAdd%d(%%%d = %s + %s)", i.Size, i.Result, i.Operands[0], i.Operands[1])
	case Vector:
		return fmt.Sprintf("VectorOp%d(%%%d = %s %s)", i.Size, i.Result, i.Operation, joinOperands(i.Operands))
	case Phi:
		entries := make([]string, 0, len(i.Incoming))
		for _, in := range i.Incoming {
			entries = append(entries, fmt.Sprintf("b%d: %s", in.Pred, in.Value))
		}
		return fmt.Sprintf("Phi%d(%%%d = [%s])", i.Size, i.Result, strings.Join(entries, ", "))
	case Alloc:
		return fmt.Sprintf("Alloc%d(%%%d)", i.Size, i.Result)
	case Load:
		return fmt.Sprintf("Load%d(%%%d = *%s)", i.Size, i.Result, i.Operands[0])
	case Store:
		return fmt.Sprintf("Store%d(*%s = %s)", i.Size, i.Operands[0], i.Operands[1])
	case Call:
		if i.Result == NoValue {
			return fmt.Sprintf("Call%d(%s(%s))", i.Size, i.Callee, joinOperands(i.Operands))
		}
		return fmt.Sprintf("Call%d(%%%d = %s(%s))", i.Size, i.Result, i.Callee, joinOperands(i.Operands))
	}
	panic(fmt.Sprintf("invalid instruction kind: %d", int(i.Kind)))
}

func joinOperands(operands []Operand) string {
	parts := make([]string, len(operands))
	for i, op := range operands {
		parts[i] = op.String()
	}
	return strings.Join(parts, ", ")
}

func NewBinary(result ValueID, operation string, left, right Operand, size int) *Instruction {
	return &Instruction{Kind: Binary, Result: result, Operation: operation, Operands: []Operand{left, right}, Size: size}
}

func NewUnary(result ValueID, operation string, value Operand, size int) *Instruction {
	return &Instruction{Kind: Unary, Result: result, Operation: operation, Operands: []Operand{value}, Size: size}
}

func NewCast(result ValueID, value Operand, size int) *Instruction {
	return &Instruction{Kind: Cast, Result: result, Operands: []Operand{value}, Size: size}
}

func NewPtrAdd(result ValueID, base, offset Operand, size int) *Instruction {
	return &Instruction{Kind: PtrAdd, Result: result, Operands: []Operand{base, offset}, Size: size}
}

func NewPhi(result ValueID, size int, incoming ...Incoming) *Instruction {
	return &Instruction{Kind: Phi, Result: result, Incoming: incoming, Size: size}
}

func NewAlloc(result ValueID, size int) *Instruction {
	return &Instruction{Kind: Alloc, Result: result, Size: size}
}

func NewLoad(result ValueID, address Operand, size int) *Instruction {
	return &Instruction{Kind: Load, Result: result, Operands: []Operand{address}, Size: size}
}

func NewStore(address, value Operand) *Instruction {
	return &Instruction{Kind: Store, Operands: []Operand{address, value}}
}

func NewCall(result ValueID, callee string, size int, args ...Operand) *Instruction {
	return &Instruction{Kind: Call, Result: result, Callee: callee, Operands: args, Size: size}
}
