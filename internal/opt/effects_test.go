package opt

import (
	"testing"

	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
)

func TestClassifyPureAndMemoryKinds(t *testing.T) {
	esc := analyzeEscapes(ir.NewFunction("empty"))
	tests := []struct {
		name     string
		instr    *ir.Instruction
		expected effectClass
	}{
		{"binary", ir.NewBinary(1, "+", ir.ConstInt(1), ir.ConstInt(2), 8), classPure},
		{"unary", ir.NewUnary(1, "-", ir.ConstInt(1), 8), classPure},
		{"cast", ir.NewCast(2, ir.Val(1), 4), classPure},
		{"pointer arithmetic", ir.NewPtrAdd(2, ir.Val(1), ir.ConstInt(4), 8), classPure},
		{"vector", &ir.Instruction{Kind: ir.Vector, Result: 2, Operation: "add", Operands: []ir.Operand{ir.Val(1)}, Size: 32}, classPure},
		{"phi", ir.NewPhi(2, 8, ir.Incoming{Value: ir.Val(1), Pred: 0}), classPure},
		{"load", ir.NewLoad(2, ir.Val(1), 8), classMemoryRead},
		{"alloc", ir.NewAlloc(1, 8), classMemoryWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, reason := classify(tt.instr, esc, nil)
			if class != tt.expected {
				t.Errorf("class = %v, want %v", class, tt.expected)
			}
			if reason != "" {
				t.Errorf("unexpected reason %q", reason)
			}
		})
	}
}

func TestClassifyStores(t *testing.T) {
	fn := ir.NewFunction("f")
	p := fn.NewParam(8)
	entry := fn.NewBlock("entry")

	local := fn.NewValue()
	taken := fn.NewValue()
	field := fn.NewValue()
	published := fn.NewValue()

	entry.Append(ir.NewAlloc(local, 8))
	entry.Append(ir.NewAlloc(taken, 16))
	entry.Append(ir.NewPtrAdd(field, ir.Val(taken), ir.ConstInt(8), 8))
	entry.Append(ir.NewAlloc(published, 8))
	entry.Append(ir.NewCall(ir.NoValue, "sink", 0, ir.Val(published)))
	fn.SetTerm(entry, ir.Return{})

	esc := analyzeEscapes(fn)

	tests := []struct {
		name     string
		store    *ir.Instruction
		expected effectClass
		reason   Reason
	}{
		{
			name:     "store to local allocation",
			store:    ir.NewStore(ir.Val(local), ir.ConstInt(1)),
			expected: classMemoryWrite,
			reason:   "",
		},
		{
			name:     "store to address-taken allocation",
			store:    ir.NewStore(ir.Val(taken), ir.ConstInt(1)),
			expected: classEffectful,
			reason:   ReasonPotentialSideEffect,
		},
		{
			name:     "store to escaped allocation",
			store:    ir.NewStore(ir.Val(published), ir.ConstInt(1)),
			expected: classEffectful,
			reason:   ReasonEscapedPointer,
		},
		{
			name:     "store through parameter",
			store:    ir.NewStore(ir.Val(p), ir.ConstInt(1)),
			expected: classEffectful,
			reason:   ReasonMayAlias,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, reason := classify(tt.store, esc, nil)
			if class != tt.expected {
				t.Errorf("class = %v, want %v", class, tt.expected)
			}
			if reason != tt.reason {
				t.Errorf("reason = %q, want %q", reason, tt.reason)
			}
		})
	}
}

func TestClassifyCalls(t *testing.T) {
	pureCallee := ir.NewFunction("twice")
	pureCallee.Pure = true
	body := pureCallee.NewBlock("entry")
	pureCallee.SetTerm(body, ir.Return{})

	pureDecl := ir.Declare("intrinsic")
	pureDecl.Pure = true

	callees := map[string]*ir.Function{
		"twice":     pureCallee,
		"intrinsic": pureDecl,
		"log":       ir.Declare("log"),
	}

	esc := analyzeEscapes(ir.NewFunction("empty"))
	tests := []struct {
		name     string
		callee   string
		callees  map[string]*ir.Function
		expected effectClass
	}{
		{"known pure callee with body", "twice", callees, classPure},
		{"pure-marked declaration stays effectful", "intrinsic", callees, classEffectful},
		{"external declaration", "log", callees, classEffectful},
		{"unknown callee", "mystery", callees, classEffectful},
		{"no callee table", "twice", nil, classEffectful},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := ir.NewCall(9, tt.callee, 8)
			class, reason := classify(call, esc, tt.callees)
			if class != tt.expected {
				t.Errorf("class = %v, want %v", class, tt.expected)
			}
			if class == classEffectful && reason != ReasonUnknownCallPurity {
				t.Errorf("reason = %q, want %q", reason, ReasonUnknownCallPurity)
			}
		})
	}
}
