package opt

// Reason tags a conservative-preservation event: code that looked removable
// but was retained for safety.
type Reason string

const (
	ReasonMayAlias            Reason = "MayAlias"
	ReasonUnknownCallPurity   Reason = "UnknownCallPurity"
	ReasonEscapedPointer      Reason = "EscapedPointer"
	ReasonPotentialSideEffect Reason = "PotentialSideEffect"
)

// Decision records one retained instruction together with the reason it was
// kept. Decisions always describe the final state of the function: the driver
// discards the previous round's records before each instruction pass.
type Decision struct {
	Block  string `yaml:"block"`
	Instr  string `yaml:"instr"`
	Reason Reason `yaml:"reason"`
}

// Stats aggregates the result of optimizing one function.
type Stats struct {
	Function            string     `yaml:"function"`
	InstructionsRemoved int        `yaml:"instructions_removed"`
	BlocksRemoved       int        `yaml:"blocks_removed"`
	Iterations          int        `yaml:"iterations"`
	Converged           bool       `yaml:"converged"`
	Warnings            []string   `yaml:"warnings,omitempty"`
	Conservative        []Decision `yaml:"conservative,omitempty"`
}

// Failure names a function the module loop could not optimize.
type Failure struct {
	Function string `yaml:"function"`
	Error    string `yaml:"error"`
}

// Report is the module-level diagnostics surface.
type Report struct {
	Functions []*Stats  `yaml:"functions"`
	Failures  []Failure `yaml:"failures,omitempty"`
}
