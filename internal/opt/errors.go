package opt

import "fmt"

// ConfigurationError reports a function whose CFG was malformed on input,
// e.g. missing its entry block. The module loop isolates these failures and
// continues with the remaining functions.
type ConfigurationError struct {
	Function string
	Detail   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("function %s: %s", e.Function, e.Detail)
}

// StructuralError reports a post-optimization invariant violation found by
// the verifier. It signals a transformer defect and is never auto-corrected.
type StructuralError struct {
	Function string
	Detail   string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("function %s: structural violation: %s", e.Function, e.Detail)
}
