package opt

import (
	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
)

// Run optimizes every function in the module in place, sequentially, and
// returns the per-function report. A function that fails its input
// validation is recorded as a failure and skipped; the remaining functions
// are still processed. Declarations are skipped entirely.
func Run(m *ir.Module) *Report {
	report := &Report{}
	callees := m.FuncsByName()
	for _, fn := range m.Functions {
		if fn.IsDeclaration() {
			continue
		}
		stats, err := optimizeFunc(fn, callees)
		if err != nil {
			report.Failures = append(report.Failures, Failure{Function: fn.Name, Error: err.Error()})
			continue
		}
		report.Functions = append(report.Functions, stats)
	}
	return report
}
