package opt

import (
	"fmt"

	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/ir"
)

// Optimize runs dead code elimination on a single function, mutating it in
// place. Without a module context every call is treated as effectful; Run
// supplies the callee table for known-pure resolution. Declarations return
// empty stats untouched.
func Optimize(fn *ir.Function) (*Stats, error) {
	return optimizeFunc(fn, nil)
}

// optimizeFunc is the fixed-point driver: rounds of
// {reachability → block removal} then
// {liveness → escape → classification → instruction removal}
// until a round removes nothing or the round cap is hit. Every round is
// removal-only, so stopping at the cap is sound; the event is recorded as a
// warning, never an error. All analysis snapshots are rebuilt from scratch
// each round and discarded at its end.
func optimizeFunc(fn *ir.Function, callees map[string]*ir.Function) (*Stats, error) {
	stats := &Stats{Function: fn.Name, Converged: true}
	if fn.IsDeclaration() {
		return stats, nil
	}
	if err := checkFunction(fn); err != nil {
		return nil, err
	}

	livenessCapped := false
	converged := false
	for round := 0; round < maxRounds; round++ {
		stats.Iterations++

		reachable := reachableBlocks(fn)
		blocksRemoved := removeUnreachableBlocks(fn, reachable)

		// An unconverged liveness result under-approximates the live sets,
		// so it must not drive removals; skip the instruction pass for this
		// round instead.
		live, ok := analyzeLiveness(fn)
		instrsRemoved := 0
		if ok {
			esc := analyzeEscapes(fn)
			// Keep only the decisions that describe the final state.
			stats.Conservative = nil
			instrsRemoved = removeDeadInstructions(fn, live, esc, callees, stats)
		} else {
			livenessCapped = true
		}

		stats.BlocksRemoved += blocksRemoved
		stats.InstructionsRemoved += instrsRemoved
		if blocksRemoved == 0 && instrsRemoved == 0 {
			converged = true
			break
		}
	}

	if !converged {
		stats.Converged = false
		stats.Warnings = append(stats.Warnings,
			fmt.Sprintf("did not converge within %d rounds", maxRounds))
	}
	if livenessCapped {
		stats.Warnings = append(stats.Warnings,
			fmt.Sprintf("liveness did not converge within %d sweeps; instruction removal skipped", maxLivenessSweeps))
	}
	return stats, nil
}

// checkFunction validates the input CFG. A malformed function fails fast
// here, before any mutation.
func checkFunction(fn *ir.Function) error {
	if fn.EntryBlock() == nil {
		return &ConfigurationError{Function: fn.Name, Detail: "missing entry block"}
	}
	for _, b := range fn.Blocks {
		if b == nil {
			continue
		}
		if b.Term == nil {
			return &ConfigurationError{
				Function: fn.Name,
				Detail:   fmt.Sprintf("block %s has no terminator", b.Label),
			}
		}
		for _, s := range b.Successors() {
			if fn.Block(s) == nil {
				return &ConfigurationError{
					Function: fn.Name,
					Detail:   fmt.Sprintf("block %s branches to nonexistent block b%d", b.Label, s),
				}
			}
		}
	}
	return nil
}
