package opt

import (
	"github.com/xyproto/env/v2"
)

// Iteration caps. Every round is removal-only, so hitting a cap yields a
// sound (merely less optimized) result; the caps are safety valves, not
// correctness requirements. Both can be overridden through the environment.
var (
	// maxRounds bounds the outer fixed-point loop of the driver.
	maxRounds = env.Int("JSAVRS_DCE_MAX_ROUNDS", 10)

	// maxLivenessSweeps bounds the inner dataflow iteration independently of
	// the outer cap.
	maxLivenessSweeps = env.Int("JSAVRS_DCE_MAX_LIVENESS_SWEEPS", 50)
)
