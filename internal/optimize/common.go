package optimize

import (
	"fmt"

	"github.com/vk/critpathgo/internal/cpm"
	"github.com/vk/critpathgo/internal/solver"
)

// runSolve submits the model and maps the solver status onto the error
// taxonomy. The offending model's identity travels with the error.
func runSolve(name string, s solver.Solver) error {
	status, err := s.Solve()
	if err != nil {
		return fmt.Errorf("solving model %q: %w", name, err)
	}
	switch status {
	case solver.Optimal:
		return nil
	case solver.Infeasible:
		return &solver.InfeasibleModelError{Model: name}
	case solver.Unbounded:
		return &solver.UnboundedModelError{Model: name}
	default:
		return fmt.Errorf("model %q: unexpected solver status %q", name, status)
	}
}

// notSolved builds the contract-violation error for a value read before a
// successful solve.
func notSolved(op string) error {
	return &cpm.StateSequenceError{Op: op, Requires: "solved", Actual: "unsolved"}
}
