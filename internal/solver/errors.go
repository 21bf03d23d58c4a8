package solver

import "fmt"

// InfeasibleModelError reports that the solver found no feasible point
// for the named model. It is surfaced to the caller, never retried.
type InfeasibleModelError struct {
	Model string
}

func (e *InfeasibleModelError) Error() string {
	return fmt.Sprintf("model %q is infeasible", e.Model)
}

// UnboundedModelError reports that the named model's objective is
// unbounded in its optimization direction.
type UnboundedModelError struct {
	Model string
}

func (e *UnboundedModelError) Error() string {
	return fmt.Sprintf("model %q is unbounded", e.Model)
}
