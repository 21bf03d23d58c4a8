package cpm

import "fmt"

// StateSequenceError reports an operation invoked out of order, such as a
// backward pass before the forward pass or a model built before the
// analysis it depends on. It is a programming-contract violation, not a
// data error.
type StateSequenceError struct {
	Op       string
	Requires string
	Actual   string
}

func (e *StateSequenceError) Error() string {
	return fmt.Sprintf("%s requires phase %s, but analyzer is %s", e.Op, e.Requires, e.Actual)
}

// NonNegativeFloatViolation reports a computed float below zero. That can
// only come from an internal defect in the graph or the passes, so it is
// fatal and never clamped.
type NonNegativeFloatViolation struct {
	Activity string
	Float    float64
}

func (e *NonNegativeFloatViolation) Error() string {
	return fmt.Sprintf("activity %q has negative float %v; analysis is inconsistent", e.Activity, e.Float)
}
