// Package cpm implements critical path method analysis over a project
// graph: the forward pass (earliest start/finish), the backward pass
// (latest start/finish and float), and critical path extraction.
//
// The analyzer is a small state machine: Unanalyzed -> ForwardDone ->
// BackwardDone. Each operation names the phase it requires and fails with
// a StateSequenceError when invoked out of order. Results live in the
// analyzer's own Result snapshot; the graph itself is never mutated.
package cpm
