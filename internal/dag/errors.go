package dag

import "fmt"

// UnknownActivityError reports a predecessor name that resolves to no
// declared activity.
type UnknownActivityError struct {
	Activity    string // the activity whose predecessor list is faulty
	Predecessor string // the name that could not be resolved
}

func (e *UnknownActivityError) Error() string {
	return fmt.Sprintf("activity %q lists unknown predecessor %q", e.Activity, e.Predecessor)
}

// CycleDetectedError reports that the precedence relation is not a DAG.
// It is detected by an attempted topological sort that cannot order every
// activity.
type CycleDetectedError struct {
	Ordered int // activities that could be ordered
	Total   int
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("precedence graph has a cycle (%d of %d activities sorted)", e.Ordered, e.Total)
}

// MissingStartOrEndError reports a violation of the start/sink convention:
// id 1 must be the unique source and the maximum id the unique sink.
type MissingStartOrEndError struct {
	Reason string
}

func (e *MissingStartOrEndError) Error() string {
	return "invalid start/sink convention: " + e.Reason
}
