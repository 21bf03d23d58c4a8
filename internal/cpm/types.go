package cpm

import "github.com/vk/critpathgo/internal/dag"

// Phase tracks how far the analysis has progressed.
type Phase int

const (
	Unanalyzed Phase = iota
	ForwardDone
	BackwardDone
)

// String returns the phase name for error messages and logs.
func (p Phase) String() string {
	switch p {
	case Unanalyzed:
		return "Unanalyzed"
	case ForwardDone:
		return "ForwardDone"
	case BackwardDone:
		return "BackwardDone"
	default:
		return "Unknown"
	}
}

// Schedule holds the CPM timing attributes of a single activity. ES/EF
// are valid from ForwardDone; LS/LF/Float from BackwardDone.
type Schedule struct {
	ES    float64
	EF    float64
	LS    float64
	LF    float64
	Float float64
}

// Critical reports whether the activity has zero float.
func (s *Schedule) Critical() bool {
	return s.Float <= timeEps
}

// Result is the snapshot produced by one forward/backward pass pair. A
// re-run replaces the whole snapshot.
type Result struct {
	Sched    map[int]*Schedule // keyed by activity id
	Order    []int             // topological order from the forward pass
	Makespan float64           // ef(sink), valid from ForwardDone
	Waves    []Wave            // populated by the backward pass
}

// Path is the union of all critical paths: the activities visited by the
// tight-edge traversal from the start, and the edges it followed.
type Path struct {
	Activities []int
	Edges      []dag.Edge
}

// Wave is a group of activities sharing an earliest start time; the
// members could in principle run in parallel. Critical activities sort
// first within a wave.
type Wave struct {
	Index       int
	Start       float64
	ActivityIDs []int
	HasCritical bool
}

// timeEps absorbs float64 rounding when comparing computed times.
const timeEps = 1e-9

func approxEqual(a, b float64) bool {
	diff := a - b
	return diff <= timeEps && diff >= -timeEps
}
