package cpm

import (
	"context"

	"github.com/vk/critpathgo/internal/ctxlog"
	"github.com/vk/critpathgo/internal/dag"
)

// Analyzer runs the critical path method over one project graph. It is
// not safe for concurrent use on the same instance; distinct instances
// over distinct graphs are fully independent.
type Analyzer struct {
	g     *dag.ProjectGraph
	phase Phase
	res   *Result
}

// New creates an analyzer in the Unanalyzed phase.
func New(g *dag.ProjectGraph) *Analyzer {
	return &Analyzer{g: g}
}

// Phase returns the analyzer's current phase.
func (a *Analyzer) Phase() Phase {
	return a.phase
}

// Graph returns the analyzed project graph.
func (a *Analyzer) Graph() *dag.ProjectGraph {
	return a.g
}

// Result returns the current analysis snapshot. It requires at least
// ForwardDone.
func (a *Analyzer) Result() (*Result, error) {
	if a.phase == Unanalyzed {
		return nil, &StateSequenceError{Op: "Result", Requires: ForwardDone.String(), Actual: a.phase.String()}
	}
	return a.res, nil
}

// Reset discards the current snapshot and returns to Unanalyzed, allowing
// a re-run over the same graph.
func (a *Analyzer) Reset() {
	a.phase = Unanalyzed
	a.res = nil
}

// ForwardPass computes earliest start and finish times in topological
// order and returns that order. The topological sort doubles as the cycle
// check. Requires Unanalyzed; transitions to ForwardDone.
func (a *Analyzer) ForwardPass(ctx context.Context) ([]int, error) {
	logger := ctxlog.FromContext(ctx)
	if a.phase != Unanalyzed {
		return nil, &StateSequenceError{Op: "ForwardPass", Requires: Unanalyzed.String(), Actual: a.phase.String()}
	}

	order, err := a.g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Sched: make(map[int]*Schedule, a.g.Len()),
		Order: order,
	}
	for _, id := range order {
		res.Sched[id] = &Schedule{}
	}

	// es(v) = max over predecessors of ef(u); the start has none and
	// anchors at zero. Ties resolve through max, so the result does not
	// depend on predecessor order.
	for _, id := range order {
		sched := res.Sched[id]
		es := 0.0
		for _, pred := range a.g.Predecessors(id) {
			if ef := res.Sched[pred].EF; ef > es {
				es = ef
			}
		}
		sched.ES = es
		sched.EF = es + a.g.Activity(id).Duration
	}

	res.Makespan = res.Sched[a.g.Sink().ID].EF
	a.res = res
	a.phase = ForwardDone
	logger.Debug("Forward pass complete.", "makespan", res.Makespan)
	return order, nil
}

// BackwardPass computes latest start/finish times and float in reverse
// topological order, then groups activities into waves. The sink's own
// earliest finish is the deadline baseline; no external deadline applies
// here. Requires ForwardDone; transitions to BackwardDone.
func (a *Analyzer) BackwardPass(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if a.phase != ForwardDone {
		return &StateSequenceError{Op: "BackwardPass", Requires: ForwardDone.String(), Actual: a.phase.String()}
	}

	res := a.res
	sink := a.g.Sink().ID
	res.Sched[sink].LF = res.Sched[sink].EF
	res.Sched[sink].LS = res.Sched[sink].LF - a.g.Activity(sink).Duration

	for i := len(res.Order) - 1; i >= 0; i-- {
		id := res.Order[i]
		if id == sink {
			continue
		}
		sched := res.Sched[id]
		lf := res.Sched[a.g.Successors(id)[0]].LS
		for _, succ := range a.g.Successors(id)[1:] {
			if ls := res.Sched[succ].LS; ls < lf {
				lf = ls
			}
		}
		sched.LF = lf
		sched.LS = lf - a.g.Activity(id).Duration
	}

	for _, id := range res.Order {
		sched := res.Sched[id]
		sched.Float = sched.LF - sched.EF
		if sched.Float < -timeEps {
			return &NonNegativeFloatViolation{
				Activity: a.g.Activity(id).Label,
				Float:    sched.Float,
			}
		}
	}

	res.Waves = computeWaves(res)
	a.phase = BackwardDone
	logger.Debug("Backward pass complete.", "waves", len(res.Waves))
	return nil
}

// CriticalPath extracts the union of all critical paths. Starting from
// the start activity, the traversal follows an edge (v, w) only when w
// has zero float and lf(v) equals es(w); a zero-float successor reached
// through a slack transition is not on the critical path. Requires
// BackwardDone.
func (a *Analyzer) CriticalPath() (*Path, error) {
	if a.phase != BackwardDone {
		return nil, &StateSequenceError{Op: "CriticalPath", Requires: BackwardDone.String(), Actual: a.phase.String()}
	}

	res := a.res
	path := &Path{}
	visited := make(map[int]bool, a.g.Len())

	var visit func(id int)
	visit = func(id int) {
		if visited[id] {
			return
		}
		visited[id] = true
		path.Activities = append(path.Activities, id)

		sched := res.Sched[id]
		for _, succ := range a.g.Successors(id) {
			succSched := res.Sched[succ]
			if succSched.Critical() && approxEqual(sched.LF, succSched.ES) {
				path.Edges = append(path.Edges, dag.Edge{Src: id, Tgt: succ})
				visit(succ)
			}
		}
	}
	visit(a.g.Start().ID)

	return path, nil
}
