package optimize

import (
	"context"
	"fmt"

	"github.com/vk/critpathgo/internal/ctxlog"
	"github.com/vk/critpathgo/internal/dag"
	"github.com/vk/critpathgo/internal/solver"
)

// MakespanModel is the LP relaxation of the critical path method: one
// continuous start-time variable per activity, one precedence constraint
// per edge, minimizing the sink's start time. Its optimum equals the
// CPM earliest finish of the sink.
type MakespanModel struct {
	name string
	g    *dag.ProjectGraph
	s    solver.Solver

	vars   map[int]solver.Var
	times  map[int]float64
	solved bool
}

// BuildMakespan registers the makespan model against the given solver.
func BuildMakespan(ctx context.Context, g *dag.ProjectGraph, s solver.Solver) *MakespanModel {
	logger := ctxlog.FromContext(ctx)
	m := &MakespanModel{
		name: "makespan",
		g:    g,
		s:    s,
		vars: make(map[int]solver.Var, g.Len()),
	}

	for _, act := range g.Activities() {
		m.vars[act.ID] = s.NewVariable(
			fmt.Sprintf("t[%s]", act.Label), solver.Continuous, 0, solver.Inf)
	}

	start := g.Start()
	s.AddConstraint("start_anchor",
		solver.Expr{{Var: m.vars[start.ID], Coef: 1}}, solver.Equal, 0)

	// t[v] - t[u] >= duration(u) for every precedence relation. Parallel
	// edges collapse to one constraint via the deduplicated adjacency.
	for _, act := range g.Activities() {
		for _, pred := range g.Predecessors(act.ID) {
			s.AddConstraint(
				fmt.Sprintf("prec[%s->%s]", g.Activity(pred).Label, act.Label),
				solver.Expr{
					{Var: m.vars[act.ID], Coef: 1},
					{Var: m.vars[pred], Coef: -1},
				},
				solver.GreaterEqual,
				g.Activity(pred).Duration,
			)
		}
	}

	s.SetObjective(solver.Minimize,
		solver.Expr{{Var: m.vars[g.Sink().ID], Coef: 1}})

	logger.Debug("Makespan model built.", "variables", g.Len())
	return m
}

// Solve submits the model and resolves every activity's start time.
func (m *MakespanModel) Solve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if err := runSolve(m.name, m.s); err != nil {
		return err
	}

	m.times = make(map[int]float64, len(m.vars))
	for id, v := range m.vars {
		m.times[id] = m.s.Value(v)
	}
	m.solved = true
	logger.Debug("Makespan model solved.", "makespan", m.times[m.g.Sink().ID])
	return nil
}

// StartTime returns the resolved start time of an activity.
func (m *MakespanModel) StartTime(id int) (float64, error) {
	if !m.solved {
		return 0, notSolved("MakespanModel.StartTime")
	}
	return m.times[id], nil
}

// Makespan returns the resolved project completion time, the sink's
// start time.
func (m *MakespanModel) Makespan() (float64, error) {
	if !m.solved {
		return 0, notSolved("MakespanModel.Makespan")
	}
	return m.times[m.g.Sink().ID], nil
}
