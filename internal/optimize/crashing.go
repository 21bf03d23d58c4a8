package optimize

import (
	"context"
	"fmt"

	"github.com/vk/critpathgo/internal/ctxlog"
	"github.com/vk/critpathgo/internal/dag"
	"github.com/vk/critpathgo/internal/solver"
)

// Bounds carries an activity's crashing parameters: the duration range
// [Min, Max] and the marginal cost of one unit of crashing.
type Bounds struct {
	Min  float64
	Max  float64
	Cost float64
}

// CrashingModel chooses each activity's duration within its bounds and a
// start time so the sink meets the deadline. The objective maximizes
// sum(cost * duration); since Max and cost are fixed per activity, this
// equals minimizing total crashing cost sum(cost * (Max - duration)) up
// to the constant sum(cost * Max).
type CrashingModel struct {
	name     string
	g        *dag.ProjectGraph
	s        solver.Solver
	deadline float64

	durVars   map[int]solver.Var
	startVars map[int]solver.Var

	durations map[int]float64
	starts    map[int]float64
	solved    bool
}

// BuildCrashing registers the crashing model against the given solver.
// Activities absent from bounds are fixed at their nominal duration with
// zero marginal cost.
func BuildCrashing(ctx context.Context, g *dag.ProjectGraph, bounds map[int]Bounds, deadline float64, s solver.Solver) *CrashingModel {
	logger := ctxlog.FromContext(ctx)
	m := &CrashingModel{
		name:      "crashing",
		g:         g,
		s:         s,
		deadline:  deadline,
		durVars:   make(map[int]solver.Var, g.Len()),
		startVars: make(map[int]solver.Var, g.Len()),
	}

	var objective solver.Expr
	for _, act := range g.Activities() {
		b, ok := bounds[act.ID]
		if !ok {
			b = Bounds{Min: act.Duration, Max: act.Duration}
		}
		x := s.NewVariable(
			fmt.Sprintf("x[%s]", act.Label), solver.Continuous, b.Min, b.Max)
		y := s.NewVariable(
			fmt.Sprintf("y[%s]", act.Label), solver.Continuous, 0, solver.Inf)
		m.durVars[act.ID] = x
		m.startVars[act.ID] = y

		if b.Cost != 0 {
			objective = append(objective, solver.Term{Var: x, Coef: b.Cost})
		}
	}

	s.AddConstraint("deadline",
		solver.Expr{{Var: m.startVars[g.Sink().ID], Coef: 1}},
		solver.LessEqual, deadline)

	// y[v] >= y[u] + x[u] for every precedence relation.
	for _, act := range g.Activities() {
		for _, pred := range g.Predecessors(act.ID) {
			s.AddConstraint(
				fmt.Sprintf("prec[%s->%s]", g.Activity(pred).Label, act.Label),
				solver.Expr{
					{Var: m.startVars[act.ID], Coef: 1},
					{Var: m.startVars[pred], Coef: -1},
					{Var: m.durVars[pred], Coef: -1},
				},
				solver.GreaterEqual, 0)
		}
	}

	s.SetObjective(solver.Maximize, objective)
	logger.Debug("Crashing model built.", "deadline", deadline)
	return m
}

// Solve submits the model and resolves every activity's chosen duration
// and start time.
func (m *CrashingModel) Solve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if err := runSolve(m.name, m.s); err != nil {
		return err
	}

	m.durations = make(map[int]float64, len(m.durVars))
	m.starts = make(map[int]float64, len(m.startVars))
	for id, v := range m.durVars {
		m.durations[id] = m.s.Value(v)
	}
	for id, v := range m.startVars {
		m.starts[id] = m.s.Value(v)
	}
	m.solved = true
	logger.Debug("Crashing model solved.")
	return nil
}

// Duration returns the resolved duration of an activity.
func (m *CrashingModel) Duration(id int) (float64, error) {
	if !m.solved {
		return 0, notSolved("CrashingModel.Duration")
	}
	return m.durations[id], nil
}

// StartTime returns the resolved start time of an activity.
func (m *CrashingModel) StartTime(id int) (float64, error) {
	if !m.solved {
		return 0, notSolved("CrashingModel.StartTime")
	}
	return m.starts[id], nil
}
