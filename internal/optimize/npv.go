package optimize

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/critpathgo/internal/cpm"
	"github.com/vk/critpathgo/internal/ctxlog"
	"github.com/vk/critpathgo/internal/dag"
	"github.com/vk/critpathgo/internal/solver"
)

// NPVModel maximizes discounted cash flow by choosing, per activity, one
// completion time from the integer window [ef, lf] established by the
// critical path analysis. The exponential discount pushes negative cash
// flows toward lf and positive cash flows of non-critical activities
// toward ef; that behavior emerges from the optimum, it is not encoded as
// a rule.
type NPVModel struct {
	name string
	g    *dag.ProjectGraph
	s    solver.Solver
	rate float64

	base map[int]int          // earliest integer completion per activity
	vars map[int][]solver.Var // binary indicators, indexed by offset from base

	completions map[int]float64
	solved      bool
}

// BuildNPV registers the NPV model against the given solver. The
// analyzer must have completed its backward pass; cash maps activity ids
// to cash-flow values, defaulting to zero; rate is the continuous
// discount rate.
func BuildNPV(ctx context.Context, a *cpm.Analyzer, cash map[int]float64, rate float64, s solver.Solver) (*NPVModel, error) {
	logger := ctxlog.FromContext(ctx)
	if a.Phase() != cpm.BackwardDone {
		return nil, &cpm.StateSequenceError{
			Op:       "BuildNPV",
			Requires: cpm.BackwardDone.String(),
			Actual:   a.Phase().String(),
		}
	}
	res, err := a.Result()
	if err != nil {
		return nil, err
	}

	g := a.Graph()
	m := &NPVModel{
		name: "npv",
		g:    g,
		s:    s,
		rate: rate,
		base: make(map[int]int, g.Len()),
		vars: make(map[int][]solver.Var, g.Len()),
	}

	var objective solver.Expr
	varCount := 0
	for _, act := range g.Activities() {
		sched := res.Sched[act.ID]
		ef, err := asInt(sched.EF)
		if err != nil {
			return nil, fmt.Errorf("activity %q: earliest finish %v: %w", act.Label, sched.EF, err)
		}
		lf, err := asInt(sched.LF)
		if err != nil {
			return nil, fmt.Errorf("activity %q: latest finish %v: %w", act.Label, sched.LF, err)
		}

		m.base[act.ID] = ef
		vars := make([]solver.Var, 0, lf-ef+1)
		choose := make(solver.Expr, 0, lf-ef+1)
		for tau := ef; tau <= lf; tau++ {
			v := s.NewVariable(
				fmt.Sprintf("x[%s][%d]", act.Label, tau), solver.Binary, 0, 1)
			vars = append(vars, v)
			choose = append(choose, solver.Term{Var: v, Coef: 1})
			objective = append(objective, solver.Term{
				Var:  v,
				Coef: math.Exp(-rate*float64(tau)) * cash[act.ID],
			})
		}
		m.vars[act.ID] = vars
		varCount += len(vars)

		// Each activity finishes at exactly one feasible time.
		s.AddConstraint(fmt.Sprintf("choose[%s]", act.Label), choose, solver.Equal, 1)
	}

	// completion(v) - completion(u) >= duration(v), with completion
	// expressed as the indicator-weighted sum of feasible times.
	for _, act := range g.Activities() {
		for _, pred := range g.Predecessors(act.ID) {
			expr := append(m.completionExpr(act.ID, 1), m.completionExpr(pred, -1)...)
			s.AddConstraint(
				fmt.Sprintf("prec[%s->%s]", g.Activity(pred).Label, act.Label),
				expr, solver.GreaterEqual, act.Duration)
		}
	}

	s.SetObjective(solver.Maximize, objective)
	logger.Debug("NPV model built.", "variables", varCount, "rate", rate)
	return m, nil
}

// completionExpr returns sign * sum of tau * x[id][tau].
func (m *NPVModel) completionExpr(id int, sign float64) solver.Expr {
	expr := make(solver.Expr, 0, len(m.vars[id]))
	for i, v := range m.vars[id] {
		tau := float64(m.base[id] + i)
		expr = append(expr, solver.Term{Var: v, Coef: sign * tau})
	}
	return expr
}

// Solve submits the model and resolves each activity's completion time as
// the indicator-weighted sum; exactly one term is nonzero at an optimum.
func (m *NPVModel) Solve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if err := runSolve(m.name, m.s); err != nil {
		return err
	}

	m.completions = make(map[int]float64, len(m.vars))
	for id, vars := range m.vars {
		completion := 0.0
		for i, v := range vars {
			completion += float64(m.base[id]+i) * m.s.Value(v)
		}
		m.completions[id] = completion
	}
	m.solved = true
	logger.Debug("NPV model solved.")
	return nil
}

// CompletionTime returns the resolved completion time of an activity.
func (m *NPVModel) CompletionTime(id int) (float64, error) {
	if !m.solved {
		return 0, notSolved("NPVModel.CompletionTime")
	}
	return m.completions[id], nil
}

// Graph returns the project graph the model was built over.
func (m *NPVModel) Graph() *dag.ProjectGraph {
	return m.g
}

// asInt converts a computed time to the integer grid of the completion
// windows. Non-integral windows mean the input durations were not
// integers, which the discrete-choice model cannot represent.
func asInt(v float64) (int, error) {
	r := math.Round(v)
	if math.Abs(v-r) > 1e-9 {
		return 0, fmt.Errorf("not an integer time; the NPV model needs integer durations")
	}
	return int(r), nil
}
