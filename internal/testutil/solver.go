// Package testutil provides shared helpers for the test suites: a
// scripted solver double that records the model it receives and replays
// configured values, and canonical activity-table fixtures.
package testutil

import (
	"github.com/vk/critpathgo/internal/solver"
)

// RecordedVar is a variable registered with the ScriptedSolver.
type RecordedVar struct {
	VarName string
	Kind    solver.VarKind
	Lo, Hi  float64
}

// Name implements solver.Var.
func (v *RecordedVar) Name() string { return v.VarName }

// RecordedConstraint is a constraint posted to the ScriptedSolver.
type RecordedConstraint struct {
	Name string
	Expr solver.Expr
	Rel  solver.Relation
	RHS  float64
}

// RecordedObjective is the objective set on the ScriptedSolver.
type RecordedObjective struct {
	Dir  solver.Direction
	Expr solver.Expr
}

// ScriptedSolver implements solver.Solver for tests. It records every
// variable, constraint, and the objective, and replays the configured
// status and values on Solve/Value. Values are keyed by variable name;
// missing names resolve to zero.
type ScriptedSolver struct {
	Vars        []*RecordedVar
	Constraints []RecordedConstraint
	Objective   *RecordedObjective

	Status   solver.Status
	SolveErr error
	Values   map[string]float64

	Solved bool
}

// NewScriptedSolver returns a solver double that reports Optimal with the
// given values.
func NewScriptedSolver(values map[string]float64) *ScriptedSolver {
	return &ScriptedSolver{Values: values}
}

func (s *ScriptedSolver) NewVariable(name string, kind solver.VarKind, lo, hi float64) solver.Var {
	v := &RecordedVar{VarName: name, Kind: kind, Lo: lo, Hi: hi}
	s.Vars = append(s.Vars, v)
	return v
}

func (s *ScriptedSolver) AddConstraint(name string, expr solver.Expr, rel solver.Relation, rhs float64) {
	s.Constraints = append(s.Constraints, RecordedConstraint{Name: name, Expr: expr, Rel: rel, RHS: rhs})
}

func (s *ScriptedSolver) SetObjective(dir solver.Direction, expr solver.Expr) {
	s.Objective = &RecordedObjective{Dir: dir, Expr: expr}
}

func (s *ScriptedSolver) Solve() (solver.Status, error) {
	s.Solved = true
	return s.Status, s.SolveErr
}

func (s *ScriptedSolver) Value(v solver.Var) float64 {
	return s.Values[v.Name()]
}

// Var returns the recorded variable with the given name, or nil.
func (s *ScriptedSolver) Var(name string) *RecordedVar {
	for _, v := range s.Vars {
		if v.VarName == name {
			return v
		}
	}
	return nil
}

// Constraint returns the recorded constraint with the given name, or nil.
func (s *ScriptedSolver) Constraint(name string) *RecordedConstraint {
	for i := range s.Constraints {
		if s.Constraints[i].Name == name {
			return &s.Constraints[i]
		}
	}
	return nil
}
