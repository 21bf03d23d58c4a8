// Package solver defines the contract of the external linear/integer
// program solver consumed by the model builders. The engine only builds
// models; an implementation of Solver is supplied by the caller and is
// treated as an opaque collaborator.
package solver

import "math"

// VarKind selects the domain of a decision variable.
type VarKind int

const (
	Continuous VarKind = iota
	Binary
	Integer
)

// Direction selects the optimization sense of the objective.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// Relation is the comparison of a linear constraint.
type Relation int

const (
	Equal Relation = iota
	LessEqual
	GreaterEqual
)

// Status is the solver's verdict for a submitted model.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
)

// String returns the status name for error messages and logs.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Var is an opaque handle to a solver variable. Implementations return
// their own handle type from NewVariable; the name is stable and unique
// within one model.
type Var interface {
	Name() string
}

// Term is one coefficient-variable product of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Expr is a linear expression, the sum of its terms.
type Expr []Term

// Solver accepts variables, linear constraints, and an objective, and
// reports optimal values or an infeasibility/unboundedness signal. Value
// is valid only after Solve returned Optimal. Solve is synchronous and
// blocking; the engine never retries.
type Solver interface {
	NewVariable(name string, kind VarKind, lo, hi float64) Var
	AddConstraint(name string, expr Expr, rel Relation, rhs float64)
	SetObjective(dir Direction, expr Expr)
	Solve() (Status, error)
	Value(v Var) float64
}

// Factory produces a fresh solver instance per model. Each model builder
// requires its own instance, since the Solver interface has no notion of
// multiple concurrent models.
type Factory func() Solver

// Inf is the bound used for variables without an upper limit.
var Inf = math.Inf(1)
