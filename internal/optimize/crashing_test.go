package optimize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/critpathgo/internal/cpm"
	"github.com/vk/critpathgo/internal/dag"
	"github.com/vk/critpathgo/internal/optimize"
	"github.com/vk/critpathgo/internal/solver"
	"github.com/vk/critpathgo/internal/testutil"
)

func workedCrashingBounds(g *dag.ProjectGraph) map[int]optimize.Bounds {
	return map[int]optimize.Bounds{
		g.ByLabel("A").ID: {Min: 3, Max: 5, Cost: 7},
		g.ByLabel("C").ID: {Min: 5, Max: 7, Cost: 4},
		g.ByLabel("H").ID: {Min: 6, Max: 9, Cost: 5},
	}
}

func TestCrashing_ModelStructure(t *testing.T) {
	g := testutil.BuildGraph(t, testutil.WorkedExample())
	s := testutil.NewScriptedSolver(nil)
	optimize.BuildCrashing(context.Background(), g, workedCrashingBounds(g), 25, s)

	// One duration and one start variable per activity.
	require.Len(t, s.Vars, 2*g.Len())

	xA := s.Var("x[A]")
	require.NotNil(t, xA)
	assert.Equal(t, solver.Continuous, xA.Kind)
	assert.Equal(t, 3.0, xA.Lo)
	assert.Equal(t, 5.0, xA.Hi)

	// Activities without bounds are pinned to their nominal duration.
	xB := s.Var("x[B]")
	require.NotNil(t, xB)
	assert.Equal(t, 3.0, xB.Lo)
	assert.Equal(t, 3.0, xB.Hi)

	yA := s.Var("y[A]")
	require.NotNil(t, yA)
	assert.Equal(t, 0.0, yA.Lo)
	assert.True(t, yA.Hi == solver.Inf)

	// y[sink] <= deadline.
	deadline := s.Constraint("deadline")
	require.NotNil(t, deadline)
	assert.Equal(t, solver.LessEqual, deadline.Rel)
	assert.Equal(t, 25.0, deadline.RHS)
	require.Len(t, deadline.Expr, 1)
	assert.Equal(t, "y[end]", deadline.Expr[0].Var.Name())

	// y[v] - y[u] - x[u] >= 0; spot-check F -> G.
	prec := s.Constraint("prec[F->G]")
	require.NotNil(t, prec)
	assert.Equal(t, solver.GreaterEqual, prec.Rel)
	assert.Equal(t, 0.0, prec.RHS)
	coefs := make(map[string]float64, len(prec.Expr))
	for _, term := range prec.Expr {
		coefs[term.Var.Name()] = term.Coef
	}
	assert.Equal(t, map[string]float64{"y[G]": 1, "y[F]": -1, "x[F]": -1}, coefs)

	// Objective: maximize sum of cost-weighted durations over the
	// crashable activities only.
	require.NotNil(t, s.Objective)
	assert.Equal(t, solver.Maximize, s.Objective.Dir)
	objCoefs := make(map[string]float64, len(s.Objective.Expr))
	for _, term := range s.Objective.Expr {
		objCoefs[term.Var.Name()] = term.Coef
	}
	assert.Equal(t, map[string]float64{"x[A]": 7, "x[C]": 4, "x[H]": 5}, objCoefs)
}

func TestCrashing_ResolvesDurationsAndStarts(t *testing.T) {
	g := testutil.BuildGraph(t, testutil.WorkedExample())

	// Meeting a deadline of 28 with the cheapest crashing: shorten C and
	// H by one unit each (cost 9); A stays at its maximum.
	values := map[string]float64{
		"x[A]": 5, "x[C]": 6, "x[H]": 8,
		"x[start]": 0, "x[B]": 3, "x[D]": 4, "x[E]": 6,
		"x[F]": 4, "x[G]": 2, "x[I]": 6, "x[J]": 2, "x[end]": 0,
		"y[start]": 0, "y[A]": 0, "y[B]": 5, "y[C]": 8, "y[D]": 8,
		"y[E]": 8, "y[F]": 14, "y[G]": 18, "y[H]": 20, "y[I]": 20,
		"y[J]": 26, "y[end]": 28,
	}
	s := testutil.NewScriptedSolver(values)
	m := optimize.BuildCrashing(context.Background(), g, workedCrashingBounds(g), 28, s)
	require.NoError(t, m.Solve(context.Background()))

	durC, err := m.Duration(g.ByLabel("C").ID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, durC)
	durH, err := m.Duration(g.ByLabel("H").ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, durH)
	durA, err := m.Duration(g.ByLabel("A").ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, durA, "crashing A would cost more than needed")

	start, err := m.StartTime(g.ByLabel("end").ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, start, 28.0)
}

func TestCrashing_ValueBeforeSolve(t *testing.T) {
	g := testutil.BuildGraph(t, testutil.WorkedExample())
	m := optimize.BuildCrashing(context.Background(), g, nil, 25, testutil.NewScriptedSolver(nil))

	_, err := m.Duration(1)
	var seqErr *cpm.StateSequenceError
	require.ErrorAs(t, err, &seqErr)

	_, err = m.StartTime(1)
	require.ErrorAs(t, err, &seqErr)
}

func TestCrashing_InfeasibleDeadline(t *testing.T) {
	g := testutil.BuildGraph(t, testutil.WorkedExample())
	s := testutil.NewScriptedSolver(nil)
	s.Status = solver.Infeasible

	m := optimize.BuildCrashing(context.Background(), g, workedCrashingBounds(g), 1, s)
	err := m.Solve(context.Background())

	var infErr *solver.InfeasibleModelError
	require.ErrorAs(t, err, &infErr)
	assert.Equal(t, "crashing", infErr.Model)
}
