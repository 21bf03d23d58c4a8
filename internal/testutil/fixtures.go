package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/critpathgo/internal/config"
	"github.com/vk/critpathgo/internal/cpm"
	"github.com/vk/critpathgo/internal/dag"
)

// Row is a compact activity-table row for building test models.
type Row struct {
	Name  string
	Preds []string
	Dur   float64
}

// TableModel builds a config model from compact rows.
func TableModel(rows ...Row) *config.Model {
	m := &config.Model{}
	for _, r := range rows {
		m.Activities = append(m.Activities, &config.Activity{
			Name:         r.Name,
			Predecessors: r.Preds,
			Duration:     r.Dur,
		})
	}
	return m
}

// WorkedExample is the reference project used across the suites: a
// twelve-activity network with one three-way parallel fan and two
// competing finishing branches. Its makespan is 30 and its critical path
// is start, A, B, C, F, G, H, end.
func WorkedExample() *config.Model {
	return TableModel(
		Row{Name: "start", Dur: 0},
		Row{Name: "A", Preds: []string{"start"}, Dur: 5},
		Row{Name: "B", Preds: []string{"A"}, Dur: 3},
		Row{Name: "C", Preds: []string{"B"}, Dur: 7},
		Row{Name: "D", Preds: []string{"B"}, Dur: 4},
		Row{Name: "E", Preds: []string{"B"}, Dur: 6},
		Row{Name: "F", Preds: []string{"C", "D", "E"}, Dur: 4},
		Row{Name: "G", Preds: []string{"F"}, Dur: 2},
		Row{Name: "H", Preds: []string{"F", "G"}, Dur: 9},
		Row{Name: "I", Preds: []string{"F", "G"}, Dur: 6},
		Row{Name: "J", Preds: []string{"I"}, Dur: 2},
		Row{Name: "end", Preds: []string{"H", "J"}, Dur: 0},
	)
}

// BuildGraph builds a validated project graph from a model, failing the
// test on error.
func BuildGraph(t *testing.T, model *config.Model) *dag.ProjectGraph {
	t.Helper()
	g, err := dag.Build(context.Background(), model)
	require.NoError(t, err, "graph construction failed")
	return g
}

// Analyze runs the forward and backward passes, failing the test on
// error, and returns the analyzer in the BackwardDone phase.
func Analyze(t *testing.T, g *dag.ProjectGraph) *cpm.Analyzer {
	t.Helper()
	a := cpm.New(g)
	_, err := a.ForwardPass(context.Background())
	require.NoError(t, err, "forward pass failed")
	require.NoError(t, a.BackwardPass(context.Background()), "backward pass failed")
	return a
}
