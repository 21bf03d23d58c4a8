package dag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/critpathgo/internal/config"
	"github.com/vk/critpathgo/internal/dag"
	"github.com/vk/critpathgo/internal/testutil"
)

func TestBuild_AssignsIDsInInputOrder(t *testing.T) {
	g := testutil.BuildGraph(t, testutil.WorkedExample())

	require.Equal(t, 12, g.Len())
	assert.Equal(t, "start", g.Start().Label)
	assert.Equal(t, 1, g.Start().ID)
	assert.Equal(t, "end", g.Sink().Label)
	assert.Equal(t, 12, g.Sink().ID)

	for i, act := range g.Activities() {
		assert.Equal(t, i+1, act.ID)
	}

	a := g.ByLabel("A")
	require.NotNil(t, a)
	assert.Equal(t, 2, a.ID)
	assert.Equal(t, 5.0, a.Duration)
	assert.Nil(t, g.ByLabel("nope"))
}

func TestBuild_RoundTripPredecessorSets(t *testing.T) {
	model := testutil.WorkedExample()
	g := testutil.BuildGraph(t, model)

	// Re-derive each activity's predecessor set from its in-edges and
	// compare against the original table, order-independent.
	derived := make(map[string]map[string]bool)
	for _, e := range g.Edges() {
		tgt := g.Activity(e.Tgt).Label
		if derived[tgt] == nil {
			derived[tgt] = make(map[string]bool)
		}
		derived[tgt][g.Activity(e.Src).Label] = true
	}

	for _, def := range model.Activities {
		want := make(map[string]bool)
		for _, p := range def.Predecessors {
			want[p] = true
		}
		if len(want) == 0 {
			assert.NotContains(t, derived, def.Name)
			continue
		}
		assert.Equal(t, want, derived[def.Name], "predecessor set of %s", def.Name)
	}
}

func TestBuild_DuplicateEdgesCollapseInAdjacency(t *testing.T) {
	model := testutil.TableModel(
		testutil.Row{Name: "start", Dur: 0},
		testutil.Row{Name: "A", Preds: []string{"start", "start"}, Dur: 2},
		testutil.Row{Name: "end", Preds: []string{"A"}, Dur: 0},
	)
	g := testutil.BuildGraph(t, model)

	// Both edges survive in the edge list, but precedence is a single
	// constraint's worth of adjacency.
	assert.Len(t, g.Edges(), 3)
	assert.Equal(t, []int{1}, g.Predecessors(2))
	assert.Equal(t, []int{2}, g.Successors(1))
}

func TestBuild_UnknownPredecessor(t *testing.T) {
	model := testutil.TableModel(
		testutil.Row{Name: "start", Dur: 0},
		testutil.Row{Name: "A", Preds: []string{"ghost"}, Dur: 2},
		testutil.Row{Name: "end", Preds: []string{"A"}, Dur: 0},
	)
	_, err := dag.Build(context.Background(), model)

	var unknownErr *dag.UnknownActivityError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "A", unknownErr.Activity)
	assert.Equal(t, "ghost", unknownErr.Predecessor)
}

func TestBuild_CycleRejected(t *testing.T) {
	model := testutil.TableModel(
		testutil.Row{Name: "start", Dur: 0},
		testutil.Row{Name: "A", Preds: []string{"start", "B"}, Dur: 2},
		testutil.Row{Name: "B", Preds: []string{"A"}, Dur: 3},
		testutil.Row{Name: "end", Preds: []string{"B"}, Dur: 0},
	)
	_, err := dag.Build(context.Background(), model)

	var cycleErr *dag.CycleDetectedError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, 4, cycleErr.Total)
	assert.Less(t, cycleErr.Ordered, cycleErr.Total)
}

func TestBuild_StartSinkConvention(t *testing.T) {
	t.Run("start with predecessors", func(t *testing.T) {
		model := testutil.TableModel(
			testutil.Row{Name: "start", Preds: []string{"A"}, Dur: 0},
			testutil.Row{Name: "A", Dur: 2},
			testutil.Row{Name: "end", Preds: []string{"start"}, Dur: 0},
		)
		_, err := dag.Build(context.Background(), model)
		var convErr *dag.MissingStartOrEndError
		require.ErrorAs(t, err, &convErr)
	})

	t.Run("second source", func(t *testing.T) {
		model := testutil.TableModel(
			testutil.Row{Name: "start", Dur: 0},
			testutil.Row{Name: "A", Preds: []string{"start"}, Dur: 2},
			testutil.Row{Name: "B", Dur: 3},
			testutil.Row{Name: "end", Preds: []string{"A", "B"}, Dur: 0},
		)
		_, err := dag.Build(context.Background(), model)
		var convErr *dag.MissingStartOrEndError
		require.ErrorAs(t, err, &convErr)
		assert.Contains(t, convErr.Reason, "B")
	})

	t.Run("second sink", func(t *testing.T) {
		model := testutil.TableModel(
			testutil.Row{Name: "start", Dur: 0},
			testutil.Row{Name: "A", Preds: []string{"start"}, Dur: 2},
			testutil.Row{Name: "B", Preds: []string{"start"}, Dur: 3},
			testutil.Row{Name: "end", Preds: []string{"A"}, Dur: 0},
		)
		_, err := dag.Build(context.Background(), model)
		var convErr *dag.MissingStartOrEndError
		require.ErrorAs(t, err, &convErr)
		assert.Contains(t, convErr.Reason, "B")
	})

	t.Run("too few activities", func(t *testing.T) {
		_, err := dag.Build(context.Background(), &config.Model{})
		var convErr *dag.MissingStartOrEndError
		require.ErrorAs(t, err, &convErr)
	})
}

func TestBuild_DuplicateName(t *testing.T) {
	model := testutil.TableModel(
		testutil.Row{Name: "start", Dur: 0},
		testutil.Row{Name: "A", Preds: []string{"start"}, Dur: 2},
		testutil.Row{Name: "A", Preds: []string{"start"}, Dur: 3},
		testutil.Row{Name: "end", Preds: []string{"A"}, Dur: 0},
	)
	_, err := dag.Build(context.Background(), model)
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*dag.UnknownActivityError)))
}

func TestTopologicalOrder_Deterministic(t *testing.T) {
	g := testutil.BuildGraph(t, testutil.WorkedExample())

	first, err := g.TopologicalOrder()
	require.NoError(t, err)
	require.Len(t, first, 12)

	// Edges always point forward in the order.
	position := make(map[int]int, len(first))
	for i, id := range first {
		position[id] = i
	}
	for _, e := range g.Edges() {
		assert.Less(t, position[e.Src], position[e.Tgt])
	}

	// Repeated sorts give the same order.
	for i := 0; i < 5; i++ {
		again, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
