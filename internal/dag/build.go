package dag

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/critpathgo/internal/config"
	"github.com/vk/critpathgo/internal/ctxlog"
)

// Build constructs a complete, validated project graph from a config
// model. Ids are assigned 1-based in input order; one edge is added per
// predecessor name. Validation covers name resolution, acyclicity, and
// the start/sink convention.
func Build(ctx context.Context, model *config.Model) (*ProjectGraph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "activity_count", len(model.Activities))

	if len(model.Activities) < 2 {
		return nil, &MissingStartOrEndError{Reason: "a project needs at least a start and a sink activity"}
	}

	graph := &ProjectGraph{
		byLabel: make(map[string]int, len(model.Activities)),
		preds:   make(map[int][]int),
		succs:   make(map[int][]int),
	}

	// First pass: create all activities and the label index.
	for i, def := range model.Activities {
		id := i + 1
		if _, dup := graph.byLabel[def.Name]; dup {
			return nil, fmt.Errorf("duplicate activity name %q", def.Name)
		}
		graph.activities = append(graph.activities, &Activity{
			ID:       id,
			Label:    def.Name,
			Duration: def.Duration,
		})
		graph.byLabel[def.Name] = id
	}
	logger.Debug("Build: activity creation complete.")

	// Second pass: resolve predecessor names into edges.
	for i, def := range model.Activities {
		tgt := i + 1
		for _, predName := range def.Predecessors {
			src, ok := graph.byLabel[predName]
			if !ok {
				return nil, &UnknownActivityError{Activity: def.Name, Predecessor: predName}
			}
			graph.edges = append(graph.edges, Edge{Src: src, Tgt: tgt})
			graph.addAdjacency(src, tgt)
		}
	}
	logger.Debug("Build: edge linking complete.", "edge_count", len(graph.edges))

	// Attempting a topological sort doubles as the cycle check.
	if _, err := graph.TopologicalOrder(); err != nil {
		return nil, fmt.Errorf("error validating precedence graph: %w", err)
	}
	logger.Debug("Build: cycle detection passed.")

	if err := graph.checkStartSinkConvention(); err != nil {
		return nil, err
	}
	logger.Debug("Build: graph construction successful.")

	return graph, nil
}

// addAdjacency records an edge in the deduplicated predecessor and
// successor maps. Parallel edges contribute a single adjacency entry.
func (g *ProjectGraph) addAdjacency(src, tgt int) {
	for _, p := range g.preds[tgt] {
		if p == src {
			return
		}
	}
	g.preds[tgt] = append(g.preds[tgt], src)
	g.succs[src] = append(g.succs[src], tgt)
}

// TopologicalOrder returns the activity ids in a deterministic
// topological order (Kahn's algorithm, lowest id first among ready
// activities). A *CycleDetectedError is returned when the precedence
// relation cannot order every activity.
func (g *ProjectGraph) TopologicalOrder() ([]int, error) {
	inDegree := make(map[int]int, g.Len())
	for _, a := range g.activities {
		inDegree[a.ID] = len(g.preds[a.ID])
	}

	var queue []int
	for _, a := range g.activities {
		if inDegree[a.ID] == 0 {
			queue = append(queue, a.ID)
		}
	}
	sort.Ints(queue)

	var order []int
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var newReady []int
		for _, succ := range g.succs[id] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				newReady = append(newReady, succ)
			}
		}
		sort.Ints(newReady)
		queue = append(queue, newReady...)
	}

	if len(order) != g.Len() {
		return nil, &CycleDetectedError{Ordered: len(order), Total: g.Len()}
	}
	return order, nil
}

// checkStartSinkConvention enforces that id 1 is the unique source and
// the maximum id the unique sink. An activity with no predecessors other
// than the start is a second source; one with no successors other than
// the sink is a second sink. Either would leave float values undefined.
func (g *ProjectGraph) checkStartSinkConvention() error {
	start, sink := g.Start(), g.Sink()

	if len(g.preds[start.ID]) > 0 {
		return &MissingStartOrEndError{
			Reason: fmt.Sprintf("start activity %q has predecessors", start.Label),
		}
	}
	if len(g.succs[sink.ID]) > 0 {
		return &MissingStartOrEndError{
			Reason: fmt.Sprintf("sink activity %q has successors", sink.Label),
		}
	}
	for _, a := range g.activities {
		if a.ID != start.ID && len(g.preds[a.ID]) == 0 {
			return &MissingStartOrEndError{
				Reason: fmt.Sprintf("activity %q has no predecessors but is not the start", a.Label),
			}
		}
		if a.ID != sink.ID && len(g.succs[a.ID]) == 0 {
			return &MissingStartOrEndError{
				Reason: fmt.Sprintf("activity %q has no successors but is not the sink", a.Label),
			}
		}
	}
	return nil
}
