package dag

// Activity is a node in the project graph.
type Activity struct {
	// ID is 1-based and assigned in input order. By convention id 1 is
	// the unique project start and the maximum id is the unique sink.
	ID       int
	Label    string
	Duration float64
}

// Edge is a precedence relation: Src must finish before Tgt starts.
// Duplicate edges between the same pair are legal and are preserved here;
// the deduplicated adjacency used by the analyses lives in the graph's
// predecessor/successor maps.
type Edge struct {
	Src int
	Tgt int
}

// ProjectGraph owns the activities and precedence edges of one project.
// It is immutable after Build; analyses keep their results in their own
// structures rather than mutating the graph.
type ProjectGraph struct {
	activities []*Activity
	edges      []Edge

	byLabel map[string]int
	preds   map[int][]int
	succs   map[int][]int
}

// Activities returns all activities in id order.
func (g *ProjectGraph) Activities() []*Activity {
	return g.activities
}

// Edges returns every precedence edge, including duplicates.
func (g *ProjectGraph) Edges() []Edge {
	return g.edges
}

// Activity returns the activity with the given id, or nil.
func (g *ProjectGraph) Activity(id int) *Activity {
	if id < 1 || id > len(g.activities) {
		return nil
	}
	return g.activities[id-1]
}

// ByLabel resolves a display name to its activity, or nil.
func (g *ProjectGraph) ByLabel(label string) *Activity {
	id, ok := g.byLabel[label]
	if !ok {
		return nil
	}
	return g.activities[id-1]
}

// Start returns the project start activity (id 1).
func (g *ProjectGraph) Start() *Activity {
	return g.activities[0]
}

// Sink returns the project sink activity (maximum id).
func (g *ProjectGraph) Sink() *Activity {
	return g.activities[len(g.activities)-1]
}

// Predecessors returns the deduplicated ids of activities that must
// finish before the given activity starts.
func (g *ProjectGraph) Predecessors(id int) []int {
	return g.preds[id]
}

// Successors returns the deduplicated ids of activities that may start
// only after the given activity finishes.
func (g *ProjectGraph) Successors(id int) []int {
	return g.succs[id]
}

// Len returns the number of activities.
func (g *ProjectGraph) Len() int {
	return len(g.activities)
}
