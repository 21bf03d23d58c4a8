// Package dag defines the activity-on-node project graph: activities with
// labels and durations as nodes, precedence relations as directed edges.
// It builds the graph from a config model, validates that it is acyclic,
// and enforces the unique start/sink convention required by the analyses
// in the cpm and optimize packages.
package dag
