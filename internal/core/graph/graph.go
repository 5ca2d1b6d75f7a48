// Package graph provides the core graph domain entities: named data nodes
// connected by step-pipeline edges, built once via Builder and immutable
// afterwards. Nodes are not materialized; they are string keys into an
// invocation's data mapping, so an edge's output chains into another edge's
// input by name equality alone.
package graph

import "sort"

// Graph is the built, immutable edge set together with its derived views.
// All accessors return copies; a Graph is safe for concurrent use.
type Graph struct {
	edges    []Edge
	required []string
	terminal []string
	returned []string
}

func newGraph(edges []Edge, returned []string) *Graph {
	inputs := make(map[string]bool)
	outputs := make(map[string]bool)
	for _, e := range edges {
		for _, in := range e.Inputs {
			inputs[in] = true
		}
		for _, out := range e.Outputs {
			outputs[out] = true
		}
	}
	return &Graph{
		edges:    edges,
		required: difference(inputs, outputs),
		terminal: difference(outputs, inputs),
		returned: returned,
	}
}

// Edges returns all edges of the graph.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	for i := range g.edges {
		edges[i] = g.edges[i].clone()
	}
	return edges
}

// RequiredInputs returns the nodes consumed by some edge but produced by
// none; the caller must supply them at invocation. Sorted for determinism.
func (g *Graph) RequiredInputs() []string {
	return append([]string(nil), g.required...)
}

// TerminalOutputs returns the nodes produced by some edge but consumed by
// none. Sorted for determinism.
func (g *Graph) TerminalOutputs() []string {
	return append([]string(nil), g.terminal...)
}

// ReturnedOutputs returns the declared return selection, in declaration
// order. Empty means an invocation returns the full data mapping.
func (g *Graph) ReturnedOutputs() []string {
	return append([]string(nil), g.returned...)
}

// difference returns the sorted members of a not in b.
func difference(a, b map[string]bool) []string {
	var names []string
	for name := range a {
		if !b[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
