package graph

import (
	"fmt"

	"github.com/rharris115/callable-graph/internal/core/pipeline"
)

// Builder accumulates edges and a return selection, validating as it goes.
// Methods are fluent; the first configuration error is recorded and surfaced
// by Build (and by Err), after which further calls are no-ops. A Builder is
// reusable: Build snapshots the current state without consuming it.
type Builder struct {
	edges    []Edge
	returned []string
	err      error
}

// NewBuilder returns an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddEdge appends an edge applying steps to the named inputs and publishing
// the result under the named outputs. An output already produced by a
// previously added edge is a configuration error naming the overlap.
func (b *Builder) AddEdge(steps []pipeline.Step, inputs, outputs []string) *Builder {
	return b.AddTaggedEdge(steps, inputs, outputs, "")
}

// AddTaggedEdge is AddEdge with a subgraph tag stamped on the edge.
func (b *Builder) AddTaggedEdge(steps []pipeline.Step, inputs, outputs []string, tag string) *Builder {
	if b.err != nil {
		return b
	}

	edge := Edge{Steps: steps, Inputs: inputs, Outputs: outputs, Subgraph: tag}
	if err := edge.Validate(); err != nil {
		b.err = err
		return b
	}

	if overlap := b.overlappingOutputs(outputs); len(overlap) > 0 {
		b.err = fmt.Errorf("%w: %v", ErrDuplicateOutput, overlap)
		return b
	}

	b.edges = append(b.edges, edge.clone())
	return b
}

// AddSubgraph imports every edge of another builder, stamped with the given
// subgraph name and re-validated against this builder's edges. The other
// builder must not carry its own return selection.
func (b *Builder) AddSubgraph(other *Builder, name string) *Builder {
	if b.err != nil {
		return b
	}
	if other.err != nil {
		b.err = other.err
		return b
	}
	if len(other.returned) > 0 {
		b.err = fmt.Errorf("%w: %v", ErrSubgraphReturn, other.returned)
		return b
	}
	for _, e := range other.edges {
		b.AddTaggedEdge(e.Steps, e.Inputs, e.Outputs, name)
	}
	return b
}

// Return records the ordered node names the built graph will produce when
// invoked, replacing any prior selection. Every name must already appear as
// some edge's input or output. An empty selection means the invocation
// returns the full data mapping.
func (b *Builder) Return(names ...string) *Builder {
	if b.err != nil {
		return b
	}

	known := b.nodeSet()
	var unknown []string
	for _, name := range names {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		b.err = fmt.Errorf("%w: %v", ErrUnknownReturn, unknown)
		return b
	}

	b.returned = append([]string(nil), names...)
	return b
}

// Err returns the first configuration error recorded so far, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build snapshots the accumulated edges and return selection into an
// immutable Graph, or returns the first recorded configuration error.
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	edges := make([]Edge, len(b.edges))
	for i := range b.edges {
		edges[i] = b.edges[i].clone()
	}
	return newGraph(edges, append([]string(nil), b.returned...)), nil
}

// overlappingOutputs returns the outputs already produced by an accumulated
// edge, in the order given.
func (b *Builder) overlappingOutputs(outputs []string) []string {
	produced := make(map[string]bool)
	for _, e := range b.edges {
		for _, out := range e.Outputs {
			produced[out] = true
		}
	}
	var overlap []string
	for _, out := range outputs {
		if produced[out] {
			overlap = append(overlap, out)
		}
	}
	return overlap
}

// nodeSet returns every node name seen so far, input or output.
func (b *Builder) nodeSet() map[string]bool {
	nodes := make(map[string]bool)
	for _, e := range b.edges {
		for _, in := range e.Inputs {
			nodes[in] = true
		}
		for _, out := range e.Outputs {
			nodes[out] = true
		}
	}
	return nodes
}
