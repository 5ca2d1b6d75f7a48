// Package graph provides edge definitions
package graph

import (
	"github.com/rharris115/callable-graph/internal/core/pipeline"
)

// Edge connects input nodes to output nodes through an ordered step
// pipeline. Node identity is purely by name: an edge becomes runnable once
// every name in Inputs is present in the invocation's data mapping, and its
// pipeline result is published under the names in Outputs.
//
// Edges are immutable once handed to a Builder. Subgraph is an opaque
// grouping tag for external rendering and has no effect on scheduling.
type Edge struct {
	Steps    []pipeline.Step
	Inputs   []string
	Outputs  []string
	Subgraph string
}

// Validate ensures edge integrity.
func (e *Edge) Validate() error {
	if len(e.Steps) == 0 {
		return ErrEmptyPipeline
	}
	for _, name := range e.Inputs {
		if name == "" {
			return ErrEmptyNodeName
		}
	}
	for _, name := range e.Outputs {
		if name == "" {
			return ErrEmptyNodeName
		}
	}
	return nil
}

// clone returns a copy of the edge with its own backing arrays, so a built
// Graph cannot be mutated through slices still held by the caller.
func (e *Edge) clone() Edge {
	c := Edge{
		Steps:    make([]pipeline.Step, len(e.Steps)),
		Inputs:   make([]string, len(e.Inputs)),
		Outputs:  make([]string, len(e.Outputs)),
		Subgraph: e.Subgraph,
	}
	copy(c.Steps, e.Steps)
	copy(c.Inputs, e.Inputs)
	copy(c.Outputs, e.Outputs)
	return c
}
