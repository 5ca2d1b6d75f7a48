// Package graph defines domain-specific errors
package graph

import "errors"

// Configuration errors, reported at build time before any data flows.
var (
	// ErrEmptyPipeline indicates an edge with no steps.
	ErrEmptyPipeline = errors.New("no steps specified")
	// ErrEmptyNodeName indicates an edge naming an empty input or output.
	ErrEmptyNodeName = errors.New("empty node name")
	// ErrDuplicateOutput indicates an output already produced by another edge.
	ErrDuplicateOutput = errors.New("outputs cannot be recalculated")
	// ErrUnknownReturn indicates a return selection naming an unknown node.
	ErrUnknownReturn = errors.New("returned outputs not present in graph")
	// ErrSubgraphReturn indicates an imported subgraph builder carrying its
	// own return selection.
	ErrSubgraphReturn = errors.New("subgraph must not declare returned outputs")
)
