// Package usecases defines invocation-time errors
package usecases

import (
	"fmt"
)

// MissingInputsError reports required inputs absent from the supplied data.
type MissingInputsError struct {
	Missing []string
}

func (e *MissingInputsError) Error() string {
	return fmt.Sprintf("missing required inputs %v", e.Missing)
}

// UnreadyEdge describes one pending edge that can no longer make progress,
// identified by the outputs it would have produced.
type UnreadyEdge struct {
	Outputs       []string
	MissingInputs []string
}

// StuckGraphError reports a pass that produced no newly-ready edges while
// edges remained pending: a cycle, or an input no edge produces.
type StuckGraphError struct {
	Unready []UnreadyEdge
}

func (e *StuckGraphError) Error() string {
	msg := "graph is stuck, no pending edge is ready:"
	for _, u := range e.Unready {
		msg += fmt.Sprintf(" edge producing %v waits on %v;", u.Outputs, u.MissingInputs)
	}
	return msg
}

// ArityMismatchError reports a multi-output edge whose final step did not
// return a value slice of matching length.
type ArityMismatchError struct {
	Outputs []string
	Got     any
}

func (e *ArityMismatchError) Error() string {
	if vals, ok := e.Got.([]any); ok {
		return fmt.Sprintf("edge declares %d outputs %v but its pipeline returned %d values",
			len(e.Outputs), e.Outputs, len(vals))
	}
	return fmt.Sprintf("edge declares %d outputs %v but its pipeline returned %T, want []any",
		len(e.Outputs), e.Outputs, e.Got)
}
