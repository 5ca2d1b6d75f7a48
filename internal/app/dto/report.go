package dto

import (
	"time"

	"github.com/rharris115/callable-graph/internal/core/pipeline"
)

// ComponentTiming is one step's display name and elapsed execution time.
type ComponentTiming struct {
	Name           string  `json:"name"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// ExecutionReport is the structured outcome of a logged invocation.
// Failure is set iff Success is false; a failed invocation carries no
// component timings, matching the adapter contract.
type ExecutionReport struct {
	Success             bool              `json:"success"`
	TotalElapsedSeconds float64           `json:"total_elapsed_seconds"`
	Components          []ComponentTiming `json:"components"`
	Failure             string            `json:"failure,omitempty"`
}

// InvocationLog is a persisted execution report together with its identity.
type InvocationLog struct {
	ID        string          `json:"id" validate:"required,uuid4"`
	GraphName string          `json:"graph_name" validate:"required"`
	Report    ExecutionReport `json:"report"`
	StartedAt time.Time       `json:"started_at"`
}

// AdaptTimings converts pipeline timings into report component timings.
func AdaptTimings(timings []pipeline.Timing) []ComponentTiming {
	components := make([]ComponentTiming, len(timings))
	for i, t := range timings {
		components[i] = ComponentTiming{
			Name:           t.Step,
			ElapsedSeconds: t.Elapsed.Seconds(),
		}
	}
	return components
}

// SuccessReport builds the report for an invocation that returned normally.
func SuccessReport(elapsed time.Duration, timings []pipeline.Timing) ExecutionReport {
	return ExecutionReport{
		Success:             true,
		TotalElapsedSeconds: elapsed.Seconds(),
		Components:          AdaptTimings(timings),
	}
}

// FailureReport builds the report for an invocation that returned an error.
// The error is converted to data here and never re-raised.
func FailureReport(elapsed time.Duration, err error) ExecutionReport {
	return ExecutionReport{
		Success:             false,
		TotalElapsedSeconds: elapsed.Seconds(),
		Components:          []ComponentTiming{},
		Failure:             err.Error(),
	}
}
