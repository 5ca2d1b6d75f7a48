// Package pipeline provides left-composition of steps: the first step
// receives the caller's arguments, every later step receives the previous
// step's result. It is the execution primitive under every graph edge.
package pipeline

import (
	"time"
)

// AnonymousStep is the display name used for steps registered without one.
const AnonymousStep = "<anonymous>"

// StepFunc is the callable signature for a single step. The first step of a
// pipeline is invoked with all supplied arguments; subsequent steps are
// invoked with exactly one argument, the previous step's result.
type StepFunc func(args ...any) (any, error)

// Step pairs a callable with a stable display name. The name is only used
// for labeling (timings, reports); execution ignores it.
type Step struct {
	Name string
	Fn   StepFunc
}

// Named returns a Step carrying the given display name.
func Named(name string, fn StepFunc) Step {
	return Step{Name: name, Fn: fn}
}

// DisplayName returns the step's name, or a generic placeholder when the
// step was registered without one.
func (s Step) DisplayName() string {
	if s.Name == "" {
		return AnonymousStep
	}
	return s.Name
}

// Timing records the wall-clock duration of one step invocation.
type Timing struct {
	Step    string
	Elapsed time.Duration
}

// Run invokes steps left to right, threading each result into the next
// step. A step error stops the pipeline and is returned as-is.
func Run(steps []Step, args ...any) (any, error) {
	ret, _, err := run(steps, args, false)
	return ret, err
}

// RunTimed is Run with per-step wall-clock timings, one entry per step
// actually invoked, in invocation order. Timings for completed steps are
// returned even when a later step fails.
func RunTimed(steps []Step, args ...any) (any, []Timing, error) {
	return run(steps, args, true)
}

func run(steps []Step, args []any, timed bool) (any, []Timing, error) {
	if len(steps) == 0 {
		return nil, nil, ErrNoSteps
	}

	var timings []Timing
	if timed {
		timings = make([]Timing, 0, len(steps))
	}

	// A failing step contributes no timing entry; entries for steps that
	// already completed are kept.
	invoke := func(s Step, in ...any) (any, error) {
		if !timed {
			return s.Fn(in...)
		}
		start := time.Now()
		ret, err := s.Fn(in...)
		if err == nil {
			timings = append(timings, Timing{Step: s.DisplayName(), Elapsed: time.Since(start)})
		}
		return ret, err
	}

	ret, err := invoke(steps[0], args...)
	if err != nil {
		return nil, timings, err
	}
	for _, s := range steps[1:] {
		ret, err = invoke(s, ret)
		if err != nil {
			return nil, timings, err
		}
	}
	return ret, timings, nil
}
