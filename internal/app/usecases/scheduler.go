// Package usecases implements graph invocation: the pass-based readiness
// scan that discovers edge order at run time from node-name availability,
// with no precomputed topology.
package usecases

import (
	"context"
	"sync"

	"github.com/rharris115/callable-graph/internal/core/graph"
	"github.com/rharris115/callable-graph/internal/core/pipeline"
	"github.com/rharris115/callable-graph/internal/infrastructure/metrics"
)

// Scheduler invokes built graphs. The zero value runs each pass
// sequentially; WithParallel runs all edges of a ready set concurrently,
// which is safe because their outputs are disjoint by construction and a
// pass is a barrier.
type Scheduler struct {
	parallel bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithParallel enables concurrent execution of each pass's ready set.
func WithParallel() Option {
	return func(s *Scheduler) { s.parallel = true }
}

// NewScheduler returns a Scheduler with the given options applied.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Invoke runs the graph against the supplied inputs and returns the
// selected result: the full data mapping when no return selection was
// declared, the bare value for a single selected name, and an ordered
// []any for several.
func (s *Scheduler) Invoke(ctx context.Context, g *graph.Graph, inputs map[string]any) (any, error) {
	ret, _, err := s.invoke(ctx, g, inputs, false)
	return ret, err
}

// InvokeTimed is Invoke plus the concatenated per-step timings of every
// edge pipeline, in the order the pipelines ran.
func (s *Scheduler) InvokeTimed(ctx context.Context, g *graph.Graph, inputs map[string]any) (any, []pipeline.Timing, error) {
	return s.invoke(ctx, g, inputs, true)
}

func (s *Scheduler) invoke(ctx context.Context, g *graph.Graph, inputs map[string]any, timed bool) (any, []pipeline.Timing, error) {
	if err := checkRequired(g, inputs); err != nil {
		return nil, nil, err
	}

	data := make(map[string]any, len(inputs))
	for k, v := range inputs {
		data[k] = v
	}

	pending := g.Edges()
	var timings []pipeline.Timing

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, timings, err
		}

		ready, rest := splitReady(pending, data)
		if len(ready) == 0 {
			metrics.IncStuck()
			return nil, timings, stuckError(rest, data)
		}
		metrics.IncPasses()

		runEdge := func(e *graph.Edge) (any, []pipeline.Timing, error) {
			args := make([]any, len(e.Inputs))
			for i, in := range e.Inputs {
				args[i] = data[in]
			}
			if timed {
				return pipeline.RunTimed(e.Steps, args...)
			}
			ret, err := pipeline.Run(e.Steps, args...)
			return ret, nil, err
		}

		results := make([]any, len(ready))
		edgeTimings := make([][]pipeline.Timing, len(ready))
		errs := make([]error, len(ready))

		if s.parallel {
			var wg sync.WaitGroup
			for i := range ready {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], edgeTimings[i], errs[i] = runEdge(&ready[i])
				}(i)
			}
			wg.Wait()
		} else {
			for i := range ready {
				results[i], edgeTimings[i], errs[i] = runEdge(&ready[i])
			}
		}

		// Publish outputs only after the whole pass settles, so a pass is a
		// barrier in both modes.
		for i := range ready {
			timings = append(timings, edgeTimings[i]...)
			if errs[i] != nil {
				return nil, timings, errs[i]
			}
			if err := publish(data, &ready[i], results[i]); err != nil {
				return nil, timings, err
			}
			metrics.IncEdgeExecs(1)
			metrics.IncStepExecs(int64(len(ready[i].Steps)))
		}

		pending = rest
	}

	ret, err := selectResult(g, data)
	return ret, timings, err
}

// checkRequired verifies the invocation precondition: supplied keys must
// cover every graph-level required input.
func checkRequired(g *graph.Graph, inputs map[string]any) error {
	var missing []string
	for _, name := range g.RequiredInputs() {
		if _, ok := inputs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingInputsError{Missing: missing}
	}
	return nil
}

// splitReady partitions pending edges into those whose inputs are all
// present in data and those still waiting.
func splitReady(pending []graph.Edge, data map[string]any) (ready, rest []graph.Edge) {
	for _, e := range pending {
		if edgeReady(&e, data) {
			ready = append(ready, e)
		} else {
			rest = append(rest, e)
		}
	}
	return ready, rest
}

func edgeReady(e *graph.Edge, data map[string]any) bool {
	for _, in := range e.Inputs {
		if _, ok := data[in]; !ok {
			return false
		}
	}
	return true
}

// publish writes an edge's pipeline result into data. A single output takes
// the raw result; k>1 outputs unpack a []any of exactly k values.
func publish(data map[string]any, e *graph.Edge, ret any) error {
	switch len(e.Outputs) {
	case 0:
		// Side-effect-only edge, result discarded.
	case 1:
		data[e.Outputs[0]] = ret
	default:
		vals, ok := ret.([]any)
		if !ok || len(vals) != len(e.Outputs) {
			return &ArityMismatchError{Outputs: e.Outputs, Got: ret}
		}
		for i, out := range e.Outputs {
			data[out] = vals[i]
		}
	}
	return nil
}

func stuckError(pending []graph.Edge, data map[string]any) *StuckGraphError {
	unready := make([]UnreadyEdge, 0, len(pending))
	for _, e := range pending {
		var missing []string
		for _, in := range e.Inputs {
			if _, ok := data[in]; !ok {
				missing = append(missing, in)
			}
		}
		unready = append(unready, UnreadyEdge{Outputs: e.Outputs, MissingInputs: missing})
	}
	return &StuckGraphError{Unready: unready}
}

func selectResult(g *graph.Graph, data map[string]any) (any, error) {
	returned := g.ReturnedOutputs()
	switch len(returned) {
	case 0:
		return data, nil
	case 1:
		return data[returned[0]], nil
	default:
		vals := make([]any, len(returned))
		for i, name := range returned {
			vals[i] = data[name]
		}
		return vals, nil
	}
}
