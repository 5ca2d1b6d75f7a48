package callablegraph

import (
	"context"

	"github.com/rharris115/callable-graph/internal/adapters/repository/report"
	"github.com/rharris115/callable-graph/internal/app/dto"
	"github.com/rharris115/callable-graph/internal/app/services"
	"github.com/rharris115/callable-graph/internal/app/usecases"
	"github.com/rharris115/callable-graph/internal/core/graph"
	"github.com/rharris115/callable-graph/internal/core/pipeline"
)

// Re-export core types for convenience
type (
	Builder         = graph.Builder
	Graph           = graph.Graph
	Edge            = graph.Edge
	Step            = pipeline.Step
	StepFunc        = pipeline.StepFunc
	Timing          = pipeline.Timing
	ExecutionReport = dto.ExecutionReport
	ComponentTiming = dto.ComponentTiming
	InvocationLog   = dto.InvocationLog
	Store           = services.Store
)

// Invocation-time error types, re-exported for errors.As matching.
type (
	MissingInputsError = usecases.MissingInputsError
	StuckGraphError    = usecases.StuckGraphError
	ArityMismatchError = usecases.ArityMismatchError
)

// Configuration error sentinels, re-exported for errors.Is matching.
var (
	ErrEmptyPipeline   = graph.ErrEmptyPipeline
	ErrDuplicateOutput = graph.ErrDuplicateOutput
	ErrUnknownReturn   = graph.ErrUnknownReturn
	ErrSubgraphReturn  = graph.ErrSubgraphReturn
)

// NewBuilder returns an empty graph builder.
func NewBuilder() *Builder {
	return graph.NewBuilder()
}

// NamedStep pairs a callable with a stable display name for timing records.
func NamedStep(name string, fn StepFunc) Step {
	return pipeline.Named(name, fn)
}

// RunPipeline runs a bare step pipeline outside any graph.
func RunPipeline(steps []Step, args ...any) (any, error) {
	return pipeline.Run(steps, args...)
}

// LogPipeline runs a bare step pipeline through the execution log adapter.
// The report carries per-step timings on success and the failure detail on
// error; the error itself is never propagated.
func LogPipeline(steps []Step, args ...any) (any, ExecutionReport) {
	return services.LogPipeline(steps, args...)
}

// Runtime bundles a scheduler, the execution log adapter, and a report
// store. The default runtime runs passes sequentially and keeps reports in
// memory.
type Runtime struct {
	scheduler *usecases.Scheduler
	logs      *services.ExecutionLogService
	store     Store
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*runtimeConfig)

type runtimeConfig struct {
	schedulerOpts []usecases.Option
	store         Store
}

// WithParallelInvocation runs every ready set concurrently.
func WithParallelInvocation() RuntimeOption {
	return func(c *runtimeConfig) {
		c.schedulerOpts = append(c.schedulerOpts, usecases.WithParallel())
	}
}

// WithStore persists invocation logs to the given store instead of the
// default in-memory one.
func WithStore(store Store) RuntimeOption {
	return func(c *runtimeConfig) {
		c.store = store
	}
}

// NewRuntime constructs a runtime with the given options applied.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	var cfg runtimeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.store == nil {
		cfg.store = report.NewInMemoryStore()
	}
	scheduler := usecases.NewScheduler(cfg.schedulerOpts...)
	return &Runtime{
		scheduler: scheduler,
		logs:      services.NewExecutionLogService(scheduler, cfg.store),
		store:     cfg.store,
	}
}

// Invoke runs a graph against the supplied inputs and returns the selected
// result.
func (rt *Runtime) Invoke(ctx context.Context, g *Graph, inputs map[string]any) (any, error) {
	return rt.scheduler.Invoke(ctx, g, inputs)
}

// InvokeTimed is Invoke plus the ordered per-step timings.
func (rt *Runtime) InvokeTimed(ctx context.Context, g *Graph, inputs map[string]any) (any, []Timing, error) {
	return rt.scheduler.InvokeTimed(ctx, g, inputs)
}

// InvokeLogged runs the graph through the execution log adapter, persists
// the report under graphName, and returns the result with its log. An
// invocation failure is recorded in the log, not returned; the error return
// concerns persistence only.
func (rt *Runtime) InvokeLogged(ctx context.Context, graphName string, g *Graph, inputs map[string]any) (any, *InvocationLog, error) {
	return rt.logs.Run(ctx, graphName, g, inputs)
}

// Reports lists persisted invocation logs for a graph name, newest first.
// An empty name matches every log.
func (rt *Runtime) Reports(ctx context.Context, graphName string) ([]*InvocationLog, error) {
	return rt.store.List(ctx, graphName)
}
