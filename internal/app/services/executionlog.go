// Package services provides the execution log boundary: the single place
// where invocation errors stop propagating and become report data.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rharris115/callable-graph/internal/app/dto"
	"github.com/rharris115/callable-graph/internal/app/usecases"
	"github.com/rharris115/callable-graph/internal/core/graph"
	"github.com/rharris115/callable-graph/internal/core/pipeline"
	"github.com/rharris115/callable-graph/pkg/validation"
)

// Store persists invocation logs. Implementations live under
// internal/adapters/repository/report.
type Store interface {
	Save(ctx context.Context, log *dto.InvocationLog) error
	Load(ctx context.Context, id string) (*dto.InvocationLog, error)
	List(ctx context.Context, graphName string) ([]*dto.InvocationLog, error)
	Delete(ctx context.Context, id string) error
}

// LogGraph invokes a graph and converts the outcome into an execution
// report. A failed invocation yields (nil, failure report); the underlying
// error is fully converted to data and never returned.
func LogGraph(ctx context.Context, s *usecases.Scheduler, g *graph.Graph, inputs map[string]any) (any, dto.ExecutionReport) {
	start := time.Now()
	ret, timings, err := s.InvokeTimed(ctx, g, inputs)
	if err != nil {
		return nil, dto.FailureReport(time.Since(start), err)
	}
	return ret, dto.SuccessReport(time.Since(start), timings)
}

// LogPipeline is LogGraph for a bare step pipeline.
func LogPipeline(steps []pipeline.Step, args ...any) (any, dto.ExecutionReport) {
	start := time.Now()
	ret, timings, err := pipeline.RunTimed(steps, args...)
	if err != nil {
		return nil, dto.FailureReport(time.Since(start), err)
	}
	return ret, dto.SuccessReport(time.Since(start), timings)
}

// ExecutionLogService runs graphs through the log adapter and persists each
// report as an InvocationLog.
type ExecutionLogService struct {
	scheduler *usecases.Scheduler
	store     Store
}

// NewExecutionLogService creates a service backed by the given scheduler
// and store.
func NewExecutionLogService(scheduler *usecases.Scheduler, store Store) *ExecutionLogService {
	return &ExecutionLogService{scheduler: scheduler, store: store}
}

// Run invokes the graph logged under graphName and persists the resulting
// report. The returned error concerns persistence only: an invocation
// failure is recorded in the log's report, not returned.
func (s *ExecutionLogService) Run(ctx context.Context, graphName string, g *graph.Graph, inputs map[string]any) (any, *dto.InvocationLog, error) {
	start := time.Now()
	ret, report := LogGraph(ctx, s.scheduler, g, inputs)

	log := &dto.InvocationLog{
		ID:        uuid.NewString(),
		GraphName: graphName,
		Report:    report,
		StartedAt: start,
	}
	if err := validation.ValidateInvocationLog(log); err != nil {
		return ret, nil, err
	}
	if err := s.store.Save(ctx, log); err != nil {
		return ret, nil, err
	}
	return ret, log, nil
}
