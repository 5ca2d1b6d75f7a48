package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rharris115/callable-graph/internal/app/dto"
	"github.com/rharris115/callable-graph/internal/core/graph"
	"github.com/rharris115/callable-graph/internal/core/pipeline"
)

func passthrough() []pipeline.Step {
	return []pipeline.Step{pipeline.Named("id", func(args ...any) (any, error) {
		return args[0], nil
	})}
}

func TestValidateGraph_Reachability(t *testing.T) {
	t.Run("linear graph passes", func(t *testing.T) {
		g, err := graph.NewBuilder().
			AddEdge(passthrough(), []string{"a"}, []string{"b"}).
			AddEdge(passthrough(), []string{"b"}, []string{"c"}).
			Build()
		require.NoError(t, err)

		assert.NoError(t, ValidateGraph(g, GraphOptions{CheckReachability: true}))
	})

	t.Run("diamond graph passes", func(t *testing.T) {
		g, err := graph.NewBuilder().
			AddEdge(passthrough(), []string{"a"}, []string{"left"}).
			AddEdge(passthrough(), []string{"a"}, []string{"right"}).
			AddEdge(passthrough(), []string{"left", "right"}, []string{"joined"}).
			Build()
		require.NoError(t, err)

		assert.NoError(t, ValidateGraph(g, GraphOptions{CheckReachability: true}))
	})

	t.Run("cycle detected", func(t *testing.T) {
		g, err := graph.NewBuilder().
			AddEdge(passthrough(), []string{"a", "seed"}, []string{"b"}).
			AddEdge(passthrough(), []string{"b", "seed"}, []string{"a"}).
			Build()
		require.NoError(t, err)

		err = ValidateGraph(g, GraphOptions{CheckReachability: true})
		assert.ErrorIs(t, err, ErrUnreachableEdges)
	})

	t.Run("skipped without option", func(t *testing.T) {
		g, err := graph.NewBuilder().
			AddEdge(passthrough(), []string{"a", "seed"}, []string{"b"}).
			AddEdge(passthrough(), []string{"b", "seed"}, []string{"a"}).
			Build()
		require.NoError(t, err)

		// The cycle only surfaces when reachability checking is requested.
		assert.NoError(t, ValidateGraph(g))
	})
}

func TestValidateInvocationLog(t *testing.T) {
	valid := &dto.InvocationLog{
		ID:        uuid.NewString(),
		GraphName: "word-stats",
		Report:    dto.ExecutionReport{Success: true},
		StartedAt: time.Now(),
	}
	assert.NoError(t, ValidateInvocationLog(valid))

	t.Run("missing ID", func(t *testing.T) {
		log := *valid
		log.ID = ""
		assert.Error(t, ValidateInvocationLog(&log))
	})

	t.Run("malformed ID", func(t *testing.T) {
		log := *valid
		log.ID = "not-a-uuid"
		assert.Error(t, ValidateInvocationLog(&log))
	})

	t.Run("missing graph name", func(t *testing.T) {
		log := *valid
		log.GraphName = ""
		assert.Error(t, ValidateInvocationLog(&log))
	})
}
