// Package integration exercises the public façade end to end: graph
// construction, fixpoint invocation, timing instrumentation, and the
// execution log boundary.
package integration

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rharris115/callable-graph/pkg/callablegraph"
)

func fnvOf(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func hashStep() callablegraph.Step {
	return callablegraph.NamedStep("hash", func(args ...any) (any, error) {
		return fnvOf(fmt.Sprint(args[0])), nil
	})
}

func strStep() callablegraph.Step {
	return callablegraph.NamedStep("str", func(args ...any) (any, error) {
		return fmt.Sprint(args[0]), nil
	})
}

func TestSingleEdgeGraph(t *testing.T) {
	g, err := callablegraph.NewBuilder().
		AddEdge([]callablegraph.Step{hashStep(), strStep()}, []string{"input"}, []string{"output"}).
		Build()
	require.NoError(t, err)

	ret, err := callablegraph.NewRuntime().Invoke(context.Background(), g, map[string]any{"input": "hello"})
	require.NoError(t, err)

	expected := map[string]any{
		"input":  "hello",
		"output": fmt.Sprint(fnvOf("hello")),
	}
	assert.Equal(t, expected, ret)
}

func TestIndependentEdgesAnyOrder(t *testing.T) {
	world := callablegraph.NamedStep("world", func(args ...any) (any, error) {
		return fmt.Sprintf("%v world", args[0]), nil
	})

	for _, parallel := range []bool{false, true} {
		name := "sequential"
		var opts []callablegraph.RuntimeOption
		if parallel {
			name = "parallel"
			opts = append(opts, callablegraph.WithParallelInvocation())
		}
		t.Run(name, func(t *testing.T) {
			g, err := callablegraph.NewBuilder().
				AddEdge([]callablegraph.Step{hashStep()}, []string{"input"}, []string{"output_0"}).
				AddEdge([]callablegraph.Step{world}, []string{"input"}, []string{"output_1"}).
				Build()
			require.NoError(t, err)

			ret, err := callablegraph.NewRuntime(opts...).Invoke(context.Background(), g, map[string]any{"input": "hello"})
			require.NoError(t, err)

			data, ok := ret.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, fnvOf("hello"), data["output_0"])
			assert.Equal(t, "hello world", data["output_1"])
		})
	}
}

func TestPipelineFailureAndRecovery(t *testing.T) {
	raises := callablegraph.NamedStep("raises", func(args ...any) (any, error) {
		if args[0] == fnvOf("bad") {
			return nil, errors.New("bad input")
		}
		return args[0], nil
	})
	steps := []callablegraph.Step{hashStep(), raises, strStep()}

	_, err := callablegraph.RunPipeline(steps, "bad")
	require.Error(t, err)

	ret, rep := callablegraph.LogPipeline(steps, "good")
	assert.Equal(t, fmt.Sprint(fnvOf("good")), ret)
	require.True(t, rep.Success)
	require.Len(t, rep.Components, 3)
	for _, c := range rep.Components {
		assert.GreaterOrEqual(t, c.ElapsedSeconds, 0.0)
	}
}

func TestReturnSelectionValidatedAtBuild(t *testing.T) {
	_, err := callablegraph.NewBuilder().
		AddEdge([]callablegraph.Step{strStep()}, []string{"input"}, []string{"result"}).
		Return("output").
		Build()
	assert.ErrorIs(t, err, callablegraph.ErrUnknownReturn)
}

func TestLoggedFailureNeverPanicsOrPropagates(t *testing.T) {
	failing := callablegraph.NamedStep("failing", func(args ...any) (any, error) {
		return nil, errors.New("boom")
	})
	g, err := callablegraph.NewBuilder().
		AddEdge([]callablegraph.Step{failing}, []string{"input"}, []string{"output"}).
		Build()
	require.NoError(t, err)

	rt := callablegraph.NewRuntime()
	ret, invLog, err := rt.InvokeLogged(context.Background(), "failing-graph", g, map[string]any{"input": 1})
	require.NoError(t, err)
	assert.Nil(t, ret)
	require.NotNil(t, invLog)
	assert.False(t, invLog.Report.Success)
	assert.NotEmpty(t, invLog.Report.Failure)
}

func TestStuckGraphFailsInsteadOfLooping(t *testing.T) {
	g, err := callablegraph.NewBuilder().
		AddEdge([]callablegraph.Step{strStep()}, []string{"never_produced"}, []string{"b", "seed_out"}).
		AddEdge([]callablegraph.Step{strStep()}, []string{"b"}, []string{"never_produced_2"}).
		Build()
	require.NoError(t, err)

	// "never_produced" is a graph-level required input here, so the
	// precondition catches it.
	_, err = callablegraph.NewRuntime().Invoke(context.Background(), g, map[string]any{})
	var missing *callablegraph.MissingInputsError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Missing, "never_produced")

	// A true cycle passes the precondition and must surface as stuck.
	cyclic, err := callablegraph.NewBuilder().
		AddEdge([]callablegraph.Step{strStep()}, []string{"x", "seed"}, []string{"y"}).
		AddEdge([]callablegraph.Step{strStep()}, []string{"y", "seed"}, []string{"x"}).
		Build()
	require.NoError(t, err)

	_, err = callablegraph.NewRuntime().Invoke(context.Background(), cyclic, map[string]any{"seed": 1})
	var stuck *callablegraph.StuckGraphError
	require.ErrorAs(t, err, &stuck)
	assert.Len(t, stuck.Unready, 2)
}

func TestRequiredInputCompleteness(t *testing.T) {
	g, err := callablegraph.NewBuilder().
		AddEdge([]callablegraph.Step{strStep()}, []string{"a"}, []string{"b"}).
		AddEdge([]callablegraph.Step{strStep()}, []string{"b"}, []string{"c"}).
		Build()
	require.NoError(t, err)

	ret, err := callablegraph.NewRuntime().Invoke(context.Background(), g, map[string]any{"a": 1})
	require.NoError(t, err)

	data, ok := ret.(map[string]any)
	require.True(t, ok)

	// required inputs plus every produced output is exactly the final key set
	expected := map[string]bool{"a": true, "b": true, "c": true}
	assert.Len(t, data, len(expected))
	for name := range expected {
		assert.Contains(t, data, name)
	}
}
