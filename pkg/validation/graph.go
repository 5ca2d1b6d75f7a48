package validation

import (
	"errors"
	"fmt"

	"github.com/rharris115/callable-graph/internal/core/graph"
)

// ErrUnreachableEdges indicates edges that can never become ready from the
// graph's required inputs: the static shadow of a stuck invocation.
var ErrUnreachableEdges = errors.New("edges can never become ready")

// GraphOptions controls optional structural checks.
type GraphOptions struct {
	// CheckReachability simulates the readiness passes without executing
	// any step and fails if some edge could never run. This catches cycles
	// and orphaned inputs at validation time instead of invocation time.
	CheckReachability bool
}

// ValidateGraph runs structural checks on a built graph. The builder
// already enforces output disjointness and return-selection coverage; this
// adds the optional reachability analysis for callers that want cycles
// rejected before any data flows.
func ValidateGraph(g *graph.Graph, opts ...GraphOptions) error {
	var opt GraphOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	if !opt.CheckReachability {
		return nil
	}
	return checkReachability(g)
}

// checkReachability replays the scheduler's pass logic over node names
// only: seed with the required inputs, repeatedly mark edges whose inputs
// are all available, and fail if a pass makes no progress with edges left.
func checkReachability(g *graph.Graph) error {
	available := make(map[string]bool)
	for _, name := range g.RequiredInputs() {
		available[name] = true
	}

	pending := g.Edges()
	for len(pending) > 0 {
		var rest []graph.Edge
		progressed := false
		for _, e := range pending {
			if allAvailable(e.Inputs, available) {
				for _, out := range e.Outputs {
					available[out] = true
				}
				progressed = true
			} else {
				rest = append(rest, e)
			}
		}
		if !progressed {
			var blocked []string
			for _, e := range rest {
				blocked = append(blocked, fmt.Sprintf("%v", e.Outputs))
			}
			return fmt.Errorf("%w: producing %v", ErrUnreachableEdges, blocked)
		}
		pending = rest
	}
	return nil
}

func allAvailable(names []string, available map[string]bool) bool {
	for _, name := range names {
		if !available[name] {
			return false
		}
	}
	return true
}
