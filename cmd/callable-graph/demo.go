package main

import (
	"fmt"
	"strings"

	"github.com/rharris115/callable-graph/pkg/callablegraph"
)

// demoGraph builds a graph computing word statistics over an input text:
// tokenize the text, then count and measure the tokens along independent
// branches that rejoin in a summary edge.
func demoGraph() (*callablegraph.Graph, error) {
	tokenize := callablegraph.NamedStep("tokenize", func(args ...any) (any, error) {
		text, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("want string text, got %T", args[0])
		}
		return strings.Fields(text), nil
	})

	count := callablegraph.NamedStep("count", func(args ...any) (any, error) {
		return len(args[0].([]string)), nil
	})

	longest := callablegraph.NamedStep("longest", func(args ...any) (any, error) {
		var best string
		for _, w := range args[0].([]string) {
			if len(w) > len(best) {
				best = w
			}
		}
		return best, nil
	})

	summarize := callablegraph.NamedStep("summarize", func(args ...any) (any, error) {
		return fmt.Sprintf("%d words, longest %q", args[0].(int), args[1].(string)), nil
	})

	return callablegraph.NewBuilder().
		AddEdge([]callablegraph.Step{tokenize}, []string{"text"}, []string{"tokens"}).
		AddEdge([]callablegraph.Step{count}, []string{"tokens"}, []string{"word_count"}).
		AddEdge([]callablegraph.Step{longest}, []string{"tokens"}, []string{"longest_word"}).
		AddEdge([]callablegraph.Step{summarize}, []string{"word_count", "longest_word"}, []string{"summary"}).
		Return("summary").
		Build()
}
