// Package main provides the callable-graph CLI: a demo workload that builds
// and runs a small graph through the execution log adapter, and a server
// mode exposing the runtime's expvar metrics.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/rharris115/callable-graph/internal/adapters/repository/report"
	"github.com/rharris115/callable-graph/pkg/callablegraph"
	"github.com/rharris115/callable-graph/pkg/serialization"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Optional .env for local configuration; absence is fine.
	_ = godotenv.Load()

	cmd := "demo"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "version":
		fmt.Printf("callable-graph %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
	case "serve":
		serve()
	case "demo":
		if err := demo(context.Background()); err != nil {
			log.Fatalf("demo failed: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want demo, serve, or version)\n", cmd)
		os.Exit(2)
	}
}

// demo builds a small word-statistics graph, invokes it through the log
// adapter, and prints the result and its execution report as JSON.
func demo(ctx context.Context) error {
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}

	g, err := demoGraph()
	if err != nil {
		return err
	}

	ret, invLog, err := rt.InvokeLogged(ctx, "word-stats", g, map[string]any{
		"text": "the quick brown fox jumps over the lazy dog",
	})
	if err != nil {
		return err
	}

	out := map[string]any{"result": ret, "log": invLog}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// newRuntime selects a report store from the environment: a SQLite path via
// CALLGRAPH_SQLITE, else in-memory.
func newRuntime(ctx context.Context) (*callablegraph.Runtime, error) {
	if path := os.Getenv("CALLGRAPH_SQLITE"); path != "" {
		serializer := serialization.NewSerializer(serialization.Config{
			Codec:       serialization.MsgpackCodec{},
			Compression: serialization.CompressionZstd,
		})
		store, err := report.OpenSQLiteStore(ctx, path, serializer)
		if err != nil {
			return nil, err
		}
		return callablegraph.NewRuntime(callablegraph.WithStore(store)), nil
	}
	return callablegraph.NewRuntime(), nil
}
