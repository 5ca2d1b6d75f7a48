package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // register /debug/pprof
	"os"
	"sort"
	"strings"
)

// serve exposes health, expvar, and Prometheus-format metrics endpoints,
// plus an endpoint that runs the demo workload to generate metrics load.
func serve() {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintln(w, "callable-graph server is running. See /healthz, /debug/vars, /metrics")
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("/metrics", promMetricsHandler)
	mux.HandleFunc("/workload/demo", func(w http.ResponseWriter, r *http.Request) {
		if err := demo(context.Background()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	addr := ":8080"
	if v := os.Getenv("CALLGRAPH_ADDR"); v != "" {
		addr = v
	}
	log.Printf("Starting callable-graph server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// promMetricsHandler renders the runtime's expvar counters in Prometheus
// text exposition format.
func promMetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	help := map[string]string{
		"callablegraph_passes_total":          "Number of readiness passes executed",
		"callablegraph_edge_executions_total": "Number of edge pipelines executed",
		"callablegraph_step_executions_total": "Number of pipeline steps executed",
		"callablegraph_stuck_total":           "Number of invocations that failed stuck",
		"callablegraph_reports_saved_total":   "Number of invocation logs persisted",
	}

	var names []string
	expvar.Do(func(kv expvar.KeyValue) {
		if strings.HasPrefix(kv.Key, "callablegraph_") {
			names = append(names, kv.Key)
		}
	})
	sort.Strings(names)

	for _, name := range names {
		v := expvar.Get(name)
		if v == nil {
			continue
		}
		if h, ok := help[name]; ok {
			_, _ = fmt.Fprintf(w, "# HELP %s %s\n", name, h)
			_, _ = fmt.Fprintf(w, "# TYPE %s counter\n", name)
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", name, v.String())
	}
}
