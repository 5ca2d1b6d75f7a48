package metrics

import (
	"expvar"
)

// Scheduler metrics.
var (
	passesTotal    = new(expvar.Int)
	edgeExecsTotal = new(expvar.Int)
	stepExecsTotal = new(expvar.Int)
	stuckTotal     = new(expvar.Int)
	reportsSaved   = new(expvar.Int)
)

func init() {
	expvar.Publish("callablegraph_passes_total", passesTotal)
	expvar.Publish("callablegraph_edge_executions_total", edgeExecsTotal)
	expvar.Publish("callablegraph_step_executions_total", stepExecsTotal)
	expvar.Publish("callablegraph_stuck_total", stuckTotal)
	expvar.Publish("callablegraph_reports_saved_total", reportsSaved)
}

// Scheduler helpers
func IncPasses() { passesTotal.Add(1) }

func IncEdgeExecs(n int64) { edgeExecsTotal.Add(n) }

func IncStepExecs(n int64) { stepExecsTotal.Add(n) }

func IncStuck() { stuckTotal.Add(1) }

// Report store helpers
func IncReportsSaved() { reportsSaved.Add(1) }
