// Package metrics exposes expvar-published counters used by the scheduler
// and the report stores. It intentionally avoids external dependencies and
// is consumed by the optional callable-graph server for /debug/vars and
// /metrics endpoints.
package metrics
