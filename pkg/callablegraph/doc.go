// Package callablegraph provides a minimal public façade for building and
// invoking callable graphs without importing internal packages. It
// re-exports the core types and exposes a Runtime wiring the scheduler, the
// execution log adapter, and a report store.
package callablegraph
