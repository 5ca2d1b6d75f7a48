// Package dto carries the data shapes exchanged between the invocation
// layer and callers: execution reports, component timings, and persisted
// invocation logs.
package dto
