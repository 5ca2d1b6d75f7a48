// Package report provides invocation log stores: in-memory for local use,
// PostgreSQL and SQLite for persistence. Persistent stores serialize the
// report body through pkg/serialization.
package report

import "errors"

var (
	ErrInvalidLogID = errors.New("invalid invocation log ID")
	ErrNilLog       = errors.New("invocation log cannot be nil")
	ErrLogNotFound  = errors.New("invocation log not found")
)
