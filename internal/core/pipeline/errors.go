// Package pipeline defines domain-specific errors
package pipeline

import "errors"

// ErrNoSteps is returned when a pipeline is run with no steps.
var ErrNoSteps = errors.New("no steps specified")
