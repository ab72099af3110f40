// Package engine drives the extraction pipeline: categorizing journal text
// into segments, committing segments to the stores, resolving ambiguous
// person matches, interpreting assistant commands, and executing confirmed
// actions.
package engine

import "errors"

var (
	// ErrCategorizationFailed indicates an extraction call failed; partial
	// results from other calls in the same pipeline are discarded.
	ErrCategorizationFailed = errors.New("categorization failed")

	// ErrCommandFailed indicates the command interpreter could not get a
	// model response.
	ErrCommandFailed = errors.New("command failed")
)
