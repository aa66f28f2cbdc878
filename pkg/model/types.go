// Package model defines the canonical message schema shared by every
// platform parser, and the builder that accumulates parsed messages
// into an immutable table.
package model

import "time"

// Message is one normalized chat message or system event.
type Message struct {
	// Timestamp is the wall-clock time recorded by the exporting device.
	// No zone offset is recoverable from any supported export format.
	Timestamp time.Time

	// Author is the originating identity. Empty when IsEvent is true.
	Author string

	// Body is the textual content. May span multiple lines, and may be a
	// platform placeholder for non-text media (e.g. "image omitted").
	Body string

	// IsEvent marks platform-generated notices (group changes, call logs,
	// encryption notices) that have no human author.
	IsEvent bool
}

// StateError reports an operation attempted on a builder or table that
// is in the wrong state for it (e.g. append after finalize).
type StateError struct {
	// Op is the operation that was rejected.
	Op string
}

func (e *StateError) Error() string {
	return "model: " + e.Op + " on finalized table"
}
