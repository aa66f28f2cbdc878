package timefmt

import (
	"fmt"
	"strings"
)

// AmbiguousFormatError is returned when more than one candidate format
// remains consistent with the full sample. It is never resolved by
// guessing; the caller must supply an explicit descriptor override.
type AmbiguousFormatError struct {
	// Candidates are the surviving formats, all equally consistent.
	Candidates []Descriptor
}

func (e *AmbiguousFormatError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.Order.String()
	}
	return fmt.Sprintf("timefmt: ambiguous date format, candidates: %s (supply an explicit format override)",
		strings.Join(names, " or "))
}

// NoMatchError is returned when no candidate format matched the sample.
type NoMatchError struct {
	// Line is the first sample token that ruled out every candidate.
	Line string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("timefmt: no candidate date format matched %q", e.Line)
}
