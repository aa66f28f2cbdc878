package document

import (
	"fmt"
	"strings"
)

// SchemaMismatchError reports that a structured export lacks any
// recognized field-name alias for a required attribute.
type SchemaMismatchError struct {
	// Field is the logical attribute that could not be resolved.
	Field string

	// Aliases are the field names that were tried.
	Aliases []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("document: no recognized field for %s (tried %s)",
		e.Field, strings.Join(e.Aliases, ", "))
}

// Require resolves a logical attribute through its known aliases,
// failing with a SchemaMismatchError when none match.
func Require(n *Node, field string, aliases ...string) (*Node, error) {
	if child, ok := n.FirstOf(aliases...); ok {
		return child, nil
	}
	return nil, &SchemaMismatchError{Field: field, Aliases: aliases}
}
