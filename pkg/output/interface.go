// Package output serializes finalized message tables for the
// downstream analysis and rendering tools.
package output

import (
	"context"
	"io"

	"github.com/chatsift/chatsift/pkg/model"
)

// Formatter renders a table in a specific format.
type Formatter interface {
	// Format renders the table to the given writer.
	Format(ctx context.Context, table *model.Table, w io.Writer) error

	// Name returns the format name (csv, json).
	Name() string
}
