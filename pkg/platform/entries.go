package platform

import (
	"fmt"

	"github.com/chatsift/chatsift/pkg/document"
	"github.com/chatsift/chatsift/pkg/model"
)

// entryMapper converts one structured export entry to a canonical
// message. ok is false when the entry should be skipped and counted;
// a non-nil error is fatal for the whole parse.
type entryMapper func(entry *document.Node) (model.Message, bool, error)

// buildFromEntries drives a mapper over the message container in
// traversal order, accumulating into a table. Entry order determines
// output order.
func buildFromEntries(entries []*document.Node, mapper entryMapper, maxSkipped int) (*model.Table, error) {
	builder := model.NewBuilder()
	for _, entry := range entries {
		m, ok, err := mapper(entry)
		if err != nil {
			return nil, err
		}
		if !ok {
			if err := builder.NoteSkipped(); err != nil {
				return nil, err
			}
			if builder.Skipped() > maxSkipped {
				return nil, fmt.Errorf("platform: %d unparseable entries exceeds limit of %d", builder.Skipped(), maxSkipped)
			}
			continue
		}
		if err := builder.Append(m); err != nil {
			return nil, err
		}
	}
	return builder.Finalize()
}
