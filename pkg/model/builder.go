package model

import (
	"errors"
	"fmt"
)

// Builder accumulates finalized messages in source order.
// It performs no sorting, deduplication, or timezone conversion;
// output order always equals append order.
type Builder struct {
	messages  []Message
	skipped   int
	finalized bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Append adds a finalized message to the table being built.
// The message must carry a non-zero timestamp, and only system events
// may have an empty author.
func (b *Builder) Append(m Message) error {
	if b.finalized {
		return &StateError{Op: "append"}
	}
	if m.Timestamp.IsZero() {
		return errors.New("message has no timestamp")
	}
	if m.Author == "" && !m.IsEvent {
		return errors.New("non-event message has no author")
	}
	b.messages = append(b.messages, m)
	return nil
}

// NoteSkipped records one unparseable input line or entry.
// The count is surfaced on the finalized table.
func (b *Builder) NoteSkipped() error {
	if b.finalized {
		return &StateError{Op: "note skipped"}
	}
	b.skipped++
	return nil
}

// Len returns the number of messages appended so far.
func (b *Builder) Len() int {
	return len(b.messages)
}

// Skipped returns the number of skipped lines recorded so far.
func (b *Builder) Skipped() int {
	return b.skipped
}

// Finalize seals the builder and returns the accumulated table.
// Any further Append or Finalize fails with a StateError.
func (b *Builder) Finalize() (*Table, error) {
	if b.finalized {
		return nil, &StateError{Op: "finalize"}
	}
	b.finalized = true
	t := &Table{messages: b.messages, skipped: b.skipped}
	b.messages = nil
	return t, nil
}

// Table is the immutable, ordered result of parsing one export.
type Table struct {
	messages []Message
	skipped  int
}

// Len returns the number of messages in the table.
func (t *Table) Len() int {
	return len(t.messages)
}

// At returns the message at index i in source order.
func (t *Table) At(i int) Message {
	return t.messages[i]
}

// Messages returns a copy of the messages in source order.
func (t *Table) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Skipped returns the number of input lines or entries that could not
// be parsed and were dropped.
func (t *Table) Skipped() int {
	return t.skipped
}

// Events returns the number of system events in the table.
func (t *Table) Events() int {
	n := 0
	for i := range t.messages {
		if t.messages[i].IsEvent {
			n++
		}
	}
	return n
}

// String summarizes the table for diagnostics.
func (t *Table) String() string {
	return fmt.Sprintf("table{messages: %d, events: %d, skipped: %d}",
		len(t.messages), t.Events(), t.skipped)
}
