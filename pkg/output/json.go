package output

import (
	"context"
	"encoding/json"
	"io"

	"github.com/chatsift/chatsift/pkg/model"
)

// JSONFormatter renders tables as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// jsonRecord is the serialized shape of one message.
type jsonRecord struct {
	Timestamp string `json:"timestamp"`
	Author    string `json:"author,omitempty"`
	Message   string `json:"message"`
	IsEvent   bool   `json:"is_event"`
	Weekday   string `json:"weekday"`
	Hour      int    `json:"hour"`
	Words     int    `json:"words"`
	Letters   int    `json:"letters"`
}

// jsonDocument is the serialized table.
type jsonDocument struct {
	Messages []jsonRecord `json:"messages"`
	Skipped  int          `json:"skipped_lines"`
}

// Format renders the table as JSON.
func (f *JSONFormatter) Format(ctx context.Context, table *model.Table, w io.Writer) error {
	doc := jsonDocument{
		Messages: make([]jsonRecord, 0, table.Len()),
		Skipped:  table.Skipped(),
	}
	for i := 0; i < table.Len(); i++ {
		m := table.At(i)
		d := derive(m)
		doc.Messages = append(doc.Messages, jsonRecord{
			Timestamp: m.Timestamp.Format(timestampLayout),
			Author:    m.Author,
			Message:   m.Body,
			IsEvent:   m.IsEvent,
			Weekday:   d.Weekday,
			Hour:      d.Hour,
			Words:     d.Words,
			Letters:   d.Letters,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
