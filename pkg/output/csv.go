package output

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/chatsift/chatsift/pkg/model"
)

// CSVFormatter renders tables as CSV, one row per message, in source
// order.
type CSVFormatter struct{}

// NewCSVFormatter creates a CSV formatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

var csvHeader = []string{
	"timestamp", "author", "message", "is_event",
	"weekday", "hour", "words", "letters",
}

// Format renders the table as CSV.
func (f *CSVFormatter) Format(ctx context.Context, table *model.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := 0; i < table.Len(); i++ {
		m := table.At(i)
		d := derive(m)
		row := []string{
			m.Timestamp.Format(timestampLayout),
			m.Author,
			m.Body,
			strconv.FormatBool(m.IsEvent),
			d.Weekday,
			strconv.Itoa(d.Hour),
			strconv.Itoa(d.Words),
			strconv.Itoa(d.Letters),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
