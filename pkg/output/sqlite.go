package output

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/chatsift/chatsift/pkg/model"
)

const sqliteSchema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

CREATE TABLE IF NOT EXISTS messages (
    ord       INTEGER PRIMARY KEY,
    ts        TEXT NOT NULL,
    author    TEXT NOT NULL DEFAULT '',
    message   TEXT NOT NULL,
    is_event  INTEGER NOT NULL DEFAULT 0,
    weekday   TEXT NOT NULL,
    hour      INTEGER NOT NULL,
    words     INTEGER NOT NULL,
    letters   INTEGER NOT NULL
);
`

// SQLiteExporter writes tables into a SQLite database file. The ord
// column preserves source order; no index re-sorts by timestamp.
type SQLiteExporter struct{}

// NewSQLiteExporter creates a SQLite exporter.
func NewSQLiteExporter() *SQLiteExporter {
	return &SQLiteExporter{}
}

// Export writes the table to the database at path, creating it if
// needed. Re-exporting into the same file replaces prior rows.
func (e *SQLiteExporter) Export(ctx context.Context, table *model.Table, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages"); err != nil {
		return fmt.Errorf("clearing prior export: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (ord, ts, author, message, is_event, weekday, hour, words, letters)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < table.Len(); i++ {
		m := table.At(i)
		d := derive(m)
		isEvent := 0
		if m.IsEvent {
			isEvent = 1
		}
		_, err := stmt.ExecContext(ctx, i,
			m.Timestamp.Format(timestampLayout),
			m.Author, m.Body, isEvent,
			d.Weekday, d.Hour, d.Words, d.Letters)
		if err != nil {
			return fmt.Errorf("inserting message %d: %w", i, err)
		}
	}

	return tx.Commit()
}
