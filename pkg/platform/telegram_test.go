package platform

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chatsift/chatsift/pkg/document"
)

func TestTelegram_SingleChatExport(t *testing.T) {
	export := `{
		"name": "Alice",
		"type": "personal_chat",
		"messages": [
			{"id": 1, "type": "message", "date": "2021-01-01T10:00:00", "date_unixtime": "1609495200", "from": "Alice", "text": "hello"},
			{"id": 2, "type": "message", "date": "2021-01-01T10:01:00", "date_unixtime": "1609495260", "from": "Bob", "text": "hi"}
		]
	}`

	table, err := Telegram{}.Parse(context.Background(), strings.NewReader(export))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	first := table.At(0)
	if first.Author != "Alice" || first.Body != "hello" {
		t.Errorf("first = %q/%q", first.Author, first.Body)
	}
	want := time.Date(2021, time.January, 1, 10, 0, 0, 0, time.UTC)
	if !first.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v (epoch-seconds field)", first.Timestamp, want)
	}
}

func TestTelegram_FullDumpSelectsChatByName(t *testing.T) {
	export := `{
		"chats": {
			"list": [
				{"name": "Work", "type": "personal_chat", "messages": [
					{"id": 1, "type": "message", "date_unixtime": "1609495200", "from": "Carol", "text": "standup"}
				]},
				{"name": "Family", "type": "personal_chat", "messages": [
					{"id": 2, "type": "message", "date_unixtime": "1609495260", "from": "Dave", "text": "dinner"}
				]}
			]
		}
	}`

	table, err := Telegram{}.Parse(context.Background(), strings.NewReader(export),
		WithChatName("Family"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	if got := table.At(0).Author; got != "Dave" {
		t.Errorf("Author = %q, want Dave", got)
	}
}

func TestTelegram_FullDumpDefaultsToSavedMessages(t *testing.T) {
	export := `{
		"chats": {
			"list": [
				{"name": "Work", "type": "personal_chat", "messages": []},
				{"type": "saved_messages", "messages": [
					{"id": 3, "type": "message", "date_unixtime": "1609495200", "from": "Me", "text": "note to self"}
				]}
			]
		}
	}`

	table, err := Telegram{}.Parse(context.Background(), strings.NewReader(export))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.Len() != 1 || table.At(0).Body != "note to self" {
		t.Fatalf("got %d messages, want the saved_messages chat", table.Len())
	}
}

func TestTelegram_MissingContainerIsSchemaMismatch(t *testing.T) {
	_, err := Telegram{}.Parse(context.Background(), strings.NewReader(`{"name": "x"}`))

	var mismatch *document.SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Parse() = %v, want SchemaMismatchError", err)
	}
}

func TestTelegram_ServiceEntryBecomesEvent(t *testing.T) {
	export := `{
		"messages": [
			{"id": 1, "type": "service", "date_unixtime": "1609495200", "actor": "Alice", "action": "create_group"},
			{"id": 2, "type": "message", "date_unixtime": "1609495260", "from": "Alice", "text": "welcome"}
		]
	}`

	table, err := Telegram{}.Parse(context.Background(), strings.NewReader(export))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	event := table.At(0)
	if !event.IsEvent {
		t.Error("service entry not marked as event")
	}
	if event.Author != "" {
		t.Errorf("event Author = %q, want empty", event.Author)
	}
	if event.Body != "create_group" {
		t.Errorf("event Body = %q, want create_group", event.Body)
	}
}

func TestTelegram_FormattedTextFlattened(t *testing.T) {
	export := `{
		"messages": [
			{"id": 1, "type": "message", "date_unixtime": "1609495200", "from": "Alice",
			 "text": ["check", {"type": "link", "text": "https://example.com"}, "out"]}
		]
	}`

	table, err := Telegram{}.Parse(context.Background(), strings.NewReader(export))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := table.At(0).Body; got != "check https://example.com out" {
		t.Errorf("Body = %q, want parts joined by spaces", got)
	}
}

func TestTelegram_EmptyTextSkippedAndCounted(t *testing.T) {
	export := `{
		"messages": [
			{"id": 1, "type": "message", "date_unixtime": "1609495200", "from": "Alice", "text": ""},
			{"id": 2, "type": "message", "date_unixtime": "1609495260", "from": "Bob", "text": "hi"}
		]
	}`

	table, err := Telegram{}.Parse(context.Background(), strings.NewReader(export))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
	if table.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", table.Skipped())
	}
}

func TestTelegram_MalformedDateSkipped(t *testing.T) {
	export := `{
		"messages": [
			{"id": 1, "type": "message", "date": "not a date", "from": "Alice", "text": "hello"},
			{"id": 2, "type": "message", "date_unixtime": "1609495260", "from": "Bob", "text": "hi"}
		]
	}`

	table, err := Telegram{}.Parse(context.Background(), strings.NewReader(export))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.Len() != 1 || table.Skipped() != 1 {
		t.Errorf("Len()/Skipped() = %d/%d, want 1/1", table.Len(), table.Skipped())
	}
}
