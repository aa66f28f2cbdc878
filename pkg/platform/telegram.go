package platform

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/chatsift/chatsift/pkg/document"
	"github.com/chatsift/chatsift/pkg/model"
)

// Telegram parses the JSON export produced by Telegram Desktop. The
// export is either a single chat with a top-level "messages" list, or
// a full-account dump with chats under "chats.list".
type Telegram struct{}

// Platform returns the canonical platform name.
func (Telegram) Platform() string { return "telegram" }

// Parse decodes one export and maps its messages. For full-account
// dumps the chat is selected by WithChatName; without a name the
// "saved_messages" chat is used.
func (Telegram) Parse(ctx context.Context, r io.Reader, opts ...Option) (*model.Table, error) {
	o := newOptions(opts)

	root, err := document.Decode(r)
	if err != nil {
		return nil, err
	}

	entries, err := telegramMessages(root, o.ChatName)
	if err != nil {
		return nil, err
	}

	return buildFromEntries(entries, telegramMessage, o.MaxSkipped)
}

// telegramMessages locates the message container for the requested chat.
func telegramMessages(root *document.Node, chatName string) ([]*document.Node, error) {
	if msgs, ok := root.Get("messages"); ok {
		return msgs.Items(), nil
	}

	mismatch := &document.SchemaMismatchError{
		Field:   "messages",
		Aliases: []string{"messages", "chats.list"},
	}

	chats, ok := root.Get("chats")
	if !ok {
		return nil, mismatch
	}
	list, ok := chats.Get("list")
	if !ok {
		return nil, mismatch
	}

	for _, chat := range list.Items() {
		if chatName != "" {
			if name, ok := chat.Get("name"); ok && name.Str() == chatName {
				return chatMessages(chat)
			}
			continue
		}
		if typ, ok := chat.Get("type"); ok && typ.Str() == "saved_messages" {
			return chatMessages(chat)
		}
	}
	return nil, mismatch
}

func chatMessages(chat *document.Node) ([]*document.Node, error) {
	msgs, err := document.Require(chat, "messages", "messages")
	if err != nil {
		return nil, err
	}
	return msgs.Items(), nil
}

// telegramMessage maps one entry. Service entries (group membership
// changes, calls, pins) carry an explicit type tag and become events;
// regular entries need a sender and a text payload.
func telegramMessage(entry *document.Node) (model.Message, bool, error) {
	ts, err := telegramTimestamp(entry)
	if err != nil {
		return model.Message{}, false, err
	}
	if ts.IsZero() {
		return model.Message{}, false, nil
	}

	if typ, ok := entry.Get("type"); ok && typ.Str() == "service" {
		action, _ := entry.Get("action")
		if action.Str() == "" {
			return model.Message{}, false, nil
		}
		return model.Message{Timestamp: ts, Body: action.Str(), IsEvent: true}, true, nil
	}

	from, ok := entry.Get("from")
	if !ok || from.Str() == "" {
		return model.Message{}, false, nil
	}
	text, ok := entry.Get("text")
	if !ok {
		return model.Message{}, false, nil
	}
	body, ok := telegramText(text)
	if !ok {
		return model.Message{}, false, nil
	}

	return model.Message{Timestamp: ts, Author: from.Str(), Body: body}, true, nil
}

// telegramTimestamp reads the epoch-seconds field, which exports
// serialize as a string, falling back to the ISO "date" field.
// A total miss is a schema mismatch and fatal.
func telegramTimestamp(entry *document.Node) (time.Time, error) {
	node, err := document.Require(entry, "timestamp", "date_unixtime", "date")
	if err != nil {
		return time.Time{}, err
	}

	if unix, ok := entry.Get("date_unixtime"); ok {
		secs, err := unix.Int64()
		if err != nil {
			return time.Time{}, nil
		}
		return time.Unix(secs, 0).UTC(), nil
	}

	t, err := time.Parse("2006-01-02T15:04:05", node.Str())
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

// telegramText flattens the text payload. Formatted messages arrive as
// a sequence of plain strings and entity mappings; only the literal
// text of each part is kept.
func telegramText(text *document.Node) (string, bool) {
	switch text.Kind() {
	case document.KindString:
		if text.Str() == "" {
			return "", false
		}
		return text.Str(), true
	case document.KindSequence:
		var parts []string
		for _, part := range text.Items() {
			switch part.Kind() {
			case document.KindMapping:
				inner, ok := part.Get("text")
				if !ok {
					return "", false
				}
				parts = append(parts, inner.Text())
			case document.KindString, document.KindNumber, document.KindBool:
				parts = append(parts, part.Text())
			default:
				return "", false
			}
		}
		joined := strings.Join(parts, " ")
		if joined == "" {
			return "", false
		}
		return joined, true
	default:
		return "", false
	}
}
