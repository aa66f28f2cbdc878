package platform

import (
	"context"
	"io"
	"time"

	"github.com/chatsift/chatsift/pkg/document"
	"github.com/chatsift/chatsift/pkg/mojibake"
	"github.com/chatsift/chatsift/pkg/model"
)

// Facebook parses Facebook Messenger JSON exports. The export
// pipeline is known to double-encode non-ASCII text, so every author
// and body string passes through the mojibake repair.
type Facebook struct{}

// Platform returns the canonical platform name.
func (Facebook) Platform() string { return "facebook" }

// Parse decodes one export and maps its messages.
func (Facebook) Parse(ctx context.Context, r io.Reader, opts ...Option) (*model.Table, error) {
	o := newOptions(opts)

	root, err := document.Decode(r)
	if err != nil {
		return nil, err
	}
	msgs, err := document.Require(root, "messages", "messages")
	if err != nil {
		return nil, err
	}

	return buildFromEntries(msgs.Items(), facebookMessage, o.MaxSkipped)
}

func facebookMessage(entry *document.Node) (model.Message, bool, error) {
	tsNode, err := document.Require(entry, "timestamp", "timestamp_ms", "timestamp")
	if err != nil {
		return model.Message{}, false, err
	}
	epoch, err := tsNode.Int64()
	if err != nil {
		return model.Message{}, false, nil
	}
	var ts time.Time
	if entry.Has("timestamp_ms") {
		ts = time.UnixMilli(epoch).UTC()
	} else {
		ts = time.Unix(epoch, 0).UTC()
	}

	senderNode, err := document.Require(entry, "author", "sender_name", "sender")
	if err != nil {
		return model.Message{}, false, err
	}
	author := mojibake.Repair(senderNode.Str())
	if author == "" {
		return model.Message{}, false, nil
	}

	body, ok := facebookBody(entry)
	if !ok {
		return model.Message{}, false, nil
	}
	body = mojibake.Repair(body)

	if facebookIsEvent(entry) {
		return model.Message{Timestamp: ts, Body: body, IsEvent: true}, true, nil
	}
	return model.Message{Timestamp: ts, Author: author, Body: body}, true, nil
}

// facebookBody flattens the entry to literal text: shared links and
// stickers reduce to their URI, everything else to the content field.
func facebookBody(entry *document.Node) (string, bool) {
	if share, ok := entry.Get("share"); ok {
		if link, ok := share.Get("link"); ok && link.Str() != "" {
			return link.Str(), true
		}
	}
	if sticker, ok := entry.Get("sticker"); ok {
		if uri, ok := sticker.Get("uri"); ok && uri.Str() != "" {
			return uri.Str(), true
		}
	}
	if content, ok := entry.Get("content"); ok && content.Str() != "" {
		return content.Str(), true
	}
	return "", false
}

// facebookIsEvent reports entries tagged as platform notices rather
// than authored messages (calls, group membership changes).
func facebookIsEvent(entry *document.Node) bool {
	typ, ok := entry.Get("type")
	if !ok {
		return false
	}
	switch typ.Str() {
	case "Call", "Subscribe", "Unsubscribe":
		return true
	default:
		return false
	}
}
