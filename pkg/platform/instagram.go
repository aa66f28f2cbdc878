package platform

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/chatsift/chatsift/pkg/document"
	"github.com/chatsift/chatsift/pkg/mojibake"
	"github.com/chatsift/chatsift/pkg/model"
)

// Instagram parses Instagram DM JSON exports. Non-text media is
// flattened to placeholder tokens; the same double-encoding defect as
// Facebook applies.
type Instagram struct{}

// Platform returns the canonical platform name.
func (Instagram) Platform() string { return "instagram" }

// Parse decodes one export and maps its messages.
func (Instagram) Parse(ctx context.Context, r io.Reader, opts ...Option) (*model.Table, error) {
	o := newOptions(opts)

	root, err := document.Decode(r)
	if err != nil {
		return nil, err
	}
	msgs, err := document.Require(root, "messages", "messages")
	if err != nil {
		return nil, err
	}

	return buildFromEntries(msgs.Items(), instagramMessage, o.MaxSkipped)
}

// instagramNotices are reaction/poll notices embedded as message
// content. They describe platform activity, not conversation, and are
// dropped.
var instagramNotices = []string{
	" to your message",
	" in the poll.",
	" created a poll: ",
	" liked a message",
	"This poll is no longer available.",
	"'s poll has multiple updates.",
}

func instagramMessage(entry *document.Node) (model.Message, bool, error) {
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

	body, ok := instagramBody(entry)
	if !ok {
		return model.Message{}, false, nil
	}

	return model.Message{Timestamp: ts, Author: author, Body: mojibake.Repair(body)}, true, nil
}

// instagramBody flattens an entry to literal text or a media
// placeholder token.
func instagramBody(entry *document.Node) (string, bool) {
	switch {
	case entry.Has("share"):
		return "sentshare", true
	case entry.Has("photos"):
		return "sentphoto", true
	case entry.Has("videos"):
		return "sentvideo", true
	case entry.Has("audio_files"):
		return "sentaudio", true
	}

	if content, ok := entry.Get("content"); ok {
		text := content.Str()
		for _, notice := range instagramNotices {
			if strings.Contains(text, notice) {
				return "", false
			}
		}
		if text == "" {
			return "", false
		}
		return text, true
	}

	// Reactions-only entries are what remains of an expired
	// disappearing message.
	if instagramIsDisappearing(entry) {
		return "disappearingmessage", true
	}

	return "", false
}

func instagramIsDisappearing(entry *document.Node) bool {
	for _, key := range entry.Keys() {
		switch key {
		case "sender_name", "timestamp_ms", "reactions", "is_geoblocked_for_viewer":
		default:
			return false
		}
	}
	return true
}
