// Package platform provides one parser façade per supported chat
// platform. Every façade satisfies the same Parser contract, so
// callers select a platform by name and never branch on format.
package platform

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/chatsift/chatsift/pkg/lineparse"
	"github.com/chatsift/chatsift/pkg/model"
	"github.com/chatsift/chatsift/pkg/timefmt"
)

// Parser is the uniform parse contract shared by all platforms.
type Parser interface {
	// Platform returns the canonical platform name.
	Platform() string

	// Parse consumes one raw export and returns the finalized table.
	// A parse runs to completion over the full input or fails outright.
	Parse(ctx context.Context, r io.Reader, opts ...Option) (*model.Table, error)
}

// Options collects the per-parse settings accepted by all façades.
// Settings that a platform does not use are ignored by it.
type Options struct {
	// Format overrides timestamp format inference. Validated only by
	// successfully parsing the export's first timestamp token.
	Format *timefmt.Descriptor

	// SampleSize bounds the inference sample.
	SampleSize int

	// MaxSkipped bounds the tolerated unparseable lines or entries.
	MaxSkipped int

	// ChatName selects a chat from a multi-chat export (Telegram).
	ChatName string
}

// Option configures one Parse call.
type Option func(*Options)

// WithFormat supplies an explicit format descriptor, bypassing
// inference entirely.
func WithFormat(d timefmt.Descriptor) Option {
	return func(o *Options) { o.Format = &d }
}

// WithSampleSize bounds the number of lines sampled for inference.
func WithSampleSize(n int) Option {
	return func(o *Options) { o.SampleSize = n }
}

// WithMaxSkipped bounds the tolerated number of unparseable lines.
func WithMaxSkipped(n int) Option {
	return func(o *Options) { o.MaxSkipped = n }
}

// WithChatName selects the chat to extract from a multi-chat export.
func WithChatName(name string) Option {
	return func(o *Options) { o.ChatName = name }
}

func newOptions(opts []Option) *Options {
	o := &Options{
		SampleSize: timefmt.DefaultSampleSize,
		MaxSkipped: lineparse.DefaultMaxSkipped,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var registry = map[string]Parser{
	"whatsapp":  WhatsApp{},
	"signal":    Signal{},
	"telegram":  Telegram{},
	"facebook":  Facebook{},
	"instagram": Instagram{},
}

// ForName returns the parser façade for a platform name.
func ForName(name string) (Parser, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("platform: unknown platform %q (supported: %v)", name, Names())
	}
	return p, nil
}

// Names lists the supported platform names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
