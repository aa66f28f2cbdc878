// Package lineparse provides the stateful scanner that turns
// line-delimited free-text chat exports into canonical messages.
//
// The scanner has two states: awaiting a message start, and
// accumulating the body of a message in progress. Lines matching the
// dialect's start pattern finalize the previous record and open a new
// one; all other lines extend the current body with their original
// line break preserved.
package lineparse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/chatsift/chatsift/pkg/model"
)

// DefaultMaxSkipped is the number of unparseable lines tolerated per
// export before the parse fails outright. Hand-edited or partially
// redacted exports are common, so isolated noise is skipped and
// counted rather than aborting.
const DefaultMaxSkipped = 1000

// Dialect describes one platform's free-text export format.
type Dialect struct {
	// Start matches a message-start line (leading timestamp token).
	Start *regexp.Regexp

	// Normalize, if set, rewrites a start line before it is split
	// (e.g. stripping direction marks, Unicode normalization).
	Normalize func(line string) string

	// SplitStart splits a start line into its timestamp token and the
	// remainder (author and body, or a system notice).
	SplitStart func(line string) (token, rest string, ok bool)

	// ParseTime converts a timestamp token into a point in time.
	ParseTime func(token string) (time.Time, error)

	// AuthorSep separates the author segment from the body in the
	// remainder of a start line. A remainder without it is a system
	// event. Defaults to ": ".
	AuthorSep string
}

// Parser is a single-use-per-call line scanner for one dialect.
// Each Parse call owns its own in-progress record buffer, so one
// Parser may serve concurrent parses of independent exports.
type Parser struct {
	dialect    Dialect
	maxSkipped int
}

// Option configures the Parser.
type Option func(*Parser)

// WithMaxSkipped sets the tolerated number of unparseable lines.
func WithMaxSkipped(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxSkipped = n
		}
	}
}

// New creates a Parser for the given dialect.
func New(d Dialect, opts ...Option) *Parser {
	if d.AuthorSep == "" {
		d.AuthorSep = ": "
	}
	p := &Parser{dialect: d, maxSkipped: DefaultMaxSkipped}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReadLines consumes a decoded text stream into raw lines.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	return lines, nil
}

// Parse scans a decoded text stream into a finalized table.
func (p *Parser) Parse(r io.Reader) (*model.Table, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return p.ParseLines(lines)
}

// inProgress is the record currently being built. It is owned
// exclusively by one ParseLines call until finalized.
type inProgress struct {
	timestamp time.Time
	author    string
	isEvent   bool
	body      strings.Builder
}

// ParseLines runs the two-state scan over raw lines. Records are
// emitted in input order; the scan runs to completion over the full
// input or fails outright.
func (p *Parser) ParseLines(lines []string) (*model.Table, error) {
	builder := model.NewBuilder()
	var current *inProgress

	finalize := func() error {
		if current == nil {
			return nil
		}
		m := model.Message{
			Timestamp: current.timestamp,
			Author:    current.author,
			Body:      current.body.String(),
			IsEvent:   current.isEvent,
		}
		current = nil
		return builder.Append(m)
	}

	for _, line := range lines {
		if !p.dialect.Start.MatchString(line) {
			if current != nil {
				// Continuation: extend the body, keeping the source's
				// original line break.
				current.body.WriteByte('\n')
				current.body.WriteString(line)
				continue
			}
			if err := p.skip(builder); err != nil {
				return nil, err
			}
			continue
		}

		if err := finalize(); err != nil {
			return nil, err
		}

		if p.dialect.Normalize != nil {
			line = p.dialect.Normalize(line)
		}
		token, rest, ok := p.dialect.SplitStart(line)
		if !ok {
			if err := p.skip(builder); err != nil {
				return nil, err
			}
			continue
		}
		ts, err := p.dialect.ParseTime(token)
		if err != nil {
			if err := p.skip(builder); err != nil {
				return nil, err
			}
			continue
		}

		if idx := strings.Index(rest, p.dialect.AuthorSep); idx >= 0 {
			author := strings.TrimSpace(rest[:idx])
			if author == "" {
				// Author segment present but empty: malformed line,
				// skipped like any other unparseable input.
				if err := p.skip(builder); err != nil {
					return nil, err
				}
				continue
			}
			current = &inProgress{timestamp: ts, author: author}
			current.body.WriteString(rest[idx+len(p.dialect.AuthorSep):])
		} else {
			// No author separator: a locale-specific system notice
			// (group creation, encryption notice, call log).
			current = &inProgress{timestamp: ts, isEvent: true}
			current.body.WriteString(strings.TrimSpace(rest))
		}
	}

	if err := finalize(); err != nil {
		return nil, err
	}
	return builder.Finalize()
}

func (p *Parser) skip(builder *model.Builder) error {
	if err := builder.NoteSkipped(); err != nil {
		return err
	}
	if builder.Skipped() > p.maxSkipped {
		return fmt.Errorf("lineparse: %d unparseable lines exceeds limit of %d", builder.Skipped(), p.maxSkipped)
	}
	return nil
}
