package platform

import (
	"context"
	"io"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/chatsift/chatsift/pkg/lineparse"
	"github.com/chatsift/chatsift/pkg/model"
	"github.com/chatsift/chatsift/pkg/timefmt"
)

// whatsappStart matches a message-start line across the export
// variants seen in the wild: optional left-to-right mark, optional
// opening bracket, 1/2/4-digit leading date field, dot/slash/dash
// separators, and a comma or space before the time.
var whatsappStart = regexp.MustCompile(`^\x{200E}?\[?\d{1,4}[./-]\d{1,2}[./-]\d{2,4}[, ]`)

// WhatsApp parses line-delimited WhatsApp chat exports. The date
// format is not standardized across devices, versions, and locales,
// so it is inferred from a sample prefix before parsing begins.
type WhatsApp struct{}

// Platform returns the canonical platform name.
func (WhatsApp) Platform() string { return "whatsapp" }

// Parse scans one export. Without a format override, inference must
// resolve to exactly one date order; the designated ambiguity case
// (no field exceeding 12 in the whole sample) fails with an
// AmbiguousFormatError rather than guessing.
func (WhatsApp) Parse(ctx context.Context, r io.Reader, opts ...Option) (*model.Table, error) {
	o := newOptions(opts)

	lines, err := lineparse.ReadLines(r)
	if err != nil {
		return nil, err
	}

	tokens := SampleTokens(lines, o.SampleSize)

	var desc timefmt.Descriptor
	if o.Format != nil {
		desc = *o.Format
		if len(tokens) > 0 {
			if err := timefmt.Validate(desc, tokens[0]); err != nil {
				return nil, err
			}
		}
	} else {
		inf := timefmt.NewInferrer(timefmt.WithSampleSize(o.SampleSize))
		desc, err = inf.Infer(tokens)
		if err != nil {
			return nil, err
		}
	}

	parser := lineparse.New(lineparse.Dialect{
		Start:      whatsappStart,
		Normalize:  whatsappNormalize,
		SplitStart: whatsappSplitStart,
		ParseTime: func(token string) (time.Time, error) {
			return timefmt.Parse(token, desc)
		},
	}, lineparse.WithMaxSkipped(o.MaxSkipped))

	return parser.ParseLines(lines)
}

// SampleTokens collects up to n timestamp tokens from the
// message-start lines of a free-text export, in order.
func SampleTokens(lines []string, n int) []string {
	var tokens []string
	for _, line := range lines {
		if len(tokens) >= n {
			break
		}
		if !whatsappStart.MatchString(line) {
			continue
		}
		if token, _, ok := whatsappSplitStart(whatsappNormalize(line)); ok {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// whatsappNormalize strips direction marks and applies NFKC so that
// narrow no-break spaces and similar variants compare equal.
func whatsappNormalize(line string) string {
	line = strings.ReplaceAll(line, "‎", "")
	return norm.NFKC.String(strings.TrimSpace(line))
}

// whatsappSplitStart separates the timestamp token from the rest of a
// start line. Bracketed exports close the token with "]"; all others
// use " - " between timestamp and author.
func whatsappSplitStart(line string) (token, rest string, ok bool) {
	if strings.HasPrefix(line, "[") {
		end := strings.Index(line, "]")
		if end < 0 {
			return "", "", false
		}
		return line[1:end], strings.TrimPrefix(line[end+1:], " "), true
	}
	sep := strings.Index(line, " - ")
	if sep < 0 {
		return "", "", false
	}
	return line[:sep], line[sep+3:], true
}
